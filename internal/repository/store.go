package repository

// Store bundles the in-memory repositories behind one handle.
type Store struct {
	Buses    *BusRepository
	Drivers  *DriverRepository
	Students *StudentRepository
	Routes   *RouteRepository
	Trips    *TripRepository
	Users    *UserRepository
}

func NewStore() *Store {
	return &Store{
		Buses:    NewBusRepository(),
		Drivers:  NewDriverRepository(),
		Students: NewStudentRepository(),
		Routes:   NewRouteRepository(),
		Trips:    NewTripRepository(),
		Users:    NewUserRepository(),
	}
}
