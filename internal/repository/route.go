package repository

import (
	"errors"
	"sort"
	"sync"

	"transport-backend/internal/models"
)

type RouteRepository struct {
	mu     sync.RWMutex
	routes map[string]*models.Route
}

func NewRouteRepository() *RouteRepository {
	return &RouteRepository{
		routes: make(map[string]*models.Route),
	}
}

func (r *RouteRepository) Create(route *models.Route) (*models.Route, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.routes {
		if existing.Name == route.Name {
			return nil, errors.New("route name already exists")
		}
	}

	r.routes[route.ID] = cloneRoute(route)
	return route, nil
}

func (r *RouteRepository) FindByID(id string) (*models.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	route, ok := r.routes[id]
	if !ok {
		return nil, errors.New("route not found")
	}
	return cloneRoute(route), nil
}

func (r *RouteRepository) FindByName(name string) (*models.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, route := range r.routes {
		if route.Name == name {
			return cloneRoute(route), nil
		}
	}
	return nil, errors.New("route not found")
}

func (r *RouteRepository) FindAll() ([]*models.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	routes := make([]*models.Route, 0, len(r.routes))
	for _, route := range r.routes {
		routes = append(routes, cloneRoute(route))
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i].Name < routes[j].Name })
	return routes, nil
}

func (r *RouteRepository) Update(id string, route *models.Route) (*models.Route, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.routes[id]; !ok {
		return nil, errors.New("route not found")
	}

	r.routes[id] = cloneRoute(route)
	return route, nil
}

func (r *RouteRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.routes[id]; !ok {
		return errors.New("route not found")
	}
	delete(r.routes, id)
	return nil
}

func (r *RouteRepository) Count() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.routes), nil
}

func cloneRoute(route *models.Route) *models.Route {
	out := *route
	out.Stops = append([]models.Stop(nil), route.Stops...)
	return &out
}
