package services

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"transport-backend/internal/models"
	"transport-backend/internal/repository"
)

type CreateStudentRequest struct {
	StudentNo   string `json:"studentId" validate:"required"`
	Name        string `json:"name" validate:"required"`
	ClassYear   string `json:"classYear"`
	Route       string `json:"route"`
	Stop        string `json:"stop"`
	Bus         string `json:"bus"`
	ParentName  string `json:"parentName"`
	ParentPhone string `json:"parentPhone"`
}

type UpdateStudentRequest struct {
	ClassYear   string `json:"classYear"`
	Route       string `json:"route"`
	Stop        string `json:"stop"`
	Bus         string `json:"bus"`
	ParentName  string `json:"parentName"`
	ParentPhone string `json:"parentPhone"`
	Boarding    string `json:"boardingStatus" validate:"omitempty,oneof=Confirmed Waitlist"`
}

type StudentService struct {
	studentRepo *repository.StudentRepository
	validator   *validator.Validate
}

func NewStudentService(studentRepo *repository.StudentRepository) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		validator:   validator.New(),
	}
}

// CreateStudent enrolls a student on a route. Enrollment starts Active;
// fee holds and suspensions are status transitions.
func (s *StudentService) CreateStudent(req *CreateStudentRequest, now time.Time) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	student := &models.Student{
		ID:             uuid.NewString(),
		StudentNo:      req.StudentNo,
		Name:           req.Name,
		ClassYear:      req.ClassYear,
		Route:          req.Route,
		Stop:           req.Stop,
		Bus:            req.Bus,
		ParentName:     req.ParentName,
		ParentPhone:    req.ParentPhone,
		BoardingStatus: models.BoardingConfirmed,
		Lifecycle:      models.NewLifecycle(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	return s.studentRepo.Create(student)
}

func (s *StudentService) GetStudent(id string) (*models.Student, error) {
	return s.studentRepo.FindByID(id)
}

func (s *StudentService) ListStudents() ([]*models.Student, error) {
	return s.studentRepo.FindAll()
}

func (s *StudentService) ListStudentsByRoute(route string) ([]*models.Student, error) {
	return s.studentRepo.FindByRoute(route)
}

func (s *StudentService) UpdateStudent(id string, req *UpdateStudentRequest, now time.Time) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.ClassYear != "" {
		student.ClassYear = req.ClassYear
	}
	if req.Route != "" {
		student.Route = req.Route
	}
	if req.Stop != "" {
		student.Stop = req.Stop
	}
	if req.Bus != "" {
		student.Bus = req.Bus
	}
	if req.ParentName != "" {
		student.ParentName = req.ParentName
	}
	if req.ParentPhone != "" {
		student.ParentPhone = req.ParentPhone
	}
	if req.Boarding != "" {
		student.BoardingStatus = models.BoardingStatus(req.Boarding)
	}
	student.UpdatedAt = now

	return s.studentRepo.Update(id, student)
}

func (s *StudentService) DeleteStudent(id string) error {
	return s.studentRepo.Delete(id)
}
