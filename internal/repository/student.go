package repository

import (
	"errors"
	"sort"
	"sync"

	"transport-backend/internal/models"
)

type StudentRepository struct {
	mu       sync.RWMutex
	students map[string]*models.Student
}

func NewStudentRepository() *StudentRepository {
	return &StudentRepository{
		students: make(map[string]*models.Student),
	}
}

func (r *StudentRepository) Create(student *models.Student) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.students {
		if existing.StudentNo == student.StudentNo {
			return nil, errors.New("student ID already exists")
		}
	}

	r.students[student.ID] = cloneStudent(student)
	return student, nil
}

func (r *StudentRepository) FindByID(id string) (*models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	student, ok := r.students[id]
	if !ok {
		return nil, errors.New("student not found")
	}
	return cloneStudent(student), nil
}

func (r *StudentRepository) FindAll() ([]*models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	students := make([]*models.Student, 0, len(r.students))
	for _, student := range r.students {
		students = append(students, cloneStudent(student))
	}
	sort.Slice(students, func(i, j int) bool { return students[i].StudentNo < students[j].StudentNo })
	return students, nil
}

func (r *StudentRepository) FindByRoute(route string) ([]*models.Student, error) {
	all, err := r.FindAll()
	if err != nil {
		return nil, err
	}

	var students []*models.Student
	for _, student := range all {
		if student.Route == route {
			students = append(students, student)
		}
	}
	return students, nil
}

func (r *StudentRepository) Update(id string, student *models.Student) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.students[id]; !ok {
		return nil, errors.New("student not found")
	}

	r.students[id] = cloneStudent(student)
	return student, nil
}

func (r *StudentRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.students[id]; !ok {
		return errors.New("student not found")
	}
	delete(r.students, id)
	return nil
}

func (r *StudentRepository) Count() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.students), nil
}

func cloneStudent(student *models.Student) *models.Student {
	out := *student
	out.Lifecycle = cloneLifecycle(student.Lifecycle)
	return &out
}
