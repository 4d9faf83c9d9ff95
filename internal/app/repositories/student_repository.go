package repositories

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/campusgate/admissions/internal/app/models"
	"github.com/campusgate/admissions/internal/db"
)

// Student error types
var (
	ErrStudentNotFound     = errors.New("student not found")
	ErrMatricAlreadyExists = errors.New("student with this matric number already exists")
)

// StudentRepository owns the matric number -> student map. Records enter
// only through the admission workflow and leave only through expulsion
// or application cancellation. Not goroutine-safe.
type StudentRepository struct {
	doc *db.Document
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(doc *db.Document) *StudentRepository {
	return &StudentRepository{
		doc: doc,
	}
}

// GetByMatric retrieves a student by matric number
func (r *StudentRepository) GetByMatric(matric string) (*models.Student, error) {
	student, ok := r.doc.Students[strings.ToLower(matric)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStudentNotFound, matric)
	}
	return student, nil
}

// GetAll retrieves all students ordered by matric number
func (r *StudentRepository) GetAll() []*models.Student {
	students := make([]*models.Student, 0, len(r.doc.Students))
	for _, s := range r.doc.Students {
		students = append(students, s)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].MatricNo < students[j].MatricNo })
	return students
}

// MatricNos returns the set of issued matric numbers
func (r *StudentRepository) MatricNos() map[string]struct{} {
	matrics := make(map[string]struct{}, len(r.doc.Students))
	for m := range r.doc.Students {
		matrics[m] = struct{}{}
	}
	return matrics
}

// FindByApplicationID looks a student up through the application
// back-reference set at admission time
func (r *StudentRepository) FindByApplicationID(applicationID string) (*models.Student, bool) {
	for _, s := range r.doc.Students {
		if s.ApplicationID == applicationID {
			return s, true
		}
	}
	return nil, false
}

// Insert stores a new student under their matric number
func (r *StudentRepository) Insert(student *models.Student) error {
	if _, ok := r.doc.Students[student.MatricNo]; ok {
		return fmt.Errorf("%w: %s", ErrMatricAlreadyExists, student.MatricNo)
	}
	r.doc.Students[student.MatricNo] = student
	return nil
}

// Delete removes a student record permanently
func (r *StudentRepository) Delete(matric string) error {
	matric = strings.ToLower(matric)
	if _, ok := r.doc.Students[matric]; !ok {
		return fmt.Errorf("%w: %s", ErrStudentNotFound, matric)
	}
	delete(r.doc.Students, matric)
	return nil
}

// Count returns the number of enrolled students
func (r *StudentRepository) Count() int {
	return len(r.doc.Students)
}
