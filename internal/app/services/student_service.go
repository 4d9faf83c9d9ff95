package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusgate/admissions/internal/app/models"
	"github.com/campusgate/admissions/internal/app/repositories"
	"github.com/campusgate/admissions/internal/pkg/apperrors"
)

// BulkResult partitions the identifiers of a bulk operation into
// outcome buckets. A single bad identifier never aborts the rest.
type BulkResult struct {
	Applied        []string
	AlreadyInState []string
	NotFound       []string
}

// StudentService owns enrolled-student records: the projection built at
// admission time and the admin lifecycle mutations on it.
type StudentService struct {
	studentRepo    *repositories.StudentRepository
	catalogService *CatalogService
	logger         zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(
	studentRepo *repositories.StudentRepository,
	catalogService *CatalogService,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentRepo:    studentRepo,
		catalogService: catalogService,
		logger:         logger,
	}
}

// CreateFromApplication builds and stores the student projection of an
// admitted application. Personal and programme fields are carried over;
// the student starts at entry level, active, with account setup pending.
func (s *StudentService) CreateFromApplication(app *models.Application, matric string) (*models.Student, error) {
	student := &models.Student{
		MatricNo:         matric,
		ApplicationID:    app.ID,
		Email:            app.Email,
		FirstName:        app.FirstName,
		MiddleName:       app.MiddleName,
		LastName:         app.LastName,
		DateOfBirth:      app.DateOfBirth,
		StateOfOrigin:    app.StateOfOrigin,
		StateOfResidence: app.StateOfResidence,
		School:           app.School,
		Department:       app.CourseOfChoice,
		CourseCode:       app.CourseCode,
		PasswordHash:     app.PasswordHash,
		AdmissionDate:    time.Now(),
		Level:            models.EntryLevel,
		CGPA:             0.0,
		Suspended:        false,
		SetupPending:     true,
	}

	if err := s.studentRepo.Insert(student); err != nil {
		return nil, err
	}

	return student, nil
}

// Get returns one student by matric number
func (s *StudentService) Get(matric string) (*models.Student, error) {
	return s.studentRepo.GetByMatric(matric)
}

// List returns all students ordered by matric number
func (s *StudentService) List() []*models.Student {
	return s.studentRepo.GetAll()
}

// MatricNos returns the set of issued matric numbers
func (s *StudentService) MatricNos() map[string]struct{} {
	return s.studentRepo.MatricNos()
}

// Expel permanently removes a student record. There is no undo; the
// confirmation policy lives with the caller.
func (s *StudentService) Expel(matric string) error {
	if err := s.studentRepo.Delete(matric); err != nil {
		return err
	}
	s.logger.Info().Str("matric", matric).Msg("student expelled")
	return nil
}

// Suspend flags a student inactive. Suspending an already-suspended
// student returns ErrAlreadySuspended with the record unchanged.
func (s *StudentService) Suspend(matric string) error {
	student, err := s.studentRepo.GetByMatric(matric)
	if err != nil {
		return err
	}
	if student.Suspended {
		return fmt.Errorf("%w: %s", apperrors.ErrAlreadySuspended, student.MatricNo)
	}

	student.Suspended = true
	s.logger.Info().Str("matric", student.MatricNo).Msg("student suspended")
	return nil
}

// Unsuspend reactivates a suspended student. Unsuspending an active
// student returns ErrNotSuspended with the record unchanged.
func (s *StudentService) Unsuspend(matric string) error {
	student, err := s.studentRepo.GetByMatric(matric)
	if err != nil {
		return err
	}
	if !student.Suspended {
		return fmt.Errorf("%w: %s", apperrors.ErrNotSuspended, student.MatricNo)
	}

	student.Suspended = false
	s.logger.Info().Str("matric", student.MatricNo).Msg("student unsuspended")
	return nil
}

// BulkExpel applies Expel to each matric number independently
func (s *StudentService) BulkExpel(matrics []string) BulkResult {
	return s.bulk(matrics, s.Expel)
}

// BulkSuspend applies Suspend to each matric number independently
func (s *StudentService) BulkSuspend(matrics []string) BulkResult {
	return s.bulk(matrics, s.Suspend)
}

// BulkUnsuspend applies Unsuspend to each matric number independently
func (s *StudentService) BulkUnsuspend(matrics []string) BulkResult {
	return s.bulk(matrics, s.Unsuspend)
}

func (s *StudentService) bulk(matrics []string, op func(string) error) BulkResult {
	var result BulkResult

	for _, matric := range matrics {
		matric = strings.ToLower(strings.TrimSpace(matric))
		if matric == "" {
			continue
		}

		err := op(matric)
		switch {
		case err == nil:
			result.Applied = append(result.Applied, matric)
		case errors.Is(err, repositories.ErrStudentNotFound):
			result.NotFound = append(result.NotFound, matric)
		case apperrors.Is(err, apperrors.ErrAlreadySuspended, apperrors.ErrNotSuspended):
			result.AlreadyInState = append(result.AlreadyInState, matric)
		default:
			// bulk operations never abort; anything unexpected is logged
			// and the identifier is bucketed as not applied
			s.logger.Error().Err(err).Str("matric", matric).Msg("bulk operation item failed")
			result.NotFound = append(result.NotFound, matric)
		}
	}

	return result
}

// CompleteSetup clears the first-login setup flag and, when a new
// password hash is supplied, replaces the system-generated credential.
// Once cleared the flag is never re-set.
func (s *StudentService) CompleteSetup(matric string, newPasswordHash string) error {
	student, err := s.studentRepo.GetByMatric(matric)
	if err != nil {
		return err
	}

	if newPasswordHash != "" {
		student.PasswordHash = newPasswordHash
	}
	student.SetupPending = false

	s.logger.Info().Str("matric", student.MatricNo).Msg("student account setup completed")
	return nil
}

// Courses returns the course load for the student's level and programme
func (s *StudentService) Courses(student *models.Student) (models.LevelListing, error) {
	return s.catalogService.CourseListing(student.School, student.CourseCode, student.Level)
}
