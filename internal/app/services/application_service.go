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
	"github.com/campusgate/admissions/internal/pkg/auth"
	"github.com/campusgate/admissions/internal/pkg/validation"
)

// SubmissionResult is returned for an accepted application. Password is
// the system-generated plaintext, shown to the applicant exactly once.
type SubmissionResult struct {
	Application *models.Application
	Password    string
}

// RejectOutcome reports what a reject call did
type RejectOutcome int

const (
	// RejectApplied means the application transitioned to rejected
	RejectApplied RejectOutcome = iota
	// RejectAlreadyRejected means the application was rejected before the call
	RejectAlreadyRejected
)

// ApplicationService owns the application status state machine. Every
// status transition in the system goes through Admit or Reject here;
// nothing else writes Application.Status.
type ApplicationService struct {
	applicationRepo *repositories.ApplicationRepository
	studentService  *StudentService
	identityService *IdentityService
	catalogService  *CatalogService
	logger          zerolog.Logger
}

// NewApplicationService creates a new application service instance
func NewApplicationService(
	applicationRepo *repositories.ApplicationRepository,
	studentService *StudentService,
	identityService *IdentityService,
	catalogService *CatalogService,
	logger zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		studentService:  studentService,
		identityService: identityService,
		catalogService:  catalogService,
		logger:          logger,
	}
}

// validateDraft checks everything about a draft except catalog facts
func (s *ApplicationService) validateDraft(draft *models.ApplicationDraft) error {
	draft.Email = strings.ToLower(validation.CleanString(draft.Email))
	draft.FirstName = strings.ToLower(validation.CleanString(draft.FirstName))
	draft.MiddleName = strings.ToLower(validation.CleanString(draft.MiddleName))
	draft.LastName = strings.ToLower(validation.CleanString(draft.LastName))

	if err := validation.Struct(draft); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	for _, name := range []string{draft.FirstName, draft.LastName} {
		if err := validation.ValidateName(name); err != nil {
			return apperrors.NewValidationError(err.Error())
		}
	}
	if draft.MiddleName != "" {
		if err := validation.ValidateName(draft.MiddleName); err != nil {
			return apperrors.NewValidationError(err.Error())
		}
	}

	if !validation.IsValidEmail(draft.Email) {
		return apperrors.NewCustomError(apperrors.ErrInvalidEmail, fmt.Sprintf("invalid email address: %s", draft.Email))
	}

	if _, err := validation.ParseDateOfBirth(draft.DateOfBirth, time.Now()); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	if err := validation.ValidateScore(draft.JambScore); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	return nil
}

// Submit validates a draft and creates a pending application. A score
// below the resolved course cut-off, or an email any existing
// application already used, is rejected with no record created.
func (s *ApplicationService) Submit(draft models.ApplicationDraft) (*SubmissionResult, error) {
	if err := s.validateDraft(&draft); err != nil {
		return nil, err
	}

	if s.applicationRepo.EmailExists(draft.Email) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrEmailAlreadyExists, draft.Email)
	}

	// freeze the programme snapshot and cut-off at submission time
	course, err := s.catalogService.ResolveCourse(draft.School, draft.Course)
	if err != nil {
		return nil, err
	}

	if draft.JambScore < course.CutOff {
		return nil, fmt.Errorf("%w: scored %d, cut-off is %d",
			apperrors.ErrScoreBelowCutOff, draft.JambScore, course.CutOff)
	}

	id, err := s.identityService.GenerateApplicationID(s.applicationRepo.IDs())
	if err != nil {
		return nil, err
	}

	password, err := auth.GeneratePassword()
	if err != nil {
		return nil, fmt.Errorf("error generating applicant password: %w", err)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing applicant password: %w", err)
	}

	app := &models.Application{
		ID:               id,
		Email:            draft.Email,
		FirstName:        draft.FirstName,
		MiddleName:       draft.MiddleName,
		LastName:         draft.LastName,
		DateOfBirth:      draft.DateOfBirth,
		StateOfOrigin:    strings.ToLower(draft.StateOfOrigin),
		StateOfResidence: strings.ToLower(draft.StateOfResidence),
		JambScore:        draft.JambScore,
		School:           course.School,
		CourseOfChoice:   course.Course,
		CourseCode:       course.CourseCode,
		ApplicationDate:  time.Now(),
		PasswordHash:     hash,
		Status:           models.StatusPending,
	}

	if err := s.applicationRepo.Insert(app); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", id).Str("course", course.CourseCode).Msg("application submitted")

	return &SubmissionResult{Application: app, Password: password}, nil
}

// Admit transitions a pending application to admitted, mints a matric
// number and creates the student projection as one logical step: if
// student creation fails, the transition is rolled back.
//
// A missing ID is an error; a non-pending application returns
// ErrApplicationNotPending so batch callers can skip it without aborting.
func (s *ApplicationService) Admit(id string) (*models.Student, error) {
	app, err := s.applicationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if app.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: %s is %s", apperrors.ErrApplicationNotPending, app.ID, app.Status)
	}

	matric, err := s.identityService.GenerateMatricNo(
		time.Now().Year(), app.CourseCode, s.studentService.MatricNos())
	if err != nil {
		return nil, err
	}

	app.Status = models.StatusAdmitted
	app.MatricNo = matric

	student, err := s.studentService.CreateFromApplication(app, matric)
	if err != nil {
		// roll back the transition so the invariant "admitted implies
		// student exists" keeps holding
		app.Status = models.StatusPending
		app.MatricNo = ""
		return nil, fmt.Errorf("admitting %s: %w", app.ID, err)
	}

	s.logger.Info().Str("id", app.ID).Str("matric", matric).Msg("application admitted")

	return student, nil
}

// Reject transitions a pending application to rejected. Rejecting an
// already-rejected application is an idempotent no-op reported through
// the outcome; rejecting an admitted application is not supported.
func (s *ApplicationService) Reject(id string) (RejectOutcome, error) {
	app, err := s.applicationRepo.GetByID(id)
	if err != nil {
		return 0, err
	}

	switch app.Status {
	case models.StatusRejected:
		return RejectAlreadyRejected, nil
	case models.StatusAdmitted:
		return 0, fmt.Errorf("%w: %s is admitted", apperrors.ErrApplicationNotPending, app.ID)
	}

	app.Status = models.StatusRejected

	s.logger.Info().Str("id", app.ID).Msg("application rejected")

	return RejectApplied, nil
}

// EmailInUse reports whether any application was submitted with this
// email; the apply prompt checks it before collecting the rest of the
// draft so duplicates are rejected at input time
func (s *ApplicationService) EmailInUse(email string) bool {
	return s.applicationRepo.EmailExists(strings.ToLower(validation.CleanString(email)))
}

// Get returns one application by ID
func (s *ApplicationService) Get(id string) (*models.Application, error) {
	return s.applicationRepo.GetByID(id)
}

// List returns all applications ordered by ID
func (s *ApplicationService) List() []*models.Application {
	return s.applicationRepo.GetAll()
}

// PendingIDs returns the IDs of all pending applications, in order
func (s *ApplicationService) PendingIDs() []string {
	var ids []string
	for _, app := range s.applicationRepo.GetAll() {
		if app.Status == models.StatusPending {
			ids = append(ids, app.ID)
		}
	}
	return ids
}

// UndecidedIDs returns IDs of applications that are not yet rejected,
// in order; reject-all runs over this set
func (s *ApplicationService) UndecidedIDs() []string {
	var ids []string
	for _, app := range s.applicationRepo.GetAll() {
		if app.Status != models.StatusRejected {
			ids = append(ids, app.ID)
		}
	}
	return ids
}

// IsNotFound reports whether err is an unknown-application error
func IsNotFound(err error) bool {
	return errors.Is(err, repositories.ErrApplicationNotFound) ||
		errors.Is(err, repositories.ErrStudentNotFound)
}
