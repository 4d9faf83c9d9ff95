package services

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/campusgate/admissions/internal/app/models"
	"github.com/campusgate/admissions/internal/app/repositories"
	"github.com/campusgate/admissions/internal/pkg/apperrors"
	"github.com/campusgate/admissions/internal/pkg/auth"
	"github.com/campusgate/admissions/internal/pkg/validation"
)

// AuthService authenticates the three user kinds of the portal. There
// is no transport: a successful login yields an in-process session that
// the command loop carries until logout.
type AuthService struct {
	applicationRepo *repositories.ApplicationRepository
	studentRepo     *repositories.StudentRepository
	adminRepo       *repositories.AdminRepository
	logger          zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(
	applicationRepo *repositories.ApplicationRepository,
	studentRepo *repositories.StudentRepository,
	adminRepo *repositories.AdminRepository,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		applicationRepo: applicationRepo,
		studentRepo:     studentRepo,
		adminRepo:       adminRepo,
		logger:          logger,
	}
}

// LoginGuest authenticates an applicant by application ID. An applicant
// whose student account is already set up is redirected to the student
// login instead of re-entering the application flow.
func (s *AuthService) LoginGuest(id, password string) (*auth.Session, error) {
	id = strings.ToLower(validation.CleanString(id))

	if student, ok := s.studentRepo.FindByApplicationID(id); ok && !student.SetupPending {
		return nil, fmt.Errorf("%w: you have been admitted, log in with matric number %s",
			apperrors.ErrInvalidState, student.MatricNo)
	}

	app, err := s.applicationRepo.GetByID(id)
	if err != nil {
		// the same answer for unknown ID and bad password
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(app.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	s.logger.Info().Str("id", app.ID).Msg("guest logged in")
	return auth.NewSession(auth.RoleGuest, app.ID), nil
}

// LoginStudent authenticates a student by matric number. A student who
// has not completed first-login setup must do that through the guest
// status check first.
func (s *AuthService) LoginStudent(matric, password string) (*auth.Session, error) {
	matric = strings.ToLower(validation.CleanString(matric))

	student, err := s.studentRepo.GetByMatric(matric)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if student.SetupPending {
		if _, err := s.applicationRepo.GetByID(student.ApplicationID); err == nil {
			return nil, fmt.Errorf("%w: check your application status as a guest first",
				apperrors.ErrSetupPending)
		}
	}

	if !auth.CheckPassword(student.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	s.logger.Info().Str("matric", student.MatricNo).Msg("student logged in")
	return auth.NewSession(auth.RoleStudent, student.MatricNo), nil
}

// LoginAdmin authenticates an administrator by username
func (s *AuthService) LoginAdmin(username, password string) (*auth.Session, error) {
	username = strings.ToLower(validation.CleanString(username))

	admin, err := s.adminRepo.GetByUsername(username)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(admin.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	s.logger.Info().Str("username", admin.Username).Msg("admin logged in")
	return auth.NewSession(auth.RoleAdmin, admin.Username), nil
}

// RegisterAdmin creates a new admin account; only the root admin may
// call this, which the command layer enforces
func (s *AuthService) RegisterAdmin(firstName, lastName, email, username, password string) (*models.Admin, error) {
	firstName = strings.ToLower(validation.CleanString(firstName))
	lastName = strings.ToLower(validation.CleanString(lastName))
	email = strings.ToLower(validation.CleanString(email))
	username = strings.ToLower(validation.CleanString(username))

	for _, name := range []string{firstName, lastName} {
		if err := validation.ValidateName(name); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if !validation.IsValidEmail(email) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidEmail, fmt.Sprintf("invalid email address: %s", email))
	}
	if err := validation.ValidateUsername(username); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing admin password: %w", err)
	}

	admin := &models.Admin{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
	}
	if err := s.adminRepo.Insert(admin); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", admin.Username).Msg("admin registered")
	return admin, nil
}

// Admins lists all admin accounts
func (s *AuthService) Admins() []*models.Admin {
	return s.adminRepo.GetAll()
}
