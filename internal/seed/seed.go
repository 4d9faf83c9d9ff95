package seed

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/campusgate/admissions/internal/app/models"
	"github.com/campusgate/admissions/internal/app/repositories"
	"github.com/campusgate/admissions/internal/app/services"
	"github.com/campusgate/admissions/internal/pkg/apperrors"
	"github.com/campusgate/admissions/internal/pkg/auth"
)

// root admin bootstrap credential; the root account is expected to
// change it after first login
const rootDefaultPassword = "root1234"

// EnsureRootAdmin creates the root admin account if no admins exist yet
func EnsureRootAdmin(adminRepo *repositories.AdminRepository, lgr zerolog.Logger) error {
	if adminRepo.Count() > 0 {
		return nil
	}

	lgr.Info().Msg("no admin accounts found, creating root admin")

	hash, err := auth.HashPassword(rootDefaultPassword)
	if err != nil {
		return err
	}

	return adminRepo.Insert(&models.Admin{
		Username:     models.RootUsername,
		PasswordHash: hash,
		Email:        "root@campusgate.edu",
		FirstName:    "root",
		LastName:     "root",
	})
}

// CreateDefaultCatalog seeds a starter catalog so a fresh install has
// something to apply to. Existing entries are left alone.
func CreateDefaultCatalog(catalog *services.CatalogService, lgr zerolog.Logger) error {
	lgr.Info().Msg("checking/creating default catalog")
	var finalErr error

	faculties := []models.Faculty{
		{Code: "sict", Name: "school of information and communication technology"},
		{Code: "seet", Name: "school of electrical engineering technology"},
	}
	for _, f := range faculties {
		err := catalog.AddFaculty(f.Name, f.Code)
		if err != nil && !errors.Is(err, apperrors.ErrFacultyAlreadyExists) &&
			!errors.Is(err, repositories.ErrFacultyAlreadyExists) {
			lgr.Error().Err(err).Str("code", f.Code).Msg("error seeding faculty")
			finalErr = errors.Join(finalErr, err)
		}
	}

	departments := []models.Department{
		{School: "sict", Course: "computer science", CourseCode: "cs", CutOff: 250},
		{School: "sict", Course: "cyber security", CourseCode: "cyb", CutOff: 230},
		{School: "seet", Course: "mechatronics engineering", CourseCode: "mce", CutOff: 220},
	}
	for _, d := range departments {
		err := catalog.AddDepartment(d.School, d.Course, d.CourseCode, d.CutOff)
		if err != nil && !errors.Is(err, repositories.ErrDepartmentAlreadyExists) {
			lgr.Error().Err(err).Str("code", d.CourseCode).Msg("error seeding department")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
