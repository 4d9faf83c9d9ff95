package services

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/campusgate/admissions/internal/app/models"
	"github.com/campusgate/admissions/internal/app/repositories"
	"github.com/campusgate/admissions/internal/pkg/apperrors"
	"github.com/campusgate/admissions/internal/pkg/validation"
)

// CatalogService manages the academic structure: faculties, the
// departments under them, and course listings. It is the programme
// lookup applications are resolved against at submission time.
type CatalogService struct {
	catalogRepo *repositories.CatalogRepository
	logger      zerolog.Logger
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(catalogRepo *repositories.CatalogRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// Faculties returns all faculties
func (s *CatalogService) Faculties() []models.Faculty {
	return s.catalogRepo.Faculties()
}

// GetFaculty finds a faculty by code or name
func (s *CatalogService) GetFaculty(codeOrName string) (models.Faculty, error) {
	return s.catalogRepo.GetFaculty(codeOrName)
}

// AddFaculty registers a new school/faculty
func (s *CatalogService) AddFaculty(name, code string) error {
	name = strings.ToLower(validation.CleanString(name))
	code = strings.ToLower(validation.CleanString(code))

	if name == "" || code == "" {
		return apperrors.NewValidationError("faculty name and code are required")
	}

	if err := s.catalogRepo.AddFaculty(models.Faculty{Code: code, Name: name}); err != nil {
		return err
	}

	s.logger.Info().Str("code", code).Msg("faculty added")
	return nil
}

// RemoveFaculty deletes a faculty and all its departments
func (s *CatalogService) RemoveFaculty(code string) error {
	if err := s.catalogRepo.DeleteFaculty(code); err != nil {
		return err
	}
	s.logger.Info().Str("code", code).Msg("faculty removed")
	return nil
}

// Departments returns the departments of one faculty
func (s *CatalogService) Departments(facultyCode string) []models.Department {
	return s.catalogRepo.Departments(facultyCode)
}

// AddDepartment registers a programme under a faculty. The course code
// becomes the matric-number prefix source, so it must be at least two
// letters; shorter codes are rejected here rather than failing later at
// matric generation.
func (s *CatalogService) AddDepartment(school, courseName, courseCode string, cutOff int) error {
	school = strings.ToLower(validation.CleanString(school))
	courseName = strings.ToLower(validation.CleanString(courseName))
	courseCode = strings.ToLower(validation.CleanString(courseCode))

	if courseName == "" {
		return apperrors.NewValidationError("course name is required")
	}
	if len(courseCode) < 2 || !isAlphabetic(courseCode) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidDepartmentCode, courseCode)
	}
	if err := validation.ValidateScore(cutOff); err != nil {
		return apperrors.NewValidationError(fmt.Sprintf("cut-off mark: %v", err))
	}

	dept := models.Department{
		School:     school,
		Course:     courseName,
		CourseCode: courseCode,
		CutOff:     cutOff,
	}
	if err := s.catalogRepo.AddDepartment(dept); err != nil {
		return err
	}

	s.logger.Info().Str("school", school).Str("code", courseCode).Int("cutOff", cutOff).Msg("department added")
	return nil
}

// RemoveDepartment deletes a programme and its course listings
func (s *CatalogService) RemoveDepartment(courseCode string) error {
	if err := s.catalogRepo.DeleteDepartment(courseCode); err != nil {
		return err
	}
	s.logger.Info().Str("code", courseCode).Msg("department removed")
	return nil
}

// ResolveCourse resolves a school plus course name or code into the
// frozen snapshot an application stores: programme names and the
// cut-off in force at submission time.
func (s *CatalogService) ResolveCourse(school, courseNameOrCode string) (*models.ResolvedCourse, error) {
	faculty, err := s.catalogRepo.GetFaculty(school)
	if err != nil {
		return nil, err
	}
	if !s.catalogRepo.HasDepartments(faculty.Code) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrFacultyEmpty, faculty.Name)
	}

	dept, err := s.catalogRepo.FindDepartment(courseNameOrCode)
	if err != nil {
		return nil, err
	}
	if dept.School != faculty.Code {
		return nil, fmt.Errorf("%w: %s is not offered by %s",
			repositories.ErrDepartmentNotFound, courseNameOrCode, faculty.Name)
	}

	return &models.ResolvedCourse{
		School:     dept.School,
		Course:     dept.Course,
		CourseCode: dept.CourseCode,
		CutOff:     dept.CutOff,
	}, nil
}

// CourseListing returns the course load for a department level
func (s *CatalogService) CourseListing(school, courseCode string, level int) (models.LevelListing, error) {
	return s.catalogRepo.CourseListing(school, courseCode, level)
}

// AddCourse appends a course to a department's semester listing
func (s *CatalogService) AddCourse(school, courseCode string, level int, semester models.Semester, course models.Course) error {
	course.Code = strings.ToLower(validation.CleanString(course.Code))
	if course.Code == "" || course.Unit <= 0 {
		return apperrors.NewValidationError("course code and a positive unit load are required")
	}

	listing, err := s.catalogRepo.CourseListing(school, courseCode, level)
	if err != nil {
		return err
	}

	sem, ok := listing[semester]
	if !ok {
		return apperrors.NewValidationError(fmt.Sprintf("level %d has no %s", level, semester))
	}
	for _, existing := range sem.Courses {
		if existing.Code == course.Code {
			return apperrors.NewValidationError(fmt.Sprintf("course %s already listed", course.Code))
		}
	}

	sem.Courses = append(sem.Courses, course)
	listing[semester] = sem

	if err := s.catalogRepo.SetCourseListing(school, courseCode, level, listing); err != nil {
		return err
	}

	s.logger.Info().Str("course", course.Code).Str("dept", courseCode).Int("level", level).Msg("course added")
	return nil
}

// isAlphabetic reports whether s is ASCII letters only
func isAlphabetic(s string) bool {
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return false
		}
	}
	return s != ""
}
