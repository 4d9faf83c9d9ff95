package repositories

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/campusgate/admissions/internal/app/models"
	"github.com/campusgate/admissions/internal/db"
)

// Catalog error types
var (
	ErrFacultyNotFound         = errors.New("faculty not found")
	ErrFacultyAlreadyExists    = errors.New("faculty with this name or code already exists")
	ErrDepartmentNotFound      = errors.New("department not found")
	ErrDepartmentAlreadyExists = errors.New("department with this name or code already exists")
	ErrListingNotFound         = errors.New("no course listing for this level")
)

// CatalogRepository owns the programme catalog: faculties, the
// departments offered under them, and per-level course listings.
// Each collection persists to its own JSON file, rewritten after every
// mutation the way the state document is. Not goroutine-safe.
type CatalogRepository struct {
	facultyPath string
	catalogPath string
	coursePath  string

	// faculty code -> faculty name
	faculties map[string]string
	// faculty code -> course code -> department
	departments map[string]map[string]models.Department
	// faculty code -> course code -> level -> listing
	courses map[string]map[string]map[string]models.LevelListing
}

// NewCatalogRepository loads the catalog files; missing files start empty
func NewCatalogRepository(facultyPath, catalogPath, coursePath string) (*CatalogRepository, error) {
	r := &CatalogRepository{
		facultyPath: facultyPath,
		catalogPath: catalogPath,
		coursePath:  coursePath,
		faculties:   make(map[string]string),
		departments: make(map[string]map[string]models.Department),
		courses:     make(map[string]map[string]map[string]models.LevelListing),
	}

	for _, load := range []struct {
		path string
		v    interface{}
	}{
		{facultyPath, &r.faculties},
		{catalogPath, &r.departments},
		{coursePath, &r.courses},
	} {
		if err := db.ReadJSON(load.path, load.v); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading catalog: %w", err)
		}
	}

	return r, nil
}

// Faculties returns all faculties ordered by code
func (r *CatalogRepository) Faculties() []models.Faculty {
	out := make([]models.Faculty, 0, len(r.faculties))
	for code, name := range r.faculties {
		out = append(out, models.Faculty{Code: code, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// GetFaculty finds a faculty by its code or full name
func (r *CatalogRepository) GetFaculty(codeOrName string) (models.Faculty, error) {
	key := strings.ToLower(strings.TrimSpace(codeOrName))
	if name, ok := r.faculties[key]; ok {
		return models.Faculty{Code: key, Name: name}, nil
	}
	for code, name := range r.faculties {
		if strings.EqualFold(name, key) {
			return models.Faculty{Code: code, Name: name}, nil
		}
	}
	return models.Faculty{}, fmt.Errorf("%w: %s", ErrFacultyNotFound, codeOrName)
}

// AddFaculty registers a new faculty and persists the catalog
func (r *CatalogRepository) AddFaculty(faculty models.Faculty) error {
	code := strings.ToLower(faculty.Code)
	name := strings.ToLower(faculty.Name)

	if _, ok := r.faculties[code]; ok {
		return fmt.Errorf("%w: %s", ErrFacultyAlreadyExists, code)
	}
	for _, existing := range r.faculties {
		if existing == name {
			return fmt.Errorf("%w: %s", ErrFacultyAlreadyExists, name)
		}
	}

	r.faculties[code] = name
	if r.departments[code] == nil {
		r.departments[code] = make(map[string]models.Department)
	}
	if r.courses[code] == nil {
		r.courses[code] = make(map[string]map[string]models.LevelListing)
	}

	return r.save()
}

// DeleteFaculty removes a faculty and everything filed under it
func (r *CatalogRepository) DeleteFaculty(code string) error {
	code = strings.ToLower(strings.TrimSpace(code))
	if _, ok := r.faculties[code]; !ok {
		return fmt.Errorf("%w: %s", ErrFacultyNotFound, code)
	}

	delete(r.faculties, code)
	delete(r.departments, code)
	delete(r.courses, code)

	return r.save()
}

// HasDepartments reports whether a faculty has at least one department
func (r *CatalogRepository) HasDepartments(facultyCode string) bool {
	return len(r.departments[strings.ToLower(facultyCode)]) > 0
}

// Departments returns the departments of one faculty ordered by code
func (r *CatalogRepository) Departments(facultyCode string) []models.Department {
	depts := r.departments[strings.ToLower(facultyCode)]
	out := make([]models.Department, 0, len(depts))
	for _, d := range depts {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseCode < out[j].CourseCode })
	return out
}

// FindDepartment locates a department by course code or course name
// across all faculties
func (r *CatalogRepository) FindDepartment(nameOrCode string) (models.Department, error) {
	key := strings.ToLower(strings.TrimSpace(nameOrCode))
	for _, depts := range r.departments {
		for code, dept := range depts {
			if code == key || strings.EqualFold(dept.Course, key) {
				return dept, nil
			}
		}
	}
	return models.Department{}, fmt.Errorf("%w: %s", ErrDepartmentNotFound, nameOrCode)
}

// AddDepartment files a department under its faculty and persists
func (r *CatalogRepository) AddDepartment(dept models.Department) error {
	school := strings.ToLower(dept.School)
	code := strings.ToLower(dept.CourseCode)

	if _, ok := r.faculties[school]; !ok {
		return fmt.Errorf("%w: %s", ErrFacultyNotFound, dept.School)
	}
	if _, err := r.FindDepartment(code); err == nil {
		return fmt.Errorf("%w: %s", ErrDepartmentAlreadyExists, code)
	}
	if _, err := r.FindDepartment(dept.Course); err == nil {
		return fmt.Errorf("%w: %s", ErrDepartmentAlreadyExists, dept.Course)
	}

	dept.School = school
	dept.CourseCode = code
	dept.Course = strings.ToLower(dept.Course)

	if r.departments[school] == nil {
		r.departments[school] = make(map[string]models.Department)
	}
	r.departments[school][code] = dept

	// scaffold empty listings for every level
	if r.courses[school] == nil {
		r.courses[school] = make(map[string]map[string]models.LevelListing)
	}
	levels := make(map[string]models.LevelListing, len(models.Levels))
	for _, level := range models.Levels {
		listing := models.LevelListing{
			models.FirstSemester: models.SemesterListing{},
		}
		// 400 level runs industrial attachment in the second semester
		if level != 400 {
			listing[models.SecondSemester] = models.SemesterListing{}
		}
		levels[strconv.Itoa(level)] = listing
	}
	r.courses[school][code] = levels

	return r.save()
}

// DeleteDepartment removes a department and its course listings
func (r *CatalogRepository) DeleteDepartment(courseCode string) error {
	code := strings.ToLower(strings.TrimSpace(courseCode))
	for school, depts := range r.departments {
		if _, ok := depts[code]; ok {
			delete(depts, code)
			if r.courses[school] != nil {
				delete(r.courses[school], code)
			}
			return r.save()
		}
	}
	return fmt.Errorf("%w: %s", ErrDepartmentNotFound, courseCode)
}

// CourseListing returns the listing for one department level
func (r *CatalogRepository) CourseListing(school, courseCode string, level int) (models.LevelListing, error) {
	school = strings.ToLower(school)
	courseCode = strings.ToLower(courseCode)

	levels, ok := r.courses[school][courseCode]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrDepartmentNotFound, school, courseCode)
	}
	listing, ok := levels[strconv.Itoa(level)]
	if !ok {
		return nil, fmt.Errorf("%w: level %d", ErrListingNotFound, level)
	}
	return listing, nil
}

// SetCourseListing replaces the listing for one department level and persists
func (r *CatalogRepository) SetCourseListing(school, courseCode string, level int, listing models.LevelListing) error {
	school = strings.ToLower(school)
	courseCode = strings.ToLower(courseCode)

	levels, ok := r.courses[school][courseCode]
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrDepartmentNotFound, school, courseCode)
	}
	levels[strconv.Itoa(level)] = listing

	return r.save()
}

// save rewrites the three catalog files
func (r *CatalogRepository) save() error {
	if err := db.WriteJSON(r.facultyPath, r.faculties); err != nil {
		return err
	}
	if err := db.WriteJSON(r.catalogPath, r.departments); err != nil {
		return err
	}
	return db.WriteJSON(r.coursePath, r.courses)
}
