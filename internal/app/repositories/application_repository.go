package repositories

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/campusgate/admissions/internal/app/models"
	"github.com/campusgate/admissions/internal/db"
)

// Application error types
var (
	ErrApplicationNotFound      = errors.New("application not found")
	ErrApplicationAlreadyExists = errors.New("application with this ID already exists")
)

// ApplicationRepository owns the application ID -> record map. It is the
// only path to the application collection; callers never touch the
// document maps directly. Not goroutine-safe.
type ApplicationRepository struct {
	doc *db.Document
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(doc *db.Document) *ApplicationRepository {
	return &ApplicationRepository{
		doc: doc,
	}
}

// GetByID retrieves an application by its ID
func (r *ApplicationRepository) GetByID(id string) (*models.Application, error) {
	app, ok := r.doc.Applications[strings.ToLower(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrApplicationNotFound, id)
	}
	return app, nil
}

// GetAll retrieves all applications ordered by ID
func (r *ApplicationRepository) GetAll() []*models.Application {
	apps := make([]*models.Application, 0, len(r.doc.Applications))
	for _, app := range r.doc.Applications {
		apps = append(apps, app)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID < apps[j].ID })
	return apps
}

// IDs returns the set of issued application IDs
func (r *ApplicationRepository) IDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(r.doc.Applications))
	for id := range r.doc.Applications {
		ids[id] = struct{}{}
	}
	return ids
}

// EmailExists reports whether any application, whatever its status,
// was submitted with the given email
func (r *ApplicationRepository) EmailExists(email string) bool {
	email = strings.ToLower(email)
	for _, app := range r.doc.Applications {
		if app.Email == email {
			return true
		}
	}
	return false
}

// Insert stores a new application under its ID
func (r *ApplicationRepository) Insert(app *models.Application) error {
	if _, ok := r.doc.Applications[app.ID]; ok {
		return fmt.Errorf("%w: %s", ErrApplicationAlreadyExists, app.ID)
	}
	r.doc.Applications[app.ID] = app
	return nil
}

// Delete removes an application record permanently
func (r *ApplicationRepository) Delete(id string) error {
	id = strings.ToLower(id)
	if _, ok := r.doc.Applications[id]; !ok {
		return fmt.Errorf("%w: %s", ErrApplicationNotFound, id)
	}
	delete(r.doc.Applications, id)
	return nil
}

// Count returns the number of stored applications
func (r *ApplicationRepository) Count() int {
	return len(r.doc.Applications)
}

// CountByStatus returns the number of applications in the given status
func (r *ApplicationRepository) CountByStatus(status models.ApplicationStatus) int {
	n := 0
	for _, app := range r.doc.Applications {
		if app.Status == status {
			n++
		}
	}
	return n
}
