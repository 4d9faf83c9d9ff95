package repositories

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/campusgate/admissions/internal/app/models"
	"github.com/campusgate/admissions/internal/db"
)

// Admin error types
var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminAlreadyExists = errors.New("admin with this username or email already exists")
)

// AdminRepository owns the username -> admin map. Not goroutine-safe.
type AdminRepository struct {
	doc *db.Document
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(doc *db.Document) *AdminRepository {
	return &AdminRepository{
		doc: doc,
	}
}

// GetByUsername retrieves an admin account by username
func (r *AdminRepository) GetByUsername(username string) (*models.Admin, error) {
	admin, ok := r.doc.Admins[strings.ToLower(username)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAdminNotFound, username)
	}
	return admin, nil
}

// GetAll retrieves all admins ordered by username
func (r *AdminRepository) GetAll() []*models.Admin {
	admins := make([]*models.Admin, 0, len(r.doc.Admins))
	for _, a := range r.doc.Admins {
		admins = append(admins, a)
	}
	sort.Slice(admins, func(i, j int) bool { return admins[i].Username < admins[j].Username })
	return admins
}

// Insert stores a new admin; usernames and emails are unique
func (r *AdminRepository) Insert(admin *models.Admin) error {
	if _, ok := r.doc.Admins[admin.Username]; ok {
		return fmt.Errorf("%w: %s", ErrAdminAlreadyExists, admin.Username)
	}
	for _, existing := range r.doc.Admins {
		if existing.Email == admin.Email {
			return fmt.Errorf("%w: %s", ErrAdminAlreadyExists, admin.Email)
		}
	}
	r.doc.Admins[admin.Username] = admin
	return nil
}

// Count returns the number of admin accounts
func (r *AdminRepository) Count() int {
	return len(r.doc.Admins)
}
