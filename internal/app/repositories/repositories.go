package repositories

import (
	"github.com/campusgate/admissions/internal/db"
)

// Repositories holds all the repository instances built over one
// state document
type Repositories struct {
	ApplicationRepository *ApplicationRepository
	StudentRepository     *StudentRepository
	AdminRepository       *AdminRepository
	CatalogRepository     *CatalogRepository
}

// NewRepositories initializes the document-backed repositories.
// The catalog repository is constructed separately since it persists
// to its own files.
func NewRepositories(doc *db.Document, catalog *CatalogRepository) *Repositories {
	return &Repositories{
		ApplicationRepository: NewApplicationRepository(doc),
		StudentRepository:     NewStudentRepository(doc),
		AdminRepository:       NewAdminRepository(doc),
		CatalogRepository:     catalog,
	}
}
