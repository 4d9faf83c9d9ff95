package services_test

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/campusgate/admissions/internal/app/models"
	"github.com/campusgate/admissions/internal/app/repositories"
	"github.com/campusgate/admissions/internal/app/services"
	"github.com/campusgate/admissions/internal/db"
)

// fixture wires a full service stack over an in-memory document and a
// throwaway catalog directory
type fixture struct {
	doc   *db.Document
	repos *repositories.Repositories
	svc   *services.Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	catalog, err := repositories.NewCatalogRepository(
		filepath.Join(dir, "faculty.json"),
		filepath.Join(dir, "catalog.json"),
		filepath.Join(dir, "courses.json"),
	)
	require.NoError(t, err)

	doc := db.NewDocument()
	repos := repositories.NewRepositories(doc, catalog)
	svc := services.NewServices(repos, filepath.Join(dir, "audit.log"), zerolog.Nop())

	require.NoError(t, svc.CatalogService.AddFaculty("school of computing", "soc"))
	require.NoError(t, svc.CatalogService.AddDepartment("soc", "computer science", "cs", 250))
	require.NoError(t, svc.CatalogService.AddDepartment("soc", "cyber security", "cyb", 230))

	return &fixture{doc: doc, repos: repos, svc: svc}
}

func validDraft(email string) models.ApplicationDraft {
	return models.ApplicationDraft{
		Email:            email,
		FirstName:        "adaeze",
		LastName:         "okafor",
		DateOfBirth:      "15-06-2005",
		StateOfOrigin:    "anambra",
		StateOfResidence: "lagos",
		JambScore:        280,
		School:           "soc",
		Course:           "cs",
	}
}

// submit is a shorthand for tests that just need a pending application
func (f *fixture) submit(t *testing.T, email string) *models.Application {
	t.Helper()
	result, err := f.svc.ApplicationService.Submit(validDraft(email))
	require.NoError(t, err)
	return result.Application
}

// admit is a shorthand for tests that need an enrolled student
func (f *fixture) admit(t *testing.T, id string) *models.Student {
	t.Helper()
	student, err := f.svc.ApplicationService.Admit(id)
	require.NoError(t, err)
	return student
}
