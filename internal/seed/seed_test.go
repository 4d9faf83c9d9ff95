package seed_test

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgate/admissions/internal/app/models"
	"github.com/campusgate/admissions/internal/app/repositories"
	"github.com/campusgate/admissions/internal/app/services"
	"github.com/campusgate/admissions/internal/db"
	"github.com/campusgate/admissions/internal/seed"
)

func TestEnsureRootAdmin(t *testing.T) {
	repo := repositories.NewAdminRepository(db.NewDocument())

	require.NoError(t, seed.EnsureRootAdmin(repo, zerolog.Nop()))

	root, err := repo.GetByUsername(models.RootUsername)
	require.NoError(t, err)
	assert.True(t, root.IsRoot())
	assert.NotEmpty(t, root.PasswordHash)

	t.Run("SecondRunIsANoOp", func(t *testing.T) {
		require.NoError(t, seed.EnsureRootAdmin(repo, zerolog.Nop()))
		assert.Equal(t, 1, repo.Count())
	})
}

func TestCreateDefaultCatalog(t *testing.T) {
	dir := t.TempDir()
	repo, err := repositories.NewCatalogRepository(
		filepath.Join(dir, "faculty.json"),
		filepath.Join(dir, "catalog.json"),
		filepath.Join(dir, "courses.json"),
	)
	require.NoError(t, err)
	catalog := services.NewCatalogService(repo, zerolog.Nop())

	require.NoError(t, seed.CreateDefaultCatalog(catalog, zerolog.Nop()))
	assert.NotEmpty(t, catalog.Faculties())

	t.Run("SecondRunLeavesExistingEntries", func(t *testing.T) {
		before := len(catalog.Faculties())
		require.NoError(t, seed.CreateDefaultCatalog(catalog, zerolog.Nop()))
		assert.Len(t, catalog.Faculties(), before)
	})
}
