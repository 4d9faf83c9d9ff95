package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgate/admissions/internal/pkg/apperrors"
)

func TestStudentService_SuspendUnsuspend(t *testing.T) {
	f := newFixture(t)
	app := f.submit(t, "adaeze@example.com")
	student := f.admit(t, app.ID)

	t.Run("SuspendSetsFlag", func(t *testing.T) {
		require.NoError(t, f.svc.StudentService.Suspend(student.MatricNo))
		assert.True(t, student.Suspended)
	})

	t.Run("SuspendingAgainFails", func(t *testing.T) {
		err := f.svc.StudentService.Suspend(student.MatricNo)
		require.ErrorIs(t, err, apperrors.ErrAlreadySuspended)
	})

	t.Run("UnsuspendClearsFlag", func(t *testing.T) {
		require.NoError(t, f.svc.StudentService.Unsuspend(student.MatricNo))
		assert.False(t, student.Suspended)
	})

	t.Run("UnsuspendingActiveStudentFails", func(t *testing.T) {
		err := f.svc.StudentService.Unsuspend(student.MatricNo)
		require.ErrorIs(t, err, apperrors.ErrNotSuspended)
	})
}

func TestStudentService_Expel(t *testing.T) {
	f := newFixture(t)
	app := f.submit(t, "adaeze@example.com")
	student := f.admit(t, app.ID)

	require.NoError(t, f.svc.StudentService.Expel(student.MatricNo))

	_, err := f.svc.StudentService.Get(student.MatricNo)
	require.Error(t, err)
	assert.Equal(t, 0, f.repos.StudentRepository.Count())
}

func TestStudentService_BulkPartition(t *testing.T) {
	f := newFixture(t)

	first := f.admit(t, f.submit(t, "first@example.com").ID)
	second := f.admit(t, f.submit(t, "second@example.com").ID)
	require.NoError(t, f.svc.StudentService.Suspend(second.MatricNo))

	result := f.svc.StudentService.BulkSuspend([]string{
		first.MatricNo,
		second.MatricNo,  // already suspended
		"2025/1/99999zz", // no such student
	})

	assert.Equal(t, []string{first.MatricNo}, result.Applied)
	assert.Equal(t, []string{second.MatricNo}, result.AlreadyInState)
	assert.Equal(t, []string{"2025/1/99999zz"}, result.NotFound)

	// both students are suspended afterwards either way
	assert.True(t, first.Suspended)
	assert.True(t, second.Suspended)
}

func TestStudentService_BulkNormalizesInput(t *testing.T) {
	f := newFixture(t)
	student := f.admit(t, f.submit(t, "adaeze@example.com").ID)

	result := f.svc.StudentService.BulkExpel([]string{"  " + student.MatricNo + "  "})

	assert.Equal(t, []string{student.MatricNo}, result.Applied)
	assert.Equal(t, 0, f.repos.StudentRepository.Count())
}

func TestStudentService_CompleteSetup(t *testing.T) {
	f := newFixture(t)
	student := f.admit(t, f.submit(t, "adaeze@example.com").ID)
	oldHash := student.PasswordHash

	t.Run("EmptyHashKeepsPassword", func(t *testing.T) {
		require.NoError(t, f.svc.StudentService.CompleteSetup(student.MatricNo, ""))
		assert.False(t, student.SetupPending)
		assert.Equal(t, oldHash, student.PasswordHash)
	})

	t.Run("NewHashReplacesPassword", func(t *testing.T) {
		require.NoError(t, f.svc.StudentService.CompleteSetup(student.MatricNo, "new-hash"))
		assert.Equal(t, "new-hash", student.PasswordHash)
	})
}
