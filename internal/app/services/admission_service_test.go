package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgate/admissions/internal/app/models"
	"github.com/campusgate/admissions/internal/pkg/apperrors"
)

func TestAdmissionService_AdmitOne(t *testing.T) {
	f := newFixture(t)
	app := f.submit(t, "adaeze@example.com")

	student, err := f.svc.AdmissionService.AdmitOne("root", app.ID)
	require.NoError(t, err)
	require.NotNil(t, student)

	t.Run("NonPendingIsSilentNoOp", func(t *testing.T) {
		again, err := f.svc.AdmissionService.AdmitOne("root", app.ID)
		require.NoError(t, err)
		assert.Nil(t, again)
	})

	t.Run("UnknownIDIsAnError", func(t *testing.T) {
		_, err := f.svc.AdmissionService.AdmitOne("root", "uid0000")
		require.Error(t, err)
	})
}

func TestAdmissionService_BatchNeverAborts(t *testing.T) {
	f := newFixture(t)

	first := f.submit(t, "first@example.com")
	second := f.submit(t, "second@example.com")
	third := f.submit(t, "third@example.com")

	// decide the middle one up front so the batch has a skip in it
	_, err := f.svc.ApplicationService.Reject(second.ID)
	require.NoError(t, err)

	decision := f.svc.AdmissionService.AdmitBatch("root", []string{
		first.ID, second.ID, "uid0000", third.ID,
	})

	assert.Equal(t, 2, decision.Applied)
	require.Len(t, decision.Results, 4)

	assert.Equal(t, models.StatusAdmitted, first.Status)
	assert.Equal(t, models.StatusRejected, second.Status)
	assert.Equal(t, models.StatusAdmitted, third.Status)

	// the skips carry their own outcomes
	assert.False(t, decision.Results[1].Applied)
	assert.False(t, decision.Results[2].Applied)
	assert.Error(t, decision.Results[2].Err)
}

func TestAdmissionService_AdmitAll(t *testing.T) {
	f := newFixture(t)
	f.submit(t, "first@example.com")
	f.submit(t, "second@example.com")

	decision := f.svc.AdmissionService.AdmitAll("root")

	assert.Equal(t, 2, decision.Applied)
	assert.Empty(t, f.svc.ApplicationService.PendingIDs())
	assert.Equal(t, 2, f.repos.StudentRepository.Count())
}

func TestAdmissionService_RejectAllSkipsAdmitted(t *testing.T) {
	f := newFixture(t)

	admitted := f.submit(t, "admitted@example.com")
	pending := f.submit(t, "pending@example.com")
	f.admit(t, admitted.ID)

	decision := f.svc.AdmissionService.RejectAll("root")

	assert.Equal(t, 1, decision.Applied)
	assert.Equal(t, models.StatusAdmitted, admitted.Status)
	assert.Equal(t, models.StatusRejected, pending.Status)
}

func TestAdmissionService_CancelApplication(t *testing.T) {
	t.Run("PendingRemovesApplicationOnly", func(t *testing.T) {
		f := newFixture(t)
		app := f.submit(t, "adaeze@example.com")

		require.NoError(t, f.svc.AdmissionService.CancelApplication(app.ID))

		assert.Equal(t, 0, f.repos.ApplicationRepository.Count())
		assert.Equal(t, 0, f.repos.StudentRepository.Count())
	})

	t.Run("AdmittedRemovesBothRecords", func(t *testing.T) {
		f := newFixture(t)
		app := f.submit(t, "adaeze@example.com")
		student := f.admit(t, app.ID)

		require.NoError(t, f.svc.AdmissionService.CancelApplication(app.ID))

		assert.Equal(t, 0, f.repos.ApplicationRepository.Count())
		assert.Equal(t, 0, f.repos.StudentRepository.Count())

		_, err := f.svc.StudentService.Get(student.MatricNo)
		require.Error(t, err)
	})

	t.Run("AdmittedWithoutStudentIsAConsistencyError", func(t *testing.T) {
		f := newFixture(t)
		app := f.submit(t, "adaeze@example.com")
		student := f.admit(t, app.ID)

		// break the invariant behind the service's back
		require.NoError(t, f.repos.StudentRepository.Delete(student.MatricNo))

		err := f.svc.AdmissionService.CancelApplication(app.ID)
		require.ErrorIs(t, err, apperrors.ErrConsistency)
	})
}

func TestAdmissionService_DeleteRejected(t *testing.T) {
	f := newFixture(t)
	app := f.submit(t, "adaeze@example.com")
	_, err := f.svc.ApplicationService.Reject(app.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.AdmissionService.DeleteRejected(app.ID))
	assert.Equal(t, 0, f.repos.ApplicationRepository.Count())

	t.Run("PendingIsNotDeletable", func(t *testing.T) {
		pending := f.submit(t, "pending@example.com")
		err := f.svc.AdmissionService.DeleteRejected(pending.ID)
		require.ErrorIs(t, err, apperrors.ErrInvalidState)
	})
}

func TestAdmissionService_CompleteEnrollment(t *testing.T) {
	f := newFixture(t)
	app := f.submit(t, "adaeze@example.com")
	student := f.admit(t, app.ID)

	require.NoError(t, f.svc.AdmissionService.CompleteEnrollment(app.ID, "fresh-hash"))

	// the application record is consumed, the student account is live
	assert.Equal(t, 0, f.repos.ApplicationRepository.Count())
	assert.False(t, student.SetupPending)
	assert.Equal(t, "fresh-hash", student.PasswordHash)
}
