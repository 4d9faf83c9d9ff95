package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgate/admissions/internal/app/models"
	"github.com/campusgate/admissions/internal/app/services"
	"github.com/campusgate/admissions/internal/pkg/apperrors"
	"github.com/campusgate/admissions/internal/pkg/auth"
	"github.com/campusgate/admissions/internal/pkg/validation"
)

func TestApplicationService_Submit(t *testing.T) {
	f := newFixture(t)

	t.Run("AcceptsScoreAboveCutOff", func(t *testing.T) {
		result, err := f.svc.ApplicationService.Submit(validDraft("adaeze@example.com"))
		require.NoError(t, err)

		app := result.Application
		assert.Regexp(t, validation.CompiledPatterns.ApplicationID, app.ID)
		assert.Equal(t, models.StatusPending, app.Status)
		assert.Equal(t, "computer science", app.CourseOfChoice)
		assert.Equal(t, "cs", app.CourseCode)
		assert.Equal(t, "soc", app.School)
		assert.Empty(t, app.MatricNo)

		// the one-time password must verify against the stored hash
		require.NotEmpty(t, result.Password)
		assert.True(t, auth.CheckPassword(app.PasswordHash, result.Password))
	})

	t.Run("RejectsScoreBelowCutOffWithNoRecord", func(t *testing.T) {
		before := f.repos.ApplicationRepository.Count()

		draft := validDraft("lowscore@example.com")
		draft.JambScore = 240 // cs cut-off is 250
		_, err := f.svc.ApplicationService.Submit(draft)

		require.ErrorIs(t, err, apperrors.ErrScoreBelowCutOff)
		assert.Equal(t, before, f.repos.ApplicationRepository.Count())
		assert.False(t, f.svc.ApplicationService.EmailInUse("lowscore@example.com"))
	})

	t.Run("SameScoreClearsLowerCutOff", func(t *testing.T) {
		draft := validDraft("cyber@example.com")
		draft.JambScore = 240
		draft.Course = "cyb" // cut-off 230
		result, err := f.svc.ApplicationService.Submit(draft)

		require.NoError(t, err)
		assert.Equal(t, "cyb", result.Application.CourseCode)
	})

	t.Run("RejectsDuplicateEmail", func(t *testing.T) {
		_, err := f.svc.ApplicationService.Submit(validDraft("adaeze@example.com"))
		require.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})

	t.Run("DuplicateEmailCheckIsCaseInsensitive", func(t *testing.T) {
		_, err := f.svc.ApplicationService.Submit(validDraft("ADAEZE@Example.COM"))
		require.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})

	t.Run("RejectsUnknownCourse", func(t *testing.T) {
		draft := validDraft("nosuch@example.com")
		draft.Course = "law"
		_, err := f.svc.ApplicationService.Submit(draft)
		require.Error(t, err)
	})

	t.Run("RejectsUnderageApplicant", func(t *testing.T) {
		draft := validDraft("young@example.com")
		draft.DateOfBirth = "15-06-2015"
		_, err := f.svc.ApplicationService.Submit(draft)
		require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("RejectsShortName", func(t *testing.T) {
		draft := validDraft("shortname@example.com")
		draft.FirstName = "al"
		_, err := f.svc.ApplicationService.Submit(draft)
		require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestApplicationService_Admit(t *testing.T) {
	t.Run("AdmitsPendingAndCreatesStudent", func(t *testing.T) {
		f := newFixture(t)
		app := f.submit(t, "adaeze@example.com")

		student := f.admit(t, app.ID)

		assert.Equal(t, models.StatusAdmitted, app.Status)
		assert.Regexp(t, validation.CompiledPatterns.Matric, student.MatricNo)
		assert.Equal(t, app.MatricNo, student.MatricNo)
		assert.Equal(t, app.ID, student.ApplicationID)
		assert.Equal(t, models.EntryLevel, student.Level)
		assert.Zero(t, student.CGPA)
		assert.False(t, student.Suspended)
		assert.True(t, student.SetupPending)

		stored, err := f.svc.StudentService.Get(student.MatricNo)
		require.NoError(t, err)
		assert.Equal(t, student, stored)
	})

	t.Run("AdmitNonPendingReportsSentinel", func(t *testing.T) {
		f := newFixture(t)
		app := f.submit(t, "adaeze@example.com")
		f.admit(t, app.ID)

		_, err := f.svc.ApplicationService.Admit(app.ID)
		require.ErrorIs(t, err, apperrors.ErrApplicationNotPending)

		// the first admission's student is untouched
		assert.Equal(t, 1, f.repos.StudentRepository.Count())
	})

	t.Run("AdmitUnknownIDIsAnError", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.ApplicationService.Admit("uid9999")
		assert.True(t, services.IsNotFound(err))
	})
}

func TestApplicationService_Reject(t *testing.T) {
	f := newFixture(t)
	app := f.submit(t, "adaeze@example.com")

	t.Run("RejectsPending", func(t *testing.T) {
		outcome, err := f.svc.ApplicationService.Reject(app.ID)
		require.NoError(t, err)
		assert.Equal(t, services.RejectApplied, outcome)
		assert.Equal(t, models.StatusRejected, app.Status)
	})

	t.Run("RejectingAgainIsIdempotent", func(t *testing.T) {
		outcome, err := f.svc.ApplicationService.Reject(app.ID)
		require.NoError(t, err)
		assert.Equal(t, services.RejectAlreadyRejected, outcome)
	})

	t.Run("AdmittedCannotBeRejected", func(t *testing.T) {
		admitted := f.submit(t, "admitted@example.com")
		f.admit(t, admitted.ID)

		_, err := f.svc.ApplicationService.Reject(admitted.ID)
		require.ErrorIs(t, err, apperrors.ErrApplicationNotPending)
		assert.Equal(t, models.StatusAdmitted, admitted.Status)
	})
}

func TestApplicationService_PendingAndUndecidedIDs(t *testing.T) {
	f := newFixture(t)

	pending := f.submit(t, "pending@example.com")
	admitted := f.submit(t, "admitted@example.com")
	rejected := f.submit(t, "rejected@example.com")

	f.admit(t, admitted.ID)
	_, err := f.svc.ApplicationService.Reject(rejected.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{pending.ID}, f.svc.ApplicationService.PendingIDs())
	assert.ElementsMatch(t, []string{pending.ID, admitted.ID}, f.svc.ApplicationService.UndecidedIDs())
}
