package services_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgate/admissions/internal/pkg/apperrors"
	"github.com/campusgate/admissions/internal/pkg/auth"
)

func TestAuthService_LoginGuest(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.ApplicationService.Submit(validDraft("adaeze@example.com"))
	require.NoError(t, err)
	id, password := result.Application.ID, result.Password

	t.Run("ValidCredentials", func(t *testing.T) {
		session, err := f.svc.AuthService.LoginGuest(id, password)
		require.NoError(t, err)
		assert.Equal(t, auth.RoleGuest, session.Role)
		assert.Equal(t, id, session.UserID)
	})

	t.Run("IDIsNormalizedBeforeLookup", func(t *testing.T) {
		_, err := f.svc.AuthService.LoginGuest("  "+strings.ToUpper(id)+"  ", password)
		require.NoError(t, err)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := f.svc.AuthService.LoginGuest(id, "wrong")
		require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("UnknownIDGetsTheSameError", func(t *testing.T) {
		_, err := f.svc.AuthService.LoginGuest("uid0000", password)
		require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestAuthService_LoginStudent(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.ApplicationService.Submit(validDraft("adaeze@example.com"))
	require.NoError(t, err)
	app, password := result.Application, result.Password
	student := f.admit(t, app.ID)

	t.Run("SetupPendingRedirectsToGuestFlow", func(t *testing.T) {
		_, err := f.svc.AuthService.LoginStudent(student.MatricNo, password)
		require.ErrorIs(t, err, apperrors.ErrSetupPending)
	})

	t.Run("AfterEnrollment", func(t *testing.T) {
		require.NoError(t, f.svc.AdmissionService.CompleteEnrollment(app.ID, ""))

		session, err := f.svc.AuthService.LoginStudent(student.MatricNo, password)
		require.NoError(t, err)
		assert.Equal(t, auth.RoleStudent, session.Role)
		assert.Equal(t, student.MatricNo, session.UserID)
	})
}

func TestAuthService_Admins(t *testing.T) {
	f := newFixture(t)

	admin, err := f.svc.AuthService.RegisterAdmin("ngozi", "eze", "ngozi@campusgate.edu", "ngozi", "sekrit1")
	require.NoError(t, err)

	t.Run("Login", func(t *testing.T) {
		session, err := f.svc.AuthService.LoginAdmin("ngozi", "sekrit1")
		require.NoError(t, err)
		assert.Equal(t, auth.RoleAdmin, session.Role)
		assert.Equal(t, admin.Username, session.UserID)
	})

	t.Run("DuplicateUsernameIsRejected", func(t *testing.T) {
		_, err := f.svc.AuthService.RegisterAdmin("other", "person", "other@campusgate.edu", "ngozi", "sekrit2")
		require.Error(t, err)
	})

	t.Run("ShortPasswordIsRejected", func(t *testing.T) {
		_, err := f.svc.AuthService.RegisterAdmin("other", "person", "other@campusgate.edu", "otherp", "abc")
		require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("Listed", func(t *testing.T) {
		admins := f.svc.AuthService.Admins()
		require.Len(t, admins, 1)
		assert.Equal(t, "ngozi", admins[0].Username)
	})
}

func TestAuthService_AuditTrail(t *testing.T) {
	f := newFixture(t)
	app := f.submit(t, "adaeze@example.com")

	_, err := f.svc.AdmissionService.AdmitOne("root", app.ID)
	require.NoError(t, err)

	entries, err := f.svc.AuditService.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "root", entries[0].Actor)
	assert.Contains(t, entries[0].Action, app.ID)

	t.Run("FilteredByActor", func(t *testing.T) {
		mine, err := f.svc.AuditService.EntriesByActor("root")
		require.NoError(t, err)
		assert.Len(t, mine, 1)

		other, err := f.svc.AuditService.EntriesByActor("nobody")
		require.NoError(t, err)
		assert.Empty(t, other)
	})
}
