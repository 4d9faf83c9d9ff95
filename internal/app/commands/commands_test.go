package commands_test

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgate/admissions/internal/app/commands"
	"github.com/campusgate/admissions/internal/app/models"
	"github.com/campusgate/admissions/internal/app/repositories"
	"github.com/campusgate/admissions/internal/app/services"
	"github.com/campusgate/admissions/internal/db"
	"github.com/campusgate/admissions/internal/pkg/auth"
)

// script runs one command against a fresh context, feeding it the given
// input lines and capturing everything it prints
func script(t *testing.T, svc *services.Services, session *commands.SessionState, name string, input ...string) string {
	t.Helper()

	registry := commands.NewRegistry()
	cmd, ok := registry.Resolve(name)
	require.True(t, ok, "unknown command %q", name)

	var out bytes.Buffer
	ctx := &commands.Context{
		In:       bufio.NewReader(strings.NewReader(strings.Join(input, "\n") + "\n")),
		Out:      &out,
		Svc:      svc,
		Session:  session,
		Registry: registry,
	}
	require.NoError(t, cmd.Run(ctx))
	return out.String()
}

func newTestServices(t *testing.T) *services.Services {
	t.Helper()
	dir := t.TempDir()

	catalog, err := repositories.NewCatalogRepository(
		filepath.Join(dir, "faculty.json"),
		filepath.Join(dir, "catalog.json"),
		filepath.Join(dir, "courses.json"),
	)
	require.NoError(t, err)

	repos := repositories.NewRepositories(db.NewDocument(), catalog)
	svc := services.NewServices(repos, filepath.Join(dir, "audit.log"), zerolog.Nop())

	require.NoError(t, svc.CatalogService.AddFaculty("school of computing", "soc"))
	require.NoError(t, svc.CatalogService.AddDepartment("soc", "computer science", "cs", 250))

	return svc
}

func validApplicantDraft(email string) models.ApplicationDraft {
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

func TestRegistry_RoleGating(t *testing.T) {
	registry := commands.NewRegistry()

	t.Run("NativeCommandsRunForEveryone", func(t *testing.T) {
		cmd, ok := registry.Resolve("info")
		require.True(t, ok)
		assert.Nil(t, cmd.Roles)
	})

	t.Run("AdminSurfaceIsGated", func(t *testing.T) {
		cmd, ok := registry.Resolve("admit applicants")
		require.True(t, ok)
		assert.True(t, cmd.AllowedFor(auth.RoleAdmin))
		assert.False(t, cmd.AllowedFor(auth.RoleGuest))
		assert.False(t, cmd.AllowedFor(auth.RoleStudent))
	})

	t.Run("LogoutIsSharedByAllRoles", func(t *testing.T) {
		cmd, ok := registry.Resolve("logout")
		require.True(t, ok)
		for _, role := range []auth.Role{auth.RoleGuest, auth.RoleStudent, auth.RoleAdmin} {
			assert.True(t, cmd.AllowedFor(role))
		}
	})

	t.Run("AvailableListsOnlyTheRoleSurface", func(t *testing.T) {
		names := registry.Available(auth.RoleStudent, false)
		assert.Contains(t, names, "view courses")
		assert.NotContains(t, names, "expel student")
		assert.NotContains(t, names, "exit")
	})

	t.Run("MutatingCommandsAreMarked", func(t *testing.T) {
		for _, name := range []string{"apply", "admit applicants", "cancel application", "bulk expel"} {
			cmd, ok := registry.Resolve(name)
			require.True(t, ok, name)
			assert.True(t, cmd.Mutating, name)
		}
		for _, name := range []string{"info", "view students", "view programmes"} {
			cmd, ok := registry.Resolve(name)
			require.True(t, ok, name)
			assert.False(t, cmd.Mutating, name)
		}
	})
}

func TestLoginCommand_Guest(t *testing.T) {
	svc := newTestServices(t)

	result, err := svc.ApplicationService.Submit(validApplicantDraft("adaeze@example.com"))
	require.NoError(t, err)

	session := &commands.SessionState{}
	out := script(t, svc, session, "login", "guest", result.Application.ID, result.Password)

	require.True(t, session.LoggedIn())
	assert.Equal(t, auth.RoleGuest, session.Role())
	assert.Contains(t, out, "Welcome back")
}

func TestLoginCommand_BadCredentials(t *testing.T) {
	svc := newTestServices(t)

	session := &commands.SessionState{}
	out := script(t, svc, session, "login", "guest", "uid0000", "nope")

	assert.False(t, session.LoggedIn())
	assert.Contains(t, out, "Invalid credentials")
}

func TestSuspendCommand(t *testing.T) {
	svc := newTestServices(t)

	result, err := svc.ApplicationService.Submit(validApplicantDraft("adaeze@example.com"))
	require.NoError(t, err)
	student, err := svc.ApplicationService.Admit(result.Application.ID)
	require.NoError(t, err)

	session := &commands.SessionState{Current: auth.NewSession(auth.RoleAdmin, "root")}
	out := script(t, svc, session, "suspend student", student.MatricNo)

	assert.True(t, student.Suspended)
	assert.Contains(t, out, "has been suspended")

	t.Run("SuspendingAgainReportsIt", func(t *testing.T) {
		out := script(t, svc, session, "suspend student", student.MatricNo)
		assert.Contains(t, out, "already suspended")
	})

	t.Run("ActionIsAudited", func(t *testing.T) {
		entries, err := svc.AuditService.EntriesByActor("root")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Contains(t, entries[0].Action, student.MatricNo)
	})
}

func TestViewProgrammesCommand(t *testing.T) {
	svc := newTestServices(t)

	out := script(t, svc, &commands.SessionState{}, "view programmes")

	assert.Contains(t, out, "SCHOOL OF COMPUTING")
	assert.Contains(t, out, "(CS)")
	assert.Contains(t, out, "Computer Science")
}

func TestPrompts_ReturnWhenInputCloses(t *testing.T) {
	newContext := func() *commands.Context {
		return &commands.Context{
			In:  bufio.NewReader(strings.NewReader("")),
			Out: &bytes.Buffer{},
		}
	}

	t.Run("ReadIntReportsClosedInput", func(t *testing.T) {
		ctx := newContext()
		_, ok := ctx.ReadInt("Enter your JAMB score: ")
		assert.False(t, ok)
		assert.True(t, ctx.EOF)
	})

	t.Run("ConfirmDefaultsToNo", func(t *testing.T) {
		assert.False(t, newContext().Confirm("Proceed?"))
	})

	t.Run("AbortedTreatsClosedInputLikeCancel", func(t *testing.T) {
		ctx := newContext()
		ctx.ReadLine("Enter the application ID: ")
		assert.True(t, ctx.Aborted(""))
	})
}

func TestApplyCommand_StopsWhenInputEnds(t *testing.T) {
	svc := newTestServices(t)

	// the form ends mid-way: no score, school or course were ever given
	script(t, svc, &commands.SessionState{}, "apply", "adaeze", "-", "okafor")

	assert.Empty(t, svc.ApplicationService.List())
}
