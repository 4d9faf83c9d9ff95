package commands

import (
	"strings"

	"github.com/campusgate/admissions/internal/pkg/auth"
)

// shellCommands are available whether or not anyone is logged in
func shellCommands() []*Command {
	return []*Command{
		{
			Name: "exit",
			Help: "save state and leave the portal",
			Run: func(ctx *Context) error {
				ctx.Quit = true
				return nil
			},
		},
		{
			Name: "info",
			Help: "list available commands",
			Run:  runInfo,
		},
		{
			Name: "login",
			Help: "log in as guest, student or admin",
			Run:  runLogin,
		},
		{
			Name:     "apply",
			Help:     "apply for admission",
			Mutating: true,
			Run:      runApply,
		},
		{
			Name: "view programmes",
			Help: "list schools and the courses they offer",
			Run:  runViewProgrammes,
		},
	}
}

func runInfo(ctx *Context) error {
	ctx.Println("\nShell Commands")
	for _, name := range ctx.Registry.Available("", true) {
		ctx.Println("  " + name)
	}

	if ctx.Session.LoggedIn() {
		role := ctx.Session.Role()
		ctx.Printf("\n%s Commands\n", capitalize(string(role)))
		for _, name := range ctx.Registry.Available(role, false) {
			ctx.Println("  " + name)
		}
	}
	ctx.Println()

	return nil
}

func runLogin(ctx *Context) error {
	if ctx.Session.LoggedIn() {
		ctx.Println("\nAlready logged in!")
		return nil
	}

	ctx.Println("\nUSER MODES: guest | student | admin")

	var mode string
	for {
		mode = strings.ToLower(ctx.ReadLine("Enter user mode: "))
		if ctx.Aborted(mode) {
			return nil
		}
		if mode == "guest" || mode == "student" || mode == "admin" {
			break
		}
		ctx.Println("Invalid user mode! Type `cancel` to abort login.")
	}

	var (
		session *auth.Session
		err     error
	)
	switch mode {
	case "guest":
		id := ctx.ReadLine("Enter your application ID: ")
		password := ctx.ReadLine("Enter your password: ")
		session, err = ctx.Svc.AuthService.LoginGuest(id, password)
	case "student":
		matric := ctx.ReadLine("Enter your matriculation number: ")
		password := ctx.ReadLine("Enter your password: ")
		session, err = ctx.Svc.AuthService.LoginStudent(matric, password)
	case "admin":
		username := ctx.ReadLine("Enter your username: ")
		password := ctx.ReadLine("Enter your password: ")
		session, err = ctx.Svc.AuthService.LoginAdmin(username, password)
	}

	if err != nil {
		ctx.Printf("\n%s\n\n", capitalize(err.Error()))
		return nil
	}

	ctx.Session.Current = session
	ctx.Printf("\n<< Welcome back! Logged in as %s >>\n\n", strings.ToUpper(session.UserID))
	return nil
}

func runViewProgrammes(ctx *Context) error {
	faculties := ctx.Svc.CatalogService.Faculties()
	if len(faculties) == 0 {
		ctx.Println("\nThere are no programmes yet!")
		return nil
	}

	ctx.Println("\nHere's a list of available programmes:")
	for _, f := range faculties {
		ctx.Printf("\n%s (%s)\n", strings.ToUpper(f.Name), strings.ToUpper(f.Code))
		depts := ctx.Svc.CatalogService.Departments(f.Code)
		if len(depts) == 0 {
			ctx.Println("  (no departments yet)")
			continue
		}
		for _, d := range depts {
			ctx.Printf("  (%s) - %s, cut-off %d\n", strings.ToUpper(d.CourseCode), titleCase(d.Course), d.CutOff)
		}
	}
	ctx.Println()

	return nil
}

// capitalize upper-cases the first letter for terminal messages
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// titleCase capitalizes each word of a stored lowercase name for display
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// logoutCommand is shared by every role
func logoutCommand(roles []auth.Role) *Command {
	return &Command{
		Name:  "logout",
		Help:  "log out of the portal",
		Roles: roles,
		Run: func(ctx *Context) error {
			ctx.Session.Current = nil
			ctx.Println("\nLogged out.")
			return nil
		},
	}
}
