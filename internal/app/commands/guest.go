package commands

import (
	"strings"
	"time"

	"github.com/campusgate/admissions/internal/app/models"
	"github.com/campusgate/admissions/internal/pkg/auth"
	"github.com/campusgate/admissions/internal/pkg/validation"
)

// guestCommands are available to logged-in applicants
func guestCommands() []*Command {
	return []*Command{
		{
			Name:     "check status",
			Help:     "see the outcome of your application",
			Roles:    []auth.Role{auth.RoleGuest},
			Mutating: true,
			Run:      runCheckStatus,
		},
		{
			Name:     "cancel application",
			Help:     "withdraw your application from the portal",
			Roles:    []auth.Role{auth.RoleGuest},
			Mutating: true,
			Run:      runCancelApplication,
		},
		logoutCommand([]auth.Role{auth.RoleGuest, auth.RoleStudent, auth.RoleAdmin}),
	}
}

// runApply walks an applicant through the admission form. Every field
// re-prompts until valid; `cancel` aborts at any prompt.
func runApply(ctx *Context) error {
	if ctx.Session.LoggedIn() {
		ctx.Println("\nYou cannot apply while logged in!")
		return nil
	}

	faculties := ctx.Svc.CatalogService.Faculties()
	if len(faculties) == 0 {
		ctx.Println("\nAdmissions are not open yet, check back later!")
		return nil
	}

	ctx.Println("\nADMISSION FORM (type `cancel` at any prompt to abort)")

	var draft models.ApplicationDraft

	if !promptName(ctx, "Enter your first name: ", &draft.FirstName) {
		return nil
	}
	for {
		middle := ctx.ReadLine("Enter your middle name (or - if none): ")
		if ctx.Aborted(middle) {
			return nil
		}
		if middle == "-" || middle == "" {
			break
		}
		if err := validation.ValidateName(middle); err != nil {
			ctx.Println(capitalize(err.Error()))
			continue
		}
		draft.MiddleName = middle
		break
	}
	if !promptName(ctx, "Enter your last name: ", &draft.LastName) {
		return nil
	}

	for {
		raw := ctx.ReadLine("Enter your date of birth (DDMMYYYY): ")
		if ctx.Aborted(raw) {
			return nil
		}
		dob, err := validation.ParseDateOfBirth(raw, time.Now())
		if err != nil {
			ctx.Println(capitalize(err.Error()))
			continue
		}
		draft.DateOfBirth = dob.Format("02-01-2006")
		break
	}

	for {
		origin := ctx.ReadLine("Enter your state of origin: ")
		if ctx.Aborted(origin) {
			return nil
		}
		if origin == "" {
			ctx.Println("State of origin is required.")
			continue
		}
		draft.StateOfOrigin = origin
		break
	}
	for {
		residence := ctx.ReadLine("Enter your state of residence: ")
		if ctx.Aborted(residence) {
			return nil
		}
		if residence == "" {
			ctx.Println("State of residence is required.")
			continue
		}
		draft.StateOfResidence = residence
		break
	}

	for {
		email := strings.ToLower(ctx.ReadLine("Enter your email address: "))
		if ctx.Aborted(email) {
			return nil
		}
		if !validation.IsValidEmail(email) {
			ctx.Println("That does not look like an email address.")
			continue
		}
		if ctx.Svc.ApplicationService.EmailInUse(email) {
			ctx.Println("An application with that email already exists!")
			continue
		}
		draft.Email = email
		break
	}

	var resolved *models.ResolvedCourse
	for {
		ctx.Println("\nSchools:")
		for _, f := range faculties {
			ctx.Printf("  (%s) %s\n", strings.ToUpper(f.Code), titleCase(f.Name))
		}
		school := strings.ToLower(ctx.ReadLine("Enter your school of choice: "))
		if ctx.Aborted(school) {
			return nil
		}
		faculty, err := ctx.Svc.CatalogService.GetFaculty(school)
		if err != nil {
			ctx.Println("No such school, pick one from the list.")
			continue
		}

		depts := ctx.Svc.CatalogService.Departments(faculty.Code)
		if len(depts) == 0 {
			ctx.Println("That school has no programmes yet, pick another.")
			continue
		}
		ctx.Println("\nProgrammes:")
		for _, d := range depts {
			ctx.Printf("  (%s) %s, cut-off %d\n", strings.ToUpper(d.CourseCode), titleCase(d.Course), d.CutOff)
		}
		course := strings.ToLower(ctx.ReadLine("Enter your course of choice: "))
		if ctx.Aborted(course) {
			return nil
		}
		resolved, err = ctx.Svc.CatalogService.ResolveCourse(faculty.Code, course)
		if err != nil {
			ctx.Println("No such programme under that school, try again.")
			continue
		}
		draft.School = resolved.School
		draft.Course = resolved.CourseCode
		break
	}

	for {
		score, ok := ctx.ReadInt("Enter your JAMB score: ")
		if !ok {
			return nil
		}
		if err := validation.ValidateScore(score); err != nil {
			ctx.Println(capitalize(err.Error()))
			continue
		}
		if score < resolved.CutOff {
			ctx.Printf("\nSorry, you scored below the %d cut-off for %s and cannot apply for it.\n\n",
				resolved.CutOff, titleCase(resolved.Course))
			return nil
		}
		draft.JambScore = score
		break
	}

	result, err := ctx.Svc.ApplicationService.Submit(draft)
	if err != nil {
		ctx.Printf("\nApplication failed: %s\n\n", err)
		return nil
	}

	ctx.Println("\n<< Your application has been submitted! >>")
	ctx.Printf("Application ID: %s\n", strings.ToUpper(result.Application.ID))
	ctx.Printf("Password: %s\n", result.Password)
	ctx.Println("Keep both safe, the password is shown only once.")
	ctx.Println("Log in as a guest to check your admission status.")
	ctx.Println()

	return nil
}

func runCheckStatus(ctx *Context) error {
	id := ctx.Session.Current.UserID
	app, err := ctx.Svc.ApplicationService.Get(id)
	if err != nil {
		return err
	}

	switch app.Status {
	case models.StatusAdmitted:
		ctx.Printf("\n<< Congratulations %s! >>\n", app.FullName())
		ctx.Printf("You have been offered admission to study %s at %s.\n",
			titleCase(app.CourseOfChoice), strings.ToUpper(app.School))
		ctx.Printf("Your matriculation number is %s.\n\n", app.MatricNo)

		newHash := ""
		if ctx.Confirm("Would you like to set a new password now?") {
			hash, ok := promptNewPassword(ctx)
			if !ok {
				ctx.Println("Keeping your current password.")
			} else {
				newHash = hash
			}
		}
		if err := ctx.Svc.AdmissionService.CompleteEnrollment(id, newHash); err != nil {
			return err
		}
		ctx.Println("\nEnrollment complete! Log in as a student with your matriculation number.")

	case models.StatusRejected:
		ctx.Printf("\nDear %s, we are sorry to inform you that your application was not successful.\n", app.FullName())
		ctx.Println("We wish you the best in your future endeavours.")
		if err := ctx.Svc.AdmissionService.DeleteRejected(id); err != nil {
			return err
		}

	default:
		ctx.Println("\nYour application is still pending, check back later!")
		return nil
	}

	// the application record is gone either way, end the session
	ctx.Session.Current = nil
	ctx.Println("\nLogged out.")
	return nil
}

func runCancelApplication(ctx *Context) error {
	if !ctx.Confirm("\nThis will permanently withdraw your application. Continue?") {
		ctx.Println("Cancellation aborted.")
		return nil
	}

	if err := ctx.Svc.AdmissionService.CancelApplication(ctx.Session.Current.UserID); err != nil {
		return err
	}

	ctx.Session.Current = nil
	ctx.Println("\nYour application has been withdrawn. Goodbye!")
	return nil
}

// promptName loops until dst holds a valid name; returns false on cancel
func promptName(ctx *Context, prompt string, dst *string) bool {
	for {
		name := ctx.ReadLine(prompt)
		if ctx.Aborted(name) {
			return false
		}
		if err := validation.ValidateName(name); err != nil {
			ctx.Println(capitalize(err.Error()))
			continue
		}
		*dst = name
		return true
	}
}

// promptNewPassword reads and confirms a password, returning its hash;
// ok is false when the user cancels
func promptNewPassword(ctx *Context) (hash string, ok bool) {
	for {
		password := ctx.ReadLine("Enter a new password: ")
		if ctx.Aborted(password) {
			return "", false
		}
		if err := validation.ValidatePassword(password); err != nil {
			ctx.Println(capitalize(err.Error()))
			continue
		}
		if ctx.ReadLine("Confirm the new password: ") != password {
			ctx.Println("Passwords do not match, try again.")
			continue
		}
		h, err := auth.HashPassword(password)
		if err != nil {
			ctx.Println("Could not set that password, try another.")
			continue
		}
		return h, true
	}
}
