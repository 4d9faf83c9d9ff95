package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/campusgate/admissions/internal/app/models"
	"github.com/campusgate/admissions/internal/app/services"
	"github.com/campusgate/admissions/internal/pkg/apperrors"
	"github.com/campusgate/admissions/internal/pkg/auth"
	"github.com/campusgate/admissions/internal/pkg/bulkfile"
	"github.com/campusgate/admissions/internal/pkg/validation"
)

var adminOnly = []auth.Role{auth.RoleAdmin}

// adminCommands are available to logged-in administrators
func adminCommands() []*Command {
	return []*Command{
		{Name: "admit applicants", Help: "admit pending applications", Roles: adminOnly, Mutating: true, Run: runAdmit},
		{Name: "reject applicants", Help: "reject undecided applications", Roles: adminOnly, Mutating: true, Run: runReject},
		{Name: "view applications", Help: "list every application on record", Roles: adminOnly, Run: runViewApplications},
		{Name: "view students", Help: "list every enrolled student", Roles: adminOnly, Run: runViewStudents},
		{Name: "view admins", Help: "list portal administrators", Roles: adminOnly, Run: runViewAdmins},
		{Name: "add admin", Help: "register a new administrator (root only)", Roles: adminOnly, Mutating: true, Run: runAddAdmin},
		{Name: "add school", Help: "add a school to the catalog", Roles: adminOnly, Mutating: true, Run: runAddSchool},
		{Name: "remove school", Help: "remove a school and all its programmes", Roles: adminOnly, Mutating: true, Run: runRemoveSchool},
		{Name: "add department", Help: "add a programme under a school", Roles: adminOnly, Mutating: true, Run: runAddDepartment},
		{Name: "remove department", Help: "remove a programme from the catalog", Roles: adminOnly, Mutating: true, Run: runRemoveDepartment},
		{Name: "add course", Help: "add a course to a programme's level listing", Roles: adminOnly, Mutating: true, Run: runAddCourse},
		{Name: "expel student", Help: "permanently remove a student", Roles: adminOnly, Mutating: true, Run: runExpel},
		{Name: "suspend student", Help: "suspend a student", Roles: adminOnly, Mutating: true, Run: runSuspend},
		{Name: "unsuspend student", Help: "lift a student's suspension", Roles: adminOnly, Mutating: true, Run: runUnsuspend},
		{Name: "bulk expel", Help: "expel students listed in a txt or csv file", Roles: adminOnly, Mutating: true, Run: runBulkExpel},
		{Name: "bulk suspend", Help: "suspend students listed in a txt or csv file", Roles: adminOnly, Mutating: true, Run: runBulkSuspend},
		{Name: "bulk unsuspend", Help: "unsuspend students listed in a txt or csv file", Roles: adminOnly, Mutating: true, Run: runBulkUnsuspend},
		{Name: "view admin log", Help: "show every recorded admin action", Roles: adminOnly, Run: runViewAdminLog},
		{Name: "view my log", Help: "show your own recorded actions", Roles: adminOnly, Run: runViewMyLog},
		{Name: "view school stats", Help: "per-school application and student counts", Roles: adminOnly, Run: runSchoolStats},
	}
}

func runAdmit(ctx *Context) error {
	actor := ctx.Session.Current.UserID

	pending := ctx.Svc.ApplicationService.PendingIDs()
	if len(pending) == 0 {
		ctx.Println("\nThere are no pending applications!")
		return nil
	}
	ctx.Printf("\n%d pending application(s).\n", len(pending))

	mode, ok := decisionMode(ctx)
	if !ok {
		return nil
	}

	switch mode {
	case "single":
		id := strings.ToLower(ctx.ReadLine("Enter the application ID: "))
		if ctx.Aborted(id) {
			return nil
		}
		student, err := ctx.Svc.AdmissionService.AdmitOne(actor, id)
		switch {
		case err != nil:
			ctx.Printf("\n%s\n", capitalize(err.Error()))
		case student == nil:
			ctx.Println("\nThat application is not pending, nothing to do.")
		default:
			ctx.Printf("\nAdmitted %s as %s.\n", strings.ToUpper(id), student.MatricNo)
		}
	case "batch":
		ids := readIDList(ctx, "Enter application IDs (space separated): ")
		if ids == nil {
			return nil
		}
		printDecision(ctx, "admitted", ctx.Svc.AdmissionService.AdmitBatch(actor, ids))
	case "all":
		if !ctx.Confirm(fmt.Sprintf("Admit all %d pending applications?", len(pending))) {
			return nil
		}
		printDecision(ctx, "admitted", ctx.Svc.AdmissionService.AdmitAll(actor))
	}

	return nil
}

func runReject(ctx *Context) error {
	actor := ctx.Session.Current.UserID

	undecided := ctx.Svc.ApplicationService.UndecidedIDs()
	if len(undecided) == 0 {
		ctx.Println("\nThere are no applications left to reject!")
		return nil
	}
	ctx.Printf("\n%d undecided application(s).\n", len(undecided))

	mode, ok := decisionMode(ctx)
	if !ok {
		return nil
	}

	switch mode {
	case "single":
		id := strings.ToLower(ctx.ReadLine("Enter the application ID: "))
		if ctx.Aborted(id) {
			return nil
		}
		outcome, err := ctx.Svc.AdmissionService.RejectOne(actor, id)
		switch {
		case err != nil:
			ctx.Printf("\n%s\n", capitalize(err.Error()))
		case outcome == services.RejectAlreadyRejected:
			ctx.Println("\nThat application was already rejected.")
		default:
			ctx.Printf("\nRejected %s.\n", strings.ToUpper(id))
		}
	case "batch":
		ids := readIDList(ctx, "Enter application IDs (space separated): ")
		if ids == nil {
			return nil
		}
		printDecision(ctx, "rejected", ctx.Svc.AdmissionService.RejectBatch(actor, ids))
	case "all":
		if !ctx.Confirm(fmt.Sprintf("Reject all %d undecided applications?", len(undecided))) {
			return nil
		}
		printDecision(ctx, "rejected", ctx.Svc.AdmissionService.RejectAll(actor))
	}

	return nil
}

// decisionMode asks single | batch | all; ok is false on cancel
func decisionMode(ctx *Context) (string, bool) {
	for {
		mode := strings.ToLower(ctx.ReadLine("Decision mode [single | batch | all]: "))
		if ctx.Aborted(mode) {
			return "", false
		}
		if mode == "single" || mode == "batch" || mode == "all" {
			return mode, true
		}
		ctx.Println("Invalid mode, try again.")
	}
}

func readIDList(ctx *Context, prompt string) []string {
	raw := ctx.ReadLine(prompt)
	if ctx.Aborted(raw) {
		return nil
	}
	return strings.Fields(strings.ToLower(raw))
}

func printDecision(ctx *Context, verb string, decision services.BatchDecision) {
	ctx.Printf("\n%d application(s) %s.\n", decision.Applied, verb)
	for _, r := range decision.Results {
		if r.Applied {
			continue
		}
		if r.Err != nil {
			ctx.Printf("  %s: skipped (%s)\n", strings.ToUpper(r.ID), r.Err)
		} else {
			ctx.Printf("  %s: skipped, not pending\n", strings.ToUpper(r.ID))
		}
	}
}

func runViewApplications(ctx *Context) error {
	apps := ctx.Svc.ApplicationService.List()
	if len(apps) == 0 {
		ctx.Println("\nThere are no applications on record!")
		return nil
	}

	ctx.Printf("\n%-8s %-28s %-22s %6s  %s\n", "ID", "NAME", "COURSE", "SCORE", "STATUS")
	for _, a := range apps {
		ctx.Printf("%-8s %-28s %-22s %6d  %s\n",
			strings.ToUpper(a.ID), a.FullName(), titleCase(a.CourseOfChoice), a.JambScore, a.Status)
	}
	ctx.Println()

	return nil
}

func runViewStudents(ctx *Context) error {
	students := ctx.Svc.StudentService.List()
	if len(students) == 0 {
		ctx.Println("\nThere are no enrolled students!")
		return nil
	}

	ctx.Printf("\n%-16s %-28s %-22s %5s  %s\n", "MATRIC NO", "NAME", "PROGRAMME", "LEVEL", "STATUS")
	for _, s := range students {
		status := "Active"
		if s.Suspended {
			status = "SUSPENDED"
		}
		ctx.Printf("%-16s %-28s %-22s %5d  %s\n",
			s.MatricNo, s.FullName(), titleCase(s.Department), s.Level, status)
	}
	ctx.Println()

	return nil
}

func runViewAdmins(ctx *Context) error {
	admins := ctx.Svc.AuthService.Admins()

	ctx.Printf("\n%-16s %-28s %s\n", "USERNAME", "NAME", "EMAIL")
	for _, a := range admins {
		name := a.FirstName + " " + a.LastName
		ctx.Printf("%-16s %-28s %s\n", a.Username, name, a.Email)
	}
	ctx.Println()

	return nil
}

func runAddAdmin(ctx *Context) error {
	actor := ctx.Session.Current.UserID
	if actor != models.RootUsername {
		ctx.Println("\nOnly the root admin can register administrators!")
		return nil
	}

	var firstName, lastName string
	if !promptName(ctx, "Enter the admin's first name: ", &firstName) {
		return nil
	}
	if !promptName(ctx, "Enter the admin's last name: ", &lastName) {
		return nil
	}

	var email string
	for {
		email = strings.ToLower(ctx.ReadLine("Enter the admin's email address: "))
		if ctx.Aborted(email) {
			return nil
		}
		if validation.IsValidEmail(email) {
			break
		}
		ctx.Println("That does not look like an email address.")
	}

	var username string
	for {
		username = strings.ToLower(ctx.ReadLine("Choose a username: "))
		if ctx.Aborted(username) {
			return nil
		}
		if err := validation.ValidateUsername(username); err != nil {
			ctx.Println(capitalize(err.Error()))
			continue
		}
		break
	}

	var password string
	for {
		password = ctx.ReadLine("Choose a password: ")
		if ctx.Aborted(password) {
			return nil
		}
		if err := validation.ValidatePassword(password); err != nil {
			ctx.Println(capitalize(err.Error()))
			continue
		}
		break
	}

	admin, err := ctx.Svc.AuthService.RegisterAdmin(firstName, lastName, email, username, password)
	if err != nil {
		ctx.Printf("\n%s\n", capitalize(err.Error()))
		return nil
	}

	ctx.Svc.AuditService.Record(actor, "registered admin "+admin.Username)
	ctx.Printf("\nAdmin %s registered.\n", admin.Username)
	return nil
}

func runAddSchool(ctx *Context) error {
	name := strings.ToLower(ctx.ReadLine("\nEnter the school name: "))
	if ctx.Aborted(name) || name == "" {
		return nil
	}
	code := strings.ToLower(ctx.ReadLine("Enter the school code: "))
	if ctx.Aborted(code) || code == "" {
		return nil
	}

	if err := ctx.Svc.CatalogService.AddFaculty(name, code); err != nil {
		ctx.Printf("\n%s\n", capitalize(err.Error()))
		return nil
	}

	ctx.Svc.AuditService.Record(ctx.Session.Current.UserID, "added school "+code)
	ctx.Printf("\nSchool %s added.\n", strings.ToUpper(code))
	return nil
}

func runRemoveSchool(ctx *Context) error {
	code := strings.ToLower(ctx.ReadLine("\nEnter the school code: "))
	if ctx.Aborted(code) || code == "" {
		return nil
	}
	if !ctx.Confirm(fmt.Sprintf("Remove school %s?", strings.ToUpper(code))) {
		return nil
	}

	if err := ctx.Svc.CatalogService.RemoveFaculty(code); err != nil {
		ctx.Printf("\n%s\n", capitalize(err.Error()))
		return nil
	}

	ctx.Svc.AuditService.Record(ctx.Session.Current.UserID, "removed school "+code)
	ctx.Printf("\nSchool %s removed.\n", strings.ToUpper(code))
	return nil
}

func runAddDepartment(ctx *Context) error {
	school := strings.ToLower(ctx.ReadLine("\nEnter the school code: "))
	if ctx.Aborted(school) || school == "" {
		return nil
	}
	course := strings.ToLower(ctx.ReadLine("Enter the programme name: "))
	if ctx.Aborted(course) || course == "" {
		return nil
	}
	code := strings.ToLower(ctx.ReadLine("Enter the programme code (at least two letters): "))
	if ctx.Aborted(code) || code == "" {
		return nil
	}
	cutOff, ok := ctx.ReadInt("Enter the admission cut-off mark: ")
	if !ok {
		return nil
	}

	if err := ctx.Svc.CatalogService.AddDepartment(school, course, code, cutOff); err != nil {
		ctx.Printf("\n%s\n", capitalize(err.Error()))
		return nil
	}

	ctx.Svc.AuditService.Record(ctx.Session.Current.UserID, "added department "+code)
	ctx.Printf("\nProgramme %s added under %s.\n", strings.ToUpper(code), strings.ToUpper(school))
	return nil
}

func runRemoveDepartment(ctx *Context) error {
	code := strings.ToLower(ctx.ReadLine("\nEnter the programme code: "))
	if ctx.Aborted(code) || code == "" {
		return nil
	}
	if !ctx.Confirm(fmt.Sprintf("Remove programme %s?", strings.ToUpper(code))) {
		return nil
	}

	if err := ctx.Svc.CatalogService.RemoveDepartment(code); err != nil {
		ctx.Printf("\n%s\n", capitalize(err.Error()))
		return nil
	}

	ctx.Svc.AuditService.Record(ctx.Session.Current.UserID, "removed department "+code)
	ctx.Printf("\nProgramme %s removed.\n", strings.ToUpper(code))
	return nil
}

func runAddCourse(ctx *Context) error {
	school := strings.ToLower(ctx.ReadLine("\nEnter the school code: "))
	if ctx.Aborted(school) || school == "" {
		return nil
	}
	dept := strings.ToLower(ctx.ReadLine("Enter the programme code: "))
	if ctx.Aborted(dept) || dept == "" {
		return nil
	}

	level, ok := ctx.ReadInt("Enter the level (100-500): ")
	if !ok {
		return nil
	}

	var semester models.Semester
	for {
		s := strings.ToLower(ctx.ReadLine("Enter the semester [first | second]: "))
		if ctx.Aborted(s) {
			return nil
		}
		if s == "first" {
			semester = models.FirstSemester
			break
		}
		if s == "second" {
			semester = models.SecondSemester
			break
		}
		ctx.Println("Invalid semester, try again.")
	}

	code := strings.ToLower(ctx.ReadLine("Enter the course code: "))
	if ctx.Aborted(code) || code == "" {
		return nil
	}
	title := strings.ToLower(ctx.ReadLine("Enter the course title: "))
	if ctx.Aborted(title) || title == "" {
		return nil
	}
	unit, ok := ctx.ReadInt("Enter the course units: ")
	if !ok {
		return nil
	}

	course := models.Course{Code: code, Title: title, Unit: unit}
	if err := ctx.Svc.CatalogService.AddCourse(school, dept, level, semester, course); err != nil {
		ctx.Printf("\n%s\n", capitalize(err.Error()))
		return nil
	}

	ctx.Svc.AuditService.Record(ctx.Session.Current.UserID, "added course "+code)
	ctx.Printf("\nCourse %s added to %s %d level.\n", strings.ToUpper(code), strings.ToUpper(dept), level)
	return nil
}

func runExpel(ctx *Context) error {
	matric := strings.ToLower(ctx.ReadLine("\nEnter the student's matriculation number: "))
	if ctx.Aborted(matric) || matric == "" {
		return nil
	}
	if !ctx.Confirm(fmt.Sprintf("Permanently expel %s?", matric)) {
		return nil
	}

	if err := ctx.Svc.StudentService.Expel(matric); err != nil {
		ctx.Printf("\n%s\n", capitalize(err.Error()))
		return nil
	}

	ctx.Svc.AuditService.Record(ctx.Session.Current.UserID, "expelled student "+matric)
	ctx.Printf("\nStudent %s has been expelled.\n", matric)
	return nil
}

func runSuspend(ctx *Context) error {
	matric := strings.ToLower(ctx.ReadLine("\nEnter the student's matriculation number: "))
	if ctx.Aborted(matric) || matric == "" {
		return nil
	}

	err := ctx.Svc.StudentService.Suspend(matric)
	switch {
	case errors.Is(err, apperrors.ErrAlreadySuspended):
		ctx.Printf("\nStudent %s is already suspended.\n", matric)
	case err != nil:
		ctx.Printf("\n%s\n", capitalize(err.Error()))
	default:
		ctx.Svc.AuditService.Record(ctx.Session.Current.UserID, "suspended student "+matric)
		ctx.Printf("\nStudent %s has been suspended.\n", matric)
	}
	return nil
}

func runUnsuspend(ctx *Context) error {
	matric := strings.ToLower(ctx.ReadLine("\nEnter the student's matriculation number: "))
	if ctx.Aborted(matric) || matric == "" {
		return nil
	}

	err := ctx.Svc.StudentService.Unsuspend(matric)
	switch {
	case errors.Is(err, apperrors.ErrNotSuspended):
		ctx.Printf("\nStudent %s is not suspended.\n", matric)
	case err != nil:
		ctx.Printf("\n%s\n", capitalize(err.Error()))
	default:
		ctx.Svc.AuditService.Record(ctx.Session.Current.UserID, "unsuspended student "+matric)
		ctx.Printf("\nStudent %s is no longer suspended.\n", matric)
	}
	return nil
}

func runBulkExpel(ctx *Context) error {
	return runBulk(ctx, "expelled", ctx.Svc.StudentService.BulkExpel)
}

func runBulkSuspend(ctx *Context) error {
	return runBulk(ctx, "suspended", ctx.Svc.StudentService.BulkSuspend)
}

func runBulkUnsuspend(ctx *Context) error {
	return runBulk(ctx, "unsuspended", ctx.Svc.StudentService.BulkUnsuspend)
}

// runBulk reads matric numbers from a txt or csv file and applies op to
// every one, reporting the three outcome buckets
func runBulk(ctx *Context, verb string, op func([]string) services.BulkResult) error {
	path := ctx.ReadLine("\nEnter the path to the student list file: ")
	if ctx.Aborted(path) || path == "" {
		return nil
	}

	matrics, err := bulkfile.ExtractIdentifiers(path)
	if err != nil {
		ctx.Printf("\n%s\n", capitalize(err.Error()))
		return nil
	}
	if len(matrics) == 0 {
		ctx.Println("\nThe file contains no matriculation numbers!")
		return nil
	}

	result := op(matrics)

	actor := ctx.Session.Current.UserID
	for _, matric := range result.Applied {
		ctx.Svc.AuditService.Record(actor, verb+" student "+matric)
	}

	ctx.Printf("\n%d student(s) %s.\n", len(result.Applied), verb)
	if len(result.AlreadyInState) > 0 {
		ctx.Printf("Already %s: %s\n", verb, strings.Join(result.AlreadyInState, ", "))
	}
	if len(result.NotFound) > 0 {
		ctx.Printf("Not found: %s\n", strings.Join(result.NotFound, ", "))
	}
	return nil
}

func runViewAdminLog(ctx *Context) error {
	entries, err := ctx.Svc.AuditService.Entries()
	if err != nil {
		return err
	}
	printAuditEntries(ctx, entries)
	return nil
}

func runViewMyLog(ctx *Context) error {
	entries, err := ctx.Svc.AuditService.EntriesByActor(ctx.Session.Current.UserID)
	if err != nil {
		return err
	}
	printAuditEntries(ctx, entries)
	return nil
}

func printAuditEntries(ctx *Context, entries []services.AuditEntry) {
	if len(entries) == 0 {
		ctx.Println("\nNo admin actions on record!")
		return
	}

	ctx.Println()
	for _, e := range entries {
		ctx.Printf("%s  %-12s %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Actor, e.Action)
	}
	ctx.Println()
}

func runSchoolStats(ctx *Context) error {
	faculties := ctx.Svc.CatalogService.Faculties()
	if len(faculties) == 0 {
		ctx.Println("\nThere are no schools in the catalog!")
		return nil
	}

	apps := ctx.Svc.ApplicationService.List()
	students := ctx.Svc.StudentService.List()

	ctx.Printf("\n%-8s %10s %14s %10s\n", "SCHOOL", "PROGRAMMES", "APPLICATIONS", "STUDENTS")
	for _, f := range faculties {
		depts := len(ctx.Svc.CatalogService.Departments(f.Code))
		appCount := 0
		for _, a := range apps {
			if a.School == f.Code {
				appCount++
			}
		}
		studentCount := 0
		for _, s := range students {
			if s.School == f.Code {
				studentCount++
			}
		}
		ctx.Printf("%-8s %10d %14d %10d\n", strings.ToUpper(f.Code), depts, appCount, studentCount)
	}
	ctx.Println()

	return nil
}
