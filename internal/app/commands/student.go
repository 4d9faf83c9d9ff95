package commands

import (
	"strings"

	"github.com/campusgate/admissions/internal/app/models"
	"github.com/campusgate/admissions/internal/pkg/auth"
)

// studentCommands are available to enrolled students
func studentCommands() []*Command {
	return []*Command{
		{
			Name:  "view profile",
			Help:  "see your student record",
			Roles: []auth.Role{auth.RoleStudent},
			Run:   runViewProfile,
		},
		{
			Name:  "view courses",
			Help:  "see the courses for your current level",
			Roles: []auth.Role{auth.RoleStudent},
			Run:   runViewCourses,
		},
	}
}

func runViewProfile(ctx *Context) error {
	student, err := ctx.Svc.StudentService.Get(ctx.Session.Current.UserID)
	if err != nil {
		return err
	}

	ctx.Println("\nSTUDENT PROFILE")
	ctx.Printf("  Name:        %s\n", student.FullName())
	ctx.Printf("  Matric No:   %s\n", student.MatricNo)
	ctx.Printf("  School:      %s\n", strings.ToUpper(student.School))
	ctx.Printf("  Programme:   %s\n", titleCase(student.Department))
	ctx.Printf("  Level:       %d\n", student.Level)
	ctx.Printf("  CGPA:        %.2f\n", student.CGPA)
	if student.Suspended {
		ctx.Println("  Status:      SUSPENDED")
	} else {
		ctx.Println("  Status:      Active")
	}
	ctx.Println()

	return nil
}

func runViewCourses(ctx *Context) error {
	student, err := ctx.Svc.StudentService.Get(ctx.Session.Current.UserID)
	if err != nil {
		return err
	}

	listing, err := ctx.Svc.StudentService.Courses(student)
	if err != nil {
		ctx.Println("\nNo courses have been published for your programme yet.")
		return nil
	}

	ctx.Printf("\n%d LEVEL COURSES - %s\n", student.Level, titleCase(student.Department))
	labels := []struct {
		semester models.Semester
		heading  string
	}{
		{models.FirstSemester, "First Semester"},
		{models.SecondSemester, "Second Semester"},
	}
	for _, l := range labels {
		sem, ok := listing[l.semester]
		if !ok || len(sem.Courses) == 0 {
			continue
		}
		ctx.Printf("\n%s\n", l.heading)
		for _, c := range sem.Courses {
			ctx.Printf("  %-8s %-40s %d units\n", strings.ToUpper(c.Code), titleCase(c.Title), c.Unit)
		}
		ctx.Printf("  Total units: %d\n", sem.TotalUnits())
	}
	ctx.Println()

	return nil
}
