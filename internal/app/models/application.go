package models

import "time"

// Application represents one pending or decided admission request.
// Programme fields are frozen copies taken from the catalog at submission
// time; later catalog edits do not touch existing applications.
type Application struct {
	ID               string            `json:"id"`
	Email            string            `json:"email"`
	FirstName        string            `json:"first_name"`
	MiddleName       string            `json:"middle_name,omitempty"`
	LastName         string            `json:"last_name"`
	DateOfBirth      string            `json:"date_of_birth"`
	StateOfOrigin    string            `json:"state_of_origin"`
	StateOfResidence string            `json:"state_of_residence"`
	JambScore        int               `json:"jamb_score"`
	School           string            `json:"school"`
	CourseOfChoice   string            `json:"course_of_choice"`
	CourseCode       string            `json:"course_code"`
	ApplicationDate  time.Time         `json:"application_date"`
	PasswordHash     string            `json:"password"`
	Status           ApplicationStatus `json:"application_status"`
	MatricNo         string            `json:"matric_no,omitempty"` // set on admission only
}

// ApplicationDraft is the validated input collected from an applicant
// before an Application record exists.
type ApplicationDraft struct {
	Email            string `validate:"required,email"`
	FirstName        string `validate:"required,min=3,max=30"`
	MiddleName       string `validate:"omitempty,min=3,max=30"`
	LastName         string `validate:"required,min=3,max=30"`
	DateOfBirth      string `validate:"required"`
	StateOfOrigin    string `validate:"required"`
	StateOfResidence string `validate:"required"`
	JambScore        int    `validate:"gte=0,lte=400"`
	School           string `validate:"required"`
	Course           string `validate:"required"` // course name or course code
}

// FullName joins the applicant's names for display
func (a *Application) FullName() string {
	if a.MiddleName != "" {
		return a.FirstName + " " + a.MiddleName + " " + a.LastName
	}
	return a.FirstName + " " + a.LastName
}
