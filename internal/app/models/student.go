package models

import "time"

// Student represents an admitted, enrolled learner. A Student exists if
// and only if some Application reached admitted status and has not been
// cancelled since; ApplicationID is the back-reference that ties the two.
type Student struct {
	MatricNo         string    `json:"matric_no"`
	ApplicationID    string    `json:"application_id"`
	Email            string    `json:"email"`
	FirstName        string    `json:"first_name"`
	MiddleName       string    `json:"middle_name,omitempty"`
	LastName         string    `json:"last_name"`
	DateOfBirth      string    `json:"date_of_birth"`
	StateOfOrigin    string    `json:"state_of_origin"`
	StateOfResidence string    `json:"state_of_residence"`
	School           string    `json:"school"`
	Department       string    `json:"department"`
	CourseCode       string    `json:"course_code"`
	PasswordHash     string    `json:"password"`
	AdmissionDate    time.Time `json:"admission_date"`
	Level            int       `json:"level"`
	CGPA             float64   `json:"cgpa"`
	Suspended        bool      `json:"suspended"`
	SetupPending     bool      `json:"student_setup_pending"`
}

// FullName joins the student's names for display
func (s *Student) FullName() string {
	if s.MiddleName != "" {
		return s.FirstName + " " + s.MiddleName + " " + s.LastName
	}
	return s.FirstName + " " + s.LastName
}
