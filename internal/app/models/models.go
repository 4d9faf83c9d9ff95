package models

// ApplicationStatus is the admission decision state of an application
type ApplicationStatus string

const (
	// StatusPending means no decision has been taken yet
	StatusPending ApplicationStatus = "pending"
	// StatusAdmitted means the applicant has been offered admission
	StatusAdmitted ApplicationStatus = "admitted"
	// StatusRejected means the application was denied
	StatusRejected ApplicationStatus = "rejected"
)

// Valid reports whether s is one of the three known statuses
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAdmitted, StatusRejected:
		return true
	}
	return false
}

// Semester identifies one half of an academic session
type Semester string

const (
	FirstSemester  Semester = "first_semester"
	SecondSemester Semester = "second_semester"
)

// Levels lists the academic year markers the portal recognizes
var Levels = []int{100, 200, 300, 400, 500}

// EntryLevel is the level assigned to every freshly admitted student
const EntryLevel = 100
