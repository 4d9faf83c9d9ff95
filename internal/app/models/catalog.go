package models

// Faculty represents a school within the university
type Faculty struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Department represents a programme offered under a faculty. CourseCode
// doubles as the department key and the matric-number prefix source, so
// it is validated to be at least two letters long.
type Department struct {
	School     string `json:"school"`
	Course     string `json:"course"`
	CourseCode string `json:"course_code"`
	CutOff     int    `json:"cut_off"`
}

// Course is a single taught course inside a department's level listing
type Course struct {
	Code  string `json:"code"`
	Title string `json:"title"`
	Unit  int    `json:"unit"`
}

// SemesterListing is the course load for one semester of a level
type SemesterListing struct {
	Courses []Course `json:"courses"`
}

// TotalUnits sums the units across the semester's courses
func (l SemesterListing) TotalUnits() int {
	total := 0
	for _, c := range l.Courses {
		total += c.Unit
	}
	return total
}

// LevelListing is the course load for one academic level of a department,
// keyed by semester. 400 level has a first semester only (industrial
// attachment fills the second).
type LevelListing map[Semester]SemesterListing

// ResolvedCourse is the frozen programme snapshot taken at submission
// time: the cut-off and naming an application was judged against.
type ResolvedCourse struct {
	School     string
	Course     string
	CourseCode string
	CutOff     int
}
