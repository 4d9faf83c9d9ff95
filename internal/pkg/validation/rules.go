package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]{3,}@[a-z0-9.\-]+\.[a-z]{2,}$`

	// Application ID pattern - "uid" followed by 4 digits
	ApplicationIDPattern = `^uid\d{4}$`

	// Matric number pattern - year/1/5 digits + 2-letter course prefix
	MatricPattern = `^\d{4}/1/\d{5}[a-z]{2}$`

	// Password min length
	PasswordMinLength = 6

	// Name validation min/max length
	NameMinLength = 3
	NameMaxLength = 30
)

// Applicant age window in whole years at application time
const (
	MinApplicantAge = 16
	MaxApplicantAge = 30
)

// UTME score bounds
const (
	MinScore = 0
	MaxScore = 400
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email         *regexp.Regexp
	ApplicationID *regexp.Regexp
	Matric        *regexp.Regexp
	NameChars     *regexp.Regexp
}{
	Email:         regexp.MustCompile(EmailPattern),
	ApplicationID: regexp.MustCompile(ApplicationIDPattern),
	Matric:        regexp.MustCompile(MatricPattern),
	NameChars:     regexp.MustCompile(`^[A-Za-z'\-]+$`),
}

// validate is the shared validator instance for tagged structs
var validate = validator.New()

// Struct validates a struct through its `validate` tags
func Struct(s interface{}) error {
	return validate.Struct(s)
}

// CleanString collapses runs of whitespace into single spaces and trims
func CleanString(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// IsValidEmail reports whether email has an acceptable shape
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// ValidateName checks a personal name: length bounds, no whitespace,
// letters with hyphen/apostrophe only. Returns nil when the name is fine.
func ValidateName(name string) error {
	name = CleanString(name)

	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.Contains(name, " ") {
		return fmt.Errorf("name cannot contain whitespace")
	}
	if len(name) < NameMinLength {
		return fmt.Errorf("minimum name length is %d", NameMinLength)
	}
	if len(name) > NameMaxLength {
		return fmt.Errorf("maximum name length is %d", NameMaxLength)
	}
	if !CompiledPatterns.NameChars.MatchString(name) {
		return fmt.Errorf("invalid character in name")
	}

	return nil
}

// ValidateUsername checks an admin username: letters plus "-_.", no spaces
func ValidateUsername(username string) error {
	username = CleanString(username)

	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if strings.Contains(username, " ") {
		return fmt.Errorf("username cannot contain whitespace")
	}
	for _, r := range username {
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			r == '-' || r == '_' || r == '.'
		if !ok {
			return fmt.Errorf("invalid character %q in username", r)
		}
	}

	return nil
}

// ValidatePassword checks a user-chosen password
func ValidatePassword(password string) error {
	if len(strings.TrimSpace(password)) < PasswordMinLength {
		return fmt.Errorf("password must be at least %d characters long", PasswordMinLength)
	}
	return nil
}

// ValidateScore checks a UTME score against the global bounds
func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return fmt.Errorf("score must be between %d and %d", MinScore, MaxScore)
	}
	return nil
}

// ParseDateOfBirth parses DD-MM-YYYY (dashes optional) and enforces the
// applicant age window against now.
func ParseDateOfBirth(raw string, now time.Time) (time.Time, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), "-", "")
	if len(raw) != 8 {
		return time.Time{}, fmt.Errorf("date of birth must be DD-MM-YYYY")
	}

	dob, err := time.Parse("02012006", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date of birth: %w", err)
	}

	age := now.Year() - dob.Year()
	if age < MinApplicantAge || age > MaxApplicantAge {
		return time.Time{}, fmt.Errorf("applicants must be between %d and %d years old", MinApplicantAge, MaxApplicantAge)
	}

	return dob, nil
}
