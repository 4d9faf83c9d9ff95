package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Identity errors
var (
	ErrIDSpaceExhausted = errors.New("identifier space exhausted")
	ErrShortCourseCode  = errors.New("course code shorter than matric prefix")
)

const (
	applicationIDPrefix = "uid"
	applicationIDSpace  = 10000  // 4 zero-padded digits
	matricSerialSpace   = 100000 // 5 zero-padded digits
	matricPrefixLen     = 2
)

// IdentityService mints application IDs and matriculation numbers that
// are unique against a caller-supplied existing-key set. Identifiers are
// drawn randomly and redrawn on collision; there is no persistent
// counter. The caller must insert a returned key before asking for the
// next one, or two calls can return the same identifier.
type IdentityService struct {
	rng *rand.Rand
}

// NewIdentityService creates an identity service with a time-seeded source
func NewIdentityService() *IdentityService {
	return &IdentityService{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewIdentityServiceWithSource creates an identity service with a fixed
// source, for deterministic tests
func NewIdentityServiceWithSource(src rand.Source) *IdentityService {
	return &IdentityService{rng: rand.New(src)}
}

// GenerateApplicationID returns a fresh "uid####" identifier that does
// not collide with any key in existing.
func (s *IdentityService) GenerateApplicationID(existing map[string]struct{}) (string, error) {
	if len(existing) >= applicationIDSpace {
		return "", fmt.Errorf("%w: all %d application IDs issued", ErrIDSpaceExhausted, applicationIDSpace)
	}

	for {
		id := fmt.Sprintf("%s%04d", applicationIDPrefix, s.rng.Intn(applicationIDSpace))
		if _, taken := existing[id]; !taken {
			return id, nil
		}
	}
}

// GenerateMatricNo returns a fresh matric number of the form
// {year}/1/{5 digits}{2-letter course prefix}. The prefix is the first
// two characters of the course code verbatim; catalog validation
// guarantees codes are long enough, but the contract is still checked.
func (s *IdentityService) GenerateMatricNo(year int, courseCode string, existing map[string]struct{}) (string, error) {
	courseCode = strings.ToLower(strings.TrimSpace(courseCode))
	if len(courseCode) < matricPrefixLen {
		return "", fmt.Errorf("%w: %q", ErrShortCourseCode, courseCode)
	}
	tail := courseCode[:matricPrefixLen]

	// only matrics sharing this year and prefix contend for the serial space
	prefix := fmt.Sprintf("%d/1/", year)
	contended := 0
	for m := range existing {
		if strings.HasPrefix(m, prefix) && strings.HasSuffix(m, tail) {
			contended++
		}
	}
	if contended >= matricSerialSpace {
		return "", fmt.Errorf("%w: all %d matric serials issued for %s%s", ErrIDSpaceExhausted, matricSerialSpace, prefix, tail)
	}

	for {
		matric := fmt.Sprintf("%d/1/%05d%s", year, s.rng.Intn(matricSerialSpace), tail)
		if _, taken := existing[matric]; !taken {
			return matric, nil
		}
	}
}
