package services

import (
	"github.com/rs/zerolog"

	"github.com/campusgate/admissions/internal/app/repositories"
)

// Services holds all the service instances wired over one repository set
type Services struct {
	IdentityService    *IdentityService
	CatalogService     *CatalogService
	StudentService     *StudentService
	ApplicationService *ApplicationService
	AdmissionService   *AdmissionService
	AuthService        *AuthService
	AuditService       *AuditService
}

// NewServices initializes all services over the given repositories.
// auditLogPath is the JSON-lines file admin actions append to.
func NewServices(repos *repositories.Repositories, auditLogPath string, logger zerolog.Logger) *Services {
	identityService := NewIdentityService()
	auditService := NewAuditService(auditLogPath, logger.With().Str("component", "audit").Logger())
	catalogService := NewCatalogService(repos.CatalogRepository, logger.With().Str("component", "catalog").Logger())
	studentService := NewStudentService(repos.StudentRepository, catalogService,
		logger.With().Str("component", "students").Logger())
	applicationService := NewApplicationService(repos.ApplicationRepository, studentService,
		identityService, catalogService, logger.With().Str("component", "applications").Logger())
	admissionService := NewAdmissionService(applicationService, studentService,
		repos.ApplicationRepository, repos.StudentRepository, auditService,
		logger.With().Str("component", "admission").Logger())
	authService := NewAuthService(repos.ApplicationRepository, repos.StudentRepository,
		repos.AdminRepository, logger.With().Str("component", "auth").Logger())

	return &Services{
		IdentityService:    identityService,
		CatalogService:     catalogService,
		StudentService:     studentService,
		ApplicationService: applicationService,
		AdmissionService:   admissionService,
		AuthService:        authService,
		AuditService:       auditService,
	}
}
