package services

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campusgate/admissions/internal/app/models"
	"github.com/campusgate/admissions/internal/app/repositories"
	"github.com/campusgate/admissions/internal/pkg/apperrors"
)

// DecisionResult reports one admit or reject attempt inside a batch
type DecisionResult struct {
	ID      string
	Applied bool
	Err     error // nil when Applied, or when skipped as a silent no-op
}

// BatchDecision aggregates a batch of admission decisions
type BatchDecision struct {
	Applied int
	Results []DecisionResult
}

// AdmissionService orchestrates the operations that must stay
// consistent across the application and student stores. It is the only
// component allowed to delete from both, and it records every state
// transition in the admin audit log.
type AdmissionService struct {
	applicationService *ApplicationService
	studentService     *StudentService
	applicationRepo    *repositories.ApplicationRepository
	studentRepo        *repositories.StudentRepository
	auditService       *AuditService
	logger             zerolog.Logger
}

// NewAdmissionService creates a new admission workflow instance
func NewAdmissionService(
	applicationService *ApplicationService,
	studentService *StudentService,
	applicationRepo *repositories.ApplicationRepository,
	studentRepo *repositories.StudentRepository,
	auditService *AuditService,
	logger zerolog.Logger,
) *AdmissionService {
	return &AdmissionService{
		applicationService: applicationService,
		studentService:     studentService,
		applicationRepo:    applicationRepo,
		studentRepo:        studentRepo,
		auditService:       auditService,
		logger:             logger,
	}
}

// AdmitOne admits a single pending application. A non-pending
// application is a silent no-op per the batch contract; an unknown ID is
// an error.
func (s *AdmissionService) AdmitOne(actor, id string) (*models.Student, error) {
	student, err := s.applicationService.Admit(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrApplicationNotPending) {
			return nil, nil
		}
		return nil, err
	}

	s.auditService.Record(actor, fmt.Sprintf("admitted %s with matric no: %s", id, student.MatricNo))
	return student, nil
}

// AdmitBatch admits each listed application independently; one bad ID
// never aborts the rest
func (s *AdmissionService) AdmitBatch(actor string, ids []string) BatchDecision {
	var batch BatchDecision

	for _, id := range ids {
		student, err := s.applicationService.Admit(id)
		switch {
		case err == nil:
			s.auditService.Record(actor, fmt.Sprintf("admitted %s with matric no: %s", id, student.MatricNo))
			batch.Applied++
			batch.Results = append(batch.Results, DecisionResult{ID: id, Applied: true})
		case errors.Is(err, apperrors.ErrApplicationNotPending):
			batch.Results = append(batch.Results, DecisionResult{ID: id})
		default:
			batch.Results = append(batch.Results, DecisionResult{ID: id, Err: err})
		}
	}

	return batch
}

// AdmitAll admits every currently pending application
func (s *AdmissionService) AdmitAll(actor string) BatchDecision {
	return s.AdmitBatch(actor, s.applicationService.PendingIDs())
}

// RejectOne rejects a single application. Already-rejected is an
// idempotent no-op reported as applied=false with no error.
func (s *AdmissionService) RejectOne(actor, id string) (RejectOutcome, error) {
	outcome, err := s.applicationService.Reject(id)
	if err != nil {
		return 0, err
	}

	if outcome == RejectApplied {
		s.auditService.Record(actor, fmt.Sprintf("rejected %s", id))
	}
	return outcome, nil
}

// RejectBatch rejects each listed application independently
func (s *AdmissionService) RejectBatch(actor string, ids []string) BatchDecision {
	var batch BatchDecision

	for _, id := range ids {
		outcome, err := s.applicationService.Reject(id)
		switch {
		case err == nil && outcome == RejectApplied:
			s.auditService.Record(actor, fmt.Sprintf("rejected %s", id))
			batch.Applied++
			batch.Results = append(batch.Results, DecisionResult{ID: id, Applied: true})
		case err == nil:
			// already rejected
			batch.Results = append(batch.Results, DecisionResult{ID: id})
		case errors.Is(err, apperrors.ErrApplicationNotPending):
			batch.Results = append(batch.Results, DecisionResult{ID: id})
		default:
			batch.Results = append(batch.Results, DecisionResult{ID: id, Err: err})
		}
	}

	return batch
}

// RejectAll rejects every application that is not already rejected;
// admitted applications are skipped per item
func (s *AdmissionService) RejectAll(actor string) BatchDecision {
	return s.RejectBatch(actor, s.applicationService.UndecidedIDs())
}

// CancelApplication deletes an application regardless of status. If the
// application was admitted, the derived student record goes with it: the
// two deletions are one logical transaction, and a half-state is a fatal
// consistency error.
func (s *AdmissionService) CancelApplication(id string) error {
	app, err := s.applicationRepo.GetByID(id)
	if err != nil {
		return err
	}

	if app.Status == models.StatusAdmitted {
		student, ok := s.studentRepo.FindByApplicationID(app.ID)
		if !ok {
			// admitted application with no student: the existence
			// invariant is already broken, refuse to make it worse
			return apperrors.NewConsistencyError(
				fmt.Sprintf("application %s is admitted but no student references it", app.ID))
		}
		if err := s.studentRepo.Delete(student.MatricNo); err != nil {
			return apperrors.NewConsistencyError(
				fmt.Sprintf("cancelling %s: could not delete student %s: %v", app.ID, student.MatricNo, err))
		}
	}

	if err := s.applicationRepo.Delete(app.ID); err != nil {
		return apperrors.NewConsistencyError(
			fmt.Sprintf("cancelling %s: student deleted but application removal failed: %v", app.ID, err))
	}

	s.logger.Info().Str("id", app.ID).Str("status", string(app.Status)).Msg("application cancelled")
	return nil
}

// DeleteRejected removes a rejected application once the applicant has
// seen the decision; the guest status-check flow calls this
func (s *AdmissionService) DeleteRejected(id string) error {
	app, err := s.applicationRepo.GetByID(id)
	if err != nil {
		return err
	}
	if app.Status != models.StatusRejected {
		return fmt.Errorf("%w: %s is %s, not rejected", apperrors.ErrInvalidState, app.ID, app.Status)
	}

	return s.applicationRepo.Delete(app.ID)
}

// CompleteEnrollment finishes the account-setup flow of a newly admitted
// applicant: marks the student set up, optionally replaces the
// credential, and deletes the now-redundant application.
func (s *AdmissionService) CompleteEnrollment(id string, newPasswordHash string) error {
	app, err := s.applicationRepo.GetByID(id)
	if err != nil {
		return err
	}
	if app.Status != models.StatusAdmitted {
		return fmt.Errorf("%w: %s is %s, not admitted", apperrors.ErrInvalidState, app.ID, app.Status)
	}

	if err := s.studentService.CompleteSetup(app.MatricNo, newPasswordHash); err != nil {
		return apperrors.NewConsistencyError(
			fmt.Sprintf("application %s is admitted but student %s is missing: %v", app.ID, app.MatricNo, err))
	}

	return s.applicationRepo.Delete(app.ID)
}
