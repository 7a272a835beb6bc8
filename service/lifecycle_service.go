package services

import (
	"log"
	"strings"
	"time"

	model "github.com/gokcika/project-scoring-system/models"
)

// Lifecycle states. Approved, Rejected and Info Requested are terminal on the
// main path; soft delete/restore runs orthogonally to all of them.
const (
	StatusSubmitted     = "Submitted"
	StatusUnderReview   = "Under Review"
	StatusApproved      = "Approved"
	StatusRejected      = "Rejected"
	StatusInfoRequested = "Info Requested"
)

// canTransition is the main-path transition table. Both review states accept
// a decision because the reviewer may decide straight off the queue without a
// prior override save.
func canTransition(from, to string) bool {
	switch from {
	case StatusSubmitted:
		return to == StatusUnderReview || to == StatusApproved ||
			to == StatusRejected || to == StatusInfoRequested
	case StatusUnderReview:
		return to == StatusApproved || to == StatusRejected || to == StatusInfoRequested
	default:
		return false
	}
}

// isReviewable reports whether a record can still accept overrides, resource
// plan edits or a decision.
func isReviewable(status string) bool {
	return status == StatusSubmitted || status == StatusUnderReview
}

// SoftDeleteProject marks a record deleted without removing it. The caller
// must confirm and supply a non-empty reason; the record keeps full history
// and disappears from active-queue views only.
func (s *ProjectService) SoftDeleteProject(id uint, deletedBy, reason string, confirmed bool) (*model.Project, error) {
	project, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}

	if project.Deleted {
		return nil, newValidationError(CodeRecordDeleted, "project %d is already deleted", id)
	}
	if !confirmed {
		return nil, newValidationError(CodeConfirmationRequired, "deletion must be explicitly confirmed")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, newValidationError(CodeReasonRequired, "a deletion reason is required")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"deleted":       true,
		"deleted_by":    deletedBy,
		"deleted_at":    now,
		"delete_reason": reason,
	}
	if err := s.db.Model(project).Updates(updates).Error; err != nil {
		log.Printf("[SoftDeleteProject] Error deleting project %d: %v", id, err)
		return nil, err
	}

	log.Printf("[SoftDeleteProject] Project %d soft-deleted by %s", id, deletedBy)
	return s.GetProject(id)
}

// RestoreProject reactivates a soft-deleted record. Restoration always resets
// the status to Submitted regardless of what it was before deletion, forcing
// the record back through triage, and clears the deletion metadata.
func (s *ProjectService) RestoreProject(id uint) (*model.Project, error) {
	project, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}

	if !project.Deleted {
		return nil, newValidationError(CodeNotDeleted, "project %d is not deleted", id)
	}

	updates := map[string]interface{}{
		"deleted":       false,
		"deleted_by":    "",
		"deleted_at":    nil,
		"delete_reason": "",
		"status":        StatusSubmitted,
	}
	if err := s.db.Model(project).Updates(updates).Error; err != nil {
		log.Printf("[RestoreProject] Error restoring project %d: %v", id, err)
		return nil, err
	}

	log.Printf("[RestoreProject] Project %d restored to %s", id, StatusSubmitted)
	return s.GetProject(id)
}
