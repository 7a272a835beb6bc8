package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
	"time"

	model "github.com/gokcika/project-scoring-system/models"
)

// minJustificationLength is the shortest accepted override justification and
// decision note.
const minJustificationLength = 10

// Recognized decision categories and the status each one lands the record in.
var decisionStatus = map[string]string{
	"Approve":                 StatusApproved,
	"Approve with Conditions": StatusApproved,
	"Request More Info":       StatusInfoRequested,
	"Reject":                  StatusRejected,
}

// OverrideSet carries the reviewer's per-criterion replacements. A nil field
// keeps the original score; there is no numeric sentinel, so an override of
// 1.0 is a legitimate low score.
type OverrideSet struct {
	Regulatory   *float64 `json:"regulatory"`
	Reputational *float64 `json:"reputational"`
	Strategic    *float64 `json:"strategic"`
	Operational  *float64 `json:"operational"`
	Resource     *float64 `json:"resource"`
	Data         *float64 `json:"data"`
	Stakeholder  *float64 `json:"stakeholder"`
}

// SaveOverrides reconciles reviewer overrides with the stored scores. Any
// override that differs from its original demands a justification; on
// success the overrides, final score, priority, reviewer identity and the
// advance to Under Review persist as a single update. Reapplying the same
// set yields the same final score.
func (s *ProjectService) SaveOverrides(id uint, overrides OverrideSet, justification, reviewer string) (*model.Project, error) {
	project, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}

	if project.Deleted {
		return nil, newValidationError(CodeRecordDeleted, "project %d is deleted", id)
	}
	if !isReviewable(project.Status) {
		return nil, newValidationError(CodeIllegalTransition,
			"overrides cannot be saved once the project is %s", project.Status)
	}

	entries := []struct {
		name     string
		override *float64
		original float64
	}{
		{"regulatory", overrides.Regulatory, project.RegScore},
		{"reputational", overrides.Reputational, project.RepScore},
		{"strategic", overrides.Strategic, project.StratScore},
		{"operational", overrides.Operational, project.OpScore},
		{"resource", overrides.Resource, project.ResScore},
		{"data", overrides.Data, project.DataScore},
		{"stakeholder", overrides.Stakeholder, project.StakeScore},
	}

	changed := false
	for _, entry := range entries {
		if entry.override == nil {
			continue
		}
		if *entry.override < 1.0 || *entry.override > 5.0 {
			return nil, newValidationError(CodeInvalidOverride,
				"%s override %.1f is outside the 1-5 range", entry.name, *entry.override)
		}
		if *entry.override != entry.original {
			changed = true
		}
	}

	if changed && len(strings.TrimSpace(justification)) < minJustificationLength {
		return nil, newValidationError(CodeJustificationRequired,
			"justification of at least %d characters is required when any score changes", minJustificationLength)
	}

	active := CriterionScores{
		Regulatory:   pickScore(overrides.Regulatory, project.RegScore),
		Reputational: pickScore(overrides.Reputational, project.RepScore),
		Strategic:    pickScore(overrides.Strategic, project.StratScore),
		Operational:  pickScore(overrides.Operational, project.OpScore),
		Resource:     pickScore(overrides.Resource, project.ResScore),
		Data:         pickScore(overrides.Data, project.DataScore),
		Stakeholder:  pickScore(overrides.Stakeholder, project.StakeScore),
	}
	finalScore := AggregateScores(active)
	now := time.Now()

	// The whole override set replaces the previous one, nils included, so a
	// cleared override reverts its criterion to the original score.
	updates := map[string]interface{}{
		"override_reg":           overrides.Regulatory,
		"override_rep":           overrides.Reputational,
		"override_strat":         overrides.Strategic,
		"override_op":            overrides.Operational,
		"override_res":           overrides.Resource,
		"override_data":          overrides.Data,
		"override_stake":         overrides.Stakeholder,
		"override_justification": justification,
		"final_score":            finalScore,
		"priority":               ClassifyPriority(finalScore),
		"reviewed_by":            reviewer,
		"reviewed_at":            now,
		"status":                 StatusUnderReview,
	}
	if err := s.db.Model(project).Updates(updates).Error; err != nil {
		log.Printf("[SaveOverrides] Error updating project %d: %v", id, err)
		return nil, err
	}

	log.Printf("[SaveOverrides] Project %d reviewed by %s: final=%.2f priority=%s",
		id, reviewer, finalScore, ClassifyPriority(finalScore))
	return s.GetProject(id)
}

// SubmitDecision records the reviewer's disposition and moves the record to
// its terminal status. Notes below the minimum length are rejected, as is any
// decision outside the four recognized categories.
func (s *ProjectService) SubmitDecision(id uint, decision, notes, reviewer string) (*model.Project, error) {
	project, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}

	if project.Deleted {
		return nil, newValidationError(CodeRecordDeleted, "project %d is deleted", id)
	}

	nextStatus, ok := decisionStatus[decision]
	if !ok {
		return nil, newValidationError(CodeInvalidDecision, "unrecognized decision %q", decision)
	}
	if len(strings.TrimSpace(notes)) < minJustificationLength {
		return nil, newValidationError(CodeNotesRequired,
			"decision notes of at least %d characters are required", minJustificationLength)
	}
	if !canTransition(project.Status, nextStatus) {
		return nil, newValidationError(CodeIllegalTransition,
			"cannot move project %d from %s to %s", id, project.Status, nextStatus)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":         nextStatus,
		"decision":       decision,
		"decision_notes": notes,
		"reviewed_by":    reviewer,
		"reviewed_at":    now,
	}
	if err := s.db.Model(project).Updates(updates).Error; err != nil {
		log.Printf("[SubmitDecision] Error updating project %d: %v", id, err)
		return nil, err
	}

	log.Printf("[SubmitDecision] Project %d decided by %s: %s -> %s", id, reviewer, decision, nextStatus)

	// Notification is best effort: a mail failure never unwinds the decision.
	if err := s.notifyDecision(project, decision, notes); err != nil {
		log.Printf("[SubmitDecision] Error notifying requestor for project %d: %v", id, err)
	}

	return s.GetProject(id)
}

// notifyDecision emails the requestor the disposition over SMTP. Skipped
// silently when no SMTP host is configured.
func (s *ProjectService) notifyDecision(project *model.Project, decision, notes string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	if smtpHost == "" {
		return nil
	}
	smtpPort := os.Getenv("SMTP_PORT")
	if smtpPort == "" {
		smtpPort = "587"
	}
	from := os.Getenv("SMTP_FROM")
	password := os.Getenv("SMTP_PASSWORD")

	subject := fmt.Sprintf("Decision on your request: %s", project.Title)
	body := fmt.Sprintf(`
	<html>
	<body>
		<h2>Project Decision</h2>
		<p>Dear %s,</p>
		<p>Your digitalization request <strong>%s</strong> has been reviewed.</p>
		<ul>
			<li><strong>Decision:</strong> %s</li>
			<li><strong>Notes:</strong> %s</li>
		</ul>
		<p>Best regards,<br>Compliance Team</p>
	</body>
	</html>
`, project.RequestorName, project.Title, decision, notes)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"To: " + project.RequestorEmail + "\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
		body)

	auth := smtp.PlainAuth("", from, password, smtpHost)
	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{project.RequestorEmail}, message)
}

func pickScore(override *float64, original float64) float64 {
	if override != nil {
		return *override
	}
	return original
}
