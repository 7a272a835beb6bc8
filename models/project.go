package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Project represents a submitted digitalization request moving through triage.
// Intake answers are grouped by criterion; one raw score per criterion is
// computed at submission and never entered by the requestor.
type Project struct {
	// ID is assigned by the database at creation and never changes.
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Intake identity fields, immutable after creation.
	Title          string    `gorm:"not null" json:"title"`
	RequestorName  string    `gorm:"not null" json:"requestor_name"`
	RequestorEmail string    `gorm:"not null" json:"requestor_email"`
	Department     string    `gorm:"not null" json:"department"`
	SubmittedAt    time.Time `json:"submitted_at"`

	// Status is one of the lifecycle states (Submitted, Under Review,
	// Approved, Rejected, Info Requested).
	Status string `gorm:"default:'Submitted'" json:"status"`

	// Section 1: Regulatory.
	RegRequired    string  `json:"reg_required"`
	RegCitation    string  `json:"reg_citation"`
	RegDeadline    string  `json:"reg_deadline"`
	RegEnforcement string  `json:"reg_enforcement"`
	RegScore       float64 `json:"reg_score"`

	// Section 2: Reputational.
	RepHeadline       string  `json:"rep_headline"`
	RepRiskLevel      string  `json:"rep_risk_level"`
	RepHarmCategories string  `json:"rep_harm_categories"`
	RepLiability      string  `json:"rep_liability"`
	RepScore          float64 `json:"rep_score"`

	// Section 3: Strategic.
	StratDocument string  `json:"strat_document"`
	StratSponsor  string  `json:"strat_sponsor"`
	StratBudget   string  `json:"strat_budget"`
	StratScore    float64 `json:"strat_score"`

	// Section 4: Operational. EfficiencyGain is derived from the current and
	// projected time-on-task answers at submission.
	OpProcessName    string  `json:"op_process_name"`
	OpCurrentTime    float64 `json:"op_current_time"`
	OpProjectedTime  float64 `json:"op_projected_time"`
	OpEfficiencyGain float64 `json:"op_efficiency_gain"`
	OpScope          string  `json:"op_scope"`
	OpBlocker        string  `json:"op_blocker"`
	OpScore          float64 `json:"op_score"`

	// Section 5: Resources. The intake flow withholds these two answers; a
	// reviewer fills them in post-submission, which re-scores the criterion.
	ResApproach     string  `json:"res_approach"`
	ResExternalDeps string  `json:"res_external_deps"`
	ResScore        float64 `json:"res_score"`

	// Section 6: Data sensitivity.
	DataTypes      string  `json:"data_types"`
	DataThirdParty string  `json:"data_third_party"`
	DataScore      float64 `json:"data_score"`

	// Section 7: Stakeholder.
	StakeRequestorLevel string  `json:"stake_requestor_level"`
	StakeUrgency        string  `json:"stake_urgency"`
	StakeScore          float64 `json:"stake_score"`

	// Weighted aggregate of the raw scores on a 0-100 scale, and the priority
	// band derived from the active score.
	TotalScore float64 `json:"total_score"`
	Priority   string  `json:"priority"`

	// Reviewer overrides. A nil pointer means "no override"; zero is never
	// used as a sentinel. FinalScore is the aggregate over active scores and
	// is nil until a reviewer has saved overrides.
	OverrideReg   *float64 `json:"override_reg"`
	OverrideRep   *float64 `json:"override_rep"`
	OverrideStrat *float64 `json:"override_strat"`
	OverrideOp    *float64 `json:"override_op"`
	OverrideRes   *float64 `json:"override_res"`
	OverrideData  *float64 `json:"override_data"`
	OverrideStake *float64 `json:"override_stake"`

	OverrideJustification string     `json:"override_justification"`
	FinalScore            *float64   `json:"final_score"`
	ReviewedBy            *string    `json:"reviewed_by"`
	ReviewedAt            *time.Time `json:"reviewed_at"`

	// Reviewer disposition.
	Decision      string `json:"decision"`
	DecisionNotes string `json:"decision_notes"`

	// Red flags raised at submission, stored as a JSON array of labels.
	// AutoReject is advisory: it marks the record for mandatory reviewer
	// attention but does not block any transition.
	RedFlags   datatypes.JSON `json:"red_flags"`
	AutoReject bool           `gorm:"default:false" json:"auto_reject"`

	// Soft-delete metadata. Deleted records are excluded from active views
	// but never removed; restore clears these fields.
	Deleted      bool       `gorm:"default:false" json:"deleted"`
	DeletedBy    string     `json:"deleted_by"`
	DeletedAt    *time.Time `json:"deleted_at"`
	DeleteReason string     `json:"delete_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

// ActiveScore returns the score driving priority: the post-override final
// score when a review has produced one, else the original total.
func (p *Project) ActiveScore() float64 {
	if p.FinalScore != nil {
		return *p.FinalScore
	}
	return p.TotalScore
}

// HasOverrides reports whether any criterion carries a reviewer override.
func (p *Project) HasOverrides() bool {
	for _, o := range []*float64{
		p.OverrideReg, p.OverrideRep, p.OverrideStrat, p.OverrideOp,
		p.OverrideRes, p.OverrideData, p.OverrideStake,
	} {
		if o != nil {
			return true
		}
	}
	return false
}

// HarmCategoryList splits the stored comma-separated harm categories.
func (p *Project) HarmCategoryList() []string {
	return splitAnswerList(p.RepHarmCategories)
}

// ExternalDepList splits the stored comma-separated external dependencies.
func (p *Project) ExternalDepList() []string {
	return splitAnswerList(p.ResExternalDeps)
}

// DataTypeList splits the stored comma-separated data types.
func (p *Project) DataTypeList() []string {
	return splitAnswerList(p.DataTypes)
}

func splitAnswerList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
