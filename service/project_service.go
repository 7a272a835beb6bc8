package services

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	model "github.com/gokcika/project-scoring-system/models"
)

// ProjectService owns all scoring and workflow operations over the project
// store. Every mutating method issues a single update so the store applies
// it as one unit.
type ProjectService struct {
	db *gorm.DB
}

// NewProjectService initializes the service with a database handle.
func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

// SubmitProjectInput carries the intake questionnaire answers. The resource
// approach and external dependencies are optional here: the intake flow
// withholds them and a reviewer fills them in later.
type SubmitProjectInput struct {
	Title          string `json:"title" binding:"required"`
	RequestorName  string `json:"requestor_name" binding:"required"`
	RequestorEmail string `json:"requestor_email" binding:"required"`
	Department     string `json:"department" binding:"required"`

	RegRequired    string `json:"reg_required"`
	RegCitation    string `json:"reg_citation"`
	RegDeadline    string `json:"reg_deadline"`
	RegEnforcement string `json:"reg_enforcement"`

	RepHeadline       string   `json:"rep_headline"`
	RepRiskLevel      string   `json:"rep_risk_level"`
	RepHarmCategories []string `json:"rep_harm_categories"`
	RepLiability      string   `json:"rep_liability"`

	StratDocument string `json:"strat_document"`
	StratSponsor  string `json:"strat_sponsor"`
	StratBudget   string `json:"strat_budget"`

	OpProcessName   string  `json:"op_process_name"`
	OpCurrentTime   float64 `json:"op_current_time"`
	OpProjectedTime float64 `json:"op_projected_time"`
	OpScope         string  `json:"op_scope"`
	OpBlocker       string  `json:"op_blocker"`

	ResApproach     string   `json:"res_approach"`
	ResExternalDeps []string `json:"res_external_deps"`

	DataTypes      []string `json:"data_types"`
	DataThirdParty string   `json:"data_third_party"`

	StakeRequestorLevel string `json:"stake_requestor_level"`
	StakeUrgency        string `json:"stake_urgency"`
}

// SubmitProject scores the questionnaire, runs the red-flag rules and creates
// the record in Submitted status. Scores are computed exactly once here; the
// requestor never supplies them.
func (s *ProjectService) SubmitProject(input SubmitProjectInput) (*model.Project, error) {
	efficiencyGain := EfficiencyGain(input.OpCurrentTime, input.OpProjectedTime)

	scores := CriterionScores{
		Regulatory:   ScoreRegulatory(input.RegRequired, input.RegDeadline, input.RegEnforcement),
		Reputational: ScoreReputational(input.RepRiskLevel, input.RepHarmCategories, input.RepLiability),
		Strategic:    ScoreStrategic(input.StratDocument, input.StratSponsor, input.StratBudget),
		Operational:  ScoreOperational(efficiencyGain, input.OpScope, input.OpBlocker),
		Resource:     ScoreResource(input.ResApproach, input.ResExternalDeps),
		Data:         ScoreDataSensitivity(input.DataTypes, input.DataThirdParty),
		Stakeholder:  ScoreStakeholder(input.StakeRequestorLevel, input.StakeUrgency),
	}

	total := AggregateScores(scores)

	project := model.Project{
		Title:          input.Title,
		RequestorName:  input.RequestorName,
		RequestorEmail: input.RequestorEmail,
		Department:     input.Department,
		SubmittedAt:    time.Now(),
		Status:         StatusSubmitted,

		RegRequired:    input.RegRequired,
		RegCitation:    input.RegCitation,
		RegDeadline:    input.RegDeadline,
		RegEnforcement: input.RegEnforcement,
		RegScore:       scores.Regulatory,

		RepHeadline:       input.RepHeadline,
		RepRiskLevel:      input.RepRiskLevel,
		RepHarmCategories: strings.Join(input.RepHarmCategories, ","),
		RepLiability:      input.RepLiability,
		RepScore:          scores.Reputational,

		StratDocument: input.StratDocument,
		StratSponsor:  input.StratSponsor,
		StratBudget:   input.StratBudget,
		StratScore:    scores.Strategic,

		OpProcessName:    input.OpProcessName,
		OpCurrentTime:    input.OpCurrentTime,
		OpProjectedTime:  input.OpProjectedTime,
		OpEfficiencyGain: efficiencyGain,
		OpScope:          input.OpScope,
		OpBlocker:        input.OpBlocker,
		OpScore:          scores.Operational,

		ResApproach:     input.ResApproach,
		ResExternalDeps: strings.Join(input.ResExternalDeps, ","),
		ResScore:        scores.Resource,

		DataTypes:      strings.Join(input.DataTypes, ","),
		DataThirdParty: input.DataThirdParty,
		DataScore:      scores.Data,

		StakeRequestorLevel: input.StakeRequestorLevel,
		StakeUrgency:        input.StakeUrgency,
		StakeScore:          scores.Stakeholder,

		TotalScore: total,
		Priority:   ClassifyPriority(total),
	}

	flags, autoReject := CheckRedFlags(&project)
	flagJSON, err := json.Marshal(flags)
	if err != nil {
		log.Printf("[SubmitProject] Error marshaling red flags: %v", err)
		return nil, err
	}
	project.RedFlags = datatypes.JSON(flagJSON)
	project.AutoReject = autoReject

	if err := s.db.Create(&project).Error; err != nil {
		log.Printf("[SubmitProject] Error creating project: %v", err)
		return nil, err
	}

	log.Printf("[SubmitProject] Project %d submitted: score=%.2f priority=%s flags=%d",
		project.ID, total, project.Priority, len(flags))
	return &project, nil
}

// GetProjects returns active records newest-first, optionally filtered by
// status. Soft-deleted records never appear here.
func (s *ProjectService) GetProjects(status string) ([]model.Project, error) {
	query := s.db.Where("deleted = ?", false).Order("submitted_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var projects []model.Project
	if err := query.Find(&projects).Error; err != nil {
		log.Printf("[GetProjects] Error fetching projects: %v", err)
		return nil, err
	}
	return projects, nil
}

// GetProject fetches one record by id. Deleted records are still returned
// here so their history stays auditable.
func (s *ProjectService) GetProject(id uint) (*model.Project, error) {
	var project model.Project
	if err := s.db.First(&project, "id = ?", id).Error; err != nil {
		log.Printf("[GetProject] Error fetching project %d: %v", id, err)
		return nil, err
	}
	return &project, nil
}

// UpdateResourcePlan records the reviewer-supplied implementation approach
// and external dependencies, re-scores the resource criterion and recomputes
// the total and priority over the active scores as one update.
func (s *ProjectService) UpdateResourcePlan(id uint, approach string, externalDeps []string) (*model.Project, error) {
	project, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}

	if project.Deleted {
		return nil, newValidationError(CodeRecordDeleted, "project %d is deleted", id)
	}
	if !isReviewable(project.Status) {
		return nil, newValidationError(CodeIllegalTransition,
			"resource plan cannot change once the project is %s", project.Status)
	}

	resScore := ScoreResource(approach, externalDeps)
	project.ResScore = resScore

	rawTotal := AggregateScores(CriterionScores{
		Regulatory:   project.RegScore,
		Reputational: project.RepScore,
		Strategic:    project.StratScore,
		Operational:  project.OpScore,
		Resource:     resScore,
		Data:         project.DataScore,
		Stakeholder:  project.StakeScore,
	})
	activeTotal := AggregateScores(activeScores(project))

	updates := map[string]interface{}{
		"res_approach":      approach,
		"res_external_deps": strings.Join(externalDeps, ","),
		"res_score":         resScore,
		"total_score":       rawTotal,
		"priority":          ClassifyPriority(activeTotal),
	}
	// Once a review produced a final score it stays the active one, so the
	// recomputed aggregate has to land there too.
	if project.FinalScore != nil {
		updates["final_score"] = activeTotal
	}

	if err := s.db.Model(project).Updates(updates).Error; err != nil {
		log.Printf("[UpdateResourcePlan] Error updating project %d: %v", id, err)
		return nil, err
	}

	log.Printf("[UpdateResourcePlan] Project %d resource re-scored to %.1f, total %.2f", id, resScore, activeTotal)
	return s.GetProject(id)
}

// DashboardStats summarizes the active queue for the reporting collaborator.
type DashboardStats struct {
	Total        int64               `json:"total"`
	ByStatus     []StatusCount       `json:"by_status"`
	ByPriority   []PriorityCount     `json:"by_priority"`
	AvgByDept    []DepartmentAverage `json:"avg_by_department"`
	HighPriority []model.Project     `json:"high_priority"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int64  `json:"count"`
}

type DepartmentAverage struct {
	Department string  `json:"department"`
	AvgScore   float64 `json:"avg_score"`
	Count      int64   `json:"count"`
}

// GetStatistics aggregates queue counts and averages over active records.
func (s *ProjectService) GetStatistics() (*DashboardStats, error) {
	stats := &DashboardStats{}
	active := s.db.Model(&model.Project{}).Where("deleted = ?", false)

	if err := active.Count(&stats.Total).Error; err != nil {
		log.Printf("[GetStatistics] Error counting projects: %v", err)
		return nil, err
	}

	if err := s.db.Model(&model.Project{}).Where("deleted = ?", false).
		Select("status, COUNT(*) as count").Group("status").
		Scan(&stats.ByStatus).Error; err != nil {
		log.Printf("[GetStatistics] Error grouping by status: %v", err)
		return nil, err
	}

	if err := s.db.Model(&model.Project{}).Where("deleted = ?", false).
		Select("priority, COUNT(*) as count").Group("priority").
		Scan(&stats.ByPriority).Error; err != nil {
		log.Printf("[GetStatistics] Error grouping by priority: %v", err)
		return nil, err
	}

	if err := s.db.Model(&model.Project{}).Where("deleted = ?", false).
		Select("department, AVG(total_score) as avg_score, COUNT(*) as count").
		Group("department").Scan(&stats.AvgByDept).Error; err != nil {
		log.Printf("[GetStatistics] Error averaging by department: %v", err)
		return nil, err
	}

	if err := s.db.Where("deleted = ? AND priority = ? AND status = ?",
		false, PriorityImmediate, StatusSubmitted).
		Order("total_score DESC").Limit(5).
		Find(&stats.HighPriority).Error; err != nil {
		log.Printf("[GetStatistics] Error fetching high-priority projects: %v", err)
		return nil, err
	}

	return stats, nil
}

// activeScores resolves each criterion to its override when one exists, else
// the raw score.
func activeScores(p *model.Project) CriterionScores {
	return CriterionScores{
		Regulatory:   pickScore(p.OverrideReg, p.RegScore),
		Reputational: pickScore(p.OverrideRep, p.RepScore),
		Strategic:    pickScore(p.OverrideStrat, p.StratScore),
		Operational:  pickScore(p.OverrideOp, p.OpScore),
		Resource:     pickScore(p.OverrideRes, p.ResScore),
		Data:         pickScore(p.OverrideData, p.DataScore),
		Stakeholder:  pickScore(p.OverrideStake, p.StakeScore),
	}
}
