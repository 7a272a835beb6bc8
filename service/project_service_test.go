package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	model "github.com/gokcika/project-scoring-system/models"
)

// fullIntake is a submission that triggers no red flags; the resource answers
// are absent, as the intake flow withholds them.
func fullIntake() SubmitProjectInput {
	return SubmitProjectInput{
		Title:          "Contract intake automation",
		RequestorName:  "Priya Natarajan",
		RequestorEmail: "priya.natarajan@example.com",
		Department:     "Legal",

		RegRequired:    "YES",
		RegCitation:    "eIDAS Art. 25",
		RegDeadline:    "<3 months",
		RegEnforcement: "YES",

		RepRiskLevel:      "3 - Moderate risk, potential exposure",
		RepHarmCategories: []string{"Company reputation", "Customer harm"},
		RepLiability:      "<€100K",

		StratDocument: "Departmental objectives",
		StratSponsor:  "YES",
		StratBudget:   "YES",

		OpProcessName:   "Manual review and filing of inbound vendor contracts",
		OpCurrentTime:   40,
		OpProjectedTime: 36,
		OpScope:         "Single business unit",
		OpBlocker:       "NO",

		DataTypes:      []string{"Regular PII (name, email, contact info)"},
		DataThirdParty: "NO",

		StakeRequestorLevel: "Multiple BU heads",
		StakeUrgency:        "Contract backlog delays vendor onboarding every quarter",
	}
}

func TestSubmitProjectScoresOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db)

	project, err := svc.SubmitProject(fullIntake())
	assert.NoError(t, err)
	assert.NotZero(t, project.ID)
	assert.Equal(t, StatusSubmitted, project.Status)

	// Scenario scores: regulatory 5, everything else at 3, except the
	// withheld resource answers defaulting to 3 and the 10% efficiency gain
	// landing operational on 3.
	assert.Equal(t, 5.0, project.RegScore)
	assert.Equal(t, 3.0, project.RepScore)
	assert.Equal(t, 3.0, project.StratScore)
	assert.Equal(t, 3.0, project.OpScore)
	assert.Equal(t, 3.0, project.ResScore)
	assert.Equal(t, 3.0, project.DataScore)
	assert.Equal(t, 3.0, project.StakeScore)
	assert.Equal(t, 64.0, project.TotalScore)
	assert.Equal(t, PriorityPlanned, project.Priority)
	assert.InDelta(t, 10.0, project.OpEfficiencyGain, 0.001)

	// Clean submission carries no flags.
	var flags []string
	assert.NoError(t, json.Unmarshal(project.RedFlags, &flags))
	assert.Empty(t, flags)
	assert.False(t, project.AutoReject)
	assert.Nil(t, project.FinalScore)
}

func TestSubmitProjectRaisesRedFlags(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db)

	input := fullIntake()
	input.OpProcessName = "stuff"
	input.OpCurrentTime = 0
	input.RegCitation = ""

	project, err := svc.SubmitProject(input)
	assert.NoError(t, err)
	assert.True(t, project.AutoReject)

	var flags []string
	assert.NoError(t, json.Unmarshal(project.RedFlags, &flags))
	assert.ElementsMatch(t, []string{
		FlagNoSpecificProblem,
		FlagNoCurrentMetrics,
		FlagUncitedRegClaim,
	}, flags)

	// Advisory only: the record still enters the queue as Submitted.
	assert.Equal(t, StatusSubmitted, project.Status)
}

func TestGetProjectsFiltersByStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db)
	seedProject(t, db, nil)
	seedProject(t, db, func(p *model.Project) {
		p.Status = StatusApproved
	})

	submitted, err := svc.GetProjects(StatusSubmitted)
	assert.NoError(t, err)
	assert.Len(t, submitted, 1)

	all, err := svc.GetProjects("")
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateResourcePlanRescores(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db)
	seeded := seedProject(t, db, nil)

	updated, err := svc.UpdateResourcePlan(seeded.ID,
		"Use existing tool/platform with configuration only", nil)
	assert.NoError(t, err)

	// Resource moves 3 -> 5: total gains 5-3 times the .10 weight times 20.
	assert.Equal(t, 5.0, updated.ResScore)
	assert.Equal(t, 64.0, updated.TotalScore)
	assert.Equal(t, PriorityPlanned, updated.Priority)
	assert.Nil(t, updated.FinalScore)
}

func TestUpdateResourcePlanWithVendorDependency(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db)
	seeded := seedProject(t, db, nil)

	updated, err := svc.UpdateResourcePlan(seeded.ID,
		"Extend or integrate with existing platform",
		[]string{"Third-party vendor"})
	assert.NoError(t, err)
	assert.Equal(t, 3.0, updated.ResScore)
	assert.Equal(t, []string{"Third-party vendor"}, updated.ExternalDepList())
}

// With overrides in place the resource re-score recomputes the final score
// over the active values, honoring a resource override if one exists.
func TestUpdateResourcePlanAfterOverrides(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db)
	seeded := seedProject(t, db, nil)

	_, err := svc.SaveOverrides(seeded.ID, OverrideSet{Regulatory: floatPtr(5.0)},
		"deadline confirmed with counsel", "officer")
	assert.NoError(t, err)

	updated, err := svc.UpdateResourcePlan(seeded.ID,
		"Use existing tool/platform with configuration only", nil)
	assert.NoError(t, err)

	// Raw total: resource 3 -> 5 on top of 60 = 64. Active total also takes
	// the regulatory override: 64 + (5-3)*.25*20 = 74.
	assert.Equal(t, 64.0, updated.TotalScore)
	assert.Equal(t, 74.0, *updated.FinalScore)
	assert.Equal(t, PriorityImmediate, updated.Priority)
}

func TestUpdateResourcePlanOnTerminalStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db)
	seeded := seedProject(t, db, func(p *model.Project) {
		p.Status = StatusRejected
	})

	_, err := svc.UpdateResourcePlan(seeded.ID, "Custom development required", nil)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, CodeIllegalTransition, validationErr.Code)
}

func TestGetStatistics(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db)

	seedProject(t, db, func(p *model.Project) {
		p.Department = "Finance"
		p.TotalScore = 80.0
		p.Priority = PriorityImmediate
	})
	seedProject(t, db, func(p *model.Project) {
		p.Department = "Finance"
		p.TotalScore = 40.0
		p.Priority = PriorityDefer
	})
	seedProject(t, db, func(p *model.Project) {
		p.Department = "HR"
		p.Status = StatusApproved
	})
	deleted := seedProject(t, db, nil)
	_, err := svc.SoftDeleteProject(deleted.ID, "officer", "test data cleanup", true)
	assert.NoError(t, err)

	stats, err := svc.GetStatistics()
	assert.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)

	byStatus := map[string]int64{}
	for _, sc := range stats.ByStatus {
		byStatus[sc.Status] = sc.Count
	}
	assert.Equal(t, int64(2), byStatus[StatusSubmitted])
	assert.Equal(t, int64(1), byStatus[StatusApproved])

	var finance DepartmentAverage
	for _, da := range stats.AvgByDept {
		if da.Department == "Finance" {
			finance = da
		}
	}
	assert.Equal(t, int64(2), finance.Count)
	assert.InDelta(t, 60.0, finance.AvgScore, 0.001)

	// Only IMMEDIATE projects still in Submitted make the high-priority list.
	assert.Len(t, stats.HighPriority, 1)
	assert.Equal(t, 80.0, stats.HighPriority[0].TotalScore)
}
