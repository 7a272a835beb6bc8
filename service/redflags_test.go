package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	model "github.com/gokcika/project-scoring-system/models"
)

// cleanProject returns a record that triggers no red-flag rule.
func cleanProject() *model.Project {
	return &model.Project{
		RegRequired:   "YES",
		RegCitation:   "GDPR Art. 30",
		OpProcessName: "Manual invoice data entry across regional teams",
		OpCurrentTime: 14.5,
	}
}

func TestCheckRedFlagsClean(t *testing.T) {
	flags, autoReject := CheckRedFlags(cleanProject())
	assert.Empty(t, flags)
	assert.False(t, autoReject)
}

// Each rule triggers in isolation and raises exactly its own label.
func TestCheckRedFlagsIsolation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Project)
		want   string
	}{
		{
			"Short process description",
			func(p *model.Project) { p.OpProcessName = "emails" },
			FlagNoSpecificProblem,
		},
		{
			"Whitespace process description",
			func(p *model.Project) { p.OpProcessName = "             " },
			FlagNoSpecificProblem,
		},
		{
			"Zero current-state metric",
			func(p *model.Project) { p.OpCurrentTime = 0 },
			FlagNoCurrentMetrics,
		},
		{
			"Regulatory claim without citation",
			func(p *model.Project) { p.RegCitation = "  " },
			FlagUncitedRegClaim,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project := cleanProject()
			tt.mutate(project)

			flags, autoReject := CheckRedFlags(project)
			assert.Equal(t, []string{tt.want}, flags)
			assert.True(t, autoReject)
		})
	}
}

func TestCheckRedFlagsUnion(t *testing.T) {
	project := &model.Project{
		RegRequired:   "YES",
		RegCitation:   "",
		OpProcessName: "",
		OpCurrentTime: 0,
	}

	flags, autoReject := CheckRedFlags(project)
	assert.ElementsMatch(t, []string{
		FlagNoSpecificProblem,
		FlagNoCurrentMetrics,
		FlagUncitedRegClaim,
	}, flags)
	assert.True(t, autoReject)
}

// A missing citation only matters when a regulatory driver is claimed.
func TestCheckRedFlagsNoRegClaim(t *testing.T) {
	project := cleanProject()
	project.RegRequired = "NO"
	project.RegCitation = ""

	flags, autoReject := CheckRedFlags(project)
	assert.Empty(t, flags)
	assert.False(t, autoReject)
}
