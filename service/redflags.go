package services

import (
	"strings"

	model "github.com/gokcika/project-scoring-system/models"
)

// Red-flag labels. Each rule below owns exactly one label.
const (
	FlagNoSpecificProblem = "Cannot articulate specific problem"
	FlagNoCurrentMetrics  = "No current state metrics"
	FlagUncitedRegClaim   = "Regulatory claim without citation"
)

// minProcessDescriptionLength is the shortest process description accepted
// as articulating a specific problem.
const minProcessDescriptionLength = 10

// redFlagRule is one independent predicate over the submitted record. Rules
// never see each other's results; the engine unions their labels.
type redFlagRule struct {
	label string
	hit   func(p *model.Project) bool
}

var redFlagRules = []redFlagRule{
	{
		label: FlagNoSpecificProblem,
		hit: func(p *model.Project) bool {
			return len(strings.TrimSpace(p.OpProcessName)) < minProcessDescriptionLength
		},
	},
	{
		label: FlagNoCurrentMetrics,
		hit: func(p *model.Project) bool {
			return p.OpCurrentTime <= 0
		},
	},
	{
		label: FlagUncitedRegClaim,
		hit: func(p *model.Project) bool {
			return p.RegRequired == "YES" && strings.TrimSpace(p.RegCitation) == ""
		},
	},
}

// CheckRedFlags evaluates every rule against the record and returns the
// triggered labels plus the auto-reject indicator. Auto-reject is advisory:
// a flagged record still moves through the normal lifecycle.
func CheckRedFlags(p *model.Project) ([]string, bool) {
	flags := []string{}
	for _, rule := range redFlagRules {
		if rule.hit(p) {
			flags = append(flags, rule.label)
		}
	}
	return flags, len(flags) > 0
}
