package services

import (
	"math"
	"strings"
)

// Criterion weights for the 0-100 aggregate. They sum to 1.00, so a record
// scoring 5 on every criterion aggregates to exactly 100.
const (
	WeightRegulatory   = 0.25
	WeightReputational = 0.20
	WeightStrategic    = 0.15
	WeightOperational  = 0.15
	WeightResource     = 0.10
	WeightData         = 0.10
	WeightStakeholder  = 0.05
)

// Priority bands for the active score.
const (
	PriorityImmediate = "IMMEDIATE"
	PriorityPlanned   = "PLANNED"
	PriorityDefer     = "DEFER"
)

// minUrgencyLength is the trimmed character count below which a stated
// urgency justification is treated as unclear.
const minUrgencyLength = 20

// CriterionScores holds one raw (or active) score per criterion.
type CriterionScores struct {
	Regulatory   float64
	Reputational float64
	Strategic    float64
	Operational  float64
	Resource     float64
	Data         float64
	Stakeholder  float64
}

// ScoreRegulatory scores Section 1. A request with no regulatory driver is a
// fixed 1.0; otherwise the deadline sets the base and missing enforcement
// history subtracts one.
func ScoreRegulatory(required, deadline, enforcement string) float64 {
	if required != "YES" {
		return 1.0
	}

	var score float64
	switch deadline {
	case "<3 months":
		score = 5
	case "3-6 months":
		score = 4
	case "6-12 months":
		score = 3
	case ">12 months":
		score = 2
	case "No specific deadline":
		score = 2
	default:
		score = 1
	}

	if enforcement == "NO" {
		score = math.Max(1, score-1)
	}

	return score
}

// ScoreReputational scores Section 2 from the risk-severity level, the
// selected harm categories, and the liability exposure band.
func ScoreReputational(riskLevel string, harmCategories []string, liability string) float64 {
	var score float64
	switch riskLevel {
	case "1 - Minimal risk":
		score = 1
	case "2 - Low risk, proactive measure":
		score = 2
	case "3 - Moderate risk, potential exposure":
		score = 3
	case "4 - High risk, known vulnerability":
		score = 4
	case "5 - Critical risk, active issue":
		score = 5
	default:
		score = 1
	}

	hasReputationHarm := false
	for _, category := range harmCategories {
		if strings.Contains(category, "Company reputation") {
			hasReputationHarm = true
			break
		}
	}
	if len(harmCategories) >= 3 && !hasReputationHarm {
		score = math.Min(5, score+1)
	} else if hasReputationHarm && len(harmCategories) == 1 {
		score = math.Max(1, score-1)
	}

	// Liability bands below €100K leave the score unchanged.
	switch liability {
	case ">€1M":
		score = 5
	case "€100K-€1M":
		score = math.Min(5, score+1)
	}

	return score
}

// ScoreStrategic scores Section 3. Absent executive sponsorship and absent
// budget each subtract one independently, flooring at 1 each step.
func ScoreStrategic(document, sponsor, budget string) float64 {
	var score float64
	switch document {
	case "CEO/Board strategic plan":
		score = 5
	case "Division/BU annual strategy":
		score = 4
	case "Departmental objectives":
		score = 3
	case "Operational improvement":
		score = 2
	case "Not in strategic docs":
		score = 1
	default:
		score = 1
	}

	if sponsor == "NO" {
		score = math.Max(1, score-1)
	}
	if budget == "NO" {
		score = math.Max(1, score-1)
	}

	return score
}

// ScoreOperational scores Section 4 from the efficiency-gain percentage,
// adding one each (capped at 5) for multi-unit scope and for blocking other
// initiatives.
func ScoreOperational(efficiencyGain float64, scope, blocker string) float64 {
	var score float64
	switch {
	case efficiencyGain >= 30:
		score = 5
	case efficiencyGain >= 20:
		score = 4
	case efficiencyGain >= 10:
		score = 3
	case efficiencyGain >= 5:
		score = 2
	default:
		score = 1
	}

	if strings.Contains(scope, "2+ business units") {
		score = math.Min(5, score+1)
	}
	if blocker == "YES" {
		score = math.Min(5, score+1)
	}

	return score
}

// ScoreResource scores Section 5, inverted: the lighter the implementation
// approach, the higher the score. Vendor or multi-system external
// dependencies subtract one.
func ScoreResource(approach string, externalDeps []string) float64 {
	var score float64
	switch approach {
	case "Use existing tool/platform with configuration only":
		score = 5
	case "Extend or integrate with existing platform":
		score = 4
	case "Deploy new tool with standard implementation":
		score = 3
	case "Custom development required":
		score = 2
	case "Major system overhaul or multiple system integration":
		score = 1
	default:
		score = 3
	}

	for _, dep := range externalDeps {
		if strings.Contains(dep, "Third-party vendor") || strings.Contains(dep, "Multiple system") {
			score = math.Max(1, score-1)
			break
		}
	}

	return score
}

// ScoreDataSensitivity scores Section 6. When several data types apply the
// most sensitive one wins, and third-party access raises the score to at
// least 4.
func ScoreDataSensitivity(dataTypes []string, thirdParty string) float64 {
	score := 1.0
	for _, dataType := range dataTypes {
		var typeScore float64
		switch dataType {
		case "Public or low-sensitivity data":
			typeScore = 1
		case "Internal confidential business data":
			typeScore = 2
		case "Regular PII (name, email, contact info)":
			typeScore = 3
		case "Sensitive PII (government IDs, credentials)":
			typeScore = 4
		case "Financial transaction data":
			typeScore = 5
		case "Trade secrets or intellectual property":
			typeScore = 5
		case "GDPR Special Categories (health, biometric, etc.)":
			typeScore = 5
		default:
			typeScore = 1
		}
		score = math.Max(score, typeScore)
	}

	if thirdParty == "YES" {
		score = math.Max(4, score)
	}

	return score
}

// ScoreStakeholder scores Section 7 from the requestor's seniority or the
// request channel. An urgency justification shorter than minUrgencyLength
// trimmed characters is treated as unclear and subtracts one.
func ScoreStakeholder(requestorLevel, urgency string) float64 {
	var score float64
	switch requestorLevel {
	case "External audit finding":
		score = 5
	case "Regulatory inquiry":
		score = 5
	case "Board/C-suite":
		score = 4
	case "Multiple BU heads":
		score = 3
	case "Single BU leadership":
		score = 2
	case "Team/individual":
		score = 1
	default:
		score = 1
	}

	if len(strings.TrimSpace(urgency)) < minUrgencyLength {
		score = math.Max(1, score-1)
	}

	return score
}

// AggregateScores combines the seven criterion scores into the weighted
// 0-100 total, rounded to two decimals.
func AggregateScores(s CriterionScores) float64 {
	total := (s.Regulatory*WeightRegulatory +
		s.Reputational*WeightReputational +
		s.Strategic*WeightStrategic +
		s.Operational*WeightOperational +
		s.Resource*WeightResource +
		s.Data*WeightData +
		s.Stakeholder*WeightStakeholder) * 20

	return math.Round(total*100) / 100
}

// ClassifyPriority maps the active score to its priority band.
func ClassifyPriority(score float64) string {
	switch {
	case score >= 70:
		return PriorityImmediate
	case score >= 50:
		return PriorityPlanned
	default:
		return PriorityDefer
	}
}

// EfficiencyGain derives the percentage improvement from the current and
// projected time-on-task answers. A missing current-state metric yields 0,
// the red-flag engine reports it separately.
func EfficiencyGain(currentTime, projectedTime float64) float64 {
	if currentTime <= 0 {
		return 0
	}
	return (currentTime - projectedTime) / currentTime * 100
}
