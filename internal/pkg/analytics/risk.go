// Package analytics holds the closed-form risk and sentiment scorers.
package analytics

import "math"

// RiskLevel buckets a risk probability
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Thresholds: Low below lowRiskBelow, Medium up to and including mediumRiskUpTo
const (
	lowRiskBelow   = 0.30
	mediumRiskUpTo = 0.60
)

// Weights of each shortfall from 100
const (
	attendanceWeight = 0.5
	assignmentWeight = 0.3
	testWeight       = 0.2
)

// ScoreRisk weighs how far each score falls short of 100. Inputs are not
// clamped, so values outside [0, 100] push the probability outside [0, 1].
func ScoreRisk(attendance, assignment, test float64) (float64, RiskLevel) {
	p := ((100-attendance)*attendanceWeight +
		(100-assignment)*assignmentWeight +
		(100-test)*testWeight) / 100
	return p, ClassifyRisk(p)
}

// ClassifyRisk maps a probability to its level
func ClassifyRisk(p float64) RiskLevel {
	switch {
	case p < lowRiskBelow:
		return RiskLow
	case p <= mediumRiskUpTo:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// Percent rounds p*100 half to even
func Percent(p float64) int {
	return int(math.RoundToEven(p * 100))
}
