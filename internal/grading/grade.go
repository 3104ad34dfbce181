package grading

import "math"

// Letter grades, best first
const (
	GradeA = "A"
	GradeB = "B"
	GradeC = "C"
	GradeD = "D"
	GradeF = "F"
)

// Factor weights (sum = 1.00)
const (
	weightSharpe       = 0.25
	weightROE          = 0.20
	weightPEG          = 0.20
	weightCurrentRatio = 0.15
	weightDebt         = 0.20
)

// ratioFloor bounds PEG and debt-to-equity from below before inversion.
// Zero and negative ratios score exactly like 0.1.
const ratioFloor = 0.1

// Inputs are the five ratios the grade is computed from.
// ROE is in percent; the other four are plain ratios.
type Inputs struct {
	SharpeRatio  float64 `json:"sharpeRatio"`
	ROE          float64 `json:"roe"`
	PEGRatio     float64 `json:"pegRatio"`
	CurrentRatio float64 `json:"currentRatio"`
	DebtToEquity float64 `json:"debtToEquity"`
}

// Result is a 0-100 score and its letter
type Result struct {
	Score int    `json:"score"`
	Grade string `json:"grade"`
}

// Breakdown holds the weighted contribution of every factor
type Breakdown struct {
	Sharpe       float64
	ROE          float64
	PEG          float64
	CurrentRatio float64
	Debt         float64
}

// Total is the unrounded final score
func (b Breakdown) Total() float64 {
	return b.Sharpe + b.ROE + b.PEG + b.CurrentRatio + b.Debt
}

// Grade scores a stock with the five-factor model
// ⭐ SSOT: 등급 계산은 여기서만
func Grade(in Inputs) Result {
	score := int(math.RoundToEven(Score(in).Total()))

	return Result{
		Score: score,
		Grade: LetterFor(score),
	}
}

// Score returns the per-factor weighted scores. Each factor is clamped to
// [0, 100] before weighting.
func Score(in Inputs) Breakdown {
	return Breakdown{
		Sharpe:       clamp(in.SharpeRatio*10, 0, 100) * weightSharpe,
		ROE:          clamp(in.ROE*2, 0, 100) * weightROE,
		PEG:          clamp((1/math.Max(in.PEGRatio, ratioFloor))*20, 0, 100) * weightPEG,
		CurrentRatio: clamp(in.CurrentRatio*10, 0, 100) * weightCurrentRatio,
		Debt:         clamp((1/math.Max(in.DebtToEquity, ratioFloor))*20, 0, 100) * weightDebt,
	}
}

// LetterFor maps a rounded score to its letter; thresholds are closed below
func LetterFor(score int) string {
	switch {
	case score >= 85:
		return GradeA
	case score >= 70:
		return GradeB
	case score >= 55:
		return GradeC
	case score >= 40:
		return GradeD
	default:
		return GradeF
	}
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}
