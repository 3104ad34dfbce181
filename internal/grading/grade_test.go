package grading

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrade(t *testing.T) {
	tests := []struct {
		name      string
		in        Inputs
		wantScore int
		wantGrade string
	}{
		{
			name:      "floored ratios only",
			in:        Inputs{SharpeRatio: 0, ROE: 0, PEGRatio: 0.1, CurrentRatio: 0, DebtToEquity: 0.1},
			wantScore: 40,
			wantGrade: GradeD,
		},
		{
			name:      "saturated growth factors, unit ratios",
			in:        Inputs{SharpeRatio: 10, ROE: 50, PEGRatio: 1, CurrentRatio: 10, DebtToEquity: 1},
			wantScore: 68,
			wantGrade: GradeC,
		},
		{
			name:      "every factor saturated",
			in:        Inputs{SharpeRatio: 10, ROE: 50, PEGRatio: 0.2, CurrentRatio: 10, DebtToEquity: 0.2},
			wantScore: 100,
			wantGrade: GradeA,
		},
		{
			name:      "exactly on the A boundary",
			in:        Inputs{SharpeRatio: 10, ROE: 50, PEGRatio: 0.2, CurrentRatio: 10, DebtToEquity: 0.8},
			wantScore: 85,
			wantGrade: GradeA,
		},
		{
			name:      "negative inputs clamp to zero",
			in:        Inputs{SharpeRatio: -5, ROE: -10, PEGRatio: 100, CurrentRatio: -1, DebtToEquity: 200},
			wantScore: 0,
			wantGrade: GradeF,
		},
		{
			name:      "half rounds to even (4.5 -> 4)",
			in:        Inputs{SharpeRatio: 0.2, ROE: 0, PEGRatio: 2, CurrentRatio: 0, DebtToEquity: 2},
			wantScore: 4,
			wantGrade: GradeF,
		},
		{
			name:      "half rounds to even (5.5 -> 6)",
			in:        Inputs{SharpeRatio: 0.6, ROE: 0, PEGRatio: 2, CurrentRatio: 0, DebtToEquity: 2},
			wantScore: 6,
			wantGrade: GradeF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Grade(tt.in)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantGrade, got.Grade)
		})
	}
}

func TestScore_Breakdown(t *testing.T) {
	b := Score(Inputs{SharpeRatio: 0, ROE: 0, PEGRatio: 0.1, CurrentRatio: 0, DebtToEquity: 0.1})

	assert.Equal(t, 0.0, b.Sharpe)
	assert.Equal(t, 0.0, b.ROE)
	assert.InDelta(t, 20.0, b.PEG, 1e-9)
	assert.Equal(t, 0.0, b.CurrentRatio)
	assert.InDelta(t, 20.0, b.Debt, 1e-9)
	assert.InDelta(t, 40.0, b.Total(), 1e-9)
}

func TestScore_RatioFloor(t *testing.T) {
	base := Inputs{SharpeRatio: 1, ROE: 15, CurrentRatio: 1.5, DebtToEquity: 50}

	for _, peg := range []float64{0, 0.05, -3, 0.1} {
		in := base
		in.PEGRatio = peg
		assert.Equal(t, Score(Inputs{PEGRatio: 0.1}).PEG, Score(in).PEG, "peg=%v", peg)
	}

	for _, de := range []float64{0, 0.05, -1} {
		in := base
		in.DebtToEquity = de
		assert.Equal(t, Score(Inputs{DebtToEquity: 0.1}).Debt, Score(in).Debt, "de=%v", de)
	}
}

func TestGrade_Deterministic(t *testing.T) {
	in := Inputs{SharpeRatio: 1.83, ROE: 147.2, PEGRatio: 2.4, CurrentRatio: 0.87, DebtToEquity: 151.9}

	first := Grade(in)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Grade(in))
	}
}

func TestLetterFor(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, GradeA},
		{85, GradeA},
		{84, GradeB},
		{70, GradeB},
		{69, GradeC},
		{55, GradeC},
		{54, GradeD},
		{40, GradeD},
		{39, GradeF},
		{0, GradeF},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("score_%d", tt.score), func(t *testing.T) {
			assert.Equal(t, tt.want, LetterFor(tt.score))
		})
	}
}
