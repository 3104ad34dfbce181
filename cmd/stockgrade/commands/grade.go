package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/stockgrade/internal/grading"
)

var (
	gradeInputs grading.Inputs
	gradeJSON   bool
)

// gradeCmd computes a grade offline
var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Compute a five-factor grade from ratios",
	Long: `Scores the five factors without calling the provider.
ROE is in percent (25 = 25%).

Example:
  go run ./cmd/stockgrade grade --sharpe 1.2 --roe 25 --peg 1.5 --current-ratio 1.1 --de 0.8`,
	RunE: runGrade,
}

func init() {
	rootCmd.AddCommand(gradeCmd)

	gradeCmd.Flags().Float64Var(&gradeInputs.SharpeRatio, "sharpe", 0, "annualized Sharpe ratio")
	gradeCmd.Flags().Float64Var(&gradeInputs.ROE, "roe", 0, "return on equity (%)")
	gradeCmd.Flags().Float64Var(&gradeInputs.PEGRatio, "peg", 0, "PEG ratio")
	gradeCmd.Flags().Float64Var(&gradeInputs.CurrentRatio, "current-ratio", 0, "current ratio")
	gradeCmd.Flags().Float64Var(&gradeInputs.DebtToEquity, "de", 0, "debt to equity")
	gradeCmd.Flags().BoolVar(&gradeJSON, "json", false, "print the result as JSON")
}

func runGrade(cmd *cobra.Command, args []string) error {
	result := grading.Grade(gradeInputs)
	out := cmd.OutOrStdout()

	if gradeJSON {
		return json.NewEncoder(out).Encode(result)
	}

	b := grading.Score(gradeInputs)
	fmt.Fprintf(out, "Sharpe         %6.2f\n", b.Sharpe)
	fmt.Fprintf(out, "ROE            %6.2f\n", b.ROE)
	fmt.Fprintf(out, "PEG            %6.2f\n", b.PEG)
	fmt.Fprintf(out, "Current ratio  %6.2f\n", b.CurrentRatio)
	fmt.Fprintf(out, "Debt           %6.2f\n", b.Debt)
	fmt.Fprintf(out, "---------------------\n")
	fmt.Fprintf(out, "Score          %6d  (%s)\n", result.Score, result.Grade)

	return nil
}
