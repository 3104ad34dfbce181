package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/stockgrade/internal/grading"
)

func TestGradeCommand_JSON(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"grade", "--peg", "0.1", "--de", "0.1", "--json"})
	t.Cleanup(func() {
		gradeInputs = grading.Inputs{}
		gradeJSON = false
	})

	require.NoError(t, rootCmd.Execute())

	var result grading.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, 40, result.Score)
	assert.Equal(t, "D", result.Grade)
}

func TestGradeCommand_Table(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"grade", "--sharpe", "10", "--roe", "50", "--peg", "0.1", "--current-ratio", "10", "--de", "0.1"})
	t.Cleanup(func() {
		gradeInputs = grading.Inputs{}
	})

	require.NoError(t, rootCmd.Execute())

	assert.True(t, strings.Contains(out.String(), "100  (A)"), out.String())
}
