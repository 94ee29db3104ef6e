package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestStandardsCommand(t *testing.T) {
	out, err := execute(t, "standards", "--gender", "female")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "male\n"))
	assert.Contains(t, out, "sit_and_reach")
	assert.Contains(t, out, "lower")

	out, err = execute(t, "standards")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "male\n"))
	assert.Contains(t, out, "female\n")

	_, err = execute(t, "standards", "--gender", "x")
	require.Error(t, err)
}

func TestScoreCommand(t *testing.T) {
	out, err := execute(t, "score", "pushups", "35", "--gender", "male")
	require.NoError(t, err)
	assert.Contains(t, out, "pushups 35 reps: 50.0 / 100")

	_, err = execute(t, "score", "burpees", "3", "--gender", "male")
	require.Error(t, err)

	_, err = execute(t, "score", "pushups", "many", "--gender", "male")
	require.Error(t, err)

	_, err = execute(t, "score", "pushups", "35")
	require.Error(t, err)
}

func TestGradeCommand(t *testing.T) {
	out, err := execute(t, "grade", "84")
	require.NoError(t, err)
	assert.Contains(t, out, "84% -> B (3.0 points)")

	out, err = execute(t, "grade", "84", "--weighted")
	require.NoError(t, err)
	assert.Contains(t, out, "(4.0 points)")
}

func TestMigrateFlagDefaultsToLatest(t *testing.T) {
	cmd := newMigrateCmd()
	flag := cmd.Flags().Lookup("version")
	require.NotNil(t, flag)
	assert.Equal(t, "-1", flag.DefValue)
}
