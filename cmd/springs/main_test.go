package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/hotsprings/internal/config"
	"github.com/gitrdm/hotsprings/pkg/springs"
)

const exampleInput = `???.### 1,1,3
.??..??...?##. 1,1,3
?#?#?#?#?#?#?#? 1,3,1,6
????.#...#... 4,1,1
????.######..#####. 1,6,5
?###???????? 3,2,1
`

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := run(context.Background(), &out, &errOut, args)
	return out.String(), err
}

func TestCount_Example(t *testing.T) {
	path := writeInput(t, "input", exampleInput)

	for _, strategy := range []string{"memo", "table", "automaton"} {
		t.Run(strategy, func(t *testing.T) {
			out, err := execute(t, "count", "--strategy", strategy, "--workers", "2", path)
			require.NoError(t, err)
			assert.Equal(t, "part one: 21\npart two: 525152\n", out)
		})
	}
}

func TestCount_MultipleFiles(t *testing.T) {
	lines := strings.SplitAfter(exampleInput, "\n")
	a := writeInput(t, "a", strings.Join(lines[:3], ""))
	b := writeInput(t, "b", strings.Join(lines[3:], ""))

	out, err := execute(t, "count", a, b)
	require.NoError(t, err)
	assert.Equal(t, "part one: 21\npart two: 525152\n", out)
}

func TestCount_Multiplicity(t *testing.T) {
	path := writeInput(t, "input", exampleInput)
	out, err := execute(t, "count", "--multiplicity", "1", path)
	require.NoError(t, err)
	assert.Equal(t, "part one: 21\npart two: 21\n", out)
}

func TestCount_FailFast(t *testing.T) {
	path := writeInput(t, "input", "???.### 1,1,3\n??x 1\n?? 0\n")

	out, err := execute(t, "count", path)
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Contains(t, err.Error(), "line 2")
	assert.NotContains(t, err.Error(), "line 3")
	assert.True(t, errors.Is(err, springs.ErrInvalidSpring))
}

func TestCount_CollectErrors(t *testing.T) {
	path := writeInput(t, "input", "???.### 1,1,3\n??x 1\n?? 0\n")

	_, err := execute(t, "count", "--collect-errors", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "line 3")
	assert.True(t, errors.Is(err, springs.ErrInvalidGroup))
}

func TestCount_MissingFile(t *testing.T) {
	_, err := execute(t, "count", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input")
}

func TestCount_InvalidStrategy(t *testing.T) {
	path := writeInput(t, "input", exampleInput)
	_, err := execute(t, "count", "--strategy", "guess", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestCount_ConfigFileAndMetrics(t *testing.T) {
	path := writeInput(t, "input", exampleInput)
	metricsPath := filepath.Join(t.TempDir(), "springs.prom")
	cfgPath := writeInput(t, "springs.yaml", "strategy: table\nworkers: 1\nmetrics_file: "+metricsPath+"\n")

	out, err := execute(t, "count", "--config", cfgPath, path)
	require.NoError(t, err)
	assert.Equal(t, "part one: 21\npart two: 525152\n", out)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `springs_records_total{variant="unfolded"} 6`)
}

func executeWithStdin(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCount_Stdin(t *testing.T) {
	out, err := executeWithStdin(t, exampleInput, "count", "-")
	require.NoError(t, err)
	assert.Equal(t, "part one: 21\npart two: 525152\n", out)
}

func TestCount_RepeatedStdin(t *testing.T) {
	// Large enough that a shared scanner would split the input between the
	// two "-" arguments.
	input := strings.Repeat(exampleInput, 2000)

	out, err := executeWithStdin(t, input, "count", "--workers", "2", "-", "-")
	require.NoError(t, err)
	assert.Equal(t, "part one: 84000\npart two: 2100608000\n", out)
}

func TestCount_StdinAndFile(t *testing.T) {
	path := writeInput(t, "input", exampleInput)

	out, err := executeWithStdin(t, exampleInput, "count", "-", path, "-")
	require.NoError(t, err)
	assert.Equal(t, "part one: 63\npart two: 1575456\n", out)
}

func TestRecord(t *testing.T) {
	out, err := execute(t, "record", "?###???????? 3,2,1")
	require.NoError(t, err)
	assert.Contains(t, out, "plain:    10\n")
	assert.Contains(t, out, "unfolded: 506250 (x5, 64 cells, 49 unknown)\n")
	assert.Contains(t, out, "memo:")
}

func TestRecord_SplitArgs(t *testing.T) {
	out, err := execute(t, "record", "???.###", "1,1,3")
	require.NoError(t, err)
	assert.Contains(t, out, "plain:    1\n")
}

func TestRecord_BadLine(t *testing.T) {
	_, err := execute(t, "record", "???.###")
	require.Error(t, err)
	assert.True(t, errors.Is(err, springs.ErrMissingField))
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "springs "+springs.Version+" (go 1.25+)\n", out)
}

func TestVersion_JSON(t *testing.T) {
	out, err := execute(t, "version", "--json")
	require.NoError(t, err)

	var info springs.VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, springs.GetVersionInfo(), info)
	assert.Contains(t, out, `"version": "`+springs.Version+`"`)
	assert.Contains(t, out, `"go_version": "1.25+"`)
	assert.NotContains(t, out, "git_commit")
}

func TestConfigInit(t *testing.T) {
	t.Setenv("SPRINGS_STRATEGY", "")
	t.Setenv("SPRINGS_WORKERS", "")
	path := filepath.Join(t.TempDir(), "conf", "springs.yaml")

	out, err := execute(t, "config", "init", "--strategy", "table", "--workers", "3", path)
	require.NoError(t, err)
	assert.Equal(t, "wrote "+path+"\n", out)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "table", cfg.Strategy)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, config.DefaultConfig().Multiplicity, cfg.Multiplicity)

	input := writeInput(t, "input", exampleInput)
	out, err = execute(t, "count", "--config", path, input)
	require.NoError(t, err)
	assert.Equal(t, "part one: 21\npart two: 525152\n", out)
}

func TestConfigInit_KeepsExistingFile(t *testing.T) {
	path := writeInput(t, "springs.yaml", "strategy: automaton\n")

	_, err := execute(t, "config", "init", "--strategy", "table", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "strategy: automaton\n", string(data))

	_, err = execute(t, "config", "init", "--force", "--strategy", "table", path)
	require.NoError(t, err)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "table", cfg.Strategy)
}
