package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	e "github.com/gartstein/recruitment/internal/recruitment/errors"
	"github.com/gartstein/recruitment/internal/recruitment/events"
	"github.com/gartstein/recruitment/internal/recruitment/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeed = `
contractors:
  - {id: ced, first_name: Cedric, last_name: Anover, hourly_wage: 50}
  - {id: wick, first_name: John, last_name: Wick, hourly_wage: 19}
jobs:
  - {id: eng, title: Data Engineer, in_days: 30, cost: 300000, contractor: ced}
  - {id: net, title: Network Engineer, in_days: 7, cost: 96000}
  - {id: ops, title: DevOps Specialist, in_days: 100, cost: 90000}
`

// execute runs the command tree against a config that silences logging.
func execute(t *testing.T, seedDoc string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "recruitment.yaml")
	cfg := "log:\n  level: error\n"
	if seedDoc != "" {
		seedPath := filepath.Join(dir, "seed.yaml")
		require.NoError(t, os.WriteFile(seedPath, []byte(seedDoc), 0o600))
		cfg += fmt.Sprintf("seed:\n  path: %s\n", seedPath)
	}
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestReport_Views(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		contains    []string
		notContains []string
	}{
		{
			name:     "all",
			args:     []string{"report"},
			contains: []string{"Contractors", "ced - Cedric Anover", "wick - John Wick", "Jobs", "eng - Data Engineer", "3 job(s)"},
		},
		{
			name:        "available",
			args:        []string{"report", "--view", "available"},
			contains:    []string{"Available contractors", "wick - John Wick", "1 contractor(s)"},
			notContains: []string{"Cedric"},
		},
		{
			name:        "assigned",
			args:        []string{"report", "--view", "assigned"},
			contains:    []string{"eng - Data Engineer", string(models.StatusOpenAssigned), "ced - Cedric Anover"},
			notContains: []string{"Network"},
		},
		{
			name:        "unassigned",
			args:        []string{"report", "--view", "unassigned"},
			contains:    []string{"net - Network Engineer", "ops - DevOps Specialist", "2 job(s)"},
			notContains: []string{"Data Engineer"},
		},
		{
			name:        "cost range",
			args:        []string{"report", "--view", "cost", "--min", "90000", "--max", "96000"},
			contains:    []string{"Jobs costing $90000.00 to $96000.00", "net - Network Engineer", "ops - DevOps Specialist"},
			notContains: []string{"Data Engineer"},
		},
		{
			name:     "cost unbounded",
			args:     []string{"report", "--view", "cost"},
			contains: []string{"$0.00 to ∞", "3 job(s)"},
		},
		{
			name:     "empty view",
			args:     []string{"report", "--view", "cost", "--min", "1", "--max", "2"},
			contains: []string{"none"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, testSeed, tt.args...)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestReport_DefaultSeed(t *testing.T) {
	out, err := execute(t, "", "report", "--view", "contractors")

	require.NoError(t, err)
	assert.Contains(t, out, "cAnov - Cedric Anover")
	assert.Contains(t, out, "6 contractor(s)")
}

func TestReport_SeedFlagOverridesConfig(t *testing.T) {
	flagSeed := filepath.Join(t.TempDir(), "other.yaml")
	require.NoError(t, os.WriteFile(flagSeed,
		[]byte("contractors:\n  - {id: solo, first_name: Ada, last_name: Lovelace, hourly_wage: 90}\n"), 0o600))

	out, err := execute(t, testSeed, "report", "--seed", flagSeed)

	require.NoError(t, err)
	assert.Contains(t, out, "solo - Ada Lovelace")
	assert.NotContains(t, out, "Cedric")
}

func TestReport_Errors(t *testing.T) {
	tests := []struct {
		name     string
		seed     string
		args     []string
		sentinel error
		exitCode int
	}{
		{
			name:     "unknown view",
			seed:     testSeed,
			args:     []string{"report", "--view", "everything"},
			sentinel: e.ErrValidation,
			exitCode: 2,
		},
		{
			name:     "inverted cost range",
			seed:     testSeed,
			args:     []string{"report", "--view", "cost", "--min", "10", "--max", "5"},
			sentinel: e.ErrValidation,
			exitCode: 2,
		},
		{
			name:     "seed assigns a busy contractor",
			seed:     testSeed + "  - {title: Second gig, in_days: 3, cost: 1, contractor: ced}\n",
			args:     []string{"report"},
			sentinel: e.ErrConflict,
			exitCode: 5,
		},
		{
			name:     "seed references a missing contractor",
			seed:     "jobs:\n  - {title: T, in_days: 3, cost: 1, contractor: ghost}\n",
			args:     []string{"report"},
			sentinel: e.ErrNotFound,
			exitCode: 3,
		},
		{
			name:     "seed repeats an id",
			seed:     "contractors:\n  - {id: x, first_name: A, last_name: B, hourly_wage: 1}\n  - {id: x, first_name: C, last_name: D, hourly_wage: 1}\n",
			args:     []string{"report"},
			sentinel: e.ErrDuplicateKey,
			exitCode: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.seed, tt.args...)
			require.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.exitCode, ExitCode(err))
		})
	}
}

func TestRoot_BadConfig(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "report"})
	cmd.SetOut(&bytes.Buffer{})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
}

func TestTail_KafkaDisabled(t *testing.T) {
	_, err := execute(t, "", "tail")

	require.ErrorIs(t, err, e.ErrValidation)
	assert.Contains(t, err.Error(), "kafka is disabled")
	assert.Equal(t, 2, ExitCode(err))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{err: nil, expected: 0},
		{err: fmt.Errorf("%w: x", e.ErrValidation), expected: 2},
		{err: fmt.Errorf("%w: x", e.ErrNotFound), expected: 3},
		{err: fmt.Errorf("%w: x", e.ErrDuplicateKey), expected: 4},
		{err: fmt.Errorf("%w: x", e.ErrConflict), expected: 5},
		{err: fmt.Errorf("%w: x", e.ErrIllegalState), expected: 6},
		{err: fmt.Errorf("boom"), expected: 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ExitCode(tt.err), "%v", tt.err)
	}
}

func TestWriteEvent(t *testing.T) {
	at := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	ev := events.Event{
		Type:       events.JobAssigned,
		OccurredAt: at,
		Job: &events.JobPayload{
			ID:           "eng",
			Title:        "Data Engineer",
			Status:       models.StatusOpenAssigned,
			ContractorID: "ced",
		},
		Contractor: &events.ContractorPayload{ID: "ced", FirstName: "Cedric", LastName: "Anover"},
	}

	var buf bytes.Buffer
	writeEvent(&buf, ev)

	assert.Equal(t,
		"2026-03-10T15:30:00Z  job_assigned        eng - Data Engineer [OPEN_ASSIGNED]  ced - Cedric Anover\n",
		buf.String())
}
