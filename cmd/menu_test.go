package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"

	"github.com/luca-patrignani/voting-chain/config"
	"github.com/luca-patrignani/voting-chain/domain/election"
	"github.com/luca-patrignani/voting-chain/ledger"
	"github.com/luca-patrignani/voting-chain/voting"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

// scriptedPrompter answers prompts from a fixed list and records them.
type scriptedPrompter struct {
	answers []string
	asked   []string
}

func (p *scriptedPrompter) Ask(prompt string) (string, error) {
	p.asked = append(p.asked, prompt)
	if len(p.answers) == 0 {
		return "", io.EOF
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func newTestMenu(t *testing.T, answers ...string) (*menu, *voting.Ledger, *bytes.Buffer) {
	t.Helper()
	now := time.Unix(1700000000, 0)
	clock := func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	l, err := voting.New(1, voting.WithClock(clock))
	require.NoError(t, err)
	var out bytes.Buffer
	m := newMenu(l, &scriptedPrompter{answers: answers}, &out, slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.spinner = false
	return m, l, &out
}

// TestMenuExit verifies that option 6 ends the loop without error.
func TestMenuExit(t *testing.T) {
	m, l, out := newTestMenu(t, "6")
	require.NoError(t, m.run(context.Background()))
	assert.Contains(t, out.String(), "Goodbye!")
	assert.Equal(t, 1, l.Len())
}

// TestMenuScenario drives a whole session through the menu.
func TestMenuScenario(t *testing.T) {
	m, l, out := newTestMenu(t,
		"1", "C1", "Rose",
		"2", "V1", "Alice",
		"3", " V1 ", "C1",
		"3", "V1", "C1",
		"4",
		"5",
		"6",
	)
	require.NoError(t, m.run(context.Background()))

	s := out.String()
	assert.Contains(t, s, "Candidate 'Rose' (C1) added.")
	assert.Contains(t, s, "Voter 'Alice' (V1) added.")
	assert.Contains(t, s, "Vote cast: V1 -> C1")
	assert.Contains(t, s, election.ErrAlreadyVoted.Error())
	assert.Contains(t, s, "BLOCK #3")
	assert.NotContains(t, s, "BLOCK #4")
	assert.Contains(t, s, "Blockchain is valid.")
	assert.Equal(t, 4, l.Len())
	assert.Equal(t, map[string]int{"C1": 1}, l.Tally())
}

// TestMenuRejectedActionsKeepChain checks that failing actions only print
// an error.
func TestMenuRejectedActionsKeepChain(t *testing.T) {
	m, l, out := newTestMenu(t,
		"2", " ", "Alice",
		"3", "V9", "C9",
		"1", "C1", "Rose",
		"1", "C1", "Lily",
		"6",
	)
	require.NoError(t, m.run(context.Background()))

	s := out.String()
	assert.Contains(t, s, election.ErrEmptyField.Error())
	assert.Contains(t, s, election.ErrUnknownVoter.Error())
	assert.Contains(t, s, election.ErrDuplicateCandidateID.Error())
	assert.Equal(t, 2, l.Len())
}

// TestMenuInvalidChoice verifies that an unknown option re-prompts.
func TestMenuInvalidChoice(t *testing.T) {
	m, _, out := newTestMenu(t, "7", "abc", "6")
	require.NoError(t, m.run(context.Background()))

	assert.Equal(t, 2, strings.Count(out.String(), "invalid choice"))
	p := m.prompt.(*scriptedPrompter)
	assert.Equal(t, []string{"Enter choice (1-6)", "Enter choice (1-6)", "Enter choice (1-6)"}, p.asked)
}

// TestMenuInputClosed verifies that the loop stops when input runs out,
// including in the middle of an action.
func TestMenuInputClosed(t *testing.T) {
	m, l, _ := newTestMenu(t, "2", "V1")
	err := m.run(context.Background())
	assert.True(t, errors.Is(err, io.EOF), "got %v", err)
	assert.Equal(t, 1, l.Len())
}

func TestMenuCancelled(t *testing.T) {
	m, _, _ := newTestMenu(t, "6")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.True(t, errors.Is(m.run(ctx), context.Canceled))
}

// TestRenderBlock checks that every block field and transaction shows up.
func TestRenderBlock(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 30, 45, 0, time.Local)
	tx := election.Factory{Clock: func() time.Time { return now }}.AddCandidate(election.Candidate{CandidateID: "C1", Name: "Zoë"})
	b := ledger.MineBlock(1, []election.Transaction{tx}, ledger.ZeroHash, 1, now)

	s := renderBlock(b)
	assert.Contains(t, s, "BLOCK #1")
	assert.Contains(t, s, "2024-03-01 12:30:45")
	assert.Contains(t, s, b.Hash)
	assert.Contains(t, s, ledger.ZeroHash)
	assert.Contains(t, s, string(election.TxAddCandidate))
	assert.Contains(t, s, `{"candidate_id":"C1","name":"Zoë"}`)
}

func TestRenderTally(t *testing.T) {
	candidates := []election.Candidate{
		{CandidateID: "C1", Name: "Rose"},
		{CandidateID: "C2", Name: "Lily"},
	}
	s := renderTally(candidates, map[string]int{"C1": 2})
	assert.Contains(t, s, "Rose")
	assert.Contains(t, s, "Lily")
	assert.Contains(t, s, "2")
	assert.Contains(t, s, "0")

	assert.Contains(t, renderTally(nil, nil), "No candidates registered.")
}

// runConfig runs the app with args and returns the configuration its
// action would use.
func runConfig(t *testing.T, args ...string) (config.Config, error) {
	t.Helper()
	var cfg config.Config
	app := newApp()
	app.Action = func(c *cli.Context) error {
		var err error
		cfg, err = loadConfig(c)
		return err
	}
	err := app.Run(append([]string{"voting-chain"}, args...))
	return cfg, err
}

// TestFlagsOverrideEnvironment verifies that command line flags win over
// VOTING_ variables.
func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("VOTING_DIFFICULTY", "4")

	cfg, err := runConfig(t)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Difficulty)
	assert.False(t, cfg.Debug)

	cfg, err = runConfig(t, "--difficulty", "2", "--debug")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Difficulty)
	assert.True(t, cfg.Debug)
}

func TestFlagDifficultyValidated(t *testing.T) {
	_, err := runConfig(t, "-d", "9")
	assert.True(t, errors.Is(err, config.ErrInvalidConfig), "got %v", err)
}
