package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/voting-chain/domain/election"
	"github.com/luca-patrignani/voting-chain/ledger"
	"github.com/luca-patrignani/voting-chain/voting"
)

type menu struct {
	ledger  *voting.Ledger
	prompt  Prompter
	out     io.Writer
	logger  *slog.Logger
	spinner bool
}

func newMenu(l *voting.Ledger, p Prompter, out io.Writer, logger *slog.Logger) *menu {
	return &menu{ledger: l, prompt: p, out: out, logger: logger, spinner: true}
}

// run loops over the menu until Exit is chosen or the prompter fails.
func (m *menu) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.printMenu()
		choice, err := m.prompt.Ask("Enter choice (1-6)")
		if err != nil {
			return err
		}
		switch strings.TrimSpace(choice) {
		case "1":
			err = m.addCandidate(ctx)
		case "2":
			err = m.addVoter(ctx)
		case "3":
			err = m.castVote(ctx)
		case "4":
			fmt.Fprint(m.out, renderChain(m.ledger.Blocks()))
			fmt.Fprint(m.out, renderTally(m.ledger.Candidates(), m.ledger.Tally()))
		case "5":
			m.validate()
		case "6":
			fmt.Fprint(m.out, pterm.Info.Sprintln("Goodbye!"))
			return nil
		default:
			m.fail(errors.New("invalid choice, please use 1-6"))
		}
		if err != nil {
			return err
		}
	}
}

func (m *menu) printMenu() {
	items := []pterm.BulletListItem{
		{Level: 0, Text: "1. Add Candidate"},
		{Level: 0, Text: "2. Add Voter"},
		{Level: 0, Text: "3. Cast Vote"},
		{Level: 0, Text: "4. Print Blockchain"},
		{Level: 0, Text: "5. Validate Chain"},
		{Level: 0, Text: "6. Exit"},
	}
	s, _ := pterm.DefaultBulletList.WithItems(items).Srender()
	fmt.Fprintln(m.out, s)
}

// ask collects one answer per prompt, stopping at the first error.
func (m *menu) ask(prompts ...string) ([]string, error) {
	answers := make([]string, len(prompts))
	for i, p := range prompts {
		a, err := m.prompt.Ask(p)
		if err != nil {
			return nil, err
		}
		answers[i] = a
	}
	return answers, nil
}

func (m *menu) addCandidate(ctx context.Context) error {
	a, err := m.ask("Candidate ID", "Candidate Name")
	if err != nil {
		return err
	}
	var c election.Candidate
	err = m.mine(func() (err error) {
		c, err = m.ledger.AddCandidate(ctx, a[0], a[1])
		return err
	})
	if err != nil {
		m.fail(err)
		return nil
	}
	fmt.Fprint(m.out, pterm.Success.Sprintfln("Candidate '%s' (%s) added.", c.Name, c.CandidateID))
	return nil
}

func (m *menu) addVoter(ctx context.Context) error {
	a, err := m.ask("Voter ID", "Voter Name")
	if err != nil {
		return err
	}
	var v election.Voter
	err = m.mine(func() (err error) {
		v, err = m.ledger.AddVoter(ctx, a[0], a[1])
		return err
	})
	if err != nil {
		m.fail(err)
		return nil
	}
	fmt.Fprint(m.out, pterm.Success.Sprintfln("Voter '%s' (%s) added.", v.Name, v.VoterID))
	return nil
}

func (m *menu) castVote(ctx context.Context) error {
	a, err := m.ask("Voter ID", "Candidate ID")
	if err != nil {
		return err
	}
	err = m.mine(func() error {
		return m.ledger.CastVote(ctx, a[0], a[1])
	})
	if err != nil {
		m.fail(err)
		return nil
	}
	fmt.Fprint(m.out, pterm.Success.Sprintfln("Vote cast: %s -> %s", strings.TrimSpace(a[0]), strings.TrimSpace(a[1])))
	return nil
}

func (m *menu) validate() {
	err := m.ledger.ValidateChain()
	var invalid *ledger.InvalidBlockError
	switch {
	case err == nil:
		fmt.Fprint(m.out, pterm.Success.Sprintln("Blockchain is valid."))
	case errors.As(err, &invalid):
		fmt.Fprint(m.out, pterm.Error.Sprintfln("Invalid block at index %d: %s.", invalid.Index, invalid.Reason))
	default:
		m.fail(err)
	}
}

// mine runs action behind a spinner.
func (m *menu) mine(action func() error) error {
	if !m.spinner {
		return action()
	}
	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Mining block (difficulty %d) ...", m.ledger.Difficulty()))
	err := action()
	if err != nil {
		spinner.Fail("Block not mined")
	} else {
		spinner.Success("Block mined")
	}
	return err
}

func (m *menu) fail(err error) {
	m.logger.Debug("action failed", "err", err)
	fmt.Fprint(m.out, pterm.Error.Sprintln(err.Error()))
}
