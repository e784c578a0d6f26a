package main

import "github.com/pterm/pterm"

// Prompter asks the user for one line of input.
type Prompter interface {
	Ask(prompt string) (string, error)
}

type ptermPrompter struct{}

func (ptermPrompter) Ask(prompt string) (string, error) {
	return pterm.DefaultInteractiveTextInput.WithDefaultText(prompt).Show()
}
