package main

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/voting-chain/domain/election"
	"github.com/luca-patrignani/voting-chain/ledger"
)

const timeLayout = "2006-01-02 15:04:05"

func formatTime(seconds float64) string {
	return election.Time(seconds).Local().Format(timeLayout)
}

// formatPayload renders a payload as JSON with sorted keys and non-ASCII
// text left as is.
func formatPayload(p election.Payload) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return pterm.Sprint(p)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func renderBlock(b ledger.Block) string {
	pbox := pterm.DefaultBox.WithLeftPadding(2).WithRightPadding(2).WithTitle(pterm.LightYellow("|BLOCK #" + strconv.Itoa(b.Index) + "|")).WithTitleTopLeft()
	s := pterm.Sprintfln("Timestamp : %s", formatTime(b.Timestamp))
	s += pterm.Sprintfln("Prev Hash : %s", b.PreviousHash)
	s += pterm.Sprintfln("Nonce     : %d", b.Nonce)
	s += pterm.Sprintfln("Difficulty: %d", b.Difficulty)
	s += pterm.Sprintfln("Hash      : %s", pterm.LightGreen(b.Hash))
	s += "Transactions:"
	for _, tx := range b.Transactions {
		s += pterm.Sprintf("\n  - %s @ %s -> %s", pterm.LightCyan(tx.Type), formatTime(tx.Timestamp), formatPayload(tx.Payload))
	}
	return pbox.Sprint(s)
}

func renderChain(blocks []ledger.Block) string {
	s := pterm.DefaultSection.Sprint("Blockchain")
	for _, b := range blocks {
		s += renderBlock(b) + "\n"
	}
	return s
}

// renderTally lists every candidate with the votes received, in ID order.
func renderTally(candidates []election.Candidate, tally map[string]int) string {
	if len(candidates) == 0 {
		return pterm.Info.Sprintln("No candidates registered.")
	}
	data := pterm.TableData{{"Candidate ID", "Name", "Votes"}}
	for _, c := range candidates {
		data = append(data, []string{c.CandidateID, c.Name, strconv.Itoa(tally[c.CandidateID])})
	}
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return pterm.Error.Sprintln(err.Error())
	}
	return s + "\n"
}
