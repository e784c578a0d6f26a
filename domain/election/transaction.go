package election

import (
	"math"
	"time"
)

// Clock supplies the current time.
type Clock func() time.Time

// Seconds converts t to float seconds since the epoch, with microsecond
// resolution.
func Seconds(t time.Time) float64 {
	return float64(t.UnixMicro()) / 1e6
}

// Time converts float seconds since the epoch back to a time.Time.
func Time(seconds float64) time.Time {
	return time.UnixMicro(int64(math.Round(seconds * 1e6)))
}

// Factory builds transactions stamped with its clock. A zero Factory uses
// the wall clock.
type Factory struct {
	Clock Clock
}

func (f Factory) now() float64 {
	if f.Clock == nil {
		return Seconds(time.Now())
	}
	return Seconds(f.Clock())
}

// Genesis returns the transaction of the genesis block.
func (f Factory) Genesis() Transaction {
	return Transaction{
		Type:      TxGenesis,
		Payload:   Payload{KeyMessage: GenesisMessage},
		Timestamp: f.now(),
	}
}

// AddVoter records a snapshot of v.
func (f Factory) AddVoter(v Voter) Transaction {
	return Transaction{
		Type: TxAddVoter,
		Payload: Payload{
			KeyVoterID:  v.VoterID,
			KeyName:     v.Name,
			KeyHasVoted: v.HasVoted,
		},
		Timestamp: f.now(),
	}
}

// AddCandidate records a snapshot of c.
func (f Factory) AddCandidate(c Candidate) Transaction {
	return Transaction{
		Type: TxAddCandidate,
		Payload: Payload{
			KeyCandidateID: c.CandidateID,
			KeyName:        c.Name,
		},
		Timestamp: f.now(),
	}
}

// CastVote records a vote of voterID for candidateID.
func (f Factory) CastVote(voterID, candidateID string) Transaction {
	return Transaction{
		Type: TxCastVote,
		Payload: Payload{
			KeyVoterID:     voterID,
			KeyCandidateID: candidateID,
		},
		Timestamp: f.now(),
	}
}

func MakeGenesis() Transaction { return Factory{}.Genesis() }

func MakeAddVoter(v Voter) Transaction { return Factory{}.AddVoter(v) }

func MakeAddCandidate(c Candidate) Transaction { return Factory{}.AddCandidate(c) }

func MakeCastVote(voterID, candidateID string) Transaction {
	return Factory{}.CastVote(voterID, candidateID)
}
