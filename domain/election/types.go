package election

// Voter is a registered voter.
type Voter struct {
	VoterID  string `json:"voter_id"`
	Name     string `json:"name"`
	HasVoted bool   `json:"has_voted"`
}

// Candidate is a registered candidate.
type Candidate struct {
	CandidateID string `json:"candidate_id"`
	Name        string `json:"name"`
}

// TxType identifies the domain event a transaction records.
type TxType string

const (
	TxGenesis      TxType = "GENESIS"
	TxAddVoter     TxType = "ADD_VOTER"
	TxAddCandidate TxType = "ADD_CANDIDATE"
	TxCastVote     TxType = "CAST_VOTE"
)

// GenesisMessage is the payload message of the genesis transaction.
const GenesisMessage = "Voting chain initiated"

// Payload keys.
const (
	KeyVoterID     = "voter_id"
	KeyCandidateID = "candidate_id"
	KeyName        = "name"
	KeyHasVoted    = "has_voted"
	KeyMessage     = "message"
)

// Payload holds the event data of a transaction. Values are strings or
// booleans.
type Payload map[string]any

// Transaction is an immutable record of a domain event.
type Transaction struct {
	Type      TxType  `json:"tx_type"`
	Payload   Payload `json:"payload"`
	Timestamp float64 `json:"timestamp"`
}

// Clone returns a deep copy of the transaction.
func (tx Transaction) Clone() Transaction {
	p := make(Payload, len(tx.Payload))
	for k, v := range tx.Payload {
		p[k] = v
	}
	tx.Payload = p
	return tx
}
