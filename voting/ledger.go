package voting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/luca-patrignani/voting-chain/domain/election"
	"github.com/luca-patrignani/voting-chain/ledger"
)

// MaxDifficulty is the largest supported difficulty: a hash has 64 hex
// characters.
const MaxDifficulty = 64

var ErrInvalidDifficulty = errors.New("invalid difficulty")

// Ledger is the voting state machine: a proof-of-work chain plus the voter
// and candidate lookup tables derived from it.
type Ledger struct {
	mu         sync.Mutex // Serialises check, mine, append and apply
	difficulty int
	clock      election.Clock
	factory    election.Factory
	chain      *ledger.Blockchain
	registry   *election.Registry
	logger     *slog.Logger
}

// New creates a ledger whose chain holds a freshly mined genesis block.
func New(difficulty int, opts ...Option) (*Ledger, error) {
	if difficulty < 1 || difficulty > MaxDifficulty {
		return nil, fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidDifficulty, difficulty, MaxDifficulty)
	}
	o := defaultOptions()
	for _, opt := range opts {
		o = opt(o)
	}

	factory := election.Factory{Clock: o.clock}
	genesis := ledger.MineBlock(0, []election.Transaction{factory.Genesis()}, ledger.ZeroHash, difficulty, o.clock())
	chain, err := ledger.NewBlockchain(genesis)
	if err != nil {
		return nil, fmt.Errorf("failed to create genesis block: %w", err)
	}
	o.logger.Info("genesis block mined", "hash", genesis.Hash, "nonce", genesis.Nonce, "difficulty", difficulty)

	return &Ledger{
		difficulty: difficulty,
		clock:      o.clock,
		factory:    factory,
		chain:      chain,
		registry:   election.NewRegistry(),
		logger:     o.logger,
	}, nil
}

// AddVoter registers a voter. ID and name are trimmed first.
func (l *Ledger) AddVoter(ctx context.Context, id, name string) (election.Voter, error) {
	id, name = strings.TrimSpace(id), strings.TrimSpace(name)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := election.CheckVoterRegistration(l.registry, id, name); err != nil {
		l.logger.Debug("voter rejected", "voter_id", id, "err", err)
		return election.Voter{}, err
	}
	v := election.Voter{VoterID: id, Name: name}
	if err := l.commit(ctx, l.factory.AddVoter(v)); err != nil {
		return election.Voter{}, err
	}
	return v, nil
}

// AddCandidate registers a candidate. ID and name are trimmed first.
func (l *Ledger) AddCandidate(ctx context.Context, id, name string) (election.Candidate, error) {
	id, name = strings.TrimSpace(id), strings.TrimSpace(name)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := election.CheckCandidateRegistration(l.registry, id, name); err != nil {
		l.logger.Debug("candidate rejected", "candidate_id", id, "err", err)
		return election.Candidate{}, err
	}
	c := election.Candidate{CandidateID: id, Name: name}
	if err := l.commit(ctx, l.factory.AddCandidate(c)); err != nil {
		return election.Candidate{}, err
	}
	return c, nil
}

// CastVote records a vote of voterID for candidateID. Both are trimmed
// first.
func (l *Ledger) CastVote(ctx context.Context, voterID, candidateID string) error {
	voterID, candidateID = strings.TrimSpace(voterID), strings.TrimSpace(candidateID)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := election.CheckVote(l.registry, voterID, candidateID); err != nil {
		l.logger.Debug("vote rejected", "voter_id", voterID, "candidate_id", candidateID, "err", err)
		return err
	}
	return l.commit(ctx, l.factory.CastVote(voterID, candidateID))
}

// commit mines tx into a new block, appends it and applies tx to the
// tables. The caller holds l.mu and has already checked tx.
func (l *Ledger) commit(ctx context.Context, tx election.Transaction) error {
	latest, err := l.chain.GetLatest()
	if err != nil {
		return err
	}
	b, err := ledger.MineBlockContext(ctx, latest.Index+1, []election.Transaction{tx}, latest.Hash, l.difficulty, l.clock())
	if err != nil {
		return fmt.Errorf("mining block %d: %w", latest.Index+1, err)
	}
	if err := l.chain.Append(b); err != nil {
		return err
	}
	if err := l.registry.Apply(tx); err != nil {
		// Unreachable while tx was checked under the same lock.
		return fmt.Errorf("applying %s: %w", tx.Type, err)
	}
	l.logger.Info("block appended", "index", b.Index, "tx_type", tx.Type, "nonce", b.Nonce, "hash", b.Hash)
	return nil
}

// ValidateChain verifies hash, proof of work and linkage of every block.
// It returns nil for a valid chain and an *ledger.InvalidBlockError
// otherwise.
func (l *Ledger) ValidateChain() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.chain.Verify(l.difficulty)
}

func (l *Ledger) Difficulty() int { return l.difficulty }

// Len returns the number of blocks, genesis included.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.chain.Len()
}

// Blocks returns a copy of the chain.
func (l *Ledger) Blocks() []ledger.Block {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.chain.Blocks()
}

func (l *Ledger) Voter(id string) (election.Voter, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.registry.Voter(strings.TrimSpace(id))
}

func (l *Ledger) Candidate(id string) (election.Candidate, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.registry.Candidate(strings.TrimSpace(id))
}

// Voters returns all voters sorted by ID.
func (l *Ledger) Voters() []election.Voter {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.registry.Voters()
}

// Candidates returns all candidates sorted by ID.
func (l *Ledger) Candidates() []election.Candidate {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.registry.Candidates()
}

// Tally returns the votes received by each candidate.
func (l *Ledger) Tally() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.registry.Tally()
}

// Rebuild replays every transaction of the chain into a new Registry.
func (l *Ledger) Rebuild() (*election.Registry, error) {
	return election.Replay(Transactions(l.Blocks()))
}

// Transactions flattens the transactions of blocks in chain order.
func Transactions(blocks []ledger.Block) []election.Transaction {
	var txs []election.Transaction
	for _, b := range blocks {
		txs = append(txs, b.Transactions...)
	}
	return txs
}
