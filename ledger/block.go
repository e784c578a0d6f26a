package ledger

import (
	"context"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"go.dedis.ch/kyber/v4/suites"

	"github.com/luca-patrignani/voting-chain/domain/election"
)

// ZeroHash is the previous hash of the genesis block.
var ZeroHash = strings.Repeat("0", 64)

// checkInterval is how many nonces are tried between two context checks.
const checkInterval = 1024

var suite suites.Suite = suites.MustFind("Ed25519")

// Block is a batch of transactions sealed by proof of work.
type Block struct {
	Index        int                    `json:"index"`
	Timestamp    float64                `json:"timestamp"`
	Transactions []election.Transaction `json:"transactions"`
	PreviousHash string                 `json:"previous_hash"`
	Nonce        uint64                 `json:"nonce"`
	Difficulty   int                    `json:"difficulty"`
	Hash         string                 `json:"hash"`
}

// MineBlock seals txs into a new block. The timestamp is taken from now
// once, before the nonce search starts. The search is unbounded.
func MineBlock(index int, txs []election.Transaction, previousHash string, difficulty int, now time.Time) Block {
	b, _ := MineBlockContext(context.Background(), index, txs, previousHash, difficulty, now)
	return b
}

// MineBlockContext is MineBlock with cancellation: the search stops with
// ctx.Err() once ctx is done.
func MineBlockContext(ctx context.Context, index int, txs []election.Transaction, previousHash string, difficulty int, now time.Time) (Block, error) {
	b := Block{
		Index:        index,
		Timestamp:    election.Seconds(now),
		Transactions: cloneTransactions(txs),
		PreviousHash: previousHash,
		Difficulty:   difficulty,
	}

	prefix := blockPrefix(b.Index, b.Timestamp, b.Transactions, b.PreviousHash)
	suffix := strconv.Itoa(difficulty)
	for nonce := uint64(0); ; nonce++ {
		if nonce%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Block{}, err
			}
		}
		hash := sum(prefix + strconv.FormatUint(nonce, 10) + suffix)
		if MeetsDifficulty(hash, difficulty) {
			b.Nonce = nonce
			b.Hash = hash
			return b, nil
		}
	}
}

// CalculateHash recomputes the hash of b from its stored fields.
func (b Block) CalculateHash() string {
	return sum(blockPreimage(b.Index, b.Timestamp, b.Transactions, b.PreviousHash, b.Nonce, b.Difficulty))
}

// Clone returns a deep copy of b.
func (b Block) Clone() Block {
	b.Transactions = cloneTransactions(b.Transactions)
	return b
}

// MeetsDifficulty reports whether hash starts with difficulty '0' characters.
func MeetsDifficulty(hash string, difficulty int) bool {
	if difficulty > len(hash) {
		return false
	}
	for i := 0; i < difficulty; i++ {
		if hash[i] != '0' {
			return false
		}
	}
	return true
}

func sum(preimage string) string {
	h := suite.Hash()
	h.Write([]byte(preimage))
	return hex.EncodeToString(h.Sum(nil))
}

func cloneTransactions(txs []election.Transaction) []election.Transaction {
	if txs == nil {
		return nil
	}
	out := make([]election.Transaction, len(txs))
	for i, tx := range txs {
		out[i] = tx.Clone()
	}
	return out
}
