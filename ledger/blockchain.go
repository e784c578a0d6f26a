package ledger

import (
	"fmt"
	"sync"
)

// Blockchain is an append-only sequence of mined blocks.
type Blockchain struct {
	mu     sync.RWMutex // Protects blocks
	blocks []Block
}

// NewBlockchain creates a chain rooted at genesis. The genesis block must
// have index 0, previous hash ZeroHash and a valid hash.
func NewBlockchain(genesis Block) (*Blockchain, error) {
	if genesis.Index != 0 || genesis.PreviousHash != ZeroHash {
		return nil, ErrInvalidGenesis
	}
	if genesis.Hash != genesis.CalculateHash() || !MeetsDifficulty(genesis.Hash, genesis.Difficulty) {
		return nil, fmt.Errorf("%w: bad hash %s", ErrInvalidGenesis, genesis.Hash)
	}
	return &Blockchain{blocks: []Block{genesis.Clone()}}, nil
}

// Append adds a mined block after validating it against the current tip.
//
// Validation ensures:
//   - Index is the current length
//   - Previous hash is the tip's hash
//   - Stored hash matches the recomputed hash and meets the block's difficulty
//
// Thread-safety: This method is safe for concurrent access.
func (bc *Blockchain) Append(b Block) error {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	latest := bc.blocks[len(bc.blocks)-1]
	if b.Index != latest.Index+1 {
		return fmt.Errorf("invalid block: index expected %d, got %d", latest.Index+1, b.Index)
	}
	if b.PreviousHash != latest.Hash {
		return fmt.Errorf("invalid block: prev hash expected %s, got %s", latest.Hash, b.PreviousHash)
	}
	if expected := b.CalculateHash(); b.Hash != expected {
		return fmt.Errorf("invalid block: hash expected %s, got %s", expected, b.Hash)
	}
	if !MeetsDifficulty(b.Hash, b.Difficulty) {
		return fmt.Errorf("invalid block: hash %s does not meet difficulty %d", b.Hash, b.Difficulty)
	}

	bc.blocks = append(bc.blocks, b.Clone())
	return nil
}

// GetLatest returns a copy of the most recently added block.
func (bc *Blockchain) GetLatest() (Block, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if len(bc.blocks) == 0 {
		return Block{}, ErrEmptyChain
	}
	return bc.blocks[len(bc.blocks)-1].Clone(), nil
}

// GetByIndex returns a copy of the block at index.
func (bc *Blockchain) GetByIndex(index int) (Block, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if index < 0 || index >= len(bc.blocks) {
		return Block{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return bc.blocks[index].Clone(), nil
}

func (bc *Blockchain) Len() int {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return len(bc.blocks)
}

// Blocks returns a deep copy of the chain.
func (bc *Blockchain) Blocks() []Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	out := make([]Block, len(bc.blocks))
	for i, b := range bc.blocks {
		out[i] = b.Clone()
	}
	return out
}

// Verify checks the integrity of the whole chain against difficulty. It
// returns nil when the chain is valid and an *InvalidBlockError for the
// first block that is not.
//
// Thread-safety: the scan runs under the read lock, so it sees a
// consistent snapshot.
func (bc *Blockchain) Verify(difficulty int) error {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return ValidateBlocks(bc.blocks, difficulty)
}

// ValidateBlocks checks blocks from the genesis block on. For each block it
// recomputes the hash, checks the proof of work against difficulty and
// checks the link to the previous block (ZeroHash for the genesis block).
func ValidateBlocks(blocks []Block, difficulty int) error {
	if len(blocks) == 0 {
		return ErrEmptyChain
	}
	for i, current := range blocks {
		if current.Hash != current.CalculateHash() {
			return &InvalidBlockError{Index: i, Reason: HashMismatch}
		}
		if !MeetsDifficulty(current.Hash, difficulty) {
			return &InvalidBlockError{Index: i, Reason: ProofOfWorkNotMet}
		}
		previousHash := ZeroHash
		if i > 0 {
			previousHash = blocks[i-1].Hash
		}
		if current.PreviousHash != previousHash {
			return &InvalidBlockError{Index: i, Reason: BrokenLink}
		}
	}
	return nil
}
