package ledger

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/luca-patrignani/voting-chain/domain/election"
)

// blockPrefix returns the hash input of a block without its nonce and
// difficulty, which are appended by the caller for every attempt.
func blockPrefix(index int, timestamp float64, txs []election.Transaction, previousHash string) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(index))
	b.WriteString(formatFloat(timestamp))
	b.WriteString(canonicalTransactions(txs))
	b.WriteString(previousHash)
	return b.String()
}

func blockPreimage(index int, timestamp float64, txs []election.Transaction, previousHash string, nonce uint64, difficulty int) string {
	return blockPrefix(index, timestamp, txs, previousHash) +
		strconv.FormatUint(nonce, 10) + strconv.Itoa(difficulty)
}

// canonicalTransactions encodes txs as a JSON array with sorted keys, ", "
// and ": " separators and non-ASCII characters escaped.
func canonicalTransactions(txs []election.Transaction) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, tx := range txs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(`{"payload": `)
		writeObject(&b, tx.Payload)
		b.WriteString(`, "timestamp": `)
		b.WriteString(formatFloat(tx.Timestamp))
		b.WriteString(`, "tx_type": `)
		writeString(&b, string(tx.Type))
		b.WriteByte('}')
	}
	b.WriteByte(']')
	return b.String()
}

func writeObject(b *strings.Builder, m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		writeString(b, k)
		b.WriteString(": ")
		writeValue(b, m[k])
	}
	b.WriteByte('}')
}

func writeValue(b *strings.Builder, v any) {
	switch v := v.(type) {
	case nil:
		b.WriteString("null")
	case string:
		writeString(b, v)
	case bool:
		b.WriteString(strconv.FormatBool(v))
	case int:
		b.WriteString(strconv.Itoa(v))
	case int64:
		b.WriteString(strconv.FormatInt(v, 10))
	case uint64:
		b.WriteString(strconv.FormatUint(v, 10))
	case float64:
		b.WriteString(formatFloat(v))
	case election.Payload:
		writeObject(b, v)
	case map[string]any:
		writeObject(b, v)
	default:
		writeString(b, fmt.Sprint(v))
	}
}

const hexDigits = "0123456789abcdef"

func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r >= 0x20 && r <= 0x7e {
				b.WriteRune(r)
				continue
			}
			if r > 0xffff {
				r1, r2 := utf16.EncodeRune(r)
				writeEscape(b, r1)
				writeEscape(b, r2)
				continue
			}
			writeEscape(b, r)
		}
	}
	b.WriteByte('"')
}

func writeEscape(b *strings.Builder, r rune) {
	b.WriteString(`\u`)
	b.WriteByte(hexDigits[(r>>12)&0xf])
	b.WriteByte(hexDigits[(r>>8)&0xf])
	b.WriteByte(hexDigits[(r>>4)&0xf])
	b.WriteByte(hexDigits[r&0xf])
}

// formatFloat renders f as the shortest decimal that round-trips, always
// with a fraction or an exponent: 1700000000 becomes "1700000000.0".
func formatFloat(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
