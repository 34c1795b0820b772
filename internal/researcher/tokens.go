package researcher

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// Notes above this budget get a compression pass before report synthesis.
const compressionTokenBudget = 8000

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

// countTokens counts tokens with the cl100k_base encoding, falling back
// to a 4-chars-per-token estimate if the encoding cannot be loaded.
func countTokens(text string) int {
	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			encoding = enc
		}
	})
	if encoding == nil {
		return len(text) / 4
	}
	return len(encoding.Encode(text, nil, nil))
}

func countNotesTokens(notes []string) int {
	total := 0
	for _, n := range notes {
		total += countTokens(n)
	}
	return total
}
