package words

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"os"
	"strings"

	"github.com/samber/lo"
)

// Source provides the pool of eligible secret words, all normalized to
// lower case and exactly Length letters long.
type Source struct {
	length int
	list   []string
	set    map[string]struct{}
}

// Load reads the word file (one word per line), normalizes entries and
// drops anything that is not exactly length alphabetic letters.
func Load(path string, length int) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word file: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	return NewFromList(lines, length)
}

// NewFromList builds a source from raw entries, applying the same
// normalization and filtering as Load
func NewFromList(entries []string, length int) (*Source, error) {
	cleaned := lo.FilterMap(entries, func(entry string, _ int) (string, bool) {
		word := strings.ToLower(strings.TrimSpace(entry))
		if word == "" {
			return "", false
		}
		if len(word) != length || !isAlpha(word) {
			log.Printf("Skipping word %q: not %d letters", word, length)
			return "", false
		}
		return word, true
	})
	cleaned = lo.Uniq(cleaned)

	if len(cleaned) == 0 {
		return nil, errors.New("word list is empty after filtering")
	}

	set := make(map[string]struct{}, len(cleaned))
	for _, w := range cleaned {
		set[w] = struct{}{}
	}

	return &Source{length: length, list: cleaned, set: set}, nil
}

// Random returns a uniformly random word from the pool
func (s *Source) Random() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(s.list))))
	if err != nil {
		return "", fmt.Errorf("failed to pick random word: %w", err)
	}
	return s.list[n.Int64()], nil
}

// Contains reports whether the normalized word is in the pool
func (s *Source) Contains(word string) bool {
	_, ok := s.set[strings.ToLower(word)]
	return ok
}

// Length returns the fixed word length of the pool
func (s *Source) Length() int {
	return s.length
}

// Count returns the number of words in the pool
func (s *Source) Count() int {
	return len(s.list)
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
