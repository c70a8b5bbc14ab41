package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// StopwordSet holds lowercased stopwords for review-text filtering.
type StopwordSet map[string]struct{}

// NewStopwordSet builds a set from the given words, case-folding each one.
func NewStopwordSet(words ...string) StopwordSet {
	set := make(StopwordSet, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// Contains reports whether token is a stopword. Matching is case-insensitive.
func (s StopwordSet) Contains(token string) bool {
	_, ok := s[strings.ToLower(token)]
	return ok
}

// LoadStopwords reads a newline-delimited UTF-8 stopword list.
func LoadStopwords(path string) (StopwordSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stopword list: %w", err)
	}
	defer file.Close()

	set := make(StopwordSet)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if word == "" {
			continue
		}
		set[strings.ToLower(word)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stopword list: %w", err)
	}
	return set, nil
}
