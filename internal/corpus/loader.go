package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Corpus is the full ordered collection of conversation records under
// analysis, plus a count of records dropped at parse time.
type Corpus struct {
	Conversations []Conversation
	Skipped       int
}

// Load reads and parses a conversations export file. An unreadable or
// unparsable file is fatal; individually malformed records are dropped and
// counted on the returned corpus.
func Load(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes an export document: a JSON array of conversation records.
func Parse(r io.Reader) (*Corpus, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}

	c := &Corpus{}
	for _, rec := range raw {
		var conv Conversation
		if err := json.Unmarshal(rec, &conv); err != nil {
			c.Skipped++
			continue
		}
		c.Conversations = append(c.Conversations, conv)
	}
	return c, nil
}
