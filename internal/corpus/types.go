package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Conversation is one exported conversation record: a title, an optional
// creation time (epoch seconds), and the tree-shaped node mapping.
type Conversation struct {
	Title      string      `json:"title"`
	CreateTime *float64    `json:"create_time"`
	Mapping    NodeMapping `json:"mapping"`
}

// Node is one entry in the mapping: an optional message payload and an
// optional reference to the parent node's id. Nodes with no parent are roots.
type Node struct {
	Parent  *string  `json:"parent"`
	Message *Message `json:"message"`
}

// Message is a node's payload.
type Message struct {
	Author     Author   `json:"author"`
	Content    Content  `json:"content"`
	CreateTime *float64 `json:"create_time"`
}

// Author carries the message role: "user", "assistant", "system", or
// whatever else the export decides to invent.
type Author struct {
	Role string `json:"role"`
}

// Content holds the message's content fragments. Parts stay raw because the
// export mixes plain strings with structured objects in the same array.
type Content struct {
	ContentType string            `json:"content_type"`
	Parts       []json.RawMessage `json:"parts"`
}

// OrderedMessage is the decoder's output unit: one message in traversal
// order with its flattened text.
type OrderedMessage struct {
	NodeID    string
	Role      string
	Text      string
	Timestamp time.Time
	Depth     int
}

// NodeMapping is the conversation's id → node table. The export stores it as
// a JSON object; decoding keeps the document order of the keys so sibling
// and root visiting order is stable across runs.
type NodeMapping struct {
	ids       []string
	nodes     map[string]Node
	malformed int
}

// IDs returns the node ids in document order.
func (m *NodeMapping) IDs() []string { return m.ids }

// Get looks up a node by id.
func (m *NodeMapping) Get(id string) (Node, bool) {
	n, ok := m.nodes[id]
	return n, ok
}

// Len returns the number of decoded nodes.
func (m *NodeMapping) Len() int { return len(m.ids) }

// Malformed returns how many entries were dropped because their value did
// not decode as a node.
func (m *NodeMapping) Malformed() int { return m.malformed }

// UnmarshalJSON decodes the mapping object token by token, preserving key
// order. Entries whose value is not a node are dropped and counted, never
// fatal; a structurally broken document still fails the whole decode.
func (m *NodeMapping) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read mapping: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("mapping is not an object")
	}

	m.nodes = make(map[string]Node)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read mapping key: %w", err)
		}
		id, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("mapping key is not a string")
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("read mapping value: %w", err)
		}
		var n Node
		if err := json.Unmarshal(raw, &n); err != nil {
			m.malformed++
			continue
		}

		if _, seen := m.nodes[id]; !seen {
			m.ids = append(m.ids, id)
		}
		m.nodes[id] = n
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("read mapping end: %w", err)
	}
	return nil
}

// epochTime converts optional epoch seconds to a UTC time. Zero and absent
// both map to the zero time, which temporal passes treat as "no timestamp".
func epochTime(sec *float64) time.Time {
	if sec == nil || *sec == 0 {
		return time.Time{}
	}
	s, frac := math.Modf(*sec)
	return time.Unix(int64(s), int64(frac*1e9)).UTC()
}
