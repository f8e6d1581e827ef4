package corpus

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"
)

// DecodeOptions controls the decoder's output filter.
type DecodeOptions struct {
	// MinLength drops messages whose flattened text is shorter than this
	// many characters. Zero keeps everything.
	MinLength int
}

// Decode turns one conversation record into the ordered message sequence.
// It builds a children-by-parent index in one pass, then walks depth-first
// from every root in mapping document order. Nodes with no message, no
// role, or no extractable text are skipped; so are nodes whose parent
// reference does not resolve within the mapping.
func Decode(conv Conversation, opts DecodeOptions) []OrderedMessage {
	ids := conv.Mapping.IDs()
	if len(ids) == 0 {
		return nil
	}

	children := make(map[string][]string, len(ids))
	var roots []string
	for _, id := range ids {
		node, _ := conv.Mapping.Get(id)
		if node.Parent == nil || *node.Parent == "" {
			roots = append(roots, id)
			continue
		}
		if _, ok := conv.Mapping.Get(*node.Parent); !ok {
			continue // unreachable: parent id missing from the mapping
		}
		children[*node.Parent] = append(children[*node.Parent], id)
	}

	convTime := epochTime(conv.CreateTime)
	visited := make(map[string]bool, len(ids))
	var out []OrderedMessage

	var walk func(id string, depth int)
	walk = func(id string, depth int) {
		if visited[id] {
			return // cycle in a corrupt export; drop the repeat, not the decode
		}
		visited[id] = true

		node, _ := conv.Mapping.Get(id)
		if msg, ok := decodeNode(id, node, convTime, depth, opts.MinLength); ok {
			out = append(out, msg)
		}

		for _, child := range children[id] {
			walk(child, depth+1)
		}
	}

	for _, root := range roots {
		walk(root, 0)
	}
	return out
}

// decodeNode flattens a node's message into an OrderedMessage, reporting
// whether the node passed the filters. A message's own create_time wins;
// the conversation's creation time is the fallback.
func decodeNode(id string, node Node, convTime time.Time, depth, minLen int) (OrderedMessage, bool) {
	if node.Message == nil {
		return OrderedMessage{}, false
	}
	msg := node.Message
	if msg.Author.Role == "" {
		return OrderedMessage{}, false
	}

	text := FlattenParts(msg.Content.Parts)
	if text == "" || textLen(text) < minLen {
		return OrderedMessage{}, false
	}

	ts := epochTime(msg.CreateTime)
	if ts.IsZero() {
		ts = convTime
	}

	return OrderedMessage{
		NodeID:    id,
		Role:      msg.Author.Role,
		Text:      text,
		Timestamp: ts,
		Depth:     depth,
	}, true
}

// FilterRole keeps only messages with the given role. It is a pure
// post-filter over decoder output.
func FilterRole(msgs []OrderedMessage, role string) []OrderedMessage {
	if role == "" {
		return msgs
	}
	var out []OrderedMessage
	for _, m := range msgs {
		if m.Role == role {
			out = append(out, m)
		}
	}
	return out
}

// FlattenParts joins the extractable text of each content fragment with
// single spaces. Fragments without usable text contribute nothing.
func FlattenParts(parts []json.RawMessage) string {
	var texts []string
	for _, p := range parts {
		if t := partText(p); t != "" {
			texts = append(texts, t)
		}
	}
	return strings.Join(texts, " ")
}

// partText pulls the text out of one content fragment: a plain string, or
// an object carrying a "text" or string "content" field.
func partText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var obj struct {
		Text    string          `json:"text"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	if obj.Text != "" {
		return obj.Text
	}

	var inner string
	if err := json.Unmarshal(obj.Content, &inner); err == nil {
		return inner
	}
	return ""
}

// textLen counts characters, not bytes; the export is unicode text.
func textLen(s string) int {
	return utf8.RuneCountInString(s)
}
