package corpus

import (
	"encoding/json"
	"testing"
	"time"
)

func parseConv(t *testing.T, jsonStr string) Conversation {
	t.Helper()
	var conv Conversation
	if err := json.Unmarshal([]byte(jsonStr), &conv); err != nil {
		t.Fatalf("parse conversation fixture: %v", err)
	}
	return conv
}

func TestDecode_OrderedTraversal(t *testing.T) {
	conv := parseConv(t, `{
		"title": "deploy chat",
		"create_time": 1721001600,
		"mapping": {
			"root": {"parent": null, "message": {"author": {"role": "user"}, "content": {"content_type": "text", "parts": ["Hello, can you deploy the service for me today?"]}}},
			"a":    {"parent": "root", "message": {"author": {"role": "assistant"}, "content": {"content_type": "text", "parts": ["Deploying the service now, this will take a minute."]}}},
			"b":    {"parent": "a", "message": {"author": {"role": "user"}, "content": {"content_type": "text", "parts": ["Great, thanks for handling the deploy so quickly."]}}}
		}
	}`)

	msgs := Decode(conv, DecodeOptions{})
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}

	wantIDs := []string{"root", "a", "b"}
	for i, id := range wantIDs {
		if msgs[i].NodeID != id {
			t.Errorf("msgs[%d].NodeID = %q, want %q", i, msgs[i].NodeID, id)
		}
		if msgs[i].Depth != i {
			t.Errorf("msgs[%d].Depth = %d, want %d", i, msgs[i].Depth, i)
		}
	}
	if msgs[0].Role != "user" || msgs[1].Role != "assistant" {
		t.Errorf("roles = %q, %q; want user, assistant", msgs[0].Role, msgs[1].Role)
	}
}

func TestDecode_ParentBeforeChild(t *testing.T) {
	// Branching tree: root has two subtrees, each two levels deep.
	conv := parseConv(t, `{
		"title": "branches",
		"mapping": {
			"root": {"parent": null, "message": {"author": {"role": "user"}, "content": {"parts": ["The root message of this small branching test tree."]}}},
			"a":    {"parent": "root", "message": {"author": {"role": "assistant"}, "content": {"parts": ["First branch reply under the root, left side."]}}},
			"a1":   {"parent": "a", "message": {"author": {"role": "user"}, "content": {"parts": ["Deeper message under the first branch reply."]}}},
			"b":    {"parent": "root", "message": {"author": {"role": "assistant"}, "content": {"parts": ["Second branch reply under the root, right side."]}}},
			"b1":   {"parent": "b", "message": {"author": {"role": "user"}, "content": {"parts": ["Deeper message under the second branch reply."]}}}
		}
	}`)

	msgs := Decode(conv, DecodeOptions{})
	if len(msgs) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(msgs))
	}

	pos := make(map[string]int, len(msgs))
	for i, m := range msgs {
		pos[m.NodeID] = i
	}
	for child, parent := range map[string]string{"a": "root", "a1": "a", "b": "root", "b1": "b"} {
		if pos[parent] >= pos[child] {
			t.Errorf("parent %q at %d does not precede child %q at %d", parent, pos[parent], child, pos[child])
		}
	}
	// Siblings keep document order.
	if pos["a"] >= pos["b"] {
		t.Errorf("sibling order lost: a at %d, b at %d", pos["a"], pos["b"])
	}
}

func TestDecode_SkipsNodesWithoutMessage(t *testing.T) {
	conv := parseConv(t, `{
		"title": "gaps",
		"mapping": {
			"root": {"parent": null},
			"a":    {"parent": "root", "message": {"author": {"role": "user"}, "content": {"parts": ["Only this node carries an actual message payload."]}}},
			"b":    {"parent": "a", "message": {"author": {"role": ""}, "content": {"parts": ["Missing role means this one is dropped too."]}}},
			"c":    {"parent": "b", "message": {"author": {"role": "assistant"}, "content": {"parts": []}}}
		}
	}`)

	msgs := Decode(conv, DecodeOptions{})
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].NodeID != "a" {
		t.Errorf("kept node = %q, want a", msgs[0].NodeID)
	}
	// The empty root still anchors the walk: its child was reached.
	if msgs[0].Depth != 1 {
		t.Errorf("depth = %d, want 1", msgs[0].Depth)
	}
}

func TestDecode_MinLength(t *testing.T) {
	conv := parseConv(t, `{
		"title": "lengths",
		"mapping": {
			"m1": {"parent": null, "message": {"author": {"role": "user"}, "content": {"parts": ["exactly twenty chars"]}}},
			"m2": {"parent": "m1", "message": {"author": {"role": "user"}, "content": {"parts": ["this text has 25 letters!"]}}},
			"m3": {"parent": "m2", "message": {"author": {"role": "user"}, "content": {"parts": ["nineteen chars long"]}}}
		}
	}`)

	msgs := Decode(conv, DecodeOptions{MinLength: 20})
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages at min length 20, got %d", len(msgs))
	}
	if msgs[0].NodeID != "m1" || msgs[1].NodeID != "m2" {
		t.Errorf("kept nodes = %q, %q; want m1, m2", msgs[0].NodeID, msgs[1].NodeID)
	}
}

func TestDecode_UnresolvedParentSkipped(t *testing.T) {
	conv := parseConv(t, `{
		"title": "orphan",
		"mapping": {
			"root":   {"parent": null, "message": {"author": {"role": "user"}, "content": {"parts": ["A reachable message hanging off the real root."]}}},
			"orphan": {"parent": "ghost", "message": {"author": {"role": "user"}, "content": {"parts": ["This node points at a parent that does not exist."]}}}
		}
	}`)

	msgs := Decode(conv, DecodeOptions{})
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].NodeID != "root" {
		t.Errorf("kept node = %q, want root", msgs[0].NodeID)
	}
}

func TestDecode_CycleTerminates(t *testing.T) {
	conv := parseConv(t, `{
		"title": "corrupt",
		"mapping": {
			"root": {"parent": null, "message": {"author": {"role": "user"}, "content": {"parts": ["The only reachable message in this corrupt export."]}}},
			"x":    {"parent": "y", "message": {"author": {"role": "user"}, "content": {"parts": ["Half of a two-node parent cycle, unreachable."]}}},
			"y":    {"parent": "x", "message": {"author": {"role": "user"}, "content": {"parts": ["Other half of the two-node parent cycle."]}}}
		}
	}`)

	msgs := Decode(conv, DecodeOptions{})
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].NodeID != "root" {
		t.Errorf("kept node = %q, want root", msgs[0].NodeID)
	}
}

func TestDecode_TimestampFallback(t *testing.T) {
	conv := parseConv(t, `{
		"title": "times",
		"create_time": 1721001600,
		"mapping": {
			"own":  {"parent": null, "message": {"author": {"role": "user"}, "content": {"parts": ["This message carries its own creation timestamp."]}, "create_time": 1721088000}},
			"none": {"parent": "own", "message": {"author": {"role": "user"}, "content": {"parts": ["This message inherits the conversation timestamp."]}}}
		}
	}`)

	msgs := Decode(conv, DecodeOptions{})
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if got := msgs[0].Timestamp; !got.Equal(time.Unix(1721088000, 0)) {
		t.Errorf("own timestamp = %v, want 2024-07-16", got)
	}
	if got := msgs[1].Timestamp; !got.Equal(time.Unix(1721001600, 0)) {
		t.Errorf("fallback timestamp = %v, want conversation create_time", got)
	}
}

func TestFlattenParts(t *testing.T) {
	tests := []struct {
		name  string
		parts string
		want  string
	}{
		{"plain strings", `["hello", "world"]`, "hello world"},
		{"object with text", `[{"text": "from text field"}]`, "from text field"},
		{"object with string content", `[{"content": "from content field"}]`, "from content field"},
		{"object without text", `[{"content": {"nested": true}}]`, ""},
		{"mixed", `["lead", {"text": "mid"}, {"content": {"x": 1}}, "tail"]`, "lead mid tail"},
		{"empty string part", `["", "kept"]`, "kept"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var parts []json.RawMessage
			if err := json.Unmarshal([]byte(tt.parts), &parts); err != nil {
				t.Fatalf("parse parts fixture: %v", err)
			}
			if got := FlattenParts(parts); got != tt.want {
				t.Errorf("FlattenParts = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilterRole(t *testing.T) {
	msgs := []OrderedMessage{
		{NodeID: "1", Role: "user"},
		{NodeID: "2", Role: "assistant"},
		{NodeID: "3", Role: "user"},
		{NodeID: "4", Role: "system"},
	}

	users := FilterRole(msgs, "user")
	if len(users) != 2 || users[0].NodeID != "1" || users[1].NodeID != "3" {
		t.Errorf("FilterRole(user) = %v", users)
	}

	all := FilterRole(msgs, "")
	if len(all) != 4 {
		t.Errorf("empty role should keep all, got %d", len(all))
	}
}
