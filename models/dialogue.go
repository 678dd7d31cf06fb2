package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// FragmentType is the kind of a rich message fragment
type FragmentType string

const (
	FragmentPlain FragmentType = "plain"
	FragmentBold  FragmentType = "bold"
	FragmentLink  FragmentType = "link"
	FragmentImage FragmentType = "image"
)

// Fragment is one typed piece of a dialogue message
type Fragment struct {
	Type FragmentType `json:"type" yaml:"type"`
	Text string       `json:"text,omitempty" yaml:"text,omitempty"`
	URL  string       `json:"url,omitempty" yaml:"url,omitempty"`
	Src  string       `json:"src,omitempty" yaml:"src,omitempty"`
	Alt  string       `json:"alt,omitempty" yaml:"alt,omitempty"`
}

// UnmarshalYAML accepts either a bare string (plain text) or a typed mapping
func (f *Fragment) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		f.Type = FragmentPlain
		return value.Decode(&f.Text)
	}

	type rawFragment Fragment
	var raw rawFragment
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch raw.Type {
	case FragmentPlain, FragmentBold, FragmentLink, FragmentImage:
	case "":
		raw.Type = FragmentPlain
	default:
		return fmt.Errorf("line %d: unknown fragment type %q", value.Line, raw.Type)
	}
	*f = Fragment(raw)
	return nil
}

// UnmarshalJSON accepts the same shapes as UnmarshalYAML
func (f *Fragment) UnmarshalJSON(b []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(b), []byte(`"`)) {
		f.Type = FragmentPlain
		return json.Unmarshal(b, &f.Text)
	}

	type rawFragment Fragment
	var raw rawFragment
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch raw.Type {
	case FragmentPlain, FragmentBold, FragmentLink, FragmentImage:
	case "":
		raw.Type = FragmentPlain
	default:
		return fmt.Errorf("unknown fragment type %q", raw.Type)
	}
	*f = Fragment(raw)
	return nil
}

// MarshalYAML writes plain fragments back as bare strings
func (f Fragment) MarshalYAML() (any, error) {
	if f.Type == FragmentPlain {
		return f.Text, nil
	}
	type rawFragment Fragment
	return rawFragment(f), nil
}

// Message is the content of a dialogue node: plain text or a list of fragments
type Message struct {
	Text      string
	Fragments []Fragment
}

// UnmarshalYAML decodes a scalar into Text and a sequence into Fragments
func (m *Message) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return value.Decode(&m.Text)
	case yaml.SequenceNode:
		return value.Decode(&m.Fragments)
	default:
		return fmt.Errorf("line %d: message must be a string or a list of fragments", value.Line)
	}
}

// MarshalYAML mirrors UnmarshalYAML
func (m Message) MarshalYAML() (any, error) {
	if len(m.Fragments) > 0 {
		return m.Fragments, nil
	}
	return m.Text, nil
}

// MarshalJSON renders fragment messages as arrays and plain messages as strings
func (m Message) MarshalJSON() ([]byte, error) {
	if len(m.Fragments) > 0 {
		return json.Marshal(m.Fragments)
	}
	return json.Marshal(m.Text)
}

// UnmarshalJSON decodes a string into Text and an array into Fragments
func (m *Message) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*m = Message{}
	switch {
	case bytes.Equal(b, []byte("null")):
		return nil
	case bytes.HasPrefix(b, []byte(`"`)):
		return json.Unmarshal(b, &m.Text)
	case bytes.HasPrefix(b, []byte("[")):
		return json.Unmarshal(b, &m.Fragments)
	default:
		return errors.New("message must be a string or a list of fragments")
	}
}

// IsZero reports whether the message has no content
func (m Message) IsZero() bool {
	return m.Text == "" && len(m.Fragments) == 0
}

// PlainText flattens the message for logs and terminals
func (m Message) PlainText() string {
	if len(m.Fragments) == 0 {
		return m.Text
	}
	var b strings.Builder
	for _, f := range m.Fragments {
		switch f.Type {
		case FragmentImage:
			if f.Alt != "" {
				b.WriteString("[" + f.Alt + "]")
			}
		case FragmentLink:
			b.WriteString(f.Text)
			if f.URL != "" {
				b.WriteString(" (" + f.URL + ")")
			}
		default:
			b.WriteString(f.Text)
		}
	}
	return b.String()
}

// DialogueOption is one selectable answer on a dialogue node
type DialogueOption struct {
	Label string `json:"label" yaml:"label"`
	Next  string `json:"next" yaml:"next"`
}

// DialogueNode is one static node of a language's help-chat tree
type DialogueNode struct {
	ID      string           `json:"id" yaml:"-"`
	Message Message          `json:"message" yaml:"message"`
	Options []DialogueOption `json:"options,omitempty" yaml:"options,omitempty"`
	Next    string           `json:"next,omitempty" yaml:"next,omitempty"`
}

// IsTerminal reports whether the node ends the conversation
func (n DialogueNode) IsTerminal() bool {
	return n.Next == "" && len(n.Options) == 0
}

// Sender identifies who produced a transcript entry
type Sender string

const (
	SenderBot  Sender = "bot"
	SenderUser Sender = "user"
)

// TranscriptEntry is one message shown in the chat
type TranscriptEntry struct {
	Sender     Sender  `json:"sender"`
	NodeID     string  `json:"node_id,omitempty"`
	Message    Message `json:"message"`
	Emphasized bool    `json:"emphasized,omitempty"`
}

// DialogueState is the state of a dialogue session
type DialogueState string

const (
	DialogueIdle          DialogueState = "idle"
	DialogueAwaitingInput DialogueState = "awaiting_input"
	DialogueAdvancing     DialogueState = "advancing"
	DialogueTerminal      DialogueState = "terminal"
)

// DialogueSnapshot is a read-only copy of a session for rendering
type DialogueSnapshot struct {
	SessionID     uuid.UUID         `json:"session_id"`
	Language      Language          `json:"language"`
	State         DialogueState     `json:"state"`
	CurrentNodeID string            `json:"current_node_id"`
	Options       []DialogueOption  `json:"options"`
	CanGoBack     bool              `json:"can_go_back"`
	History       []string          `json:"history"`
	Transcript    []TranscriptEntry `json:"transcript"`
}
