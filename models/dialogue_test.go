package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

func TestMessageJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want string
	}{
		{"plain", Message{Text: "Hello"}, `"Hello"`},
		{"fragments", Message{Fragments: []Fragment{
			{Type: FragmentBold, Text: "Note:"},
			{Type: FragmentLink, Text: "EOIR", URL: "https://www.justice.gov/eoir"},
			{Type: FragmentImage, Src: "/img/court.png", Alt: "court"},
		}}, `[{"type":"bold","text":"Note:"},{"type":"link","text":"EOIR","url":"https://www.justice.gov/eoir"},{"type":"image","src":"/img/court.png","alt":"court"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.msg)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(b) != tt.want {
				t.Errorf("Marshal = %s, want %s", b, tt.want)
			}

			var got Message
			if err := json.Unmarshal(b, &got); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if diff := cmp.Diff(tt.msg, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMessageUnmarshalJSON(t *testing.T) {
	var got Message
	if err := json.Unmarshal([]byte(`["Call ", {"type":"bold","text":"now"}, {"text":"."}]`), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := Message{Fragments: []Fragment{
		{Type: FragmentPlain, Text: "Call "},
		{Type: FragmentBold, Text: "now"},
		{Type: FragmentPlain, Text: "."},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{`42`, `{"text":"x"}`, `[{"type":"video"}]`} {
		var m Message
		if err := json.Unmarshal([]byte(bad), &m); err == nil {
			t.Errorf("Unmarshal(%s) succeeded, want error", bad)
		}
	}
}

func TestMessageYAMLMatchesJSON(t *testing.T) {
	var fromYAML Message
	if err := yaml.Unmarshal([]byte("- \"Call \"\n- {type: bold, text: now}\n"), &fromYAML); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	var fromJSON Message
	if err := json.Unmarshal([]byte(`["Call ", {"type":"bold","text":"now"}]`), &fromJSON); err != nil {
		t.Fatalf("json: %v", err)
	}
	if diff := cmp.Diff(fromYAML, fromJSON); diff != "" {
		t.Errorf("yaml and json decode differently (-yaml +json):\n%s", diff)
	}
}

func TestDialogueSnapshotJSONRoundTrip(t *testing.T) {
	snap := DialogueSnapshot{
		SessionID:     uuid.MustParse("6f1c2a56-3c1e-4d7b-9d4e-2b6f1f0d9a11"),
		Language:      LanguageSpanish,
		State:         DialogueAwaitingInput,
		CurrentNodeID: "start",
		Options:       []DialogueOption{{Label: "Tasas", Next: "rates_intro"}},
		History:       []string{},
		Transcript: []TranscriptEntry{
			{Sender: SenderBot, NodeID: "start", Message: Message{Fragments: []Fragment{{Type: FragmentBold, Text: "Hola"}}}},
			{Sender: SenderUser, Message: Message{Text: "Tasas"}},
		},
	}

	b, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got DialogueSnapshot
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(snap, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
