package faq

import (
	"context"
	"errors"
	"testing"

	"grantrates-backend/content"
	"grantrates-backend/models"
	"grantrates-backend/storage"

	"github.com/google/go-cmp/cmp"
)

const sampleFAQ = `
labels:
  en: { question: "Q", answer: "A" }
  es: { question: "P", answer: "R" }
entries:
  - id: first
    en:
      question: "What?"
      answer: "This."
    es:
      question: "¿Qué?"
      answer:
        - "Esto, ver "
        - type: link
          text: "aquí"
          url: "https://example.org"
  - id: second
    en:
      question: "Why?"
      answer: "Because."
`

func TestPage(t *testing.T) {
	f, err := Parse([]byte(sampleFAQ))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	es := f.Page(models.LanguageSpanish)
	if diff := cmp.Diff(Labels{Question: "P", Answer: "R"}, es.Labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	if len(es.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(es.Items))
	}
	if es.Items[0].Question != "¿Qué?" || len(es.Items[0].Answer.Fragments) != 2 {
		t.Errorf("first item = %+v", es.Items[0])
	}
	// untranslated entry falls back to English
	if es.Items[1].ID != "second" || es.Items[1].Question != "Why?" {
		t.Errorf("second item = %+v", es.Items[1])
	}

	ht := f.Page(models.LanguageHaitian)
	if ht.Labels.Question != "Q" {
		t.Errorf("ht labels = %+v, want English fallback", ht.Labels)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no entries", "labels: {}\nentries: []\n"},
		{"missing id", "entries:\n  - en: {question: q, answer: a}\n"},
		{"missing english", "entries:\n  - id: x\n    es: {question: q, answer: a}\n"},
		{"empty answer", "entries:\n  - id: x\n    en: {question: q}\n"},
		{"not yaml", "entries: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Error("Parse() expected error")
			}
		})
	}

	if _, err := Parse([]byte("entries: []\n")); !errors.Is(err, ErrNoEntries) {
		t.Errorf("Parse() error = %v, want ErrNoEntries", err)
	}
}

func TestLoadBundledFAQ(t *testing.T) {
	f, err := Load(context.Background(), storage.NewEmbeddedStorage(), content.FAQPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := map[models.Language]Labels{
		models.LanguageEnglish: {Question: "Q", Answer: "A"},
		models.LanguageSpanish: {Question: "P", Answer: "R"},
		models.LanguageHaitian: {Question: "K", Answer: "R"},
	}
	for _, lang := range models.SupportedLanguages {
		page := f.Page(lang)
		if diff := cmp.Diff(want[lang], page.Labels); diff != "" {
			t.Errorf("%s labels mismatch (-want +got):\n%s", lang, diff)
		}
		if len(page.Items) != f.Len() {
			t.Errorf("%s items = %d, want %d", lang, len(page.Items), f.Len())
		}
		for _, item := range page.Items {
			if item.Question == "" || item.Answer.IsZero() {
				t.Errorf("%s item %q incomplete", lang, item.ID)
			}
		}
	}
}
