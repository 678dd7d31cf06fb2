// Package faq serves the localized help questions shown in the mobile view.
package faq

import (
	"context"
	"errors"
	"fmt"

	"grantrates-backend/models"
	"grantrates-backend/storage"

	"gopkg.in/yaml.v3"
)

// ErrNoEntries is returned when a document has no questions
var ErrNoEntries = errors.New("faq has no entries")

// Labels are the prefixes shown before questions and answers
type Labels struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Item is one localized question and answer
type Item struct {
	ID       string         `json:"id"`
	Question string         `json:"question" yaml:"question"`
	Answer   models.Message `json:"answer" yaml:"answer"`
}

// Page is the FAQ rendered for one language
type Page struct {
	Language models.Language `json:"language"`
	Labels   Labels          `json:"labels"`
	Items    []Item          `json:"items"`
}

type document struct {
	Labels  map[models.Language]Labels `yaml:"labels"`
	Entries []entry                    `yaml:"entries"`
}

type entry struct {
	ID           string
	Translations map[models.Language]Item
}

// UnmarshalYAML reads an entry as an id plus one mapping per language
func (e *entry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: faq entry must be a mapping", value.Line)
	}
	e.Translations = make(map[models.Language]Item)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i].Value, value.Content[i+1]
		if key == "id" {
			if err := val.Decode(&e.ID); err != nil {
				return err
			}
			continue
		}
		var item Item
		if err := val.Decode(&item); err != nil {
			return fmt.Errorf("entry %q language %s: %w", e.ID, key, err)
		}
		e.Translations[models.Language(key)] = item
	}
	if e.ID == "" {
		return fmt.Errorf("line %d: faq entry has no id", value.Line)
	}
	return nil
}

// FAQ is the parsed, immutable set of entries in every language
type FAQ struct {
	labels  map[models.Language]Labels
	entries []entry
}

// Parse decodes a FAQ document
func Parse(data []byte) (*FAQ, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse faq: %w", err)
	}
	if len(doc.Entries) == 0 {
		return nil, ErrNoEntries
	}
	for _, e := range doc.Entries {
		item, ok := e.Translations[models.DefaultLanguage]
		if !ok || item.Question == "" || item.Answer.IsZero() {
			return nil, fmt.Errorf("faq entry %q has no complete %s translation", e.ID, models.DefaultLanguage)
		}
	}
	return &FAQ{labels: doc.Labels, entries: doc.Entries}, nil
}

// Load reads and parses the FAQ at path
func Load(ctx context.Context, s storage.Storage, path string) (*FAQ, error) {
	data, err := storage.ReadAll(ctx, s, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load faq: %w", err)
	}
	return Parse(data)
}

// Page returns every entry in lang, using the default language for entries
// and labels that have no translation
func (f *FAQ) Page(lang models.Language) Page {
	labels, ok := f.labels[lang]
	if !ok {
		labels = f.labels[models.DefaultLanguage]
	}

	items := make([]Item, 0, len(f.entries))
	for _, e := range f.entries {
		item, ok := e.Translations[lang]
		if !ok {
			item = e.Translations[models.DefaultLanguage]
		}
		item.ID = e.ID
		items = append(items, item)
	}
	return Page{Language: lang, Labels: labels, Items: items}
}

// Len returns the number of entries
func (f *FAQ) Len() int {
	return len(f.entries)
}
