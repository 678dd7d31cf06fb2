package dialogue

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"grantrates-backend/content"
	"grantrates-backend/logging"
	"grantrates-backend/models"
	"grantrates-backend/storage"
)

// Library holds one tree per language
type Library struct {
	trees    map[models.Language]*Tree
	fallback models.Language
}

// NewLibrary builds a library from parsed trees. A tree for the default
// language is required since every other language falls back to it.
func NewLibrary(trees ...*Tree) (*Library, error) {
	l := &Library{
		trees:    make(map[models.Language]*Tree, len(trees)),
		fallback: models.DefaultLanguage,
	}
	for _, t := range trees {
		l.trees[t.Language] = t
	}
	if _, ok := l.trees[l.fallback]; !ok {
		return nil, fmt.Errorf("no dialogue tree for default language %s", l.fallback)
	}
	return l, nil
}

// LoadLibrary reads and validates the tree of each language from storage.
// A missing file for a non-default language is skipped with a warning.
func LoadLibrary(ctx context.Context, s storage.Storage, langs []models.Language) (*Library, error) {
	var trees []*Tree
	for _, lang := range langs {
		path := content.DialogueTreePath(string(lang))
		data, err := storage.ReadAll(ctx, s, path)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) && lang != models.DefaultLanguage {
				logging.Warn("No dialogue tree, falling back", "language", lang, "fallback", models.DefaultLanguage)
				continue
			}
			return nil, fmt.Errorf("failed to load dialogue tree %s: %w", path, err)
		}

		t, err := ParseTree(lang, data)
		if err != nil {
			return nil, err
		}
		if unreachable := t.Unreachable(); len(unreachable) > 0 {
			logging.Warn("Dialogue tree has unreachable nodes", "language", lang, "nodes", unreachable)
		}
		logging.Debug("Dialogue tree loaded", "language", lang, "nodes", t.Len())
		trees = append(trees, t)
	}
	return NewLibrary(trees...)
}

// Tree returns the tree for lang, or the default language's tree
func (l *Library) Tree(lang models.Language) *Tree {
	if t, ok := l.trees[lang]; ok {
		return t
	}
	return l.trees[l.fallback]
}

// Languages lists the languages that have their own tree
func (l *Library) Languages() []models.Language {
	out := make([]models.Language, 0, len(l.trees))
	for lang := range l.trees {
		out = append(out, lang)
	}
	slices.Sort(out)
	return out
}
