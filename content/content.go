// Package content bundles the static dataset, dialogue trees and FAQ into the binary.
package content

import "embed"

// Paths of the bundled files, relative to the content root
const (
	DatasetPath = "data/judge_grant_rates.json"
	FAQPath     = "faq.yaml"
)

// DialogueTreePath returns the path of a language's dialogue tree
func DialogueTreePath(lang string) string {
	return "dialogue/" + lang + ".yaml"
}

//go:embed data/*.json dialogue/*.yaml faq.yaml
var FS embed.FS
