package search

import "grantrates-backend/models"

// SortOption is one entry of the sort selector
type SortOption struct {
	Key   SortKey `json:"key"`
	Label string  `json:"label"`
}

var sortLabels = map[models.Language]map[SortKey]string{
	models.LanguageEnglish: {
		SortApprovalHigh: "Approval Rate (High to Low)",
		SortApprovalLow:  "Approval Rate (Low to High)",
		SortCasesHigh:    "Amount of Cases (High to Low)",
		SortCasesLow:     "Amount of Cases (Low to High)",
		SortAlphaAsc:     "Alphabetical (A to Z)",
		SortAlphaDesc:    "Reverse Alphabetical (Z to A)",
	},
	models.LanguageSpanish: {
		SortApprovalHigh: "Tasa de Aprobación (Alta a Baja)",
		SortApprovalLow:  "Tasa de Aprobación (Baja a Alta)",
		SortCasesHigh:    "Número de Casos (Alto a Bajo)",
		SortCasesLow:     "Número de Casos (Bajo a Alto)",
		SortAlphaAsc:     "Alfabético (A a Z)",
		SortAlphaDesc:    "Alfabético Inverso (Z a A)",
	},
	models.LanguageHaitian: {
		SortApprovalHigh: "To Apwobasyon (Wo rive Ba)",
		SortApprovalLow:  "To Apwobasyon (Ba rive Wo)",
		SortCasesHigh:    "Kantite Ka (Anpil rive Piti)",
		SortCasesLow:     "Kantite Ka (Piti rive Anpil)",
		SortAlphaAsc:     "Alfabetik (A rive Z)",
		SortAlphaDesc:    "Alfabetik Envès (Z rive A)",
	},
}

// SortOptions returns the sort selector entries in display order, labeled
// for lang. Unknown languages get English labels.
func SortOptions(lang models.Language) []SortOption {
	labels, ok := sortLabels[lang]
	if !ok {
		labels = sortLabels[models.DefaultLanguage]
	}
	out := make([]SortOption, 0, len(sortKeys))
	for _, k := range sortKeys {
		out = append(out, SortOption{Key: k, Label: labels[k]})
	}
	return out
}
