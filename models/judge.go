package models

// RawJudgeRecord is a judge record exactly as it appears in the bundled dataset.
// Numeric fields may be strings or numbers; they are parsed once when the
// dataset is loaded.
type RawJudgeRecord struct {
	City                         string `json:"city"`
	JudgeName                    string `json:"judge_name"`
	DeniedPercentage             any    `json:"denied_percentage"`
	GrantedAsylumPercentage      any    `json:"granted_asylum_percentage"`
	GrantedOtherReliefPercentage any    `json:"granted_other_relief_percentage"`
	TotalDecisions               any    `json:"total_decisions"`
}

// JudgeRecord is the decision-outcome summary for a single immigration judge
type JudgeRecord struct {
	City                         string  `json:"city"`
	JudgeName                    string  `json:"judge_name"`
	DeniedPercentage             float64 `json:"denied_percentage"`
	GrantedAsylumPercentage      float64 `json:"granted_asylum_percentage"`
	GrantedOtherReliefPercentage float64 `json:"granted_other_relief_percentage"`
	TotalDecisions               int     `json:"total_decisions"`
}

// CityGroup maps judge names to their records within one city
type CityGroup map[string]JudgeRecord
