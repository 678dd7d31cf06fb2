package models

// CityCard is the summary of a city shown in search results
type CityCard struct {
	Name         string   `json:"name"`
	JudgeCount   int      `json:"judge_count"`
	ApprovalRate float64  `json:"approval_rate"`
	Band         RateBand `json:"band"`
	TotalCases   int      `json:"total_cases"`
}

// JudgeCard is the summary of a judge shown in search results
type JudgeCard struct {
	Name         string   `json:"name"`
	City         string   `json:"city"`
	ApprovalRate float64  `json:"approval_rate"`
	Band         RateBand `json:"band"`
	TotalCases   int      `json:"total_cases"`
}
