package models

// MetricKind identifies what a DerivedMetric was computed for
type MetricKind string

const (
	MetricKindJudge MetricKind = "judge"
	MetricKindCity  MetricKind = "city"
)

// RateBand buckets an approval rate for display
type RateBand string

const (
	RateBandHigh   RateBand = "high"
	RateBandMedium RateBand = "medium"
	RateBandLow    RateBand = "low"
)

// DerivedMetric is a read-only aggregate recomputed on every request.
// For a judge the rates are the judge's own; for a city they are the
// arithmetic means across the city's judges.
type DerivedMetric struct {
	Kind       MetricKind `json:"kind"`
	Name       string     `json:"name"`
	City       string     `json:"city,omitempty"`
	JudgeCount int        `json:"judge_count,omitempty"`

	AsylumRate      float64  `json:"asylum_rate"`
	OtherReliefRate float64  `json:"other_relief_rate"`
	DeniedRate      float64  `json:"denied_rate"`
	ApprovalRate    float64  `json:"approval_rate"`
	Band            RateBand `json:"band"`

	TotalCases          int `json:"total_cases"`
	GrantedAsylumAmount int `json:"granted_asylum_amount"`
	GrantedOtherAmount  int `json:"granted_other_amount"`
	DeniedAmount        int `json:"denied_amount"`
}
