package metrics

import (
	"encoding/json"
	"testing"

	"grantrates-backend/models"

	"github.com/google/go-cmp/cmp"
)

func TestParsePercentage(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want float64
	}{
		{"nil", nil, 0},
		{"empty string", "", 0},
		{"plain string", "40", 40},
		{"decimal string", "45.25", 45.25},
		{"percent sign", "12.5%", 12.5},
		{"surrounding text", " approx 7.1 pct", 7.1},
		{"second dot ends literal", "1.2.3", 1.2},
		{"leading dot", ".5", 0.5},
		{"trailing dot", "5.", 5},
		{"only dot", ".", 0},
		{"letters only", "n/a", 0},
		{"minus sign stripped", "-3", 3},
		{"float64", 33.3, 33.3},
		{"int", 12, 12},
		{"json number", json.Number("8.5"), 8.5},
		{"json number exponent", json.Number("4e1"), 40},
		{"json number negative exponent", json.Number("25e-1"), 2.5},
		{"json number sign stripped", json.Number("-7"), 7},
		{"json number out of range", json.Number("1e400"), 0},
		{"unsupported type", []string{"1"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePercentage(tt.raw); got != tt.want {
				t.Errorf("ParsePercentage(%#v) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		raw  any
		want int
	}{
		{"100", 100},
		{"1,234", 1234},
		{json.Number("1e2"), 100},
		{json.Number("100"), 100},
		{"12.9", 12},
		{float64(250), 250},
		{-4.0, 0},
		{"", 0},
		{nil, 0},
		{"none", 0},
	}

	for _, tt := range tests {
		if got := ParseCount(tt.raw); got != tt.want {
			t.Errorf("ParseCount(%#v) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func houstonGroup() models.CityGroup {
	return models.CityGroup{
		"Judge A": {
			City:                         "Houston",
			JudgeName:                    "Judge A",
			GrantedAsylumPercentage:      40,
			GrantedOtherReliefPercentage: 10,
			DeniedPercentage:             50,
			TotalDecisions:               100,
		},
	}
}

func TestHoustonScenario(t *testing.T) {
	group := houstonGroup()
	judge := group["Judge A"]

	if got := JudgeApprovalRate(judge); got != 50 {
		t.Errorf("JudgeApprovalRate = %v, want 50", got)
	}
	if got := CityAverageApprovalRate(group); got != 50 {
		t.Errorf("CityAverageApprovalRate = %v, want 50", got)
	}
	if got := CityTotalCases(group); got != 100 {
		t.Errorf("CityTotalCases = %d, want 100", got)
	}

	want := models.DerivedMetric{
		Kind:                models.MetricKindCity,
		Name:                "Houston",
		JudgeCount:          1,
		AsylumRate:          40,
		OtherReliefRate:     10,
		DeniedRate:          50,
		ApprovalRate:        50,
		Band:                models.RateBandMedium,
		TotalCases:          100,
		GrantedAsylumAmount: 40,
		GrantedOtherAmount:  10,
		DeniedAmount:        50,
	}
	if diff := cmp.Diff(want, CityMetrics("Houston", group)); diff != "" {
		t.Errorf("CityMetrics mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyCityIsZero(t *testing.T) {
	for _, group := range []models.CityGroup{nil, {}} {
		if got := CityAverageApprovalRate(group); got != 0 {
			t.Errorf("CityAverageApprovalRate(empty) = %v, want 0", got)
		}
		if got := CityTotalCases(group); got != 0 {
			t.Errorf("CityTotalCases(empty) = %d, want 0", got)
		}
		m := CityMetrics("Nowhere", group)
		if m.JudgeCount != 0 || m.ApprovalRate != 0 || m.Band != models.RateBandLow {
			t.Errorf("CityMetrics(empty) = %+v", m)
		}
	}
}

func TestCityAveragesAcrossJudges(t *testing.T) {
	group := models.CityGroup{
		"A": {JudgeName: "A", GrantedAsylumPercentage: 20, GrantedOtherReliefPercentage: 10, DeniedPercentage: 70, TotalDecisions: 10},
		"B": {JudgeName: "B", GrantedAsylumPercentage: 60, GrantedOtherReliefPercentage: 0, DeniedPercentage: 40, TotalDecisions: 30},
	}
	got := CityAverages(group)
	want := Averages{Asylum: 40, OtherRelief: 5, Denied: 55, Approval: 45}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CityAverages mismatch (-want +got):\n%s", diff)
	}
	if total := CityTotalCases(group); total != 40 {
		t.Errorf("CityTotalCases = %d, want 40", total)
	}
}

func TestDerivedAmountRoundsHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		total int
		rate  float64
		want  int
	}{
		{100, 40, 40},
		{3, 50, 2},   // 1.5 rounds up
		{5, 10, 1},   // 0.5 rounds up
		{7, 33.3, 2}, // 2.331
		{0, 80, 0},
	}
	for _, tt := range tests {
		if got := DerivedAmount(tt.total, tt.rate); got != tt.want {
			t.Errorf("DerivedAmount(%d, %v) = %d, want %d", tt.total, tt.rate, got, tt.want)
		}
	}
}

func TestBand(t *testing.T) {
	tests := []struct {
		rate float64
		want models.RateBand
	}{
		{90, models.RateBandHigh},
		{67.1, models.RateBandHigh},
		{67, models.RateBandMedium},
		{33, models.RateBandMedium},
		{32.9, models.RateBandLow},
		{0, models.RateBandLow},
	}
	for _, tt := range tests {
		if got := Band(tt.rate); got != tt.want {
			t.Errorf("Band(%v) = %q, want %q", tt.rate, got, tt.want)
		}
	}
}

func TestJudgeApprovalRateMatchesParsedFields(t *testing.T) {
	raw := models.RawJudgeRecord{
		GrantedAsylumPercentage:      "51.1",
		GrantedOtherReliefPercentage: "2.5%",
	}
	j := models.JudgeRecord{
		GrantedAsylumPercentage:      ParsePercentage(raw.GrantedAsylumPercentage),
		GrantedOtherReliefPercentage: ParsePercentage(raw.GrantedOtherReliefPercentage),
	}
	got := JudgeApprovalRate(j)
	if got < 53.59 || got > 53.61 {
		t.Errorf("JudgeApprovalRate = %v, want 53.6", got)
	}
}
