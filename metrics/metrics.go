// Package metrics derives grant and denial rates from judge records.
// Nothing here is cached: every value is recomputed from the dataset.
package metrics

import (
	"maps"
	"math"
	"slices"

	"grantrates-backend/models"
)

// Thresholds for RateBand, in percent
const (
	highBandThreshold   = 67
	mediumBandThreshold = 33
)

// JudgeApprovalRate returns asylum% + other relief% for a judge
func JudgeApprovalRate(j models.JudgeRecord) float64 {
	return j.GrantedAsylumPercentage + j.GrantedOtherReliefPercentage
}

// Averages holds the per-judge means for a city
type Averages struct {
	Asylum      float64
	OtherRelief float64
	Denied      float64
	Approval    float64
}

// CityAverages returns the arithmetic mean of each rate across the group.
// An empty group averages to zero.
func CityAverages(group models.CityGroup) Averages {
	if len(group) == 0 {
		return Averages{}
	}
	// Summing in name order keeps the result bit-identical between calls,
	// which the sort engine relies on for ties.
	var sum Averages
	for _, name := range slices.Sorted(maps.Keys(group)) {
		j := group[name]
		sum.Asylum += j.GrantedAsylumPercentage
		sum.OtherRelief += j.GrantedOtherReliefPercentage
		sum.Denied += j.DeniedPercentage
		sum.Approval += JudgeApprovalRate(j)
	}
	n := float64(len(group))
	return Averages{
		Asylum:      sum.Asylum / n,
		OtherRelief: sum.OtherRelief / n,
		Denied:      sum.Denied / n,
		Approval:    sum.Approval / n,
	}
}

// CityAverageApprovalRate is the mean judge approval rate in a city
func CityAverageApprovalRate(group models.CityGroup) float64 {
	return CityAverages(group).Approval
}

// CityTotalCases sums total decisions over the city's judges
func CityTotalCases(group models.CityGroup) int {
	total := 0
	for _, j := range group {
		total += j.TotalDecisions
	}
	return total
}

// DerivedAmount converts a percentage of total cases into a case count.
// Amounts are rounded independently and may not sum to total.
func DerivedAmount(total int, rate float64) int {
	return int(math.Round(float64(total) * rate / 100))
}

// Band classifies an approval rate for display
func Band(rate float64) models.RateBand {
	switch {
	case rate > highBandThreshold:
		return models.RateBandHigh
	case rate >= mediumBandThreshold:
		return models.RateBandMedium
	default:
		return models.RateBandLow
	}
}

// JudgeMetrics builds the derived view of a single judge
func JudgeMetrics(j models.JudgeRecord) models.DerivedMetric {
	approval := JudgeApprovalRate(j)
	return models.DerivedMetric{
		Kind:                models.MetricKindJudge,
		Name:                j.JudgeName,
		City:                j.City,
		AsylumRate:          j.GrantedAsylumPercentage,
		OtherReliefRate:     j.GrantedOtherReliefPercentage,
		DeniedRate:          j.DeniedPercentage,
		ApprovalRate:        approval,
		Band:                Band(approval),
		TotalCases:          j.TotalDecisions,
		GrantedAsylumAmount: DerivedAmount(j.TotalDecisions, j.GrantedAsylumPercentage),
		GrantedOtherAmount:  DerivedAmount(j.TotalDecisions, j.GrantedOtherReliefPercentage),
		DeniedAmount:        DerivedAmount(j.TotalDecisions, j.DeniedPercentage),
	}
}

// CityMetrics builds the derived view of a city from its judges
func CityMetrics(city string, group models.CityGroup) models.DerivedMetric {
	avg := CityAverages(group)
	total := CityTotalCases(group)
	return models.DerivedMetric{
		Kind:                models.MetricKindCity,
		Name:                city,
		JudgeCount:          len(group),
		AsylumRate:          avg.Asylum,
		OtherReliefRate:     avg.OtherRelief,
		DeniedRate:          avg.Denied,
		ApprovalRate:        avg.Approval,
		Band:                Band(avg.Approval),
		TotalCases:          total,
		GrantedAsylumAmount: DerivedAmount(total, avg.Asylum),
		GrantedOtherAmount:  DerivedAmount(total, avg.OtherRelief),
		DeniedAmount:        DerivedAmount(total, avg.Denied),
	}
}
