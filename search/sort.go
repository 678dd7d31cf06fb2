package search

import (
	"cmp"
	"errors"
	"slices"

	"grantrates-backend/dataset"
	"grantrates-backend/metrics"
	"grantrates-backend/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering applied to search results
type SortKey string

const (
	SortApprovalHigh SortKey = "approvalHigh"
	SortApprovalLow  SortKey = "approvalLow"
	SortCasesHigh    SortKey = "casesHigh"
	SortCasesLow     SortKey = "casesLow"
	SortAlphaAsc     SortKey = "alphaAsc"
	SortAlphaDesc    SortKey = "alphaDesc"
)

// DefaultSortKey is used when no key is given
const DefaultSortKey = SortAlphaAsc

// ErrUnknownSortKey is returned by ParseSortKey for unrecognized keys
var ErrUnknownSortKey = errors.New("unknown sort key")

var sortKeys = []SortKey{
	SortApprovalHigh,
	SortApprovalLow,
	SortCasesHigh,
	SortCasesLow,
	SortAlphaAsc,
	SortAlphaDesc,
}

// ParseSortKey validates a sort key. An empty string yields DefaultSortKey.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return DefaultSortKey, nil
	}
	for _, k := range sortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", ErrUnknownSortKey
}

// SortJudges returns a new slice of judges ordered by key. Ties keep their
// input order.
func SortJudges(judges []models.JudgeRecord, key SortKey, lang models.Language) []models.JudgeRecord {
	out := slices.Clone(judges)
	if out == nil {
		out = []models.JudgeRecord{}
	}

	var compare func(a, b models.JudgeRecord) int
	switch key {
	case SortApprovalHigh:
		compare = func(a, b models.JudgeRecord) int {
			return cmp.Compare(metrics.JudgeApprovalRate(b), metrics.JudgeApprovalRate(a))
		}
	case SortApprovalLow:
		compare = func(a, b models.JudgeRecord) int {
			return cmp.Compare(metrics.JudgeApprovalRate(a), metrics.JudgeApprovalRate(b))
		}
	case SortCasesHigh:
		compare = func(a, b models.JudgeRecord) int {
			return cmp.Compare(b.TotalDecisions, a.TotalDecisions)
		}
	case SortCasesLow:
		compare = func(a, b models.JudgeRecord) int {
			return cmp.Compare(a.TotalDecisions, b.TotalDecisions)
		}
	case SortAlphaAsc, SortAlphaDesc:
		col := newCollator(lang)
		sign := direction(key)
		compare = func(a, b models.JudgeRecord) int {
			return sign * col.CompareString(a.JudgeName, b.JudgeName)
		}
	default:
		return out
	}

	slices.SortStableFunc(out, compare)
	return out
}

// cityStats are the per-city sort inputs, computed once per sort call
type cityStats struct {
	approval float64
	cases    int
}

// SortCities returns a new slice of city names ordered by key, using the
// dataset to compute city averages and totals. Ties keep their input order.
func SortCities(cities []string, key SortKey, ds *dataset.Dataset, lang models.Language) []string {
	out := slices.Clone(cities)
	if out == nil {
		out = []string{}
	}

	var compare func(a, b string) int
	switch key {
	case SortApprovalHigh, SortApprovalLow, SortCasesHigh, SortCasesLow:
		stats := make(map[string]cityStats, len(out))
		for _, c := range out {
			group := ds.JudgesIn(c)
			stats[c] = cityStats{
				approval: metrics.CityAverageApprovalRate(group),
				cases:    metrics.CityTotalCases(group),
			}
		}
		sign := direction(key)
		if key == SortApprovalHigh || key == SortApprovalLow {
			compare = func(a, b string) int {
				return sign * cmp.Compare(stats[a].approval, stats[b].approval)
			}
		} else {
			compare = func(a, b string) int {
				return sign * cmp.Compare(stats[a].cases, stats[b].cases)
			}
		}
	case SortAlphaAsc, SortAlphaDesc:
		col := newCollator(lang)
		sign := direction(key)
		compare = func(a, b string) int {
			return sign * col.CompareString(a, b)
		}
	default:
		return out
	}

	slices.SortStableFunc(out, compare)
	return out
}

// Apply sorts both lists of a result set by the same key
func Apply(res Results, key SortKey, ds *dataset.Dataset, lang models.Language) Results {
	return Results{
		Cities: SortCities(res.Cities, key, ds, lang),
		Judges: SortJudges(res.Judges, key, lang),
	}
}

// direction is +1 for ascending keys and -1 for descending ones
func direction(key SortKey) int {
	switch key {
	case SortApprovalHigh, SortCasesHigh, SortAlphaDesc:
		return -1
	default:
		return 1
	}
}

// newCollator builds a collator for one sort call; collators are not safe
// for concurrent use.
func newCollator(lang models.Language) *collate.Collator {
	tag, err := language.Parse(string(lang))
	if err != nil {
		tag = language.English
	}
	return collate.New(tag, collate.IgnoreCase)
}
