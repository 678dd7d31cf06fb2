// Package search filters and orders the judge and city universe.
package search

import (
	"strings"

	"grantrates-backend/dataset"
	"grantrates-backend/models"
)

// Results is the outcome of a search: matching cities and judges, each list
// independent of the other
type Results struct {
	Cities []string             `json:"cities"`
	Judges []models.JudgeRecord `json:"judges"`
}

// Search matches term against city and judge names, case-insensitively.
// A blank term returns the whole universe in dataset order.
func Search(term string, ds *dataset.Dataset) Results {
	cities := ds.AllCities()
	judges := ds.AllJudges()

	term = strings.TrimSpace(term)
	if term == "" {
		return Results{Cities: cities, Judges: nonNil(judges)}
	}

	needle := strings.ToLower(term)
	res := Results{
		Cities: make([]string, 0),
		Judges: make([]models.JudgeRecord, 0),
	}
	for _, city := range cities {
		if strings.Contains(strings.ToLower(city), needle) {
			res.Cities = append(res.Cities, city)
		}
	}
	for _, j := range judges {
		if strings.Contains(strings.ToLower(j.JudgeName), needle) {
			res.Judges = append(res.Judges, j)
		}
	}
	return res
}

func nonNil(judges []models.JudgeRecord) []models.JudgeRecord {
	if judges == nil {
		return []models.JudgeRecord{}
	}
	return judges
}
