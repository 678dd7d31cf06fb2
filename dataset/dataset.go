// Package dataset holds the immutable judge/city dataset loaded at startup.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"grantrates-backend/metrics"
	"grantrates-backend/models"
	"grantrates-backend/storage"
)

// Dataset is the nested {city -> {judge -> record}} mapping with document
// order preserved. It is never mutated after construction and may be shared
// freely between goroutines.
type Dataset struct {
	cities []string
	groups map[string]models.CityGroup
	// judge names per city in document order
	judgeOrder map[string][]string
}

func newDataset() *Dataset {
	return &Dataset{
		groups:     make(map[string]models.CityGroup),
		judgeOrder: make(map[string][]string),
	}
}

// Load reads and decodes the dataset at path from the given storage
func Load(ctx context.Context, s storage.Storage, path string) (*Dataset, error) {
	rc, err := s.Download(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer rc.Close()

	ds, err := Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode dataset %s: %w", path, err)
	}
	return ds, nil
}

// Decode parses a JSON document of the form {city: {judgeName: record}}.
// The token stream is walked by hand so that city and judge order match the
// document.
func Decode(r io.Reader) (*Dataset, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	ds := newDataset()
	for dec.More() {
		city, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		if err := expectDelim(dec, '{'); err != nil {
			return nil, fmt.Errorf("city %q: %w", city, err)
		}
		ds.addCity(city)

		for dec.More() {
			name, err := readKey(dec)
			if err != nil {
				return nil, fmt.Errorf("city %q: %w", city, err)
			}
			var raw models.RawJudgeRecord
			if err := dec.Decode(&raw); err != nil {
				return nil, fmt.Errorf("city %q judge %q: %w", city, name, err)
			}
			ds.addJudge(city, name, raw)
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, fmt.Errorf("city %q: %w", city, err)
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after dataset object")
	}
	return ds, nil
}

// FromRecords groups flat rows by their city column, keeping row order
func FromRecords(rows []models.RawJudgeRecord) *Dataset {
	ds := newDataset()
	for _, raw := range rows {
		ds.addCity(raw.City)
		ds.addJudge(raw.City, raw.JudgeName, raw)
	}
	return ds
}

func (d *Dataset) addCity(city string) {
	if _, ok := d.groups[city]; ok {
		return
	}
	d.cities = append(d.cities, city)
	d.groups[city] = make(models.CityGroup)
}

func (d *Dataset) addJudge(city, key string, raw models.RawJudgeRecord) {
	rec := parseRecord(city, key, raw)
	if _, exists := d.groups[city][key]; !exists {
		d.judgeOrder[city] = append(d.judgeOrder[city], key)
	}
	d.groups[city][key] = rec
}

// parseRecord converts the loosely typed fields. Missing name fields are
// taken from the enclosing keys; the city field itself is trusted as given.
func parseRecord(city, key string, raw models.RawJudgeRecord) models.JudgeRecord {
	rec := models.JudgeRecord{
		City:                         raw.City,
		JudgeName:                    raw.JudgeName,
		DeniedPercentage:             metrics.ParsePercentage(raw.DeniedPercentage),
		GrantedAsylumPercentage:      metrics.ParsePercentage(raw.GrantedAsylumPercentage),
		GrantedOtherReliefPercentage: metrics.ParsePercentage(raw.GrantedOtherReliefPercentage),
		TotalDecisions:               metrics.ParseCount(raw.TotalDecisions),
	}
	if rec.City == "" {
		rec.City = city
	}
	if rec.JudgeName == "" {
		rec.JudgeName = key
	}
	return rec
}

// AllCities returns every city name in document order
func (d *Dataset) AllCities() []string {
	out := make([]string, len(d.cities))
	copy(out, d.cities)
	return out
}

// HasCity reports whether a city is present
func (d *Dataset) HasCity(city string) bool {
	_, ok := d.groups[city]
	return ok
}

// FindCity resolves a city name case-insensitively to its canonical spelling
func (d *Dataset) FindCity(name string) (string, bool) {
	if d.HasCity(name) {
		return name, true
	}
	for _, city := range d.cities {
		if strings.EqualFold(city, name) {
			return city, true
		}
	}
	return "", false
}

// JudgesIn returns the judges of a city. Unknown cities yield an empty group.
func (d *Dataset) JudgesIn(city string) models.CityGroup {
	group, ok := d.groups[city]
	if !ok {
		return models.CityGroup{}
	}
	// callers may not mutate the shared group
	out := make(models.CityGroup, len(group))
	for name, rec := range group {
		out[name] = rec
	}
	return out
}

// JudgesInOrder returns a city's judges as a slice in document order
func (d *Dataset) JudgesInOrder(city string) []models.JudgeRecord {
	names := d.judgeOrder[city]
	out := make([]models.JudgeRecord, 0, len(names))
	for _, name := range names {
		out = append(out, d.groups[city][name])
	}
	return out
}

// AllJudges flattens every city's judges in document order. When a judge
// name appears in more than one city the later record wins, keeping the
// position of the first occurrence.
func (d *Dataset) AllJudges() []models.JudgeRecord {
	index := make(map[string]int)
	var out []models.JudgeRecord
	for _, city := range d.cities {
		for _, name := range d.judgeOrder[city] {
			rec := d.groups[city][name]
			if i, ok := index[name]; ok {
				out[i] = rec
				continue
			}
			index[name] = len(out)
			out = append(out, rec)
		}
	}
	return out
}

// FindJudge looks a judge up by name, ignoring case
func (d *Dataset) FindJudge(name string) (models.JudgeRecord, bool) {
	var (
		found models.JudgeRecord
		ok    bool
	)
	for _, j := range d.AllJudges() {
		if j.JudgeName == name {
			return j, true
		}
		if !ok && strings.EqualFold(j.JudgeName, name) {
			found, ok = j, true
		}
	}
	return found, ok
}

// Counts returns the number of cities and distinct judge names
func (d *Dataset) Counts() (cities, judges int) {
	return len(d.cities), len(d.AllJudges())
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
