package service

import (
	"context"
	"errors"

	"grantrates-backend/dataset"
	"grantrates-backend/faq"
	"grantrates-backend/metrics"
	"grantrates-backend/models"
	"grantrates-backend/search"
)

var (
	ErrCityNotFound  = errors.New("city not found")
	ErrJudgeNotFound = errors.New("judge not found")
)

// CityDetailDefaultSort orders a city's judges when no key is given
const CityDetailDefaultSort = search.SortApprovalHigh

// CatalogService answers search and detail queries over the dataset
type CatalogService struct {
	dataset *dataset.Dataset
	faq     *faq.FAQ
}

// CatalogServiceOption is a functional option for CatalogService
type CatalogServiceOption func(*CatalogService)

// WithDataset sets the dataset
func WithDataset(ds *dataset.Dataset) CatalogServiceOption {
	return func(s *CatalogService) {
		s.dataset = ds
	}
}

// WithFAQ sets the FAQ content
func WithFAQ(f *faq.FAQ) CatalogServiceOption {
	return func(s *CatalogService) {
		s.faq = f
	}
}

// NewCatalogService creates a new catalog service
func NewCatalogService(opts ...CatalogServiceOption) *CatalogService {
	s := &CatalogService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SearchRequest represents a search with its ordering
type SearchRequest struct {
	Term     string
	Sort     search.SortKey
	Language models.Language
}

// SearchResult represents the ordered result cards
type SearchResult struct {
	Term   string             `json:"term"`
	Sort   search.SortKey     `json:"sort"`
	Cities []models.CityCard  `json:"cities"`
	Judges []models.JudgeCard `json:"judges"`
}

// Search filters the dataset by name and sorts both result lists
func (s *CatalogService) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	if s.dataset == nil {
		return nil, errors.New("dataset not set")
	}
	key := req.Sort
	if key == "" {
		key = search.DefaultSortKey
	}

	res := search.Apply(search.Search(req.Term, s.dataset), key, s.dataset, req.Language)

	out := &SearchResult{
		Term:   req.Term,
		Sort:   key,
		Cities: make([]models.CityCard, 0, len(res.Cities)),
		Judges: make([]models.JudgeCard, 0, len(res.Judges)),
	}
	for _, city := range res.Cities {
		m := metrics.CityMetrics(city, s.dataset.JudgesIn(city))
		out.Cities = append(out.Cities, models.CityCard{
			Name:         city,
			JudgeCount:   m.JudgeCount,
			ApprovalRate: m.ApprovalRate,
			Band:         m.Band,
			TotalCases:   m.TotalCases,
		})
	}
	for _, j := range res.Judges {
		approval := metrics.JudgeApprovalRate(j)
		out.Judges = append(out.Judges, models.JudgeCard{
			Name:         j.JudgeName,
			City:         j.City,
			ApprovalRate: approval,
			Band:         metrics.Band(approval),
			TotalCases:   j.TotalDecisions,
		})
	}
	return out, nil
}

// GetCityRequest represents a request for a city's detail view
type GetCityRequest struct {
	Name     string
	Sort     search.SortKey
	Language models.Language
}

// GetCityResult represents a city's metrics and its judges
type GetCityResult struct {
	City   models.DerivedMetric   `json:"city"`
	Sort   search.SortKey         `json:"sort"`
	Judges []models.DerivedMetric `json:"judges"`
}

// GetCity returns the city's aggregate metrics and its judges in sort order.
// The name is matched case-insensitively.
func (s *CatalogService) GetCity(ctx context.Context, req GetCityRequest) (*GetCityResult, error) {
	if s.dataset == nil {
		return nil, errors.New("dataset not set")
	}
	city, ok := s.dataset.FindCity(req.Name)
	if !ok {
		return nil, ErrCityNotFound
	}
	key := req.Sort
	if key == "" {
		key = CityDetailDefaultSort
	}

	group := s.dataset.JudgesIn(city)
	judges := search.SortJudges(s.dataset.JudgesInOrder(city), key, req.Language)

	result := &GetCityResult{
		City:   metrics.CityMetrics(city, group),
		Sort:   key,
		Judges: make([]models.DerivedMetric, 0, len(judges)),
	}
	for _, j := range judges {
		result.Judges = append(result.Judges, metrics.JudgeMetrics(j))
	}
	return result, nil
}

// GetJudgeRequest represents a request for a judge's detail view
type GetJudgeRequest struct {
	Name string
}

// GetJudgeResult represents a judge's metrics
type GetJudgeResult struct {
	Judge models.DerivedMetric `json:"judge"`
}

// GetJudge returns a judge's metrics, matching the name case-insensitively
func (s *CatalogService) GetJudge(ctx context.Context, req GetJudgeRequest) (*GetJudgeResult, error) {
	if s.dataset == nil {
		return nil, errors.New("dataset not set")
	}
	j, ok := s.dataset.FindJudge(req.Name)
	if !ok {
		return nil, ErrJudgeNotFound
	}
	return &GetJudgeResult{Judge: metrics.JudgeMetrics(j)}, nil
}

// GetFAQRequest represents a request for the FAQ page
type GetFAQRequest struct {
	Language models.Language
}

// GetFAQResult represents the localized FAQ
type GetFAQResult struct {
	Page faq.Page
}

// GetFAQ returns the FAQ in the requested language
func (s *CatalogService) GetFAQ(ctx context.Context, req GetFAQRequest) (*GetFAQResult, error) {
	if s.faq == nil {
		return nil, errors.New("faq not set")
	}
	return &GetFAQResult{Page: s.faq.Page(req.Language)}, nil
}

// Counts returns the number of cities and judges in the dataset
func (s *CatalogService) Counts() (cities, judges int) {
	if s.dataset == nil {
		return 0, 0
	}
	return s.dataset.Counts()
}
