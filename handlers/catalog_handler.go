package handlers

import (
	"errors"
	"net/http"

	"grantrates-backend/models"
	"grantrates-backend/search"
	"grantrates-backend/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler handles HTTP requests for search, detail views and the FAQ
type CatalogHandler struct {
	catalogService  *service.CatalogService
	defaultLanguage models.Language
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService, defaultLanguage models.Language) *CatalogHandler {
	if defaultLanguage == "" {
		defaultLanguage = models.DefaultLanguage
	}
	return &CatalogHandler{
		catalogService:  catalogService,
		defaultLanguage: defaultLanguage,
	}
}

// Search handles GET /api/search?q=&sort=&lang=
func (h *CatalogHandler) Search(c *gin.Context) {
	lang, ok := queryLanguage(c, h.defaultLanguage)
	if !ok {
		return
	}
	key, ok := querySortKey(c)
	if !ok {
		return
	}

	result, err := h.catalogService.Search(c.Request.Context(), service.SearchRequest{
		Term:     c.Query("q"),
		Sort:     key,
		Language: lang,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SEARCH_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// SortOptions handles GET /api/sort-options?lang=
func (h *CatalogHandler) SortOptions(c *gin.Context) {
	lang, ok := queryLanguage(c, h.defaultLanguage)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"default": search.DefaultSortKey,
			"options": search.SortOptions(lang),
		},
	})
}

// GetCity handles GET /api/cities/:name?sort=&lang=
func (h *CatalogHandler) GetCity(c *gin.Context) {
	lang, ok := queryLanguage(c, h.defaultLanguage)
	if !ok {
		return
	}
	key, ok := querySortKey(c)
	if !ok {
		return
	}
	if c.Query("sort") == "" {
		key = service.CityDetailDefaultSort
	}

	result, err := h.catalogService.GetCity(c.Request.Context(), service.GetCityRequest{
		Name:     c.Param("name"),
		Sort:     key,
		Language: lang,
	})
	if err != nil {
		if errors.Is(err, service.ErrCityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CITY_NOT_FOUND",
					"message": "City not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FETCH_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// GetJudge handles GET /api/judges/:name
func (h *CatalogHandler) GetJudge(c *gin.Context) {
	result, err := h.catalogService.GetJudge(c.Request.Context(), service.GetJudgeRequest{
		Name: c.Param("name"),
	})
	if err != nil {
		if errors.Is(err, service.ErrJudgeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "JUDGE_NOT_FOUND",
					"message": "Judge not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FETCH_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Judge,
	})
}

// GetFAQ handles GET /api/faq?lang=
func (h *CatalogHandler) GetFAQ(c *gin.Context) {
	lang, ok := queryLanguage(c, h.defaultLanguage)
	if !ok {
		return
	}

	result, err := h.catalogService.GetFAQ(c.Request.Context(), service.GetFAQRequest{Language: lang})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FETCH_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Page,
	})
}

// Health handles GET /health
func (h *CatalogHandler) Health(c *gin.Context) {
	cities, judges := h.catalogService.Counts()
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"cities": cities,
		"judges": judges,
	})
}

// queryLanguage reads ?lang=, writing a 400 response when it is unsupported
func queryLanguage(c *gin.Context, fallback models.Language) (models.Language, bool) {
	raw := c.Query("lang")
	if raw == "" {
		return fallback, true
	}
	lang, err := models.ParseLanguage(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNSUPPORTED_LANGUAGE",
				"message": "Unsupported language: " + raw,
			},
		})
		return "", false
	}
	return lang, true
}

// querySortKey reads ?sort=, writing a 400 response when it is unknown
func querySortKey(c *gin.Context) (search.SortKey, bool) {
	key, err := search.ParseSortKey(c.Query("sort"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_SORT",
				"message": "Unknown sort key: " + c.Query("sort"),
			},
		})
		return "", false
	}
	return key, true
}
