package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/singleflight"

	"github.com/dharmasatrya/tripplanner/internal/models"
	"github.com/dharmasatrya/tripplanner/internal/planner"
)

type SearchHandler struct {
	planner *planner.Planner

	// Identical concurrent searches collapse to one pipeline run.
	group singleflight.Group
}

func NewSearchHandler(p *planner.Planner) *SearchHandler {
	return &SearchHandler{planner: p}
}

func (h *SearchHandler) Search(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	var req models.TripSearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	templates, err := req.Domain()
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	value, err, shared := h.group.Do(requestKey(req), func() (interface{}, error) {
		return h.planner.Search(ctx, templates, req.Passengers)
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "search_error",
			Message: "Failed to search itineraries: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}
	plan := value.(*planner.Plan)

	ranked := plan.Itineraries.TopN(req.TopN)

	criteria := make([]string, 0, len(templates))
	for _, template := range templates {
		criteria = append(criteria, models.DescribeTemplate(template))
	}

	return c.JSON(http.StatusOK, models.TripSearchResponse{
		SearchCriteria: criteria,
		Metadata: models.SearchMetadata{
			SearchID:           plan.SearchID,
			TemplatesSearched:  len(req.Templates),
			Configurations:     plan.Configurations,
			QueriesBuilt:       plan.QueriesBuilt,
			QueriesFailed:      plan.QueriesFailed,
			CacheHits:          plan.CacheHits,
			ItinerariesFound:   len(plan.Itineraries.Itineraries),
			ItinerariesClipped: len(ranked.Itineraries),
			SearchTimeMs:       time.Since(startTime).Milliseconds(),
			Shared:             shared,
		},
		Itineraries: ranked.Results(),
	})
}

// requestKey fingerprints the full request body so only byte-for-byte
// equivalent searches share a run.
func requestKey(req models.TripSearchRequest) string {
	data, _ := json.Marshal(req)
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
