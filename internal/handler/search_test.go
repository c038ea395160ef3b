package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/tripplanner/internal/dispatch"
	"github.com/dharmasatrya/tripplanner/internal/models"
	"github.com/dharmasatrya/tripplanner/internal/planner"
	"github.com/dharmasatrya/tripplanner/internal/providers"
)

type emptyProvider struct{}

func (emptyProvider) Name() string { return "empty" }

func (emptyProvider) Search(context.Context, models.FlightQuery) (*providers.SearchResult, error) {
	return &providers.SearchResult{}, nil
}

func newTestHandler() *SearchHandler {
	return NewSearchHandler(planner.New(dispatch.New(emptyProvider{}, dispatch.Config{})))
}

func doSearch(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips/search", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, newTestHandler().Search(e.NewContext(req, rec)))
	return rec
}

const validBody = `{
	"templates": [{
		"cities": [
			{"airports": ["LHR"], "departure_dates": {"earliest": "2026-09-01", "latest": "2026-09-01"}},
			{"airports": ["YYZ"], "arrival_dates": {"earliest": "2026-09-01", "latest": "2026-09-01"}}
		]
	}]
}`

func TestSearchReturnsEmptyResultSet(t *testing.T) {
	rec := doSearch(t, validBody)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.TripSearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.Metadata.SearchID)
	assert.Equal(t, 1, resp.Metadata.TemplatesSearched)
	assert.Equal(t, 1, resp.Metadata.Configurations)
	assert.Equal(t, 1, resp.Metadata.QueriesBuilt)
	assert.Zero(t, resp.Metadata.ItinerariesFound)
	assert.Empty(t, resp.Itineraries)

	require.Len(t, resp.SearchCriteria, 1)
	assert.Contains(t, resp.SearchCriteria[0], "LHR")
	assert.Contains(t, resp.SearchCriteria[0], "YYZ")
}

func TestSearchRejectsMalformedJSON(t *testing.T) {
	rec := doSearch(t, "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_request", resp.Error)
}

func TestSearchRejectsMissingTemplates(t *testing.T) {
	rec := doSearch(t, `{"templates": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error)
}

func TestSearchRejectsBadDomainValues(t *testing.T) {
	body := `{
		"templates": [{
			"cities": [
				{"airports": ["LHR"], "departure_dates": {"earliest": "not-a-date"}},
				{"airports": ["YYZ"]}
			]
		}]
	}`
	rec := doSearch(t, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthHandler(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, HealthHandler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
