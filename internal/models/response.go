package models

type SearchMetadata struct {
	SearchID           string `json:"search_id"`
	TemplatesSearched  int    `json:"templates_searched"`
	Configurations     int    `json:"configurations"`
	QueriesBuilt       int    `json:"queries_built"`
	QueriesFailed      int    `json:"queries_failed"`
	CacheHits          int    `json:"cache_hits"`
	ItinerariesFound   int    `json:"itineraries_found"`
	ItinerariesClipped int    `json:"itineraries_returned"`
	SearchTimeMs       int64  `json:"search_time_ms"`
	Shared             bool   `json:"shared"`
}

type TripSearchResponse struct {
	// SearchCriteria echoes each template back in human-readable
	// form, so callers can confirm what was actually searched.
	SearchCriteria []string `json:"search_criteria"`

	Metadata    SearchMetadata    `json:"metadata"`
	Itineraries []ItineraryResult `json:"itineraries"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
