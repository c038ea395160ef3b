package providers

import (
	"context"

	"github.com/dharmasatrya/tripplanner/internal/models"
)

// SearchResult is one provider response. One-way queries populate
// Offers; round-trip queries populate Pairs. Both empty means no
// availability, which is not an error.
type SearchResult struct {
	Offers []models.FlightOffer `json:"offers,omitempty"`
	Pairs  []models.OfferPair   `json:"pairs,omitempty"`
}

type Provider interface {
	Name() string
	Search(ctx context.Context, q models.FlightQuery) (*SearchResult, error)
}

type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Err:      err,
	}
}
