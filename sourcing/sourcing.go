// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sourcing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/doyensec/safeurl"
	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"

	"github.com/danielhkuo/forkcast/models"
)

// Searcher finds restaurant candidates for a location and the group's
// craving terms.
type Searcher interface {
	Search(ctx context.Context, location string, terms []string) ([]models.Candidate, error)
}

// shortlistSize caps how many candidates go up for voting.
const shortlistSize = 5

// HTTPSearcher queries a restaurant-search API (Yelp-compatible
// business search shape). The default client is built with safeurl so
// a misconfigured search URL cannot be pointed at internal addresses.
type HTTPSearcher struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
}

func NewHTTPSearcher(baseURL, apiKey string) *HTTPSearcher {
	config := safeurl.GetConfigBuilder().
		SetTimeout(10 * time.Second).
		SetAllowedSchemes("http", "https").
		SetAllowedPorts(80, 443).
		Build()

	return newSearcher(baseURL, apiKey, safeurl.Client(config).Client)
}

// NewHTTPSearcherWithClient swaps the HTTP client; tests use it to
// point at httptest servers, which safeurl would refuse as loopback.
func NewHTTPSearcherWithClient(baseURL, apiKey string, client *http.Client) *HTTPSearcher {
	return newSearcher(baseURL, apiKey, client)
}

func newSearcher(baseURL, apiKey string, client *http.Client) *HTTPSearcher {
	return &HTTPSearcher{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
		// Stay well inside typical search API quotas.
		limiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

// searchResponse mirrors the business-search payload.
type searchResponse struct {
	Businesses []struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Rating      float64 `json:"rating"`
		ReviewCount int     `json:"review_count"`
		Price       string  `json:"price"`
		Location    struct {
			Address1 string `json:"address1"`
			City     string `json:"city"`
		} `json:"location"`
	} `json:"businesses"`
}

func (s *HTTPSearcher) Search(ctx context.Context, location string, terms []string) ([]models.Candidate, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("location", location)
	q.Set("term", strings.Join(terms, " "))
	q.Set("categories", "restaurants")
	q.Set("limit", fmt.Sprintf("%d", shortlistSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	candidates := make([]models.Candidate, 0, len(sr.Businesses))
	for _, b := range sr.Businesses {
		candidates = append(candidates, models.Candidate{
			ID:          b.ID,
			Name:        b.Name,
			Rating:      b.Rating,
			ReviewCount: b.ReviewCount,
			PriceTier:   b.Price,
			Address:     joinAddress(b.Location.Address1, b.Location.City),
			Subtitle:    subtitle(b.Price, b.Rating, b.ReviewCount),
		})
	}
	return candidates, nil
}

// SourceOrFallback runs the search and substitutes fixtures on error or
// an empty result. StartVoting requires a non-empty shortlist, so the
// host flow must always have something to vote on; a degraded shortlist
// beats a stuck session.
func SourceOrFallback(ctx context.Context, s Searcher, location string, terms []string) []models.Candidate {
	if s == nil {
		return Fixtures()
	}

	candidates, err := s.Search(ctx, location, terms)
	if err != nil {
		slog.Warn("candidate search failed, using fixtures", "error", err, "location", location)
		return Fixtures()
	}
	if len(candidates) == 0 {
		slog.Info("candidate search returned nothing, using fixtures", "location", location)
		return Fixtures()
	}
	return candidates
}

// subtitle builds the one-line summary shown under a candidate,
// e.g. "$$, 4.5 stars, 1,234 reviews".
func subtitle(price string, rating float64, reviews int) string {
	var parts []string
	if price != "" {
		parts = append(parts, price)
	}
	parts = append(parts, fmt.Sprintf("%.1f stars", rating))
	parts = append(parts, humanize.Comma(int64(reviews))+" reviews")
	return strings.Join(parts, ", ")
}

func joinAddress(street, city string) string {
	switch {
	case street == "":
		return city
	case city == "":
		return street
	default:
		return street + ", " + city
	}
}
