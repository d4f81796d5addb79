/*
client.go - OpenRouteService client (geocoding, autocomplete, directions)

PURPOSE:
  Converts place names into a travel distance via the OpenRouteService
  (ORS) HTTP API, and serves autocomplete suggestions for the frontend.

CALL GRAPH:
  DistanceKM:
    geocode(origin)  ─┐  (concurrent, no data dependency)
    geocode(dest)    ─┴─> directions(o, d) -> meters -> km

  Suggest:
    autocomplete(q) -> []Suggestion

DISTANCE EXTRACTION:
  ORS has shipped the route distance under more than one JSON path.
  extractDistanceMeters is the single normalization point with an explicit
  precedence order over the known shapes:
    1. routes[0].summary.distance
    2. routes[0].segments[0].distance

TIMEOUTS:
  Every outbound call carries the request context and a client-level
  timeout. A timeout surfaces as ErrUpstreamUnavailable. Nothing is
  retried automatically.

SEE ALSO:
  - errors.go: Error taxonomy produced here
  - api/handlers.go: Consumes this client behind the Resolver interface
*/
package route

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the production OpenRouteService host.
const DefaultBaseURL = "https://api.openrouteservice.org"

// DefaultProfile is the routing profile used when the caller supplies none.
const DefaultProfile = "driving-car"

// MaxDistanceKM is the practical ceiling for a routed or manual trip.
// Distances above it almost always mean a state or country was geocoded
// instead of a city.
const MaxDistanceKM = 6000.0

// boundaryCountry restricts geocoding to a single country (fixed locale MVP).
const boundaryCountry = "BR"

const requestTimeout = 15 * time.Second

// Suggestion is one autocomplete result.
type Suggestion struct {
	Label string  `json:"label"`
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
}

// Client talks to the ORS API. Safe for concurrent use.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates an ORS client. An empty baseURL selects the production
// host; tests point it at a local fake. An empty apiKey is allowed at
// construction time: calls will fail with ErrUpstreamUnavailable instead of
// preventing the process from starting.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// ValidateDistanceKM enforces the practical ceiling. Exactly MaxDistanceKM
// is accepted. Applies to routed and manual distances alike.
func ValidateDistanceKM(km float64) error {
	if km > MaxDistanceKM {
		return fmt.Errorf("%w: %.2f km > %.2f km", ErrDistanceOutOfRange, km, MaxDistanceKM)
	}
	return nil
}

// =============================================================================
// PUBLIC OPERATIONS
// =============================================================================

// Suggest returns up to size autocomplete suggestions for q. Entries without
// a label are dropped.
func (c *Client) Suggest(ctx context.Context, q string, size int) ([]Suggestion, error) {
	params := url.Values{}
	params.Set("text", q)
	params.Set("size", fmt.Sprintf("%d", size))
	params.Set("boundary.country", boundaryCountry)

	var resp geocodeResponse
	if err := c.getJSON(ctx, "/geocode/autocomplete", params, &resp); err != nil {
		return nil, err
	}

	suggestions := make([]Suggestion, 0, len(resp.Features))
	for _, f := range resp.Features {
		if f.Properties.Label == "" || len(f.Geometry.Coordinates) < 2 {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Label: f.Properties.Label,
			Lon:   f.Geometry.Coordinates[0],
			Lat:   f.Geometry.Coordinates[1],
		})
		if len(suggestions) == size {
			break
		}
	}
	return suggestions, nil
}

// DistanceKM resolves origin and destination to coordinates (concurrently,
// the two lookups are independent), requests a route between them, and
// returns the total distance in kilometers. The ceiling is enforced here so
// every caller gets the same guard.
func (c *Client) DistanceKM(ctx context.Context, origin, destination, profile string) (float64, error) {
	if profile == "" {
		profile = DefaultProfile
	}

	var o, d coordinate
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		o, err = c.geocodeOne(gctx, origin)
		return err
	})
	g.Go(func() error {
		var err error
		d, err = c.geocodeOne(gctx, destination)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	meters, err := c.directionsMeters(ctx, o, d, profile)
	if err != nil {
		return 0, err
	}

	km := meters / 1000
	if err := ValidateDistanceKM(km); err != nil {
		return 0, err
	}
	return km, nil
}

// =============================================================================
// GEOCODING
// =============================================================================

type coordinate struct {
	Lon float64
	Lat float64
}

// geocodeOne resolves a place name to its best-match coordinates.
func (c *Client) geocodeOne(ctx context.Context, text string) (coordinate, error) {
	params := url.Values{}
	params.Set("text", text)
	params.Set("size", "1")
	params.Set("boundary.country", boundaryCountry)

	var resp geocodeResponse
	if err := c.getJSON(ctx, "/geocode/search", params, &resp); err != nil {
		return coordinate{}, err
	}

	if len(resp.Features) == 0 || len(resp.Features[0].Geometry.Coordinates) < 2 {
		return coordinate{}, fmt.Errorf("%w: %q", ErrGeocodeNotFound, text)
	}
	coords := resp.Features[0].Geometry.Coordinates
	return coordinate{Lon: coords[0], Lat: coords[1]}, nil
}

type geocodeResponse struct {
	Features []struct {
		Properties struct {
			Label string `json:"label"`
		} `json:"properties"`
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// =============================================================================
// DIRECTIONS
// =============================================================================

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance *float64 `json:"distance"`
		} `json:"summary"`
		Segments []struct {
			Distance *float64 `json:"distance"`
		} `json:"segments"`
	} `json:"routes"`
}

// directionsMeters requests a route and returns its total distance in meters.
func (c *Client) directionsMeters(ctx context.Context, o, d coordinate, profile string) (float64, error) {
	body := map[string]any{
		"coordinates": [][]float64{{o.Lon, o.Lat}, {d.Lon, d.Lat}},
	}

	path := "/v2/directions/" + url.PathEscape(profile) + "/json"
	var resp directionsResponse
	if err := c.postJSON(ctx, path, body, &resp); err != nil {
		return 0, err
	}

	meters, ok := extractDistanceMeters(resp)
	if !ok {
		return 0, fmt.Errorf("%w: no usable distance in provider response", ErrRouteUnavailable)
	}
	return meters, nil
}

// extractDistanceMeters is the single normalization point over the known
// directions response shapes. Precedence: summary first, then the first
// segment. A non-positive or non-finite distance is treated as absent.
func extractDistanceMeters(resp directionsResponse) (float64, bool) {
	if len(resp.Routes) == 0 {
		return 0, false
	}
	r := resp.Routes[0]

	candidates := []*float64{r.Summary.Distance}
	if len(r.Segments) > 0 {
		candidates = append(candidates, r.Segments[0].Distance)
	}

	for _, m := range candidates {
		if m == nil {
			continue
		}
		if *m <= 0 || math.IsNaN(*m) || math.IsInf(*m, 0) {
			continue
		}
		return *m, true
	}
	return 0, false
}

// =============================================================================
// HTTP PLUMBING
// =============================================================================

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path+"?"+params.Encode(), nil, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &UpstreamError{Detail: "encode request: " + err.Error()}
	}
	return c.do(ctx, http.MethodPost, path, payload, out)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	if c.apiKey == "" {
		return &UpstreamError{Detail: "ORS API key not configured (set ORS_API_KEY)"}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &UpstreamError{Detail: "build request: " + err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Covers transport failures, context cancellation and timeouts.
		return &UpstreamError{Detail: err.Error()}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &UpstreamError{Status: resp.StatusCode, Detail: "read response: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UpstreamError{Status: resp.StatusCode, Detail: upstreamMessage(payload, resp.StatusCode)}
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return &UpstreamError{Status: resp.StatusCode, Detail: "decode response: " + err.Error()}
	}
	return nil
}

// upstreamMessage extracts a human-readable message from an ORS error
// payload. Known shapes, in precedence order: error.message, error (string),
// message. Falls back to the HTTP status.
func upstreamMessage(payload []byte, status int) string {
	var probe struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(payload, &probe); err == nil {
		if len(probe.Error) > 0 {
			var nested struct {
				Message string `json:"message"`
			}
			if err := json.Unmarshal(probe.Error, &nested); err == nil && nested.Message != "" {
				return nested.Message
			}
			var flat string
			if err := json.Unmarshal(probe.Error, &flat); err == nil && flat != "" {
				return flat
			}
		}
		if probe.Message != "" {
			return probe.Message
		}
	}
	return fmt.Sprintf("provider returned HTTP %d", status)
}
