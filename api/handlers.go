/*
handlers.go - HTTP API handlers for the emission calculation service

PURPOSE:
  Exposes the calculation pipeline via REST. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  GET  /health                 Liveness probe
  GET  /api/suggest?q=         Place autocomplete (empty below 3 chars)
  POST /api/distance           Routed distance between two places
  POST /api/calc               Calculate, persist, return id + record
  GET  /api/receipt/{id}.pdf   Regenerate the receipt for a stored record

REQUEST FLOW (calc):
  1. Parse and validate input (mode checked before any network call)
  2. Resolve distance (routed) or validate it (manual)
  3. Compute results, snapshot the factor tables
  4. Store the record under a fresh id
  5. Return {calc_id, pdf_url, record}

ERROR HANDLING:
  Handlers catch every error at the boundary, log the internal detail
  (including upstream payloads), and return only a safe message:
  - 400: validation, place not found, no route, distance out of range
  - 404: unknown receipt id
  - 502: provider unreachable / rate-limited / credential missing
  - 500: anything else
  A failed request never crashes the process.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/olimpus/ecotrip/emission"
	"github.com/olimpus/ecotrip/receipt"
	"github.com/olimpus/ecotrip/record"
	"github.com/olimpus/ecotrip/route"
)

// maxSuggestions caps autocomplete responses.
const maxSuggestions = 6

// minSuggestQueryLen avoids expensive lookups on short prefixes.
const minSuggestQueryLen = 3

// User-facing messages (fixed pt-BR locale).
const (
	msgMissingPlaces    = "Informe origem e destino."
	msgInvalidMode      = "Modo de transporte inválido."
	msgInvalidBody      = "Corpo da requisição inválido."
	msgInvalidDistance  = "Informe uma distância maior que zero."
	msgDistanceTooFar   = "Distância excede limites práticos. Verifique se você selecionou cidades válidas (não estados/países)."
	msgPlaceNotFound    = "Não foi possível localizar a cidade informada."
	msgRouteUnavailable = "Não foi possível obter a distância da rota. Verifique origem e destino."
	msgUpstreamDown     = "Serviço de rotas indisponível no momento. Tente novamente mais tarde."
	msgReceiptNotFound  = "Recibo não encontrado."
	msgInternal         = "Erro interno."
)

// Resolver converts place names into travel distances and suggestions.
// Satisfied by *route.Client; tests substitute a fake.
type Resolver interface {
	Suggest(ctx context.Context, q string, size int) ([]route.Suggestion, error)
	DistanceKM(ctx context.Context, origin, destination, profile string) (float64, error)
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    record.Store
	Resolver Resolver

	// Active tables; snapshotted into every record at creation time.
	Factors        emission.FactorTable
	Prices         emission.CreditPriceTable
	FactorsVersion string
}

// NewHandler creates a handler wired to the default factor tables.
func NewHandler(store record.Store, resolver Resolver) *Handler {
	return &Handler{
		Store:          store,
		Resolver:       resolver,
		Factors:        emission.DefaultFactors(),
		Prices:         emission.DefaultCreditPrice(),
		FactorsVersion: emission.FactorsVersion,
	}
}

// =============================================================================
// HEALTH
// =============================================================================

// Health returns a liveness probe.
// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{OK: true})
}

// =============================================================================
// SUGGESTIONS
// =============================================================================

// Suggest returns place autocomplete entries.
// GET /api/suggest?q=<text>
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	// Short prefixes are not worth an upstream round trip: empty list, not
	// an error.
	if utf8.RuneCountInString(q) < minSuggestQueryLen {
		writeJSON(w, http.StatusOK, SuggestResponse{Suggestions: []SuggestionDTO{}})
		return
	}

	suggestions, err := h.Resolver.Suggest(r.Context(), q, maxSuggestions)
	if err != nil {
		h.writeResolverError(w, "suggest", err)
		return
	}

	dtos := make([]SuggestionDTO, len(suggestions))
	for i, s := range suggestions {
		dtos[i] = SuggestionDTO{Label: s.Label, Lon: s.Lon, Lat: s.Lat}
	}
	writeJSON(w, http.StatusOK, SuggestResponse{Suggestions: dtos})
}

// =============================================================================
// DISTANCE
// =============================================================================

// Distance resolves the routed distance between two places.
// POST /api/distance
func (h *Handler) Distance(w http.ResponseWriter, r *http.Request) {
	var req DistanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	origin := strings.TrimSpace(req.Origin)
	destination := strings.TrimSpace(req.Destination)
	if origin == "" || destination == "" {
		writeError(w, http.StatusBadRequest, msgMissingPlaces)
		return
	}

	km, err := h.Resolver.DistanceKM(r.Context(), origin, destination, strings.TrimSpace(req.Profile))
	if err != nil {
		h.writeResolverError(w, "distance", err)
		return
	}

	writeJSON(w, http.StatusOK, DistanceResponse{DistanceKM: round2(km)})
}

// =============================================================================
// CALCULATION
// =============================================================================

// Calculate runs the full pipeline: resolve (or accept) a distance, compute
// emissions and costs, snapshot the tables, persist the record.
// POST /api/calc
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	mode := strings.TrimSpace(req.Mode)
	if mode == "" {
		mode = strings.TrimSpace(req.Transport)
	}
	if mode == "" {
		mode = string(emission.ModeCar)
	}

	// Reject unknown modes before any network call.
	if _, ok := h.Factors[emission.Mode(mode)]; !ok {
		writeError(w, http.StatusBadRequest, msgInvalidMode)
		return
	}

	origin := strings.TrimSpace(req.Origin)
	destination := strings.TrimSpace(req.Destination)

	var km float64
	provider := record.ProviderORS

	if req.DistanceKM != nil {
		// Manual path: skip resolution, validate the supplied distance. The
		// record still goes through the same pipeline so a receipt is always
		// obtainable.
		km = *req.DistanceKM
		if km <= 0 || math.IsNaN(km) || math.IsInf(km, 0) {
			writeError(w, http.StatusBadRequest, msgInvalidDistance)
			return
		}
		if err := route.ValidateDistanceKM(km); err != nil {
			writeError(w, http.StatusBadRequest, msgDistanceTooFar)
			return
		}
		provider = record.ProviderManual
	} else {
		if origin == "" || destination == "" {
			writeError(w, http.StatusBadRequest, msgMissingPlaces)
			return
		}
		var err error
		km, err = h.Resolver.DistanceKM(r.Context(), origin, destination, route.DefaultProfile)
		if err != nil {
			h.writeResolverError(w, "calc", err)
			return
		}
	}

	results, err := emission.Compute(emission.Mode(mode), km, h.Factors, h.Prices)
	if err != nil {
		// Mode was validated above; reaching this is a bug, not bad input.
		log.Printf("ERROR calc: compute failed: %v", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	rec := record.CalculationRecord{
		ID:        record.NewID(),
		CreatedAt: time.Now().UTC(),
		Provider:  provider,
		Inputs: record.Inputs{
			Origin:      origin,
			Destination: destination,
			DistanceKM:  round2(km),
			Mode:        mode,
			ModeLabel:   emission.Label(emission.Mode(mode)),
		},
		Results:        results,
		Factors:        emission.NewSnapshot(h.Factors, h.Prices),
		FactorsVersion: h.FactorsVersion,
	}

	if err := h.Store.Create(r.Context(), rec); err != nil {
		log.Printf("ERROR calc: store create failed: %v", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeJSON(w, http.StatusOK, CalcResponse{
		CalcID: rec.ID,
		PDFURL: "/api/receipt/" + rec.ID + ".pdf",
		Record: rec,
	})
}

// =============================================================================
// RECEIPT
// =============================================================================

// Receipt regenerates the PDF for a stored record.
// GET /api/receipt/{id}.pdf
func (h *Handler) Receipt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.Store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, record.ErrRecordNotFound) {
			http.Error(w, msgReceiptNotFound, http.StatusNotFound)
			return
		}
		log.Printf("ERROR receipt: load %s failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	// Render into a buffer first so a failure can still produce a clean
	// error response instead of a truncated document.
	var buf bytes.Buffer
	if err := receipt.Render(rec, &buf); err != nil {
		log.Printf("ERROR receipt: render %s failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="OLIMPUS_%s.pdf"`, id))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// =============================================================================
// HELPERS
// =============================================================================

// writeResolverError maps the resolver taxonomy to HTTP statuses. Internal
// detail (upstream payloads included) goes to the log only.
func (h *Handler) writeResolverError(w http.ResponseWriter, op string, err error) {
	log.Printf("ERROR %s: %v", op, err)

	switch {
	case errors.Is(err, route.ErrGeocodeNotFound):
		writeError(w, http.StatusBadRequest, msgPlaceNotFound)
	case errors.Is(err, route.ErrDistanceOutOfRange):
		writeError(w, http.StatusBadRequest, msgDistanceTooFar)
	case errors.Is(err, route.ErrRouteUnavailable):
		writeError(w, http.StatusBadRequest, msgRouteUnavailable)
	case route.IsUpstream(err):
		writeError(w, http.StatusBadGateway, msgUpstreamDown)
	default:
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
