package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"baggage-claim-service/internal/domain/entity"
	"baggage-claim-service/internal/domain/repository"
	"baggage-claim-service/pkg/logger"
)

const (
	DefaultJournalLimit = 50
	MaxJournalLimit     = 500
)

// JournalHandler serves GET /journal?flight=N&limit=K from the baggage journal
type JournalHandler struct {
	journal repository.BaggageJournalRepository
	logger  logger.Logger
}

// JournalResponse is the body returned for a journal lookup
type JournalResponse struct {
	FlightNumber int                   `json:"flightNumber"`
	Events       []*entity.BaggageEvent `json:"events"`
}

// NewJournalHandler creates a new journal handler
func NewJournalHandler(journal repository.BaggageJournalRepository, log logger.Logger) *JournalHandler {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &JournalHandler{
		journal: journal,
		logger:  log,
	}
}

func (h *JournalHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	flightNo, err := strconv.Atoi(query.Get("flight"))
	if err != nil || flightNo < 0 {
		http.Error(w, "flight must be a non-negative integer", http.StatusBadRequest)
		return
	}

	limit := DefaultJournalLimit
	if raw := query.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		if limit > MaxJournalLimit {
			limit = MaxJournalLimit
		}
	}

	events, err := h.journal.FindByFlightNumber(r.Context(), flightNo, limit)
	if err != nil {
		h.logger.Error("Failed to read journal", "flightNumber", flightNo, "error", err)
		http.Error(w, "failed to read journal", http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []*entity.BaggageEvent{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(JournalResponse{FlightNumber: flightNo, Events: events}); err != nil {
		h.logger.Error("Failed to write journal response", "error", err)
	}
}
