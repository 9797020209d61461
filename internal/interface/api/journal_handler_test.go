package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baggage-claim-service/internal/domain/entity"
)

type stubJournal struct {
	events   []*entity.BaggageEvent
	err      error
	flightNo int
	limit    int
	calls    int
}

func (s *stubJournal) Append(ctx context.Context, event *entity.BaggageEvent) error {
	return nil
}

func (s *stubJournal) FindByFlightNumber(ctx context.Context, flightNo int, limit int) ([]*entity.BaggageEvent, error) {
	s.calls++
	s.flightNo = flightNo
	s.limit = limit
	return s.events, s.err
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestJournalHandler_ReturnsEvents(t *testing.T) {
	at := time.Date(2024, 3, 1, 17, 30, 0, 0, time.UTC)
	event := entity.NewBaggageEvent("journal", entity.NewBaggageInfo(712, "Detroit", 3), at)
	event.ID = "1"
	journal := &stubJournal{events: []*entity.BaggageEvent{event}}

	rec := serve(NewJournalHandler(journal, nil), http.MethodGet, "/journal?flight=712&limit=10")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, 712, journal.flightNo)
	assert.Equal(t, 10, journal.limit)

	var body JournalResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 712, body.FlightNumber)
	require.Len(t, body.Events, 1)
	assert.Equal(t, "1", body.Events[0].ID)
	assert.Equal(t, entity.ActionAssigned, body.Events[0].Action)
	assert.Equal(t, "Detroit", body.Events[0].From)
	assert.True(t, at.Equal(body.Events[0].RecordedAt))
}

func TestJournalHandler_Limits(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"default", "/journal?flight=400", DefaultJournalLimit},
		{"explicit", "/journal?flight=400&limit=3", 3},
		{"capped", "/journal?flight=400&limit=100000", MaxJournalLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			journal := &stubJournal{}
			rec := serve(NewJournalHandler(journal, nil), http.MethodGet, tt.target)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, journal.limit)
			assert.JSONEq(t, `{"flightNumber":400,"events":[]}`, rec.Body.String())
		})
	}
}

func TestJournalHandler_RejectsBadRequests(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		code   int
	}{
		{"missing flight", http.MethodGet, "/journal", http.StatusBadRequest},
		{"bad flight", http.MethodGet, "/journal?flight=abc", http.StatusBadRequest},
		{"negative flight", http.MethodGet, "/journal?flight=-1", http.StatusBadRequest},
		{"zero limit", http.MethodGet, "/journal?flight=1&limit=0", http.StatusBadRequest},
		{"bad limit", http.MethodGet, "/journal?flight=1&limit=x", http.StatusBadRequest},
		{"post", http.MethodPost, "/journal?flight=1", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			journal := &stubJournal{}
			rec := serve(NewJournalHandler(journal, nil), tt.method, tt.target)

			assert.Equal(t, tt.code, rec.Code)
			assert.Zero(t, journal.calls)
		})
	}
}

func TestJournalHandler_RepositoryError(t *testing.T) {
	journal := &stubJournal{err: errors.New("connection refused")}

	rec := serve(NewJournalHandler(journal, nil), http.MethodGet, "/journal?flight=712")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}
