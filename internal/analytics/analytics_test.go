package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewRepository(mock), mock
}

func TestTrackInsertsEvent(t *testing.T) {
	repo, mock := newMockRepo(t)
	createdAt := time.Now()

	mock.ExpectQuery("INSERT INTO analytics_events").
		WithArgs(pgxmock.AnyArg(), "chat_open", "engagement", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	event, err := repo.Track(context.Background(), &TrackRequest{
		EventType:     "chat_open",
		EventCategory: "engagement",
		SessionID:     "s-1",
	}, "Mozilla/5.0", "https://example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "Mozilla/5.0", event.UserAgent)
	assert.Equal(t, createdAt, event.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTrackRequestValidation(t *testing.T) {
	assert.ErrorIs(t, (&TrackRequest{EventCategory: "conversion"}).Validate(), ErrInvalidEvent)
	assert.ErrorIs(t, (&TrackRequest{EventType: "phone_click"}).Validate(), ErrInvalidEvent)
	assert.NoError(t, (&TrackRequest{EventType: "phone_click", EventCategory: "conversion"}).Validate())
}

type fakeStore struct {
	tracked   *TrackRequest
	userAgent string
	referrer  string
	events    []Event
	err       error
}

func (f *fakeStore) Track(_ context.Context, req *TrackRequest, ua, ref string) (*Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tracked = req
	f.userAgent = ua
	f.referrer = ref
	return &Event{ID: "e-1", EventType: req.EventType, EventCategory: req.EventCategory}, nil
}

func (f *fakeStore) List(context.Context, int) ([]Event, error) {
	return f.events, f.err
}

func TestTrackHandlerCapturesHeaders(t *testing.T) {
	store := &fakeStore{}
	h := NewHandler(store, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/analytics/track",
		strings.NewReader(`{"eventType":"phone_click","eventCategory":"conversion"}`))
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Referer", "https://bramli.example/")
	rec := httptest.NewRecorder()
	h.Track(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "test-agent", store.userAgent)
	assert.Equal(t, "https://bramli.example/", store.referrer)
}

func TestTrackHandlerRejectsMissingFields(t *testing.T) {
	h := NewHandler(&fakeStore{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/analytics/track",
		strings.NewReader(`{"eventType":"phone_click"}`))
	rec := httptest.NewRecorder()
	h.Track(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Invalid event data", body["message"])
}

func TestListHandlerReturnsEvents(t *testing.T) {
	h := NewHandler(&fakeStore{events: []Event{{ID: "e-1", EventType: "chat_open"}}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success bool    `json:"success"`
		Events  []Event `json:"events"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Events, 1)
	assert.Equal(t, "chat_open", body.Events[0].EventType)
}
