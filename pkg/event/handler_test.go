package event

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unimind/unimind/pkg/user"
)

func setupHandlerTest(t *testing.T) (*mux.Router, *Service, context.Context) {
	t.Helper()
	service := NewService(NewRepositoryStub(), nil)
	handler := NewHandler(service)

	r := mux.NewRouter()
	r.HandleFunc("/api/calendar/events", handler.GetEvents).Methods("GET")
	r.HandleFunc("/api/calendar/events", handler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/calendar/events/{eventUid}", handler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/calendar/events/{eventUid}", handler.DeleteEvent).Methods("DELETE")

	ctx := user.WithUser(context.Background(), user.User{Uid: "student-1"})
	return r, service, ctx
}

func TestHandler_CreateEvent(t *testing.T) {
	router, _, ctx := setupHandlerTest(t)

	body, _ := json.Marshal(EventDTO{
		Title:     "Physics Exam",
		StartTime: time.Date(2025, 11, 9, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 11, 9, 10, 0, 0, 0, time.UTC),
	})
	req := httptest.NewRequest("POST", "/api/calendar/events", bytes.NewReader(body)).WithContext(ctx)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var created EventDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.NotEmpty(t, created.UID)
	assert.Equal(t, "Physics Exam", created.Title)
	assert.Equal(t, 1, created.Revision)
}

func TestHandler_CreateEvent_emptyTitle(t *testing.T) {
	router, _, ctx := setupHandlerTest(t)

	body, _ := json.Marshal(EventDTO{
		Title:     "",
		StartTime: time.Date(2025, 11, 9, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 11, 9, 10, 0, 0, 0, time.UTC),
	})
	req := httptest.NewRequest("POST", "/api/calendar/events", bytes.NewReader(body)).WithContext(ctx)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_UpdateEvent_conflict(t *testing.T) {
	router, service, ctx := setupHandlerTest(t)
	start := time.Date(2025, 11, 9, 9, 0, 0, 0, time.UTC)

	created, err := service.Create(ctx, Event{Title: "Exam", StartTime: start, EndTime: start.Add(time.Hour)})
	require.NoError(t, err)

	// Another editor updates first.
	winner := *created
	winner.Title = "Exam (moved)"
	_, err = service.Update(ctx, winner)
	require.NoError(t, err)

	body, _ := json.Marshal(EventDTO{
		Title:     "Exam (stale edit)",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Revision:  created.Revision,
	})
	req := httptest.NewRequest("PUT", "/api/calendar/events/"+created.UID, bytes.NewReader(body)).WithContext(ctx)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_UpdateEvent_notFound(t *testing.T) {
	router, _, ctx := setupHandlerTest(t)
	start := time.Date(2025, 11, 9, 9, 0, 0, 0, time.UTC)

	body, _ := json.Marshal(EventDTO{
		Title:     "Exam",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Revision:  1,
	})
	req := httptest.NewRequest("PUT", "/api/calendar/events/missing", bytes.NewReader(body)).WithContext(ctx)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_DeleteEvent(t *testing.T) {
	router, service, ctx := setupHandlerTest(t)
	start := time.Date(2025, 11, 9, 9, 0, 0, 0, time.UTC)

	created, err := service.Create(ctx, Event{Title: "Exam", StartTime: start, EndTime: start.Add(time.Hour)})
	require.NoError(t, err)

	req := httptest.NewRequest("DELETE", "/api/calendar/events/"+created.UID, nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest("DELETE", "/api/calendar/events/"+created.UID, nil).WithContext(ctx)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_GetEvents(t *testing.T) {
	router, service, ctx := setupHandlerTest(t)
	start := time.Date(2025, 11, 9, 9, 0, 0, 0, time.UTC)

	_, err := service.Create(ctx, Event{Title: "Exam", StartTime: start, EndTime: start.Add(time.Hour)})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/calendar/events", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var events []EventDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&events))
	require.Len(t, events, 1)
	assert.Equal(t, "Exam", events[0].Title)
}
