package calendarview

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
	"github.com/unimind/unimind/internal/utils"
	"github.com/unimind/unimind/pkg/event"
	"github.com/unimind/unimind/pkg/user"
)

func setupViewHandlerTest(t *testing.T) (*mux.Router, *event.Service, *utils.MockClock, context.Context) {
	t.Helper()
	clock := &utils.MockClock{FixedNow: time.Date(2025, 11, 9, 12, 0, 0, 0, time.UTC)}
	events := event.NewService(event.NewRepositoryStub(), nil)
	handler := NewHandler(events, clock)

	r := mux.NewRouter()
	r.HandleFunc("/api/calendar/view", handler.GetView).Methods("GET")
	r.HandleFunc("/api/calendar/view/navigate", handler.Navigate).Methods("POST")
	r.HandleFunc("/api/calendar/view/granularity", handler.ChangeGranularity).Methods("POST")

	ctx := user.WithUser(context.Background(), user.User{Uid: "student-1"})
	return r, events, clock, ctx
}

func getView(t *testing.T, router *mux.Router, ctx context.Context) ViewDTO {
	t.Helper()
	req := httptest.NewRequest("GET", "/api/calendar/view", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var dto ViewDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	return dto
}

func TestViewHandler_GetView_defaults(t *testing.T) {
	router, _, clock, ctx := setupViewHandlerTest(t)

	dto := getView(t, router, ctx)

	assert.True(t, clock.Now().Equal(dto.Visible))
	assert.Equal(t, GranularityMonth, dto.Granularity)
	assert.NotEmpty(t, dto.RenderKey)
	assert.Empty(t, dto.Events)
}

func TestViewHandler_Navigate(t *testing.T) {
	router, _, _, ctx := setupViewHandlerTest(t)

	body := bytes.NewBufferString(`{"direction":"next"}`)
	req := httptest.NewRequest("POST", "/api/calendar/view/navigate", body).WithContext(ctx)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var dto ViewDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	assert.True(t, time.Date(2025, 12, 9, 12, 0, 0, 0, time.UTC).Equal(dto.Visible))
}

func TestViewHandler_Navigate_invalidDirection(t *testing.T) {
	router, _, _, ctx := setupViewHandlerTest(t)

	body := bytes.NewBufferString(`{"direction":"sideways"}`)
	req := httptest.NewRequest("POST", "/api/calendar/view/navigate", body).WithContext(ctx)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestViewHandler_ChangeGranularity(t *testing.T) {
	router, _, _, ctx := setupViewHandlerTest(t)

	body := bytes.NewBufferString(`{"granularity":"day"}`)
	req := httptest.NewRequest("POST", "/api/calendar/view/granularity", body).WithContext(ctx)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var dto ViewDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	assert.Equal(t, GranularityDay, dto.Granularity)
}

func TestViewHandler_RenderKeyReflectsEventChanges(t *testing.T) {
	router, events, _, ctx := setupViewHandlerTest(t)

	before := getView(t, router, ctx)

	start := time.Date(2025, 11, 9, 9, 0, 0, 0, time.UTC)
	_, err := events.Create(ctx, event.Event{Title: "Exam", StartTime: start, EndTime: start.Add(time.Hour)})
	require.NoError(t, err)

	after := getView(t, router, ctx)

	assert.NotEqual(t, before.RenderKey, after.RenderKey)
	require.Len(t, after.Events, 1)
}

func TestViewHandler_statesAreIsolatedPerUser(t *testing.T) {
	router, _, _, ctx := setupViewHandlerTest(t)
	otherCtx := user.WithUser(context.Background(), user.User{Uid: "student-2"})

	body := bytes.NewBufferString(`{"granularity":"week"}`)
	req := httptest.NewRequest("POST", "/api/calendar/view/granularity", body).WithContext(ctx)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	other := getView(t, router, otherCtx)

	assert.Equal(t, GranularityMonth, other.Granularity)
}

func TestViewHandler_requiresUser(t *testing.T) {
	router, _, _, _ := setupViewHandlerTest(t)

	req := httptest.NewRequest("GET", "/api/calendar/view", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
