package board

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
	"github.com/unimind/unimind/pkg/user"
)

func setupBoardHandlerTest(t *testing.T) (*mux.Router, context.Context) {
	t.Helper()
	repo := NewRepositoryStub(500)
	clock := &utils.MockClock{FixedNow: time.Date(2025, 11, 5, 12, 0, 0, 0, time.UTC)}
	service := NewService(repo, NewRepoXpAwarder(repo), nil, clock, 25, 15)
	handler := NewHandler(service)

	r := mux.NewRouter()
	r.HandleFunc("/api/uniboard", handler.GetBoard).Methods("GET")
	r.HandleFunc("/api/uniboard/challenges", handler.GetChallenges).Methods("GET")
	r.HandleFunc("/api/uniboard/challenges/{challengeId}/complete", handler.CompleteChallenge).Methods("POST")
	r.HandleFunc("/api/xp", handler.AwardXp).Methods("POST")

	ctx := user.WithUser(context.Background(), user.User{Uid: "student-1"})
	return r, ctx
}

func TestBoardHandler_GetBoard(t *testing.T) {
	router, ctx := setupBoardHandlerTest(t)

	req := httptest.NewRequest("GET", "/api/uniboard", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var dto SnapshotDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	assert.NotEmpty(t, dto.MoveMessage)
	assert.Equal(t, 500, dto.Xp.Goal)
	assert.Contains(t, dto.Progress, "academics")
	assert.Contains(t, dto.Progress, "mental_health")
}

func TestBoardHandler_CompleteChallenge_idempotent(t *testing.T) {
	router, ctx := setupBoardHandlerTest(t)

	req := httptest.NewRequest("POST", "/api/uniboard/challenges/0/complete", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var first CompletionDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&first))
	assert.True(t, first.Awarded)
	assert.Equal(t, 25, first.XpTotal)

	req = httptest.NewRequest("POST", "/api/uniboard/challenges/0/complete", nil).WithContext(ctx)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var second CompletionDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&second))
	assert.False(t, second.Awarded)
	assert.Equal(t, 25, second.XpTotal)
}

func TestBoardHandler_CompleteChallenge_unknownId(t *testing.T) {
	router, ctx := setupBoardHandlerTest(t)

	req := httptest.NewRequest("POST", "/api/uniboard/challenges/7/complete", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest("POST", "/api/uniboard/challenges/abc/complete", nil).WithContext(ctx)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBoardHandler_GetChallenges_reflectsCompletion(t *testing.T) {
	router, ctx := setupBoardHandlerTest(t)

	req := httptest.NewRequest("POST", "/api/uniboard/challenges/1/complete", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest("GET", "/api/uniboard/challenges", nil).WithContext(ctx)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var challenges []ChallengeDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&challenges))
	require.Len(t, challenges, ChallengeSlots)
	assert.False(t, challenges[0].Completed)
	assert.True(t, challenges[1].Completed)
}

func TestBoardHandler_AwardXp(t *testing.T) {
	router, ctx := setupBoardHandlerTest(t)

	body := bytes.NewBufferString(`{"user_id":"student-1","amount":30}`)
	req := httptest.NewRequest("POST", "/api/xp", body).WithContext(ctx)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var response map[string]int
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, 30, response["total"])
}
