package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserHandlerTest(t *testing.T) (*mux.Router, *ServiceImpl) {
	t.Helper()
	service := NewUserService(NewStubUserRepo())
	handler := NewHandler(service)

	r := mux.NewRouter()
	r.HandleFunc("/api/user", handler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/current", handler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", handler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user/current", handler.DeleteUser).Methods("DELETE")
	return r, service
}

func TestUserHandler_CreateUser_takesUidFromToken(t *testing.T) {
	router, service := setupUserHandlerTest(t)

	ctx := WithAuthUid(context.Background(), "student-1")
	body := bytes.NewBufferString(`{"uid":"spoofed","displayName":"Alex","school":"Boston University"}`)
	req := httptest.NewRequest("POST", "/api/user", body).WithContext(ctx)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var dto UserDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	assert.Equal(t, "student-1", dto.Uid)
	assert.Equal(t, "Alex", dto.DisplayName)
	assert.Equal(t, "UTC", dto.Timezone)

	_, err := service.GetUserByUid(context.Background(), "spoofed")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserHandler_CreateUser_requiresAuthentication(t *testing.T) {
	router, _ := setupUserHandlerTest(t)

	body := bytes.NewBufferString(`{"displayName":"Alex"}`)
	req := httptest.NewRequest("POST", "/api/user", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserHandler_CurrentUser(t *testing.T) {
	router, _ := setupUserHandlerTest(t)

	ctx := WithUser(context.Background(), User{
		Uid:         "student-1",
		DisplayName: "Alex",
		Settings:    Settings{Timezone: "UTC"},
	})
	req := httptest.NewRequest("GET", "/api/user/current", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var dto UserDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	assert.Equal(t, "student-1", dto.Uid)
}

func TestUserHandler_CurrentUser_withoutUser(t *testing.T) {
	router, _ := setupUserHandlerTest(t)

	req := httptest.NewRequest("GET", "/api/user/current", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUserHandler_UpdateUser_notFound(t *testing.T) {
	router, _ := setupUserHandlerTest(t)

	ctx := WithUser(context.Background(), User{Uid: "student-1"})
	body := bytes.NewBufferString(`{"displayName":"Alexandra"}`)
	req := httptest.NewRequest("PUT", "/api/user/current", body).WithContext(ctx)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserHandler_DeleteUser(t *testing.T) {
	router, service := setupUserHandlerTest(t)
	_, err := service.CreateUser(context.Background(), User{Uid: "student-1"})
	require.NoError(t, err)

	ctx := WithUser(context.Background(), User{Uid: "student-1"})
	req := httptest.NewRequest("DELETE", "/api/user/current", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
