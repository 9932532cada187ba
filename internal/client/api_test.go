package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/models"
)

func TestAPI_Chat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "What technologies does Bamidele specialize in?", body["message"])

		_ = json.NewEncoder(w).Encode(map[string]string{"response": "Go and TypeScript."})
	}))
	defer srv.Close()

	api := New(Config{BaseURL: srv.URL + "/"})
	reply, err := api.Chat(context.Background(), "What technologies does Bamidele specialize in?")
	require.NoError(t, err)
	assert.Equal(t, "Go and TypeScript.", reply)
}

func TestAPI_ErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to process your message. Please try again.","details":"GEMINI_API_KEY is not set"}`))
	}))
	defer srv.Close()

	_, err := New(Config{BaseURL: srv.URL}).Chat(context.Background(), "hi")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Failed to process your message. Please try again.", apiErr.Message)
	assert.Equal(t, "GEMINI_API_KEY is not set", apiErr.Details)
}

func TestAPI_ErrorWithoutJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(Config{BaseURL: srv.URL}).Session(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestAPI_SignInStoresToken(t *testing.T) {
	userID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/sign-in":
			var creds dto.Credentials
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			assert.Equal(t, "owner@example.com", creds.Email)
			_ = json.NewEncoder(w).Encode(dto.AuthResult{
				User:  &models.User{ID: userID, Email: creds.Email},
				Token: "tkn",
			})
		case "/api/auth/session":
			assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(dto.Session{
				User:    &models.User{ID: userID},
				Profile: &models.Profile{ID: userID, Role: models.RoleAdmin},
				IsAdmin: true,
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	api := New(Config{BaseURL: srv.URL})
	result, err := api.SignIn(context.Background(), "owner@example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, userID, result.User.ID)
	assert.Equal(t, "tkn", api.Token())

	session, err := api.Session(context.Background())
	require.NoError(t, err)
	assert.True(t, session.IsAdmin)
}

func TestResource_CRUDPaths(t *testing.T) {
	id := uuid.New()
	var calls []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		assert.Equal(t, "Bearer admin", r.Header.Get("Authorization"))

		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode([]models.Service{{ID: id, Title: "Consulting"}})
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(models.Service{ID: id, Title: "Consulting"})
		case http.MethodPut:
			_ = json.NewEncoder(w).Encode(models.Service{ID: id, Title: "Advisory"})
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	api := New(Config{BaseURL: srv.URL, Token: "admin"})
	res := NewResource[models.Service, dto.ServiceInput](api, models.KindServices)
	ctx := context.Background()

	items, err := res.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	created, err := res.Create(ctx, dto.ServiceInput{Title: "Consulting", Features: "A\nB\nC"})
	require.NoError(t, err)
	assert.Equal(t, id, created.ID)

	updated, err := res.Update(ctx, id, dto.ServiceInput{Title: "Advisory"})
	require.NoError(t, err)
	assert.Equal(t, "Advisory", updated.Title)

	require.NoError(t, res.Delete(ctx, id))

	assert.Equal(t, []string{
		"GET /api/admin/services",
		"POST /api/admin/services",
		"PUT /api/admin/services/" + id.String(),
		"DELETE /api/admin/services/" + id.String(),
	}, calls)
}
