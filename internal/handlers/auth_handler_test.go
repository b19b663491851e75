package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-perf-cache/internal/auth"
	"clinic-perf-cache/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hash, err := bcrypt.GenerateFromPassword([]byte("sha256-from-fe"), bcrypt.MinCost)
	require.NoError(t, err)
	tokens := auth.NewManager(
		config.JWTConfig{Secret: []byte("s"), Issuer: "i", Audience: "a"},
		config.AdminConfig{Username: "ops", PasswordHash: hash},
	)

	r := gin.New()
	r.POST("/api/login", NewAuthHandler(tokens).Login)

	post := func(payload any) *httptest.ResponseRecorder {
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := post(map[string]string{"username": "ops", "password": "sha256-from-fe"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	claims, err := tokens.ValidateToken(resp.Token)
	require.NoError(t, err)
	require.Equal(t, "ops", claims.Username)

	w = post(map[string]string{"username": "ops", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = post(map[string]string{"username": "ops"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
