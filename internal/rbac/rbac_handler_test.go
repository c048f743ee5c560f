package rbac

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-reqdesk/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type mockService struct{}

func (m *mockService) Enforce(req domain.EnforceRequest) (bool, error) {
	if req.Resource == "request" && req.Action == "read" {
		return true, nil
	}
	return false, nil
}

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewHandler(&mockService{})

	router := gin.Default()
	router.POST("/rbac/enforce", handler.Enforce)

	doEnforce := func(t *testing.T, body any) *httptest.ResponseRecorder {
		t.Helper()
		jsonBody, _ := json.Marshal(body)
		req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("allowed", func(t *testing.T) {
		w := doEnforce(t, domain.EnforceRequest{Role: "STAFF", Resource: "request", Action: "read"})

		assert.Equal(t, http.StatusOK, w.Code)

		var env struct {
			Ok   bool                   `json:"ok"`
			Data domain.EnforceResponse `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.True(t, env.Ok)
		assert.True(t, env.Data.Allowed)
	})

	t.Run("denied", func(t *testing.T) {
		w := doEnforce(t, domain.EnforceRequest{Role: "STAFF", Resource: "request", Action: "delete"})

		assert.Equal(t, http.StatusOK, w.Code)

		var env struct {
			Data domain.EnforceResponse `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.False(t, env.Data.Allowed)
	})

	t.Run("negative missing fields", func(t *testing.T) {
		w := doEnforce(t, map[string]string{"role": "STAFF"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
