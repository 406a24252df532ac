package openapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/price-scout/internal/api/handlers"
)

func newServer() *echo.Echo {
	e := echo.New()
	api := humaecho.New(e, huma.DefaultConfig("price-scout", "test"))
	handlers.RegisterCatalogRoutes(api)
	RegisterRoutes(e, api)
	return e
}

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		path        string
		wantStatus  int
		contentType string
		contains    string
	}{
		{"json spec", "/swagger/swagger.json", http.StatusOK, "application/json", `"/api/v1/platforms"`},
		{"yaml spec", "/swagger/swagger.yaml", http.StatusOK, "text/yaml", "/api/v1/currencies"},
		{"ui", "/swagger/index.html", http.StatusOK, "text/html", "Price Scout API"},
		{"redirect", "/swagger", http.StatusMovedPermanently, "", ""},
		{"redirect slash", "/swagger/", http.StatusMovedPermanently, "", ""},
	}

	e := newServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.path, http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.contentType != "" {
				assert.Contains(t, rec.Header().Get(echo.HeaderContentType), tt.contentType)
			}
			if tt.contains != "" {
				assert.Contains(t, rec.Body.String(), tt.contains)
			}
			if tt.wantStatus == http.StatusMovedPermanently {
				assert.Equal(t, "/swagger/index.html", rec.Header().Get(echo.HeaderLocation))
			}
		})
	}
}

func TestServeJSON_IsValidDocument(t *testing.T) {
	t.Parallel()

	e := newServer()
	req := httptest.NewRequest(http.MethodGet, "/swagger/swagger.json", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Contains(t, doc["openapi"], "3.1")
	info, ok := doc["info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "price-scout", info["title"])
}
