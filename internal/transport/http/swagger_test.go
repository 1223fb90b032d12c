package http

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestRegisterSwaggerServesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swagger.yaml")
	require.NoError(t, os.WriteFile(path, []byte("swagger: \"2.0\"\ninfo:\n  title: Lombok\n"), 0o600))

	e := echo.New()
	require.NoError(t, RegisterSwagger(e, path))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"swagger":"2.0","info":{"title":"Lombok"}}`, rec.Body.String())
}

func TestRegisterSwaggerRejectsBadDocument(t *testing.T) {
	e := echo.New()
	require.Error(t, RegisterSwagger(e, filepath.Join(t.TempDir(), "missing.yaml")))

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("swagger: [unclosed"), 0o600))
	require.Error(t, RegisterSwagger(e, path))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
