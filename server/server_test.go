package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pie-314/trx/consts"
	"github.com/pie-314/trx/provider"
	"github.com/pie-314/trx/search"
	"github.com/pie-314/trx/searcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	s := searcher.New(logger, search.Options{}, provider.Registry{provider.Demo()})
	return New(s, provider.NewDetailsCache(time.Minute), logger)
}

func get(t *testing.T, engine http.Handler, url string) (int, map[string]interface{}) {
	t.Helper()
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, url, nil))
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body), recorder.Body.String())
	return recorder.Code, body
}

func TestVersion(t *testing.T) {
	status, body := get(t, newTestServer(), "/api/v1/version")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]interface{}{"Version": consts.Version}, body)
}

func TestSearch(t *testing.T) {
	status, body := get(t, newTestServer(), "/api/v1/search?q=vim&limit=2")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "vim", body["Query"])
	assert.Equal(t, []interface{}{}, body["Errors"])

	results := body["Results"].([]interface{})
	require.Len(t, results, 2)
	first := results[0].(map[string]interface{})
	assert.Equal(t, "demo", first["Provider"])
	assert.Equal(t, "extra", first["Repository"])
	assert.Equal(t, "vim", first["Name"])
	assert.Equal(t, []interface{}{0.0, 1.0, 2.0}, first["Positions"])
	assert.InDelta(t, 4.7, first["Score"], 0.0001)
}

func TestSearchEmptyQuery(t *testing.T) {
	status, body := get(t, newTestServer(), "/api/v1/search")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]interface{}{
		"Query":   "",
		"Results": []interface{}{},
		"Errors":  []interface{}{},
	}, body)
}

func TestSearchInvalidLimit(t *testing.T) {
	for _, limit := range []string{"0", "-1", "many"} {
		t.Run(limit, func(t *testing.T) {
			status, body := get(t, newTestServer(), "/api/v1/search?q=vim&limit="+limit)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, `Limit must be a positive integer: "`+limit+`"`, body["Error"])
		})
	}
}

func TestGetPackage(t *testing.T) {
	engine := newTestServer()

	status, body := get(t, engine, "/api/v1/packages/demo/fzf")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "demo", body["Provider"])
	assert.Equal(t, "fzf", body["Name"])
	assert.Contains(t, body["Fields"], map[string]interface{}{"Key": "Download Size", "Value": "1.46 MiB"})

	status, body = get(t, engine, "/api/v1/packages/flatpak/fzf")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, `Unknown provider: "flatpak"`, body["Error"])

	status, body = get(t, engine, "/api/v1/packages/demo/not-a-package")
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "demo: No package details found", body["Error"])
}

func TestRecovery(t *testing.T) {
	engine := newTestServer()
	engine.GET("/panic", func(c *gin.Context) {
		panic("some panic")
	})
	status, body := get(t, engine, "/panic")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body["Error"])
}
