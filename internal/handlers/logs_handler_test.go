package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogsHandler_WritesJSONLines(t *testing.T) {
	var out bytes.Buffer
	router := gin.New()
	router.POST("/api/v1/logs", NewLogsHandler(&out).ReceiveFrontendLogs)

	w := postJSON(router, "/api/v1/logs", `{"logs":[
		{"timestamp":"2024-05-01T10:00:00Z","level":"error","message":"Failed to load calendar","context":{"page":"/"}},
		{"timestamp":"2024-05-01T10:00:01Z","level":"warn","message":"slow"}
	]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"received":2}`, w.Body.String())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "error", first["level"])
	assert.Equal(t, "Failed to load calendar", first["msg"])
	assert.Equal(t, "browser", first["service"])
	assert.Equal(t, "/", first["page"])
}

func TestLogsHandler_RejectsInvalidBatches(t *testing.T) {
	var out bytes.Buffer
	router := gin.New()
	router.POST("/api/v1/logs", NewLogsHandler(&out).ReceiveFrontendLogs)

	for _, body := range []string{
		`{"logs":[]}`,
		`{"logs":[{"level":"fatal","message":"x"}]}`,
		`{"logs":[{"level":"info"}]}`,
		`not json`,
	} {
		w := postJSON(router, "/api/v1/logs", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	assert.Zero(t, out.Len())
}
