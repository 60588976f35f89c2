package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/lumenstudio/booking-api/internal/models"
	"github.com/lumenstudio/booking-api/pkg/logger"
	"go.uber.org/zap"
)

type LogsHandler struct {
	out io.Writer
	mu  sync.Mutex
}

// NewLogsHandler writes browser logs to out, one JSON object per line
func NewLogsHandler(out io.Writer) *LogsHandler {
	return &LogsHandler{
		out: out,
	}
}

// ReceiveFrontendLogs handles POST /api/v1/logs
func (h *LogsHandler) ReceiveFrontendLogs(c *gin.Context) {
	var req models.LogBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := ParseValidationErrors(err); len(details) > 0 {
			respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", details, err)
			return
		}
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.writeLogs(req.Logs); err != nil {
		logger.Error("Failed to write frontend logs", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to write logs", err)
		return
	}

	logger.Debug("Received frontend logs", zap.Int("count", len(req.Logs)))
	c.JSON(http.StatusOK, gin.H{"success": true, "received": len(req.Logs)})
}

func (h *LogsHandler) writeLogs(logs []models.LogEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	encoder := json.NewEncoder(h.out)
	for _, entry := range logs {
		// Reformat log entry to match backend format
		logLine := make(map[string]interface{}, len(entry.Context)+4)
		for k, v := range entry.Context {
			logLine[k] = v
		}
		logLine["ts"] = entry.Timestamp
		logLine["level"] = entry.Level
		logLine["msg"] = entry.Message
		logLine["service"] = "browser"

		if err := encoder.Encode(logLine); err != nil {
			return fmt.Errorf("failed to encode log entry: %w", err)
		}
	}

	return nil
}
