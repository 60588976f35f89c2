package models

// LogEntry is one browser-side log line
type LogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level" binding:"required,oneof=debug info warn error"`
	Message   string                 `json:"message" binding:"required,max=2000"`
	Context   map[string]interface{} `json:"context,omitempty"`
}

// LogBatchRequest is what the page's script posts when it reports failures
type LogBatchRequest struct {
	Logs []LogEntry `json:"logs" binding:"required,min=1,max=100,dive"`
}
