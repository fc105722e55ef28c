package logkey

// Attribute keys shared by every slog call so log lines can be grepped the
// same way across handlers and stores.
const (
	TraceID = "TRACE ID"
	ERROR   = "ERROR"
	UserID  = "UserID"
	Kind    = "KIND"
)
