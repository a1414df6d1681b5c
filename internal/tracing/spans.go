package tracing

// Span names.
const (
	SpanProfileFetch = "profile.fetch"
)

// Span attribute keys.
const (
	AttrRequestID     = "profile.request_id"
	AttrProfileSource = "profile.source"
	AttrProfileURL    = "profile.url"
	AttrBaseColor     = "profile.base_color"
	AttrAttempts      = "profile.attempts"
	AttrHTTPStatus    = "http.response.status_code"
)
