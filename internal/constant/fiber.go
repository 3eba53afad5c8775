package constant

const (
	ContextKeyRequestID = "requestid"

	RequestIDHeader = "X-TWLotto-Request-ID"
)
