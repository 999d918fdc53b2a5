package response

const (
	CodeOK                 = 0
	CodeBadRequest         = 400
	CodeNotFound           = 404
	CodeTooManyRequests    = 429
	CodeInternal           = 500
	CodeServiceUnavailable = 503
)

// RequestIDKey 请求 ID 在 gin 上下文中的键
const RequestIDKey = "request_id"
