package resp

const (
	CodeBadRequest    = "bad_request"
	CodeUnauthorized  = "unauthorized"
	CodeInternalError = "internal_error"
	CodeQueued        = "queued"
)
