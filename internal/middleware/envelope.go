package middleware

// errorResponse mirrors api.ErrorResponse. It is declared here because the
// api package imports middleware.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func failure(message string) errorResponse {
	return errorResponse{Success: false, Error: message}
}
