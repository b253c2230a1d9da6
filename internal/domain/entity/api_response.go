package entity

// APIResponse is the envelope of every JSON response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError carries a machine readable code such as NOT_FOUND
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewSuccessResponse(data interface{}, message string) *APIResponse {
	return &APIResponse{Success: true, Message: message, Data: data}
}

func NewErrorResponse(code, message string) *APIResponse {
	return &APIResponse{
		Message: message,
		Error:   &APIError{Code: code, Message: message},
	}
}
