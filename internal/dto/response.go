package dto

// SuccessResponse is the envelope for every 2xx payload.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorResponse is the envelope for every failure payload.
type ErrorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func OK(data interface{}) SuccessResponse {
	return SuccessResponse{Success: true, Data: data}
}

func OKMessage(data interface{}, message string) SuccessResponse {
	return SuccessResponse{Success: true, Data: data, Message: message}
}

func Fail(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}
