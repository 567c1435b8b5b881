package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(data interface{}, message string) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(err string) Response {
	return Response{
		Success: false,
		Error:   err,
	}
}

// FailResponse is ErrorResponse with a payload, used where the client needs
// machine-readable detail next to the message (login lockout counters).
func FailResponse(err string, data interface{}) Response {
	return Response{
		Success: false,
		Error:   err,
		Data:    data,
	}
}
