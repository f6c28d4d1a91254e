package response

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func Error(message string) Response {
	return Response{
		Success: false,
		Message: message,
	}
}
