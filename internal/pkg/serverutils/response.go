package serverutils

type APIResponse[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"error"`
}

func SuccessResponse[T any](message string, data T) APIResponse[T] {
	return APIResponse[T]{Message: message, Data: data}
}

func ErrorResponse(status int, message string) APIError {
	return APIError{Status: status, Message: message}
}
