package serverutils

// Response is the standard envelope returned by every endpoint. Non-2xx and
// non-JSON upstream failures are normalized into this shape by the error
// handler middleware so clients never have to shape-guess.
type Response[T any] struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       T           `json:"data,omitempty"`
	Error      *ErrorBody  `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func PaginatedResponse[T any](message string, data T, pagination Pagination) Response[T] {
	return Response[T]{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: &pagination,
	}
}

func FailureResponse(code int, message string) Response[any] {
	return Response[any]{
		Success: false,
		Error: &ErrorBody{
			Code:    code,
			Message: message,
		},
	}
}
