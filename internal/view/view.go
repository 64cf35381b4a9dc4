package view

// ResultResponse is the success envelope: {"result": ...}.
type ResultResponse[T any] struct {
	Result T `json:"result"`
}

// ErrorResponse is the failure envelope: {"message": "..."}.
type ErrorResponse struct {
	Message string `json:"message"`
}

// PriceView wraps a point price for the price endpoint.
type PriceView struct {
	Price float64 `json:"price"`
}

func CreateResponse[T any](result T) ResultResponse[T] {
	return ResultResponse[T]{Result: result}
}

func CreateErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Message: message}
}
