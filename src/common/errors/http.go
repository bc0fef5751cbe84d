package errors

// Response is the JSON error body returned by the HTTP API
type Response struct {
	// Error is "<domain>.<code>"
	Error string `json:"error"`

	// Message is human readable
	Message string `json:"message"`
}

// ToResponse converts e to a Response
func (e *Error) ToResponse() Response {
	return Response{
		Error:   string(e.Domain) + "." + string(e.Code),
		Message: e.Message,
	}
}

// NewResponse builds a Response from any error. Errors that are not *Error
// collapse to a generic internal error so driver messages never leak.
func NewResponse(err error) Response {
	var e *Error
	if As(err, &e) {
		return e.ToResponse()
	}
	return ErrInternal.ToResponse()
}
