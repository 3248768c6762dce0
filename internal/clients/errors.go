package clients

import (
	"fmt"
	"net/http"
)

// ResponseError is returned when an upstream API answers with a non-success status.
type ResponseError struct {
	Method     string
	URL        string
	StatusCode int
	Header     http.Header
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("received %d HTTP response", e.StatusCode)
}
