package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrMissingInviteHeaders is returned when a generated QR code arrives
	// without the invite code or invite id headers
	ErrMissingInviteHeaders = errors.New("response is missing invite headers")

	// ErrInvalidResponse is returned when a 2xx body cannot be decoded
	ErrInvalidResponse = errors.New("invalid response body")
)

// APIError is a non-2xx response from the API
type APIError struct {
	StatusCode int
	// Detail is the body's detail message, or a generic fallback
	Detail string
	// FromBody is true when Detail came from the response body
	FromBody bool
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Detail)
}

// errorBody matches the API's {"detail": ...} envelope.
// Validation failures send a list instead of a string.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// decodeAPIError builds an APIError from a non-2xx response
func decodeAPIError(resp *http.Response, fallback string) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Detail: fallback}

	data, err := io.ReadAll(resp.Body)
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return apiErr
	}

	var detail string
	if err := json.Unmarshal(body.Detail, &detail); err == nil && detail != "" {
		apiErr.Detail = detail
		apiErr.FromBody = true
	}
	return apiErr
}

// AsAPIError unwraps err into an APIError
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
