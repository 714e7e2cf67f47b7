package clinicsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is a non-2xx answer from the API, carrying the server's {msg}
// envelope and the HTTP status it arrived with.
type APIError struct {
	StatusCode int    `json:"-"`
	Msg        string `json:"msg"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Msg)
}

// parseErrorResponse turns a failed response body into an *APIError. A body
// that is not the expected envelope still yields a usable error.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Msg == "" {
		apiErr.Msg = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
