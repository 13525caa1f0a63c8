package acquire

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingCredential is returned before any request is made when no API
// key has been configured.
var ErrMissingCredential = errors.New("SPORT_API_KEY is not defined")

// TransportError wraps failures to reach the provider or to read its answer
// as JSON. It aborts the batch of the client that produced it.
type TransportError struct {
	Sport      string
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("%s: fetching %s", e.Sport, e.URL)
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProviderError carries the messages of a non-empty errors member in a
// provider response. It is logged, never returned from a fetch.
type ProviderError struct {
	Sport    string
	URL      string
	Messages []string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: provider reported errors for %s: %s", e.Sport, e.URL, strings.Join(e.Messages, "; "))
}

// AsTransportError attempts to unwrap an error into a TransportError.
func AsTransportError(err error) (*TransportError, bool) {
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return tErr, true
	}
	return nil, false
}
