package customheaders

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// ErrInvalidHeaderParameter is returned for values that are not a "Key: value" pair
var ErrInvalidHeaderParameter = errors.New("invalid syntax specified as header parameter")

// AddCustomHeaders adds every configured value to the response headers
func AddCustomHeaders(w http.ResponseWriter, headers http.Header) {
	for k, v := range headers {
		for _, value := range v {
			w.Header().Add(k, value)
		}
	}
}

// ParseHeaderString turns "Key: value" strings into an http.Header with
// canonical keys. The first colon separates the name from the value.
func ParseHeaderString(customHeaders []string) (http.Header, error) {
	headers := http.Header{}

	for _, keyValue := range customHeaders {
		name, value, ok := strings.Cut(keyValue, ":")
		name, value = strings.TrimSpace(name), strings.TrimSpace(value)

		if !ok || !httpguts.ValidHeaderFieldName(name) || !httpguts.ValidHeaderFieldValue(value) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidHeaderParameter, keyValue)
		}

		headers.Add(name, value)
	}

	return headers, nil
}
