package request

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetRemoteAddrWithoutPort(t *testing.T) {
	tests := map[string]struct {
		remoteAddr string
		expected   string
	}{
		"ipv4_with_port": {remoteAddr: "127.0.0.1:51234", expected: "127.0.0.1"},
		"ipv6_with_port": {remoteAddr: "[::1]:51234", expected: "::1"},
		"without_port":   {remoteAddr: "192.0.2.1", expected: "192.0.2.1"},
		"empty":          {remoteAddr: "", expected: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/forked/", nil)
			r.RemoteAddr = tt.remoteAddr

			require.Equal(t, tt.expected, GetRemoteAddrWithoutPort(r))
		})
	}
}

func TestIsFileRequest(t *testing.T) {
	tests := map[string]bool{
		http.MethodGet:     true,
		http.MethodHead:    true,
		http.MethodPost:    false,
		http.MethodPut:     false,
		http.MethodDelete:  false,
		http.MethodOptions: false,
	}

	for method, expected := range tests {
		t.Run(method, func(t *testing.T) {
			r := httptest.NewRequest(method, "/forked/", nil)
			require.Equal(t, expected, IsFileRequest(r))
		})
	}
}
