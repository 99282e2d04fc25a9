package request

import (
	"net"
	"net/http"
)

// GetRemoteAddrWithoutPort strips the port from r.RemoteAddr. When the
// address carries no port it is returned unchanged.
func GetRemoteAddrWithoutPort(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

// IsFileRequest reports whether the method may read a file. Only GET and
// HEAD are served, any other method is answered without touching the disk.
func IsFileRequest(r *http.Request) bool {
	return r.Method == http.MethodGet || r.Method == http.MethodHead
}
