package main

import (
	"fmt"
	"io"
	"net"

	"github.com/fatih/color"

	"gitlab.com/forked-pages/forked-pages/internal/config"
)

// printBanner tells the developer where the site is reachable. Only the
// first HTTP listener is announced.
func printBanner(w io.Writer, listeners []string) {
	if len(listeners) == 0 {
		return
	}

	port := listenerPort(listeners[0])
	host := "localhost:" + port
	title := color.New(color.FgGreen, color.Bold)
	url := color.New(color.FgCyan, color.Underline)
	warn := color.New(color.FgYellow)

	fmt.Fprintln(w)
	title.Fprintf(w, "Server starting on port %s...\n", port)
	fmt.Fprintf(w, "Access ONLY at: %s\n", url.Sprintf("http://%s%s/", host, config.Prefix))
	fmt.Fprintf(w, "   Note: Root path (/) redirects to %s/ to match GitHub Pages\n", config.Prefix)
	warn.Fprintf(w, "   Direct access to %s will redirect to %s/\n", host, config.Prefix)
}

func listenerPort(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil || port == "" {
		return addr
	}

	return port
}
