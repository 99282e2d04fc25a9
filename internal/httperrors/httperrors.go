package httperrors

import (
	"fmt"
	"html"
	"net/http"

	"gitlab.com/forked-pages/forked-pages/internal/errortracking"
	"gitlab.com/forked-pages/forked-pages/internal/logging"
)

type content struct {
	status       int
	title        string
	statusString string
	header       string
	subHeader    string
}

var (
	content404 = content{
		http.StatusNotFound,
		"The page you're looking for could not be found (404)",
		"404",
		"The page you're looking for could not be found.",
		`<p>The resource that you are attempting to access does not exist.</p>
     <p>Make sure the address is correct and that the file exists in the served directory.</p>`,
	}
	content414 = content{
		status:       http.StatusRequestURITooLong,
		title:        "Request URI Too Long (414)",
		statusString: "414",
		header:       "Request URI Too Long.",
		subHeader: `<p>The URI provided was too long for the server to process.</p>
			<p>Shorten the query string or the path of the request.</p>`,
	}
	content429 = content{
		http.StatusTooManyRequests,
		"Too many requests (429)",
		"429",
		"Too many requests.",
		`<p>Your address sent more requests than the configured rate limit allows.</p>
     <p>Wait a moment before reloading.</p>`,
	}
	content500 = content{
		http.StatusInternalServerError,
		"Something went wrong (500)",
		"500",
		"Whoops, something went wrong on our end.",
		`<p>Try refreshing the page, or going back and attempting the action again.</p>
     <p>Check the server logs if this problem persists.</p>`,
	}
)

// errorPage is filled with the title, status, header and sub header
const errorPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>%v</title>
  <style>
    body { margin: 0; padding: 48px 24px; font-family: system-ui, sans-serif; color: #333; background: #fafafa; }
    main { max-width: 640px; margin: 0 auto; }
    .status { font-size: 64px; font-weight: 300; color: #888; margin: 0; }
    h1 { font-size: 22px; font-weight: 500; margin: 8px 0 24px; }
    footer { margin-top: 32px; font-size: 12px; color: #aaa; }
  </style>
</head>
<body>
  <main>
    <p class="status">%v</p>
    <h1>%v</h1>
    %v
    <footer>forked pages development server</footer>
  </main>
</body>
</html>
`

func generateErrorHTML(c content) string {
	return fmt.Sprintf(errorPage, c.title, c.statusString, c.header, c.subHeader)
}

func serveErrorPage(w http.ResponseWriter, c content) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(c.status)
	fmt.Fprintln(w, generateErrorHTML(c))
}

// Serve404 returns a 404 error response / HTML page to the http.ResponseWriter
func Serve404(w http.ResponseWriter) {
	serveErrorPage(w, content404)
}

// Serve404WithMessage returns a 404 error page explaining why the resource
// is not served. The message is HTML escaped.
func Serve404WithMessage(w http.ResponseWriter, message string) {
	c := content404
	c.title = "Not Found (404)"
	c.header = html.EscapeString(message)
	c.subHeader = "<p>" + html.EscapeString(message) + "</p>"

	serveErrorPage(w, c)
}

// Serve414 returns a 414 error response / HTML page to the http.ResponseWriter
func Serve414(w http.ResponseWriter) {
	serveErrorPage(w, content414)
}

// Serve429 returns a 429 error response / HTML page to the http.ResponseWriter
func Serve429(w http.ResponseWriter) {
	serveErrorPage(w, content429)
}

// Serve500 returns a 500 error response / HTML page to the http.ResponseWriter
func Serve500(w http.ResponseWriter) {
	serveErrorPage(w, content500)
}

// Serve500WithRequest returns a 500 error response / HTML page to the http.ResponseWriter
func Serve500WithRequest(w http.ResponseWriter, r *http.Request, reason string, err error) {
	logging.LogRequest(r).WithError(err).Error(reason)
	errortracking.CaptureErrWithReqAndStackTrace(err, r)
	serveErrorPage(w, content500)
}

// Serve501UnsupportedMethod answers methods that have no meaning for static files
func Serve501UnsupportedMethod(w http.ResponseWriter, method string) {
	message := "Unsupported method ('" + html.EscapeString(method) + "')"

	serveErrorPage(w, content{
		status:       http.StatusNotImplemented,
		title:        "Not Implemented (501)",
		statusString: "501",
		header:       message,
		subHeader:    "<p>Only GET and HEAD requests are served.</p>",
	})
}
