package logging

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gitlab.com/gitlab-org/labkit/correlation"
)

func TestConfigureLogging(t *testing.T) {
	tests := map[string]struct {
		format  string
		verbose bool
		level   logrus.Level
	}{
		"text":         {format: "text", level: logrus.InfoLevel},
		"json":         {format: "json", level: logrus.InfoLevel},
		"empty_format": {format: "", level: logrus.InfoLevel},
		"verbose":      {format: "text", verbose: true, level: logrus.TraceLevel},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, ConfigureLogging(tt.format, tt.verbose))
			require.Equal(t, tt.level, logrus.GetLevel())
		})
	}

	require.NoError(t, ConfigureLogging("text", false))
}

func TestGetAccessLogger(t *testing.T) {
	t.Run("json_uses_the_standard_logger", func(t *testing.T) {
		logger, err := getAccessLogger("json")
		require.NoError(t, err)
		require.Same(t, logrus.StandardLogger(), logger)
	})

	t.Run("text_uses_a_combined_logger", func(t *testing.T) {
		logger, err := getAccessLogger("text")
		require.NoError(t, err)
		require.NotSame(t, logrus.StandardLogger(), logger)
	})
}

func TestBasicAccessLoggerLogsClientAddress(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	accessLogger, err := BasicAccessLogger(handler, "json")
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	orig := logrus.StandardLogger().Out
	logrus.SetOutput(buf)
	defer logrus.SetOutput(orig)

	r := httptest.NewRequest(http.MethodGet, "/forked/index.html", nil)
	r.RemoteAddr = "192.0.2.10:51234"
	w := httptest.NewRecorder()

	correlation.InjectCorrelationID(accessLogger).ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, buf.String(), "192.0.2.10")
	require.Contains(t, buf.String(), "/forked/index.html")
	require.Contains(t, buf.String(), "correlation_id")
}

func TestLogRequest(t *testing.T) {
	logger, hook := test.NewNullLogger()

	r := httptest.NewRequest(http.MethodGet, "http://localhost:8080/forked/app.js", nil)
	r.RemoteAddr = "127.0.0.1:40000"

	entry := LogRequest(r)
	require.Equal(t, "localhost:8080", entry.Data["host"])
	require.Equal(t, "/forked/app.js", entry.Data["path"])
	require.Equal(t, "127.0.0.1:40000", entry.Data["remote_addr"])

	entry.Logger = logger
	entry.Info("served")
	require.Len(t, hook.Entries, 1)
	require.Equal(t, "served", hook.LastEntry().Message)
}
