package config

import (
	"time"

	"github.com/namsral/flag"
	log "github.com/sirupsen/logrus"
)

// Prefix is the only URL path prefix under which files are served. It
// mirrors the project path of a GitHub Pages deployment.
const Prefix = "/forked"

// Config stores all the config options relevant to the forked pages server.
type Config struct {
	General   General
	Listeners Listeners
	Log       Log
	Metrics   Metrics
	RateLimit RateLimit
	Sentry    Sentry
	Server    Server

	// These fields contain the raw strings passed for listen-http and
	// listen-proxyv2 settings. They are used by appMain() to create the
	// listeners.
	ListenHTTPStrings    MultiStringFlag
	ListenProxyV2Strings MultiStringFlag
}

// General groups settings that are general to the server and can not
// be categorized under other head.
type General struct {
	RootDir      string
	StatusPath   string
	HTTP2        bool
	MaxConns     int
	MaxURILength int

	DisableCrossOriginRequests bool

	ShowVersion bool

	CustomHeaders []string
}

// Listeners groups the addresses the server binds to
type Listeners struct {
	HTTP    []string
	ProxyV2 []string
}

// Log groups settings related to configuring logging
type Log struct {
	Format  string
	Verbose bool
}

// Metrics groups settings related to the prometheus endpoint
type Metrics struct {
	Address string
}

// RateLimit groups settings for the per source IP rate limiter
type RateLimit struct {
	SourceIPLimitPerSecond float64
	SourceIPBurst          int
}

// Sentry groups settings related to configuring Sentry
type Sentry struct {
	DSN         string
	Environment string
}

// Server groups the HTTP server timeouts
type Server struct {
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	ListenKeepAlive   time.Duration
	ShutdownTimeout   time.Duration
}

func loadConfig() (*Config, error) {
	config := &Config{
		General: General{
			RootDir:                    *pagesRoot,
			StatusPath:                 *pagesStatus,
			HTTP2:                      *useHTTP2,
			MaxConns:                   *maxConns,
			MaxURILength:               *maxURILength,
			DisableCrossOriginRequests: *disableCrossOriginRequests,
			ShowVersion:                *showVersion,
			CustomHeaders:              header.Split(),
		},
		Log: Log{
			Format:  *logFormat,
			Verbose: *logVerbose,
		},
		Metrics: Metrics{
			Address: *metricsAddress,
		},
		RateLimit: RateLimit{
			SourceIPLimitPerSecond: *rateLimitSourceIP,
			SourceIPBurst:          *rateLimitSourceIPBurst,
		},
		Sentry: Sentry{
			DSN:         *sentryDSN,
			Environment: *sentryEnvironment,
		},
		Server: Server{
			ReadTimeout:       *serverReadTimeout,
			ReadHeaderTimeout: *serverReadHeaderTimeout,
			WriteTimeout:      *serverWriteTimeout,
			ListenKeepAlive:   *serverKeepAlive,
			ShutdownTimeout:   *serverShutdownTimeout,
		},

		ListenHTTPStrings:    listenHTTP,
		ListenProxyV2Strings: listenProxyV2,
	}

	// the default listener is only used when no listener was requested at all
	if listenHTTP.Len() == 0 && listenProxyV2.Len() == 0 {
		config.ListenHTTPStrings = MultiStringFlag{value: []string{DefaultListenHTTP}, separator: ","}
	}

	config.Listeners = Listeners{
		HTTP:    config.ListenHTTPStrings.Split(),
		ProxyV2: config.ListenProxyV2Strings.Split(),
	}

	// -version prints and exits before anything is validated
	if config.General.ShowVersion {
		return config, nil
	}

	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// LogConfig logs all the loaded settings at debug level
func LogConfig(config *Config) {
	log.WithFields(log.Fields{
		"default-config-filename":       flag.DefaultConfigFlagname,
		"disable-cross-origin-requests": config.General.DisableCrossOriginRequests,
		"header":                        config.General.CustomHeaders,
		"listen-http":                   config.Listeners.HTTP,
		"listen-proxyv2":                config.Listeners.ProxyV2,
		"log-format":                    config.Log.Format,
		"log-verbose":                   config.Log.Verbose,
		"max-conns":                     config.General.MaxConns,
		"max-uri-length":                config.General.MaxURILength,
		"metrics-address":               config.Metrics.Address,
		"pages-root":                    config.General.RootDir,
		"pages-status":                  config.General.StatusPath,
		"rate-limit-source-ip":          config.RateLimit.SourceIPLimitPerSecond,
		"rate-limit-source-ip-burst":    config.RateLimit.SourceIPBurst,
		"sentry-environment":            config.Sentry.Environment,
		"server-read-timeout":           config.Server.ReadTimeout,
		"server-read-header-timeout":    config.Server.ReadHeaderTimeout,
		"server-write-timeout":          config.Server.WriteTimeout,
		"server-keep-alive":             config.Server.ListenKeepAlive,
		"server-shutdown-timeout":       config.Server.ShutdownTimeout,
		"use-http2":                     config.General.HTTP2,
	}).Debug("Start forked pages server with configuration")
}

// LoadConfig parses configuration settings passed as command line arguments or
// via config file, and populates a Config object with those values
func LoadConfig() (*Config, error) {
	initFlags()

	return loadConfig()
}
