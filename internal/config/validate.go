package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"

	"gitlab.com/forked-pages/forked-pages/internal/customheaders"
)

var (
	ErrNoListener            = errors.New("no listener defined, please specify at least one --listen-* flag")
	ErrRootNotDirectory      = errors.New("pages-root needs to be a directory")
	ErrInvalidLogFormat      = errors.New("log-format must be either 'text' or 'json'")
	ErrNegativeMaxConns      = errors.New("max-conns must be greater than or equal to 0")
	ErrNegativeMaxURILength  = errors.New("max-uri-length must be greater than or equal to 0")
	ErrNegativeRateLimit     = errors.New("rate-limit-source-ip must be greater than or equal to 0")
	ErrInvalidRateLimitBurst = errors.New("rate-limit-source-ip-burst must be greater than 0 when rate limiting is enabled")
	ErrInvalidStatusPath     = errors.New("pages-status must be an absolute path outside of / and " + Prefix)
)

// Validate checks the loaded configuration and returns all the problems found
func Validate(config *Config) error {
	var result *multierror.Error

	for _, validate := range []func(*Config) error{
		validateListeners,
		validateRootDir,
		validateGeneral,
		validateLog,
		validateRateLimit,
	} {
		if err := validate(config); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

func validateListeners(config *Config) error {
	if config.ListenHTTPStrings.Len() == 0 && config.ListenProxyV2Strings.Len() == 0 {
		return ErrNoListener
	}

	return nil
}

func validateRootDir(config *Config) error {
	fi, err := os.Stat(config.General.RootDir)
	if err != nil {
		return fmt.Errorf("reading pages-root: %w", err)
	}

	if !fi.IsDir() {
		return ErrRootNotDirectory
	}

	return nil
}

func validateGeneral(config *Config) error {
	var result *multierror.Error

	if config.General.MaxConns < 0 {
		result = multierror.Append(result, ErrNegativeMaxConns)
	}

	if config.General.MaxURILength < 0 {
		result = multierror.Append(result, ErrNegativeMaxURILength)
	}

	if path := config.General.StatusPath; path != "" {
		if !strings.HasPrefix(path, "/") || path == "/" || path == Prefix || strings.HasPrefix(path, Prefix+"/") {
			result = multierror.Append(result, ErrInvalidStatusPath)
		}
	}

	if _, err := customheaders.ParseHeaderString(config.General.CustomHeaders); err != nil {
		result = multierror.Append(result, fmt.Errorf("parsing header: %w", err))
	}

	return result.ErrorOrNil()
}

func validateLog(config *Config) error {
	switch config.Log.Format {
	case "text", "json":
		return nil
	default:
		return ErrInvalidLogFormat
	}
}

func validateRateLimit(config *Config) error {
	if config.RateLimit.SourceIPLimitPerSecond < 0 {
		return ErrNegativeRateLimit
	}

	if config.RateLimit.SourceIPLimitPerSecond > 0 && config.RateLimit.SourceIPBurst < 1 {
		return ErrInvalidRateLimitBurst
	}

	return nil
}
