package config

import (
	"errors"
	"strings"
)

var errMultiStringSetEmptyValue = errors.New("value cannot be empty")

const defaultSeparator = ","

// MultiStringFlag is a flag.Value that may be given several times, each
// value holding one or more separator joined items.
//
// e.g.: -listen-http 127.0.0.1:8080 -listen-http "[::1]:8080,[::1]:8081"
type MultiStringFlag struct {
	value     []string
	separator string
}

// String returns the raw values joined with the separator
func (s *MultiStringFlag) String() string {
	return strings.Join(s.value, s.sep())
}

// Set appends the value to the list of parameters
func (s *MultiStringFlag) Set(value string) error {
	if strings.TrimSpace(value) == "" {
		return errMultiStringSetEmptyValue
	}

	s.value = append(s.value, value)
	return nil
}

// Split returns every item of every value with surrounding spaces removed.
// Empty items are skipped.
func (s *MultiStringFlag) Split() []string {
	var result []string

	for _, str := range s.value {
		for _, item := range strings.Split(str, s.sep()) {
			if item = strings.TrimSpace(item); item != "" {
				result = append(result, item)
			}
		}
	}

	return result
}

func (s *MultiStringFlag) sep() string {
	if s.separator == "" {
		return defaultSeparator
	}

	return s.separator
}

// Len is the number of times the flag was given
func (s *MultiStringFlag) Len() int {
	return len(s.value)
}
