package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Environment variables that override config file values.
const (
	EnvHGNCBaseURL     = "AF_PREP_HGNC_URL"
	EnvUniProtBaseURL  = "AF_PREP_UNIPROT_URL"
	EnvRequestTimeout  = "AF_PREP_REQUEST_TIMEOUT"
	EnvRequestInterval = "AF_PREP_REQUEST_INTERVAL"
	EnvConcurrency     = "AF_PREP_CONCURRENCY"
)

// LookupFunc matches os.LookupEnv so tests can supply a fixed environment.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides fields with any non-empty environment variables.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if v, ok := lookupNonEmpty(lookup, EnvHGNCBaseURL); ok {
		c.HGNCBaseURL = v
	}
	if v, ok := lookupNonEmpty(lookup, EnvUniProtBaseURL); ok {
		c.UniProtBaseURL = v
	}

	if v, ok := lookupNonEmpty(lookup, EnvRequestTimeout); ok {
		seconds, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %v", EnvRequestTimeout, err)
		}
		c.RequestTimeoutSeconds = seconds
	}
	if v, ok := lookupNonEmpty(lookup, EnvRequestInterval); ok {
		seconds, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %v", EnvRequestInterval, err)
		}
		c.RequestIntervalSeconds = seconds
	}
	if v, ok := lookupNonEmpty(lookup, EnvConcurrency); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %v", EnvConcurrency, err)
		}
		c.Concurrency = n
	}

	return nil
}

func lookupNonEmpty(lookup LookupFunc, key string) (string, bool) {
	if lookup == nil {
		return "", false
	}
	v, ok := lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
