package types

import "errors"

// Config selects and parameterizes a Board backend for Open.
type Config struct {
	Backend      string `json:"backend" yaml:"backend"`
	HistoryLimit int    `json:"history_limit,omitempty" yaml:"history_limit,omitempty"`
}

// Supported backend names. Both backends are volatile; the sqlite backend
// runs entirely in :memory: and writes nothing to disk.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// DefaultHistoryLimit bounds the activity journal when the config does not
// set history_limit.
const DefaultHistoryLimit = 512

// Config validation errors.
var (
	ErrBackendEmpty        = errors.New("backend must not be empty")
	ErrBackendUnknown      = errors.New("unknown backend")
	ErrHistoryLimitInvalid = errors.New("history limit must not be negative")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendMemory: true,
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.HistoryLimit < 0 {
		return ErrHistoryLimitInvalid
	}
	return nil
}

// GetHistoryLimit returns the configured journal bound, or
// DefaultHistoryLimit when unset.
func (c Config) GetHistoryLimit() int {
	if c.HistoryLimit == 0 {
		return DefaultHistoryLimit
	}
	return c.HistoryLimit
}
