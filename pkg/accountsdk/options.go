package accountsdk

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

const (
	// DefaultKeyHashRounds is the PBKDF2 round count used for every
	// derivation unless overridden.
	DefaultKeyHashRounds = 1000

	// DefaultTimeout bounds each HTTP request made by the default client.
	DefaultTimeout = 10 * time.Second
)

type settings struct {
	httpClient *http.Client
	logger     *slog.Logger
	rounds     int
	lifetime   time.Duration
	now        func() time.Time
}

// Option configures an Account.
type Option func(*settings)

// WithHTTPClient sets the HTTP client. Its transport is wrapped for request
// logging; the caller's client is not modified.
func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) { s.httpClient = c }
}

// WithLogger sets the logger used for request logging when the request
// context carries none.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithKeyHashRounds overrides DefaultKeyHashRounds. Every client that will
// ever open the same backups must use the same value.
func WithKeyHashRounds(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.rounds = n
		}
	}
}

// WithTokenLifetime overrides DefaultTokenLifetime.
func WithTokenLifetime(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.lifetime = d
		}
	}
}

// WithClock replaces time.Now for token expiry.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		rounds:   DefaultKeyHashRounds,
		lifetime: DefaultTokenLifetime,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	if s.httpClient == nil {
		s.httpClient = defaultHTTPClient(s.logger)
	} else {
		c := *s.httpClient
		c.Transport = slogx.Transport(c.Transport, s.logger)
		s.httpClient = &c
	}
	return s
}

func defaultHTTPClient(logger *slog.Logger) *http.Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &http.Client{
		Timeout:   DefaultTimeout,
		Transport: slogx.Transport(nil, logger),
	}
}
