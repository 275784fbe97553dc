// Package csfd scrapes show, season and episode data from ČSFD.cz.
//
// The site has no public API and its markup shifts between page families,
// so every value is extracted through a cascade of selector strategies and
// all requests go through a shared rate limiter with retry on transient
// failures.
package csfd

import "time"

// Config contains the configuration needed for the ČSFD client.
type Config struct {
	URL               string        `env:"URL,default=https://www.csfd.cz"`
	RequestsPerSecond float64       `env:"REQUESTS_PER_SECOND,default=2"`
	Timeout           time.Duration `env:"TIMEOUT,default=30s"`
	MaxRetries        int           `env:"MAX_RETRIES,default=3"`
	RetryBaseDelay    time.Duration `env:"RETRY_BASE_DELAY,default=1s"`
}
