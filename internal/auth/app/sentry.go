package app

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// initSentry wires error reporting when a DSN is configured. An empty DSN
// disables it, which is the default everywhere but production.
func initSentry(dsn, environment, release string) error {
	if dsn == "" {
		return nil
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          release,
		AttachStacktrace: true,
	})
}

func flushSentry() {
	sentry.Flush(2 * time.Second)
}
