package gelfconv

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

var ErrHostnameUnavailable = errors.New("host name unavailable")

// HostnameProvider returns the name put into the GELF "host" field.
type HostnameProvider func() (string, error)

// OSHostname asks the operating system on every call.
func OSHostname() (string, error) {
	name, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHostnameUnavailable, err)
	}
	if name == "" {
		return "", fmt.Errorf("%w: empty host name", ErrHostnameUnavailable)
	}
	return name, nil
}

func StaticHostname(name string) HostnameProvider {
	return func() (string, error) {
		if name == "" {
			return "", fmt.Errorf("%w: empty host name", ErrHostnameUnavailable)
		}
		return name, nil
	}
}

// CachedHostname remembers the first successful answer of next.
// A renamed host is not noticed until the process restarts.
// Failures are not remembered; the next call tries again.
func CachedHostname(next HostnameProvider) HostnameProvider {
	var mu sync.Mutex
	var cached string
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		if cached != "" {
			return cached, nil
		}
		name, err := next()
		if err != nil {
			return "", err
		}
		cached = name
		return cached, nil
	}
}
