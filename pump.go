package gelfconv

import (
	"context"
)

// PumpToFunction hands every frame from input to fn until input is closed.
// An error from fn stops the pump and is returned.
//
// intended to be run as a goroutine
func PumpToFunction(ctx context.Context, input <-chan []byte, fn func([]byte) error) error {
	log := ContextLogger(ctx)
	log.Debug("starting pump to function")
	count := 0
	defer func() {
		log.Debug("stopped pump to function", "count", count)
	}()
	for {
		select {
		case frame, more := <-input:
			if !more {
				return nil
			}
			count++
			if err := fn(frame); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
