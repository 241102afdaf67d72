package gelfconv

import (
	"context"
	"log/slog"
)

func ContextLogger(ctx context.Context) *slog.Logger {
	log := slog.Default()
	keys := []ContextKey{
		ContextKeyPipelineName,
		ContextKeyPluginType,
		ContextKeyFacility,
	}
	for _, key := range keys {
		if value := ctx.Value(key); value != nil {
			log = log.With(string(key), value)
		}
	}
	return log
}

type ContextKey string

const (
	// ContextKeyPipelineName is the name of a pipeline
	ContextKeyPipelineName ContextKey = "pipelineName"

	// ContextKeyPluginType is the type of plugin (eg. "framing[lines]")
	ContextKeyPluginType ContextKey = "pluginType"

	// ContextKeyFacility is the GELF facility a pipeline tags events with
	ContextKeyFacility ContextKey = "facility"
)
