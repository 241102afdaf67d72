package gelfconv

import (
	"fmt"
	"strings"
)

type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = map[Level]string{
	LevelTrace: "Trace",
	LevelDebug: "Debug",
	LevelInfo:  "Info",
	LevelWarn:  "Warn",
	LevelError: "Error",
	LevelFatal: "Fatal",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// SyslogSeverity maps a level onto the syslog severity carried in the GELF
// "level" field. Trace shares Info's severity; anything unknown is an error.
//
// See https://datatracker.ietf.org/doc/html/rfc5424#section-6.2.1
func (l Level) SyslogSeverity() int {
	switch l {
	case LevelDebug:
		return 7
	case LevelTrace, LevelInfo:
		return 6
	case LevelWarn:
		return 4
	case LevelFatal:
		return 2
	default:
		return 3
	}
}

var levelAliases = map[string]Level{
	"trace":       LevelTrace,
	"debug":       LevelDebug,
	"info":        LevelInfo,
	"information": LevelInfo,
	"warn":        LevelWarn,
	"warning":     LevelWarn,
	"error":       LevelError,
	"err":         LevelError,
	"fatal":       LevelFatal,
	"critical":    LevelFatal,
}

// ParseLevel accepts level names case-insensitively, including a few common
// aliases ("warning", "critical").
func ParseLevel(name string) (Level, error) {
	if l, ok := levelAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return l, nil
	}
	return LevelError, fmt.Errorf("unknown log level %q", name)
}
