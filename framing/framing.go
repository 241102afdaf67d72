package framing

import (
	"fmt"

	"github.com/nicwaller/gelfconv"
)

// ByName returns the framing registered under name.
func ByName(name string) (gelfconv.FramingPlugin, error) {
	switch name {
	case "", "lines":
		return Lines(), nil
	case "whole":
		return Whole(), nil
	case "yaml":
		return Yaml(), nil
	case "auto":
		return Auto(), nil
	default:
		return nil, fmt.Errorf("unknown framing %q", name)
	}
}
