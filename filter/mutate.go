package filter

import (
	"slices"

	"github.com/nicwaller/gelfconv"
)

// Replace the value of a property with a new value, or add the property if it doesn’t already exist.
func Replace(key string, content string) gelfconv.FilterPlugin {
	return func(evt *gelfconv.LogEvent, drop func()) error {
		replaced := false
		for i := range evt.Properties {
			if evt.Properties[i].Key == key {
				evt.Properties[i].Value = content
				replaced = true
			}
		}
		if !replaced {
			evt.With(key, content)
		}
		return nil
	}
}

func Remove(key string) gelfconv.FilterPlugin {
	return func(evt *gelfconv.LogEvent, drop func()) error {
		evt.Properties = slices.DeleteFunc(evt.Properties, func(p gelfconv.Property) bool {
			return p.Key == key
		})
		return nil
	}
}

// Rename keeps the property where it is; only the key changes.
// Any existing property already using newKey is removed first.
func Rename(oldKey string, newKey string) gelfconv.FilterPlugin {
	return func(evt *gelfconv.LogEvent, drop func()) error {
		if oldKey == newKey {
			return nil
		}
		if _, ok := evt.Property(oldKey); !ok {
			return nil
		}
		evt.Properties = slices.DeleteFunc(evt.Properties, func(p gelfconv.Property) bool {
			return p.Key == newKey
		})
		for i := range evt.Properties {
			if evt.Properties[i].Key == oldKey {
				evt.Properties[i].Key = newKey
			}
		}
		return nil
	}
}

// MinLevel drops events below level.
func MinLevel(level gelfconv.Level) gelfconv.FilterPlugin {
	return func(evt *gelfconv.LogEvent, drop func()) error {
		if evt.Level < level {
			drop()
		}
		return nil
	}
}
