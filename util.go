package gelfconv

func CoalesceStr(args ...string) string {
	for _, v := range args {
		if v != "" {
			return v
		}
	}
	return ""
}

// Ptr is shorthand for filling the optional fields of a LogEvent.
func Ptr[T any](v T) *T {
	return &v
}
