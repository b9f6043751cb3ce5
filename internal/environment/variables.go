package environment

import "os"

// Environment variables honored by the treescrub binary.
const (
	LogLevel = "TREESCRUB_LOG_LEVEL"
	Debug    = "TREESCRUB_DEBUG"
)

// Get returns the value of the environment variable, or "" when it is unset.
func Get(variable string) string {
	return os.Getenv(variable)
}

// Enabled reports whether the environment variable is set to "true".
func Enabled(variable string) bool {
	return Get(variable) == "true"
}
