// Package basepath resolves the URL path prefix the built site is served under.
package basepath

import (
	"os"
	"strings"
)

// Default is used when no base path is configured.
const Default BasePath = "/ModernBlog/"

// EnvVar names the environment variable that overrides the base path.
const EnvVar = "MODERNBLOG_BASE_PATH"

// BasePath is the URL prefix of the built site, ending with a single "/".
// Values should be built with Normalize or Resolve.
type BasePath string

// String returns the base path as a plain string.
func (b BasePath) String() string {
	return string(b)
}

// Join appends a relative path to the base path.
// Leading slashes on p are dropped so the result never contains "//".
func (b BasePath) Join(p string) string {
	return string(b) + strings.TrimLeft(p, "/")
}

// Normalize converts a configured value into a BasePath.
// An empty value yields Default. Otherwise the value is kept as given
// except that any run of trailing slashes becomes exactly one.
func Normalize(value string) BasePath {
	if value == "" {
		return Default
	}
	return BasePath(strings.TrimRight(value, "/") + "/")
}

// Resolve reads EnvVar through lookup and normalizes it.
// lookup has the signature of os.LookupEnv so tests can inject values.
func Resolve(lookup func(string) (string, bool)) BasePath {
	if lookup == nil {
		return Default
	}
	value, ok := lookup(EnvVar)
	if !ok {
		return Default
	}
	return Normalize(value)
}

// FromEnv resolves the base path from the process environment.
func FromEnv() BasePath {
	return Resolve(os.LookupEnv)
}
