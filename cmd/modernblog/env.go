package main

import (
	"io"
	"os"
	"time"
)

// dotEnvFile is read from the working directory before env vars are resolved.
const dotEnvFile = ".env"

// Environment holds injectable dependencies for testability.
// Includes I/O, time and process environment access.
type Environment struct {
	Now       func() time.Time
	Stdout    io.Writer
	Stderr    io.Writer
	LookupEnv func(string) (string, bool)
	Environ   func() []string
	DotEnv    string // Path of the .env file, empty disables it
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:       time.Now,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		LookupEnv: os.LookupEnv,
		Environ:   os.Environ,
		DotEnv:    dotEnvFile,
	}
}
