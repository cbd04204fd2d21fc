package main

import (
	"io"
	"net/http"
	"os"
	"time"

	md2slides "github.com/alnah/go-md2slides"
	"github.com/alnah/go-md2slides/internal/designsync"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, prompts and the HTTP client used by sync.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	Prompter    md2slides.Prompter // nil selects terminal prompts when Interactive
	Interactive bool               // stdin and stdout are terminals
	HTTPClient  *http.Client
	Getenv      func(string) string
	Environ     func() []string
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Interactive: isTerminal(os.Stdin) && isTerminal(os.Stdout),
		HTTPClient:  &http.Client{Timeout: designsync.DefaultHTTPTimeout},
		Getenv:      os.Getenv,
		Environ:     os.Environ,
	}
}
