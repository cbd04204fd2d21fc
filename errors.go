package md2slides

import (
	"errors"

	"github.com/alnah/go-md2slides/internal/assets"
	"github.com/alnah/go-md2slides/internal/pipeline"
)

// Sentinel errors for conversion.
var (
	ErrMissingTitle     = errors.New("note has no level-1 heading")
	ErrAlreadyConverted = errors.New("note already contains slide markup")
	ErrAborted          = errors.New("conversion aborted by user")
	ErrNoteNotFound     = errors.New("note not found")
	ErrInvalidLocation  = errors.New("invalid deck location")
	ErrUnknownLayout    = errors.New("unknown layout")
	ErrNilVault         = errors.New("vault cannot be nil")
)

// Re-exported errors from internal packages.
var (
	ErrDesignNotFound = assets.ErrDesignNotFound
	ErrUnknownSyntax  = pipeline.ErrUnknownSyntax
	ErrPromptAborted  = pipeline.ErrPromptAborted
)
