package cli

import "errors"

// ErrInvalidOptions indicates flag values failed validation.
var ErrInvalidOptions = errors.New("invalid options")

// ErrFileNotFound indicates the source file does not exist.
var ErrFileNotFound = errors.New("source file not found")
