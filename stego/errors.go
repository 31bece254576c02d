package stego

import (
	"errors"
	"fmt"
)

// ErrNoSecret reports that an image carries no recoverable payload.
// All extraction failures caused by implausible header geometry unwrap
// to this sentinel.
var ErrNoSecret = errors.New("no secret detected")

// UnsupportedFileTypeError is returned when a file's extension is not
// in the allow-list for its role (carrier, secret, output or image).
type UnsupportedFileTypeError struct {
	Path      string
	Role      string
	Extension string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q for %s file %q", e.Extension, e.Role, e.Path)
}

// SecretTooLargeError is returned when the carrier does not have enough
// elements to hold the header and the expanded secret bits.
type SecretTooLargeError struct {
	Required  int
	Available int
}

func (e *SecretTooLargeError) Error() string {
	return fmt.Sprintf("secret too large: requires %d carrier elements, carrier has %d", e.Required, e.Available)
}

// NoSecretDetectedError is returned when extraction decodes a header
// whose geometry cannot describe a payload actually present in the
// image. Reason records which check failed.
type NoSecretDetectedError struct {
	Reason string
}

func (e *NoSecretDetectedError) Error() string {
	return fmt.Sprintf("no secret detected: %s", e.Reason)
}

func (e *NoSecretDetectedError) Unwrap() error {
	return ErrNoSecret
}
