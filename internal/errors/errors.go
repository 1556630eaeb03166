package errors

import (
	e "errors"
	"fmt"
)

// Wrap wraps an error by prepending additional text.
// The text can contain formatting parameters.
func Wrap(err error, msg string, v ...interface{}) error {
	msg = fmt.Sprintf(msg, v...)
	return fmt.Errorf("%v: %w", msg, err)
}

type notFound struct {
	message string
}

// NewNotFound creates a new "not found" error.
func NewNotFound(s string, v ...interface{}) error {
	return asNotFound(fmt.Errorf(s, v...))
}

func (n notFound) Error() string {
	return n.message
}

func asNotFound(err error) error {
	return notFound{fmt.Sprintf("Not found: %v", err)}
}

// IsNotFound checks if the given error is a "not found" error.
func IsNotFound(err error) bool {
	var nf notFound
	return e.As(err, &nf)
}

type validationError struct {
	message string
}

func (v validationError) Error() string {
	return v.message
}

// NewValidationError creates an error of from the given format string.
func NewValidationError(msg string, v ...interface{}) error {
	return validationError{fmt.Sprintf(msg, v...)}
}

// IsValidationError checks if the given error is a validation error.
func IsValidationError(err error) bool {
	var ve validationError
	return e.As(err, &ve)
}

type outOfBounds struct {
	offset uint64
	width  uint64
	length int
}

// NewOutOfBounds creates an error for an access of width bytes at offset
// into a buffer of the given length.
func NewOutOfBounds(offset, width uint64, length int) error {
	return outOfBounds{offset, width, length}
}

func (o outOfBounds) Error() string {
	return fmt.Sprintf("out of bounds: %d bytes at offset %d exceed buffer length %d", o.width, o.offset, o.length)
}

// IsOutOfBounds checks if the given error is an out of bounds error.
//
// These errors mean the file is corrupt or an address was wrong,
// parsing cannot continue from that address.
func IsOutOfBounds(err error) bool {
	var o outOfBounds
	return e.As(err, &o)
}

type encodingError struct {
	address uint64
	cause   error
}

// NewEncodingError creates an error for a block at address that should
// hold text but could not be decoded.
func NewEncodingError(address uint64, cause error) error {
	return encodingError{address, cause}
}

func (x encodingError) Error() string {
	return fmt.Sprintf("invalid text in block at %d: %v", x.address, x.cause)
}

func (x encodingError) Unwrap() error {
	return x.cause
}

// IsEncodingError checks if the given error is an encoding error.
func IsEncodingError(err error) bool {
	var x encodingError
	return e.As(err, &x)
}

type unknownLayerRole struct {
	role string
}

// NewUnknownLayerRole creates an error for a layer name outside the set
// of known layer roles.
func NewUnknownLayerRole(role string) error {
	return unknownLayerRole{role}
}

func (u unknownLayerRole) Error() string {
	return fmt.Sprintf("unknown layer role %q", u.role)
}

// IsUnknownLayerRole checks if the given error names an unknown layer role.
func IsUnknownLayerRole(err error) bool {
	var u unknownLayerRole
	return e.As(err, &u)
}
