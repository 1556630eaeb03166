package sntool

import (
	"github.com/akeil/sntool/internal/errors"
)

// IsOutOfBounds tells if err was caused by an address, offset or length
// that points outside of the file.
func IsOutOfBounds(err error) bool {
	return errors.IsOutOfBounds(err)
}

// IsEncodingError tells if err was caused by a block that could not be
// decoded as text.
func IsEncodingError(err error) bool {
	return errors.IsEncodingError(err)
}

// IsUnknownLayerRole tells if err was caused by a layer name that is not
// one of the known roles.
func IsUnknownLayerRole(err error) bool {
	return errors.IsUnknownLayerRole(err)
}

// IsValidationError tells if err was returned from Validate.
func IsValidationError(err error) bool {
	return errors.IsValidationError(err)
}

// IsNotFound tells if err was caused by data that is not available,
// like resolving a block on a document that was not parsed from a file.
func IsNotFound(err error) bool {
	return errors.IsNotFound(err)
}
