// Package sntool reads notebooks written by Supernote e-ink devices.
package sntool

import (
	"github.com/akeil/sntool/internal/logging"
)

// SetLogLevel sets the log level by name.
// Valid names are "debug", "info", "warning" and "error";
// anything else turns logging off.
func SetLogLevel(level string) {
	logging.SetLevel(logging.ParseLevel(level))
}
