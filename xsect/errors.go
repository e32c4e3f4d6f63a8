package xsect

import "github.com/pkg/errors"

var (
	// ErrInvalidInput is wrapped by errors caused by malformed meshes,
	// planes, or station sets. The computation is aborted.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration is wrapped by errors caused by sampling settings
	// which cannot produce a valid boundary.
	ErrConfiguration = errors.New("invalid configuration")
)

func invalidInput(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidInput, format, args...)
}

func badConfig(format string, args ...interface{}) error {
	return errors.Wrapf(ErrConfiguration, format, args...)
}
