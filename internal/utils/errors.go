package utils

import "errors"

var (
	ErrUnauthorized             = errors.New("unauthorized access")
	ErrReservedName             = errors.New("folder name is reserved")
	ErrAlreadyExists            = errors.New("file already exists")
	ErrUnsupportedFormat        = errors.New("unsupported file format")
	ErrForwardedMessageNotFound = errors.New("forwarded message not found")
	ErrNoDownloadableContent    = errors.New("no downloadable content found in the forwarded message")
	ErrInvalidFolderSelection   = errors.New("invalid folder selection")
	ErrSessionAuthInvalid       = errors.New("saved telegram session is no longer valid")
	ErrConfigurationError       = errors.New("configuration error")
)

// RootError returns the innermost error in the chain (for user-facing messages without wrapper text).
func RootError(err error) error {
	for e := err; e != nil; e = errors.Unwrap(e) {
		err = e
	}
	return err
}
