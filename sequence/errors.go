// ABOUTME: Sentinel errors shared by enumeration, generation and serialization
// ABOUTME: Callers wrap these with context and match them with errors.Is

package sequence

import "errors"

var (
	// ErrInvalidDirectory means the path is missing, not a directory, or not writable.
	ErrInvalidDirectory = errors.New("invalid directory")

	// ErrNoCandidateImages means the directory holds no files with a recognized extension.
	ErrNoCandidateImages = errors.New("no image files found in directory")

	// ErrInvalidLengthBounds means the duration bounds are negative or inverted.
	ErrInvalidLengthBounds = errors.New("invalid frame count bounds")

	// ErrInvalidSequenceLength means a negative sequence length was requested.
	ErrInvalidSequenceLength = errors.New("invalid sequence length")

	// ErrWriteFailure means the output file could not be created or written.
	ErrWriteFailure = errors.New("failed to write ifl file")
)
