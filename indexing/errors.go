package indexing

import "errors"

var (
	// ErrParserRequired is returned when no corpus parser is provided.
	ErrParserRequired = errors.New("corpus parser required")

	// ErrIndexPathRequired is returned when no index path is provided.
	ErrIndexPathRequired = errors.New("index path required")

	// ErrProviderRequired is returned when annotation is requested without a provider.
	ErrProviderRequired = errors.New("annotation provider required to run NLP")

	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
