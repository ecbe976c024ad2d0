package vectordb

import "errors"

// Common store errors. Implementations wrap these with %w so the workflow
// can classify failures without knowing which store produced them.
var (
	// ErrCollectionNotFound is returned when the named collection does not exist.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrCollectionExists is returned when creating a collection whose name is taken.
	ErrCollectionExists = errors.New("collection already exists")

	// ErrStoreUnavailable is returned when the store cannot be reached or times out.
	ErrStoreUnavailable = errors.New("vector store unavailable")

	// ErrInvalidArgument is returned for requests the store rejects as malformed
	// (wrong vector size, unknown vector name, bad sparse vector, ...).
	ErrInvalidArgument = errors.New("invalid argument")
)

// IsCollectionNotFound reports whether err is or wraps ErrCollectionNotFound.
func IsCollectionNotFound(err error) bool {
	return errors.Is(err, ErrCollectionNotFound)
}

// IsStoreUnavailable reports whether err is or wraps ErrStoreUnavailable.
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// IsInvalidArgument reports whether err is or wraps ErrInvalidArgument.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
