package workflow

import (
	"context"
	"errors"

	"github.com/Aleph-Alpha/vecsearch/v1/embedding"
	"github.com/Aleph-Alpha/vecsearch/v1/record"
	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
)

var (
	// ErrCapabilityMismatch means the collection exists but cannot hold or
	// answer vectors of the requested mode.
	ErrCapabilityMismatch = errors.New("collection capability mismatch")

	// ErrInvalidLimit is returned for a search limit below 1.
	ErrInvalidLimit = errors.New("limit must be a positive integer")
)

// Error kinds reported to callers.
const (
	KindModelUnavailable   = "ModelUnavailable"
	KindCollectionNotFound = "CollectionNotFound"
	KindCapabilityMismatch = "CollectionCapabilityMismatch"
	KindStoreUnavailable   = "StoreUnavailable"
	KindMalformedRecord    = "MalformedRecord"
	KindMalformedInput     = "MalformedInput"
	KindEmbeddingFailed    = "EmbeddingFailed"
	KindInvalidArgument    = "InvalidArgument"
	KindCollectionExists   = "CollectionExists"
	KindCanceled           = "Canceled"
	KindInternal           = "Internal"
)

// KindOf names the kind of err, or "" for nil. Errors that match no known
// sentinel are Internal.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, embedding.ErrModelUnavailable):
		return KindModelUnavailable
	case errors.Is(err, vectordb.ErrCollectionNotFound):
		return KindCollectionNotFound
	case errors.Is(err, ErrCapabilityMismatch):
		return KindCapabilityMismatch
	case errors.Is(err, vectordb.ErrStoreUnavailable), errors.Is(err, context.DeadlineExceeded):
		return KindStoreUnavailable
	case errors.Is(err, record.ErrMalformedRecord):
		return KindMalformedRecord
	case errors.Is(err, record.ErrMalformedInput):
		return KindMalformedInput
	case errors.Is(err, embedding.ErrEmbeddingFailed):
		return KindEmbeddingFailed
	case errors.Is(err, ErrInvalidLimit), errors.Is(err, vectordb.ErrInvalidArgument):
		return KindInvalidArgument
	case errors.Is(err, vectordb.ErrCollectionExists):
		return KindCollectionExists
	case errors.Is(err, context.Canceled):
		return KindCanceled
	}
	return KindInternal
}
