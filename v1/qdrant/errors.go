package qdrant

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
)

// classify maps a Qdrant client error onto the vectordb sentinels, keeping
// the original error in the chain for logging.
//
//	NotFound                            → vectordb.ErrCollectionNotFound
//	Unavailable, DeadlineExceeded       → vectordb.ErrStoreUnavailable
//	Canceled (with a dead context)      → vectordb.ErrStoreUnavailable
//	AlreadyExists                       → vectordb.ErrCollectionExists
//	InvalidArgument, FailedPrecondition → vectordb.ErrInvalidArgument
//	Unauthenticated, PermissionDenied   → vectordb.ErrStoreUnavailable
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("[Qdrant] %s: %w: %w", op, vectordb.ErrStoreUnavailable, err)
	}

	var sentinel error
	switch status.Code(err) {
	case codes.NotFound:
		sentinel = vectordb.ErrCollectionNotFound
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled, codes.Unauthenticated, codes.PermissionDenied, codes.ResourceExhausted:
		sentinel = vectordb.ErrStoreUnavailable
	case codes.AlreadyExists:
		sentinel = vectordb.ErrCollectionExists
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		sentinel = vectordb.ErrInvalidArgument
	default:
		if errors.Is(err, context.Canceled) {
			sentinel = vectordb.ErrStoreUnavailable
		}
	}

	if sentinel == nil {
		return fmt.Errorf("[Qdrant] %s: %w", op, err)
	}
	return fmt.Errorf("[Qdrant] %s: %w: %w", op, sentinel, err)
}
