package v1

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/catalog-service/internal/logger"
)

// storeFailure logs a database error with its detail and reports it to the
// caller as ErrStoreUnavailable.
func storeFailure(ctx context.Context, span trace.Span, op string, err error) error {
	span.RecordError(err)
	logger.FromContext(ctx).Error().Err(err).Str("op", op).Msg("Store operation failed")
	return fmt.Errorf("%s: %w", op, ErrStoreUnavailable)
}

// txFailure passes business errors returned from a transaction through and
// treats anything else (begin, commit) as a store failure.
func txFailure(ctx context.Context, span trace.Span, op string, err error) error {
	for _, target := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrNoChange, ErrStoreUnavailable} {
		if errors.Is(err, target) {
			return err
		}
	}
	return storeFailure(ctx, span, op, err)
}
