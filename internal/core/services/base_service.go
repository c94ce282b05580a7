package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/demerit_registry/internal/apperrors"
	"github.com/SscSPs/demerit_registry/internal/middleware"
	"github.com/SscSPs/demerit_registry/internal/platform/metrics"
)

// Clock returns the current instant. Services read time only through it.
type Clock func() time.Time

// BaseService provides common functionality for all services
type BaseService struct {
	Clock Clock
}

// Now returns the service clock's time, falling back to the wall clock.
func (s *BaseService) Now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Reject records a refused operation and returns err unchanged.
func (s *BaseService) Reject(ctx context.Context, operation string, err error, keyvals ...any) error {
	metrics.RejectedOperations.WithLabelValues(operation, rejectionReason(err)).Inc()
	args := append([]any{slog.String("operation", operation), slog.String("reason", err.Error())}, keyvals...)
	s.LogInfo(ctx, "Operation rejected", args...)
	return err
}

// StoreFailure logs a repository error and counts it when it is an I/O failure.
func (s *BaseService) StoreFailure(ctx context.Context, operation string, err error, keyvals ...any) error {
	if errors.Is(err, apperrors.ErrIOFailure) {
		metrics.StoreFailures.WithLabelValues(operation).Inc()
	}
	s.LogError(ctx, err, "Record store call failed", append([]any{slog.String("operation", operation)}, keyvals...)...)
	return err
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrInvalidIdentifier):
		return "invalid_identifier"
	case errors.Is(err, apperrors.ErrInvalidAddress):
		return "invalid_address"
	case errors.Is(err, apperrors.ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, apperrors.ErrInvalidPoints):
		return "invalid_points"
	case errors.Is(err, apperrors.ErrUnencodableField):
		return "unencodable_field"
	case errors.Is(err, apperrors.ErrLockedFieldConflict):
		return "locked_field"
	case errors.Is(err, apperrors.ErrMinorAddressLock):
		return "minor_address"
	case errors.Is(err, apperrors.ErrIdentifierParityLock):
		return "identifier_parity"
	case errors.Is(err, apperrors.ErrDuplicate):
		return "duplicate"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	default:
		return "other"
	}
}
