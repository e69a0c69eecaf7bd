package observer

import "github.com/rs/zerolog"

// LoggingObserver logs every notification, it never fails.
type LoggingObserver[T any] struct {
	Logger    zerolog.Logger
	Operation string
}

func NewLoggingObserver[T any](logger zerolog.Logger, operation string) *LoggingObserver[T] {
	return &LoggingObserver[T]{
		Logger:    logger,
		Operation: operation,
	}
}

func (o *LoggingObserver[T]) HandleBefore(value T) error {
	o.Logger.Debug().Str("operation", o.Operation).Interface("value", value).Msg("before operation")
	return nil
}

func (o *LoggingObserver[T]) HandleAfterSuccess(value T) error {
	o.Logger.Debug().Str("operation", o.Operation).Interface("value", value).Msg("operation succeeded")
	return nil
}

func (o *LoggingObserver[T]) HandleAfterFailure(value T, cause error) error {
	o.Logger.Warn().Str("operation", o.Operation).Interface("value", value).Err(cause).Msg("operation failed")
	return nil
}
