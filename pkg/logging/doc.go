// Package logging configures structured logging for automock.
//
// It wraps log/slog so the engine, the config loader and the CLI share one
// logger setup. Components take a *slog.Logger through an option; when none
// is given they log to Nop().
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//	provider := automock.New(schema, automock.WithLogger(logger))
package logging
