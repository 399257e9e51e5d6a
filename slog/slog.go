// Package slog wraps sift services with structured logging decorators.
package slog
