package logger

import "github.com/go-co-op/gocron/v2"

// gocronLogger routes scheduler logs through the application logger.
type gocronLogger struct{}

// NewGocronLogger returns an adapter satisfying gocron.Logger.
//
//nolint:ireturn // Interface return is required by gocron's API contract
func NewGocronLogger() gocron.Logger {
	return &gocronLogger{}
}

func (l *gocronLogger) Debug(msg string, args ...any) { Debug("scheduler: "+msg, args...) }
func (l *gocronLogger) Info(msg string, args ...any)  { Info("scheduler: "+msg, args...) }
func (l *gocronLogger) Warn(msg string, args ...any)  { Warn("scheduler: "+msg, args...) }
func (l *gocronLogger) Error(msg string, args ...any) { Error("scheduler: "+msg, args...) }
