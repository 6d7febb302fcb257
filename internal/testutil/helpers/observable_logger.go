package helpers

import (
	"github.com/douhashi/merge-labeler/internal/logger"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// NewObservableLogger returns a logger.Logger whose entries are captured
// in the returned ObservedLogs.
func NewObservableLogger(level zapcore.Level) (logger.Logger, *observer.ObservedLogs) {
	core, recorded := observer.New(level)
	return logger.NewWithCore(core), recorded
}

// Messages returns the messages logged at exactly the given level.
func Messages(recorded *observer.ObservedLogs, level zapcore.Level) []string {
	var msgs []string
	for _, entry := range recorded.All() {
		if entry.Level == level {
			msgs = append(msgs, entry.Message)
		}
	}
	return msgs
}

// FieldsOf returns the context fields of the first entry with the given message.
func FieldsOf(recorded *observer.ObservedLogs, msg string) map[string]interface{} {
	entries := recorded.FilterMessage(msg).All()
	if len(entries) == 0 {
		return nil
	}
	return entries[0].ContextMap()
}
