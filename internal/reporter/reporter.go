// Package reporter is the error-tracking collaborator. Unexpected failures
// on the write paths are reported here with contextual payloads; policy
// denials never are.
package reporter

import (
	"go.uber.org/zap"
)

type Reporter interface {
	Report(err error, extra map[string]interface{})
}

type ZapReporter struct {
	log *zap.Logger
}

func NewZapReporter(log *zap.Logger) *ZapReporter {
	return &ZapReporter{log: log}
}

func (r *ZapReporter) Report(err error, extra map[string]interface{}) {
	fields := make([]zap.Field, 0, len(extra)+1)
	fields = append(fields, zap.Error(err))
	for k, v := range extra {
		fields = append(fields, zap.Any(k, v))
	}

	r.log.Error("unexpected failure reported", fields...)
}
