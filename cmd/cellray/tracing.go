package main

import (
	"context"

	"github.com/golang/glog"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// logSpanProcessor writes every finished span to the INFO log.
type logSpanProcessor struct{}

func (logSpanProcessor) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {}

func (logSpanProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	glog.Infof("span %q took %v attrs=%v", s.Name(), s.EndTime().Sub(s.StartTime()), s.Attributes())
}

func (logSpanProcessor) Shutdown(ctx context.Context) error {
	return nil
}

func (logSpanProcessor) ForceFlush(ctx context.Context) error {
	return nil
}
