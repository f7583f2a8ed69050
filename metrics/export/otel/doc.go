// Package otel bridges authfront metric snapshots into OpenTelemetry
// observable instruments via a registered callback.
//
// # Architecture boundaries
//
// This package reads snapshots through a narrow source interface. It does NOT
// own a MeterProvider — callers supply the meter and its export pipeline.
package otel
