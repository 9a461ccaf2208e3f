// Package tracing wraps OpenTelemetry so kernel services can emit spans
// without importing the upstream packages directly. Applications that do
// not configure an exporter get no-op spans.
package tracing
