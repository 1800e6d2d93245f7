// Package observability builds the process-wide zap logger and OpenTelemetry
// tracer provider, and an access-log middleware that ties both to request ids.
package observability
