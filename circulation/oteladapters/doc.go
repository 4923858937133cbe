// Package oteladapters plugs OpenTelemetry into the observability interfaces of the circulation package.
//
// The adapters cover logging (slog bridge or the raw OTel log API), metrics and tracing.
// They are used by the store engines as well as by the command and query handlers of the library application.
package oteladapters
