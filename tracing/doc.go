// Package tracing is a thin wrapper around OpenTelemetry so the rest of the
// code-base can start and end spans without touching the upstream API. It is
// kept in its own package so applications that do not need tracing can leave
// it uninitialised; spans become no-ops in that case.
package tracing
