// Package rowflux benchmarks parallel row sorting. A pull-based dispatcher
// hands each row of a matrix to one of a bounded pool of message-driven
// workers; the driver times dispatches across matrix sizes and pool sizes
// and renders the timings as CSV files and an HTML report.
package rowflux
