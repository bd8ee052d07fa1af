// Package helper provides shared testing utilities for the library console test suite.
//
// It contains spy implementations of the observability interfaces, used to
// capture and validate log records and metric calls emitted by the sync stores.
package helper
