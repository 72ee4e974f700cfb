// Package strata is a data-mapper layer for relational databases with
// read/write connection routing.
//
// The root package holds the pieces shared by every layer: the mapping
// descriptors that translate between entity properties and table columns,
// the process-wide descriptor registry, and the error taxonomy. Connection
// routing lives in the conn package, SQL construction in dialect/sql, and
// the typed fetch/write executors in mapper.
package strata
