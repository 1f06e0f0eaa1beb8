// Package option normalises the heterogeneous option lists returned by the
// profile API (arrays of objects, objects keyed by id, nested translated
// names) into a uniform, deduplicated []Option.
//
// Payloads are first classified into a Raw value whose Shape tags which of
// the supported layouts was detected; Normalize then projects the Raw value
// into options. Nothing in this package returns an error for an unexpected
// shape: unknown layouts degrade to an empty list.
package option
