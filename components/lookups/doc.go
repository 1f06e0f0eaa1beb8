// Package lookups serves the option lists and step endpoints of the profile
// API from an in-memory catalog. It backs the wizard's demo mode and the
// HTTP round-trip tests.
//
// Responses use the {status, data, message} envelope. Option payloads are
// returned exactly as stored in the catalog, so lists, keyed maps and
// translated names reach the client in their original shapes. Step
// submissions and skips are recorded and merged into the stored profile.
package lookups
