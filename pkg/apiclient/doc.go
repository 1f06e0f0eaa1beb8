// Package apiclient talks to the matrimonial profile API: option lookups,
// the stored profile and the per-step submit and skip endpoints.
//
// Every response is expected in the {status, data, message} envelope. A
// "status":"error" body is treated as a failure even when the HTTP status is
// 200, and the message field is flattened into a list of user-facing strings
// regardless of whether the server sent a string, {"error": [...]} or
// per-field validation lists.
package apiclient
