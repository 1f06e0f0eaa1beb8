// Package fieldspec describes the fields shown on each wizard step: labels,
// help text, input kinds, required flags and the option source backing a
// select. Definitions are plain JSON or YAML documents; a default document
// covering the six profile steps is embedded.
package fieldspec
