// Package prompt runs the profile wizard in a terminal. A Session walks the
// field definitions of the current step, asks for each value through a
// PromptDriver and then lets the user save, skip or go back. Select inputs
// are backed by the live option lists of the flow, so picking a religion or
// a country refreshes the dependent lists before they are asked.
package prompt
