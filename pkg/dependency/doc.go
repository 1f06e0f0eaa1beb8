// Package dependency keeps dependent dropdowns consistent with their parent
// fields. An Edge ties a parent field to a child whose option list is
// fetched for the parent's current value; changing the parent clears the
// child (and its own descendants) and loads a fresh list.
//
// Each child carries a generation counter. A fetch records the generation it
// was started for and its response is dropped when the counter moved on in
// the meantime, so a slow response can never overwrite newer state.
package dependency
