// Package profile holds the form state edited by the profile-completion
// wizard: a flat field map for the scalar sections plus the education and
// career record lists, and the Step type that positions the wizard.
package profile
