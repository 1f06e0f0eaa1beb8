// Package wizard drives the step-wise submission of the profile form.
//
// A Controller sits on one of six steps and is either idle or submitting.
// Submit validates the current step locally, assembles its payload and posts
// it; success advances one step and completing the last step hands control
// to the Navigator. Skip always advances regardless of the server's answer.
// Network calls are made outside the controller lock.
package wizard
