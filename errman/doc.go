// Package errman maintains the process-wide error registry and the bridge
// that ships failure context back to the host before an error is surfaced.
//
// Every failure in this library is a registry entry: a symbolic name, a
// stable negative integer id, and a message template filled in by the host.
// The built-in catalog mirrors the host's own error codes (VersionError = 7
// down to NoError = 0, then descending); extension-specific errors registered
// with Register get the next ids below the built-ins, most recent most
// negative.
//
// Registration is append-only. Registering a name twice with the same
// template is a no-op; registering it with a different template fails with
// ErrorManagerCreateNameError.
//
//	errman.Register(errman.ErrorData{
//	    Name:    "NoSourceError",
//	    Message: "Requested data source does not exist.",
//	})
//
// Throw looks up an entry, writes its parameters to the host's evaluator
// through a link stream, drains the reply packet, and returns the entry as a
// Go error. The host fills the template from the shipped parameters.
package errman
