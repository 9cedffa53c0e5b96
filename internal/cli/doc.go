// Package cli provides the interactive LabKeeper command-line client.
//
// It wires configuration, the credential and reservation stores and a
// read-eval-print loop. Typical flow: log in with a laboratory account,
// book or edit reservations, and, as an administrator, manage accounts.
//
// Every command turns into state events (see package state) and renders a
// view from domain data only; views keep no state of their own.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
