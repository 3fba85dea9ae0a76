// Package nix drives the local Nix store: realizing derivations, querying
// closures, exporting them as a stream, and copying them to a remote host.
//
// Commands that must run on the target (import, remote realize) are only
// described here as argv; the caller executes them through an ssh session.
package nix
