// Package deploy sequences a NixOS deployment to one remote host.
//
// A run is an ordered list of phases executed by RunPhases:
//
//   - identity: write the supplied private key into the workspace
//   - session: open the multiplexed ssh control connection
//   - transfer: either realize locally and copy the closure, or export the
//     derivation closure to the target and realize it there
//   - activate: set the system profile and run switch-to-configuration
//   - gc: delete old generations and collect garbage (optional)
//
// The first failing phase aborts the run. Run always closes the control
// connection and then removes the workspace, whether the phases succeeded,
// failed, or were interrupted by context cancellation.
//
// # Core Types
//
// Context carries the configuration, the workspace, the ssh session and
// store, and the observer. Phase defines a step with Name() and Run().
// State accumulates what phases produce (identity file, output path).
package deploy
