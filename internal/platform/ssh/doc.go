// Package ssh runs commands on the deployment target through the OpenSSH
// client binary.
//
// A Session holds one multiplexed control connection (ControlMaster) for the
// duration of a deploy so every remote command reuses the same TCP and auth
// handshake. Remote commands are passed to a privilege-escalation helper on
// the target, with their argv serialized by the shell package so the remote
// login shell reconstructs the exact original argument boundaries.
//
// Security: host key verification is disabled (StrictHostKeyChecking=no and
// empty known-hosts files). Targets may be re-provisioned with new host keys
// under the same address.
//
// Private keys are validated with golang.org/x/crypto/ssh before they are
// written to an owner-only identity file.
package ssh
