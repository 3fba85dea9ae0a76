// Package keygen generates SSH key pairs.
//
// Private keys are produced in OpenSSH PEM format, the same format ssh-keygen
// writes and deployments pass as key material; public keys are produced in
// authorized_keys format for installing on a target.
package keygen
