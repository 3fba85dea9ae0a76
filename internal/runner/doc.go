// Package runner executes external programs.
//
// Every tool nixdeploy drives (ssh, nix-store, nix-copy-closure) is started
// through the Runner interface so that the deployment pipeline can be tested
// against a recording fake instead of real binaries. The exec-backed
// implementation streams the child's stderr to the user unmodified; that
// output is the only diagnostic detail surfaced when a tool fails.
package runner
