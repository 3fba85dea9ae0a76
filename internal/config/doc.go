// Package config defines the deployment configuration consumed by every
// step of a deploy run.
//
// A [Config] is built exactly once, either from the nine positional
// arguments of the deploy command ([ParseArgs]) or from a YAML deployment
// file ([LoadFile]), validated, and then passed by pointer to each phase.
// Nothing mutates it after construction; [Config.Clone] returns an
// independent copy when a caller needs one.
//
// Tool locations and remote paths come from the environment ([LoadTools]),
// falling back to defaults when a variable is unset.
package config
