// Package testing provides test utilities, builders, and fakes for unit tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - ConfigBuilder: Fluent builder for creating deployment configurations
//   - RecordingRunner: runner.Runner fake that records commands and replays scripted results
//   - RemoteArgv: decodes the remote argv carried by an ssh command
//
// Usage:
//
//	cfg := testutil.NewConfigBuilder().
//	    WithTargetHost("root@10.0.0.2").
//	    WithBuildOnTarget(true).
//	    Build()
//
//	r := testutil.NewRecordingRunner().
//	    On("--realize", testutil.Response{Stdout: "/nix/store/out\n"})
package testing
