// Package shell serializes argument vectors into POSIX shell words and
// parses them back.
//
// Remote commands travel over ssh as a single string which the remote login
// shell re-splits. Join produces a string whose shell parse yields exactly the
// original argv; Split implements the subset of POSIX word splitting needed to
// read such strings back (quoting and backslash escapes, no expansions).
package shell
