// Package variant holds the per-simulation-variant field tables used to patch Phantom
// .setup files.
//
// Each variant lives in its own file with a single init() registration against the
// Default registry. Adding a variant means adding a tag constant and a table; the patch
// generator and job-script composer only ever look tables up by tag.
package variant
