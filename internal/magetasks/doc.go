// Package magetasks implements the build, test and lint targets used by
// the Magefile.
package magetasks
