// Package config builds the interpreter's startup configuration.
//
// # Configuration Precedence
//
// Values are resolved in the following order (highest to lowest priority):
//
//  1. Command-line options (-I, -E, -v, -X dev, ...)
//  2. Environment variables (PYTHONVERBOSE, PYTHONDEVMODE, ...)
//  3. Compiled-in compatibility defaults (defaults.yaml)
//
// The order is fixed. A higher layer overwrites only the fields it sets.
//
// # Early Flags
//
// Whether the environment layer runs at all depends on the command line:
// -E and -I (isolated mode) suppress every environment read. These flags
// are found by a preliminary scan (ReadPreliminary) that runs before the
// environment layer and before the full option parse.
//
// # Status Values
//
// Every step returns a Status instead of failing hard. StatusError carries
// a message and an ErrorClass; StatusExit carries an exit code for -h and
// -V. Either one stops the merge.
//
// # Tri-state Flags
//
// Boolean options that more than one layer may set are TriState values.
// They start Unset, and Finalize resolves whatever is still Unset from the
// compatibility defaults. After Finalize the config is frozen.
package config
