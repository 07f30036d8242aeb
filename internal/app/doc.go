// Package app wires a construction run together: it loads the plan, registers
// the strategy modules, runs every entry through the executor and writes the
// report. It knows nothing about flags or exit codes.
package app
