// Package process spawns and reaps the OS processes around a capture: the
// platform "open file" helper and, on teardown, the browser's process tree.
package process
