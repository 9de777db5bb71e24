// Package main hosts the queuectl CLI entrypoint and command graph.
//
// The cobra-based command tree translates terminal invocations into queue
// store operations, worker pool control, and configuration management. It
// centralizes configuration resolution and output formatting so subcommands
// can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
