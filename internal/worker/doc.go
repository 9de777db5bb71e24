// Package worker runs the claim/execute/report loops that drain the queue.
//
// A Pool owns a fixed number of independent loops. Each loop polls the store
// for a claimable job, executes its command through a Runner, and records the
// outcome. Loops coordinate only through the store; shutdown is cooperative
// via the context passed to Start, observed between jobs — an in-flight
// command always runs to completion.
package worker
