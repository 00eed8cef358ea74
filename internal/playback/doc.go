// Package playback steps a chain on a timer.
//
// The Controller is a two-state machine, Stopped or Playing in one direction.
// Every way out of Playing (pause, direction switch, reaching an end, a failed
// step, Close) cancels the scheduler handle exactly once. Ticks delivered after
// their handle was cancelled are ignored.
//
// Scheduling is injected. Loop runs on wall-clock tickers; tests use
// playbacktest.Scheduler and fire ticks by hand.
package playback
