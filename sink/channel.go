// Package sink provides reference implementations of the engine.Sink
// collaborator interface. Neither is required — engine.Run accepts any
// type with an Emit(ResultRecord) method — but both are useful defaults
// for a caller that doesn't want to write its own.
package sink

import "github.com/pthm-cable/stedkmc/engine"

// Channel is a Sink backed by a buffered channel, the simplest way for a
// parallel sweep orchestrator to collect ResultRecords from many
// concurrently-running goroutines without its own locking.
type Channel struct {
	ch chan engine.ResultRecord
}

// NewChannel creates a Channel sink with the given buffer size.
func NewChannel(buffer int) *Channel {
	return &Channel{ch: make(chan engine.ResultRecord, buffer)}
}

// Emit sends r on the channel, blocking if the buffer is full.
func (c *Channel) Emit(r engine.ResultRecord) {
	c.ch <- r
}

// Results returns the receive side of the channel for callers to range
// over. The caller is responsible for closing it (via Close) once no more
// runs will be emitted.
func (c *Channel) Results() <-chan engine.ResultRecord {
	return c.ch
}

// Close closes the underlying channel. Must only be called once all
// producers have finished emitting.
func (c *Channel) Close() {
	close(c.ch)
}
