/*
Package bridge adapts a ports.Transport into lockstep adapter components.

An Inbound subscribes to transport topics, buffers raw messages in a bounded queue
and turns them into events when the engine drains it at the start of a tick.
An Outbound receives the events routed to it and publishes them at the end of a
committed tick.

Neither side ever fails a tick. Messages that cannot be decoded, events that
cannot be encoded, queue overflow and publish errors are dropped and reported
through the drop hook.
*/
package bridge
