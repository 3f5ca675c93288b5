// Package publish sends the run inventory to a socket.io server.
//
// The publisher connects over the websocket transport and emits the inventory
// as a single event with an acknowledgement callback. The receiving handler
// must call its ack function; until it does, a publish is not complete. When
// an acknowledgement event is configured the publisher also waits for the
// server to emit it.
package publish
