package room

import (
	"fmt"

	"ridethebus-server/pkg/playable"
)

const clientBufferSize = 256

// Client receives the events of a single session
// The transport (websocket, test) reads from SendChan
type Client struct {
	name string

	// send is a channel for sending events to the client
	send chan *playable.Event

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	session *Session
}

// NewClient returns a new client object
func NewClient(name string) *Client {
	return &Client{
		name:  name,
		send:  make(chan *playable.Event, clientBufferSize),
		Close: make(chan string, 1),
	}
}

// Send sends an event to the client
// Returns false if the client is too far behind and the event was dropped
func (c *Client) Send(e *playable.Event) bool {
	select {
	case c.send <- e:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan *playable.Event {
	return c.send
}

// String returns a traceable identifier for the client and session
func (c *Client) String() string {
	if c.session == nil {
		return c.name
	}

	return fmt.Sprintf("%s:%s", c.name, c.session.ID)
}
