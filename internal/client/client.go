// Package client implements Ember's TCP client: dial, write one request,
// read one response, close.
package client

import (
	"net"

	"github.com/sagararora86/ember/internal/protocol"
	"github.com/sagararora86/ember/pkg/kvserrors"
)

// Client issues one request per call, dialing fresh each time per the
// protocol's one-request-per-connection contract.
type Client struct {
	addr string
}

// New returns a Client that dials addr for every call.
func New(addr string) *Client {
	return &Client{addr: addr}
}

func (c *Client) roundTrip(req protocol.Request) (protocol.Response, error) {
	conn, err := net.Dial("tcp", c.addr)
	if err != nil {
		return protocol.Response{}, kvserrors.IO(err, "dial server")
	}
	defer conn.Close()

	if err := protocol.EncodeRequest(conn, req); err != nil {
		return protocol.Response{}, err
	}
	return protocol.DecodeResponse(conn)
}

// Set assigns value to key.
func (c *Client) Set(key, value string) error {
	resp, err := c.roundTrip(protocol.SetRequest(key, value))
	if err != nil {
		return err
	}
	if resp.Kind == protocol.KindError {
		return kvserrors.Protocol(resp.Message).WithKey(key)
	}
	return nil
}

// Get returns the value for key. A response of KeyNotFoundResult is
// returned as a KindKeyNotFound kvserrors.Error so callers can tell it
// apart from other failures without string-matching the message.
func (c *Client) Get(key string) (string, error) {
	resp, err := c.roundTrip(protocol.GetRequest(key))
	if err != nil {
		return "", err
	}
	if resp.Kind == protocol.KindError {
		if resp.IsKeyNotFound() {
			return "", kvserrors.KeyNotFound.WithKey(key)
		}
		return "", kvserrors.Protocol(resp.Message).WithKey(key)
	}
	return resp.Value, nil
}

// Remove deletes key.
func (c *Client) Remove(key string) error {
	resp, err := c.roundTrip(protocol.RemoveRequest(key))
	if err != nil {
		return err
	}
	if resp.Kind == protocol.KindError {
		if resp.IsKeyNotFound() {
			return kvserrors.KeyNotFound.WithKey(key)
		}
		return kvserrors.Protocol(resp.Message).WithKey(key)
	}
	return nil
}
