/*
 * Copyright (c) 2026 NimbusDB Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package client implements the connection layer of the nimbusql
// shell: dialing contact points with retry, the startup handshake,
// statement execution, and transparent failover to alternate hosts
// when the current connection drops.
package client

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"nimbusql/internal/errors"
	"nimbusql/internal/logging"
	"nimbusql/internal/protocol"
)

// Options configures a Client.
type Options struct {
	ContactPoints []string // host:port addresses tried in order
	Username      string
	Keyspace      string
	TLS           bool
	TLSInsecure   bool
	DialTimeout   time.Duration
	MaxRetryTime  time.Duration // total time budget for the initial connect
}

// Client is a connection to one NimbusDB node, with the full contact
// point list retained for failover. It is not safe for concurrent use;
// the shell drives it from a single goroutine.
type Client struct {
	opts    Options
	session string

	mu            sync.Mutex
	conn          net.Conn
	currentHost   int
	keyspace      string
	serverVersion string
	clusterName   string

	logger *logging.Logger
}

// New creates a client for the given contact points. No connection is
// made until Connect.
func New(opts Options) *Client {
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}
	if opts.MaxRetryTime == 0 {
		opts.MaxRetryTime = 15 * time.Second
	}
	return &Client{
		opts:     opts,
		session:  uuid.NewString(),
		keyspace: opts.Keyspace,
		logger:   logging.NewLogger("client"),
	}
}

// SessionID returns the client's session identifier.
func (c *Client) SessionID() string {
	return c.session
}

// CurrentHost returns the address of the connected node, or empty
// string when disconnected.
func (c *Client) CurrentHost() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return ""
	}
	return c.opts.ContactPoints[c.currentHost]
}

// Keyspace returns the keyspace the session is currently using.
func (c *Client) Keyspace() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keyspace
}

// Connect dials the contact points with exponential backoff until one
// answers the startup handshake, or the retry budget is exhausted.
func (c *Client) Connect() error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxInterval = 5 * time.Second
	policy.MaxElapsedTime = c.opts.MaxRetryTime

	attempt := func() error {
		return c.connectAny(0)
	}
	return backoff.Retry(attempt, policy)
}

// connectAny tries each contact point once, starting at the given
// offset into the list.
func (c *Client) connectAny(startIdx int) error {
	n := len(c.opts.ContactPoints)
	if n == 0 {
		return errors.NewConnectionError("no contact points configured")
	}

	var lastErr error
	for i := 0; i < n; i++ {
		idx := (startIdx + i) % n
		addr := c.opts.ContactPoints[idx]

		conn, err := c.dial(addr)
		if err != nil {
			c.logger.Debug("Dial failed", "host", addr, "error", err)
			lastErr = err
			continue
		}

		if err := c.startup(conn); err != nil {
			conn.Close()
			c.logger.Debug("Handshake failed", "host", addr, "error", err)
			lastErr = err
			continue
		}

		c.mu.Lock()
		c.conn = conn
		c.currentHost = idx
		c.mu.Unlock()

		c.logger.Debug("Connected", "host", addr, "session", c.session)
		return nil
	}

	return errors.ServerUnavailable(c.opts.ContactPoints).WithCause(lastErr)
}

// dial opens a TCP or TLS connection to one address.
func (c *Client) dial(addr string) (net.Conn, error) {
	if !c.opts.TLS {
		return net.DialTimeout("tcp", addr, c.opts.DialTimeout)
	}

	tlsConfig := &tls.Config{
		ServerName: extractHostname(addr),
	}
	if c.opts.TLSInsecure {
		tlsConfig.InsecureSkipVerify = true
	} else {
		certPool, err := x509.SystemCertPool()
		if err != nil {
			certPool = x509.NewCertPool()
		}
		tlsConfig.RootCAs = certPool
	}

	dialer := &net.Dialer{Timeout: c.opts.DialTimeout}
	return tls.DialWithDialer(dialer, "tcp", addr, tlsConfig)
}

// extractHostname extracts the hostname from a "host:port" address.
func extractHostname(addr string) string {
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}

// startup performs the session handshake on a fresh connection.
func (c *Client) startup(conn net.Conn) error {
	msg := &protocol.StartupMessage{
		SessionID: c.session,
		Username:  c.opts.Username,
		Keyspace:  c.keyspace,
	}
	payload, err := msg.Encode()
	if err != nil {
		return err
	}
	if err := protocol.WriteMessage(conn, protocol.MsgStartup, payload); err != nil {
		return err
	}

	resp, err := protocol.ReadMessage(conn)
	if err != nil {
		return err
	}

	switch resp.Header.Type {
	case protocol.MsgReady:
		if ready, rerr := protocol.DecodeReadyMessage(resp.Payload); rerr == nil {
			c.mu.Lock()
			c.serverVersion = ready.ServerVersion
			c.clusterName = ready.ClusterName
			c.mu.Unlock()
		}
		return nil
	case protocol.MsgError:
		return decodeServerError(resp.Payload)
	default:
		return errors.ProtocolError(
			fmt.Sprintf("unexpected message type 0x%02X during handshake", resp.Header.Type))
	}
}

// ServerVersion returns the version the server reported during the
// startup handshake, or empty string before Connect.
func (c *Client) ServerVersion() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.serverVersion
}

// ClusterName returns the cluster name reported during the handshake.
func (c *Client) ClusterName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clusterName
}

// Ping sends a keep-alive and waits for the pong.
func (c *Client) Ping() error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return errors.NewConnectionError("not connected")
	}

	if err := protocol.WriteMessage(conn, protocol.MsgPing, nil); err != nil {
		return errors.ConnectionLost(err.Error())
	}
	resp, err := protocol.ReadMessage(conn)
	if err != nil {
		return errors.ConnectionLost(err.Error())
	}
	if resp.Header.Type != protocol.MsgPong {
		return errors.ProtocolError(
			fmt.Sprintf("expected pong, got 0x%02X", resp.Header.Type))
	}
	return nil
}

// Execute sends one statement and returns the server's result. On a
// broken connection it reconnects via an alternate host and retries
// the statement once.
func (c *Client) Execute(statement string) (*protocol.ResultMessage, error) {
	result, err := c.executeOnce(statement)
	if err == nil || !errors.IsConnectionError(err) {
		return result, err
	}

	c.logger.Warn("Connection lost, trying alternate host", "error", err)
	if rerr := c.Reconnect(); rerr != nil {
		return nil, rerr
	}
	return c.executeOnce(statement)
}

func (c *Client) executeOnce(statement string) (*protocol.ResultMessage, error) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return nil, errors.NewConnectionError("not connected")
	}

	msg := &protocol.QueryMessage{Statement: statement}
	payload, err := msg.Encode()
	if err != nil {
		return nil, err
	}
	if err := protocol.WriteMessage(conn, protocol.MsgQuery, payload); err != nil {
		return nil, errors.ConnectionLost(err.Error())
	}

	resp, err := protocol.ReadMessage(conn)
	if err != nil {
		return nil, errors.ConnectionLost(err.Error())
	}

	switch resp.Header.Type {
	case protocol.MsgResult:
		return protocol.DecodeResultMessage(resp.Payload)
	case protocol.MsgError:
		return nil, decodeServerError(resp.Payload)
	default:
		return nil, errors.ProtocolError(
			fmt.Sprintf("unexpected message type 0x%02X", resp.Header.Type))
	}
}

// Use switches the session keyspace. The new keyspace is remembered so
// reconnects land in the same keyspace.
func (c *Client) Use(keyspace string) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return errors.NewConnectionError("not connected")
	}

	msg := &protocol.UseMessage{Keyspace: keyspace}
	payload, err := msg.Encode()
	if err != nil {
		return err
	}
	if err := protocol.WriteMessage(conn, protocol.MsgUse, payload); err != nil {
		return errors.ConnectionLost(err.Error())
	}

	resp, err := protocol.ReadMessage(conn)
	if err != nil {
		return errors.ConnectionLost(err.Error())
	}

	switch resp.Header.Type {
	case protocol.MsgReady, protocol.MsgResult:
		c.mu.Lock()
		c.keyspace = keyspace
		c.mu.Unlock()
		return nil
	case protocol.MsgError:
		return decodeServerError(resp.Payload)
	default:
		return errors.ProtocolError(
			fmt.Sprintf("unexpected message type 0x%02X", resp.Header.Type))
	}
}

// Reconnect closes the current connection and tries alternate hosts,
// starting with the one after the current.
func (c *Client) Reconnect() error {
	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	next := c.currentHost + 1
	c.mu.Unlock()

	return c.connectAny(next)
}

// Close shuts the connection down.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// decodeServerError converts an error payload into a ShellError.
func decodeServerError(payload []byte) error {
	msg, err := protocol.DecodeErrorMessage(payload)
	if err != nil {
		return errors.ProtocolError("undecodable error payload")
	}
	return errors.NewServerError(msg.Code, msg.Message)
}
