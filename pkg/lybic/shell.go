package lybic

import (
	"context"
	"errors"
	"io"

	"github.com/lybic/lybic-sdk-go/internal/stream"
)

// ShellStream yields the events of a streaming shell session.
type ShellStream struct {
	dec *stream.Decoder
}

// Recv returns the next event. It returns io.EOF once the end event has been
// received or the stream is closed.
func (s *ShellStream) Recv() (StreamEvent, error) {
	ev, err := s.dec.Recv()
	if err != nil && !errors.Is(err, io.EOF) {
		return ev, mapError(err)
	}
	return ev, err
}

// Close stops the stream, it can be called while Recv is blocked.
func (s *ShellStream) Close() error { return s.dec.Close() }

// CreateShell starts a shell session on a sandbox.
func (c *Client) CreateShell(ctx context.Context, sandboxID string, req ShellSessionRequest) (*ShellSession, error) {
	s, err := c.shell.Create(ctx, sandboxID, req)
	return s, mapError(err)
}

// StreamShell starts a shell session on a sandbox and streams its output.
// The stream must be closed when no longer used.
func (c *Client) StreamShell(ctx context.Context, sandboxID string, req ShellSessionRequest) (*ShellStream, error) {
	dec, err := c.shell.Stream(ctx, sandboxID, req)
	if err != nil {
		return nil, mapError(err)
	}
	return &ShellStream{dec: dec}, nil
}

// WriteShell writes data to the standard input of a shell session.
func (c *Client) WriteShell(ctx context.Context, sandboxID, sessionID, data string) error {
	return mapError(c.shell.Write(ctx, sandboxID, sessionID, data))
}

// ReadShell returns the shell session output produced since the last read.
func (c *Client) ReadShell(ctx context.Context, sandboxID, sessionID string) (*ShellOutput, error) {
	out, err := c.shell.Read(ctx, sandboxID, sessionID)
	return out, mapError(err)
}

// FinishShell closes the standard input of a shell session.
func (c *Client) FinishShell(ctx context.Context, sandboxID, sessionID string) error {
	return mapError(c.shell.Finish(ctx, sandboxID, sessionID))
}

// TerminateShell kills a shell session.
func (c *Client) TerminateShell(ctx context.Context, sandboxID, sessionID string) error {
	return mapError(c.shell.Terminate(ctx, sandboxID, sessionID))
}
