// Package stream decodes the Server-Sent Events of streaming shell sessions.
//
// Each SSE "data:" line carries a JSON record with one of the keys stdout,
// stderr, waiting, timeout or end. Output payloads are base64 encoded bytes
// that are decoded into text, invalid UTF-8 sequences are replaced.
// Malformed records are logged and skipped, they never stop the stream.
package stream

import (
	"bufio"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/lybic/lybic-sdk-go/internal/log"
	"github.com/lybic/lybic-sdk-go/internal/model"
)

// maxLineSize is the longest accepted line, longer lines are skipped.
const maxLineSize = 64 * 1024

// recordKeys are the record payload keys in priority order.
var recordKeys = []model.StreamEventType{
	model.StreamEventStdout,
	model.StreamEventStderr,
	model.StreamEventWaiting,
	model.StreamEventTimeout,
	model.StreamEventEnd,
}

// DecoderConfig is the configuration of the stream decoder.
type DecoderConfig struct {
	Logger log.Logger
}

func (c *DecoderConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "stream.Decoder"})
	return nil
}

// Decoder yields shell stream events lazily from an SSE body.
//
// A Decoder is meant to be used by a single consumer. Close can be called
// from another goroutine to stop a blocked Recv.
type Decoder struct {
	body   io.ReadCloser
	reader *bufio.Reader
	logger log.Logger

	done      bool
	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// NewDecoder returns a decoder that owns body, it will be closed when the
// stream ends or Close is called.
func NewDecoder(body io.ReadCloser, cfg DecoderConfig) (*Decoder, error) {
	if body == nil {
		return nil, fmt.Errorf("body is required")
	}
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Decoder{
		body:   body,
		reader: bufio.NewReaderSize(body, maxLineSize),
		logger: cfg.Logger,
	}, nil
}

// Recv returns the next event of the stream. It returns io.EOF after the end
// event has been returned or the stream has been closed.
func (d *Decoder) Recv() (model.StreamEvent, error) {
	for {
		if d.done {
			return model.StreamEvent{}, io.EOF
		}

		record, err := d.nextRecord()
		if err != nil {
			closedByConsumer := d.closed.Load()
			d.finish()
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || closedByConsumer {
				return model.StreamEvent{}, io.EOF
			}
			return model.StreamEvent{}, fmt.Errorf("could not read stream: %w", err)
		}

		ev, ok, err := decodeRecord(record)
		if err != nil {
			d.logger.Warningf("Skipping malformed stream record: %s", err)
			continue
		}
		if !ok {
			continue
		}

		if ev.Type == model.StreamEventEnd {
			d.finish()
		}
		return ev, nil
	}
}

// Close stops the stream and releases the underlying body. It's safe to call
// it multiple times.
func (d *Decoder) Close() error {
	d.closed.Store(true)
	d.closeOnce.Do(func() {
		d.closeErr = d.body.Close()
	})
	return d.closeErr
}

func (d *Decoder) finish() {
	d.done = true
	if err := d.Close(); err != nil {
		d.logger.Debugf("Could not close stream body: %s", err)
	}
}

// nextRecord returns the payload of the next data line.
func (d *Decoder) nextRecord() (string, error) {
	for {
		raw, err := d.reader.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			d.logger.Warningf("Skipping stream line longer than %d bytes", maxLineSize)
			if err := d.discardLine(); err != nil {
				return "", err
			}
			continue
		}
		if err != nil && len(raw) == 0 {
			return "", err
		}

		line := strings.TrimRight(string(raw), "\r\n")

		// Blank lines are record boundaries, comments and other fields carry no records.
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}
		field, value, ok := strings.Cut(line, ":")
		if !ok || field != "data" {
			continue
		}

		return strings.TrimPrefix(value, " "), nil
	}
}

// discardLine drops the rest of an oversized line.
func (d *Decoder) discardLine() error {
	for {
		_, err := d.reader.ReadSlice('\n')
		if !errors.Is(err, bufio.ErrBufferFull) {
			return err
		}
	}
}

// decodeRecord returns the event of a record, ok is false when the record has no known key.
func decodeRecord(record string) (ev model.StreamEvent, ok bool, err error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(record), &payload); err != nil {
		return model.StreamEvent{}, false, fmt.Errorf("invalid JSON record: %w", err)
	}

	for _, key := range recordKeys {
		raw, found := payload[string(key)]
		if !found {
			continue
		}

		switch key {
		case model.StreamEventWaiting, model.StreamEventEnd:
			return model.StreamEvent{Type: key}, true, nil
		}

		text, err := decodeText(raw)
		if err != nil {
			return model.StreamEvent{}, false, fmt.Errorf("invalid %s payload: %w", key, err)
		}
		return model.StreamEvent{Type: key, Data: text}, true, nil
	}

	return model.StreamEvent{}, false, nil
}

func decodeText(raw json.RawMessage) (string, error) {
	var encoded *string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return "", err
	}
	if encoded == nil {
		return "", errors.New("payload is null")
	}
	data, err := base64.StdEncoding.DecodeString(*encoded)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}
