// Package sse consumes the newline-delimited Server-Sent-Events stream
// produced by the pricing analysis backend.
//
// Each record on the wire is a line of the form "data: <JSON>" followed by a
// blank line. Records arrive in arbitrary chunk sizes, including splits in
// the middle of a record or of a multi-byte UTF-8 sequence, so the consumer
// buffers bytes across reads and only parses complete records.
package sse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"github.com/tidwall/gjson"
)

// dataPrefix marks a data record. Anything else (comments, keep-alives,
// id/event fields) is skipped without error.
var dataPrefix = []byte("data: ")

// recordSep is the blank-line delimiter between records.
var recordSep = []byte("\n\n")

// readBufSize is the chunk size for reads from the response body.
const readBufSize = 4096

// ProtocolError is a fatal error record sent by the backend. The message is
// surfaced to the user verbatim.
type ProtocolError struct {
	Message string
}

func (e *ProtocolError) Error() string {
	return e.Message
}

// Consumer turns a raw byte stream into a sequence of Events and hands each
// one to the configured callbacks. A Consumer holds no state between calls
// to Consume; each run owns its own leftover buffer.
type Consumer struct {
	// ResultKey names the metadata key that carries the pipeline's
	// structured result (e.g. "recommendation", "forecast"). When an event's
	// metadata contains it, OnResult fires with the raw JSON of that value.
	// Empty means no result extraction.
	ResultKey string

	// OnThought receives every event that carries both an agent and content.
	OnThought func(Event)

	// OnResult receives the structured result at most once per occurrence of
	// ResultKey in an event's metadata.
	OnResult func(json.RawMessage)

	// Logger records skipped malformed records. Nil uses slog.Default().
	Logger *slog.Logger
}

func (c *Consumer) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Consume reads r until the stream ends, dispatching events as they complete.
//
// Return values map onto the run's terminal state:
//   - nil: the stream ended normally, either via an explicit done record or
//     natural EOF. Any incomplete leftover bytes at EOF are discarded.
//   - *ProtocolError: the backend sent an error record; no further records
//     are processed.
//   - a context error: the caller cancelled; not a failure.
//   - anything else: transport failure.
//
// A record whose JSON body does not parse is logged and skipped; it never
// ends the run.
func (c *Consumer) Consume(ctx context.Context, r io.Reader) error {
	buf := make([]byte, readBufSize)
	var pending []byte

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := r.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)

			for {
				idx := bytes.Index(pending, recordSep)
				if idx < 0 {
					break
				}
				record := pending[:idx]
				pending = pending[idx+len(recordSep):]

				stop, perr := c.handleRecord(record)
				if perr != nil {
					return perr
				}
				if stop {
					return nil
				}
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				// Leftover bytes without a closing delimiter are a firehose
				// artifact, not a complete record.
				return nil
			}
			// Reads aborted by cancellation surface as transport errors on
			// the body; report them as cancellation instead.
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
			return err
		}
	}
}

// handleRecord parses and dispatches one complete record. It returns
// stop=true when a done record ends the stream, and a non-nil error only for
// a fatal error record.
func (c *Consumer) handleRecord(record []byte) (stop bool, err error) {
	if !bytes.HasPrefix(record, dataPrefix) {
		return false, nil
	}
	payload := bytes.TrimPrefix(record, dataPrefix)

	var ev Event
	if jerr := json.Unmarshal(payload, &ev); jerr != nil {
		c.logger().Warn("skipping malformed stream record", "error", jerr, "bytes", len(payload))
		return false, nil
	}

	if ev.Done {
		return true, nil
	}
	if ev.Error != "" {
		return false, &ProtocolError{Message: ev.Error}
	}

	if ev.IsThought() && c.OnThought != nil {
		c.OnThought(ev)
	}

	if c.ResultKey != "" && len(ev.Metadata) > 0 && c.OnResult != nil {
		if res := gjson.GetBytes(ev.Metadata, c.ResultKey); res.Exists() {
			c.OnResult(json.RawMessage(res.Raw))
		}
	}

	return false, nil
}
