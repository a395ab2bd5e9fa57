// Package stream turns the feed server's raw progress-stream bytes into
// discrete JSON events.
package stream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"github.com/dmelton/quill/internal/domain"
)

const readChunkSize = 4096

// Decoder splits a byte stream into newline-delimited frames and forwards
// each frame that holds valid JSON. Frames are forwarded strictly in
// arrival order, independent of how the stream is chunked by the network.
type Decoder struct {
	logger *slog.Logger
}

// NewDecoder creates a new frame decoder.
func NewDecoder(logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Decoder{logger: logger}
}

// Decode reads r until EOF, invoking onEvent once per complete, non-empty,
// JSON-valid frame. Blank frames (keep-alive lines) and malformed frames
// are dropped without error. Bytes after the last delimiter are discarded
// at EOF: a partial trailing frame cannot be told apart from truncation.
//
// Read errors other than io.EOF terminate decoding and are returned;
// frames already forwarded stay applied.
func (d *Decoder) Decode(ctx context.Context, r io.Reader, onEvent func(domain.ProgressEvent)) error {
	buf := make([]byte, readChunkSize)
	var pending []byte

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := r.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			pending = d.drainFrames(pending, onEvent)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				if len(pending) > 0 {
					d.logger.Debug("discarding partial trailing frame", "bytes", len(pending))
				}
				return nil
			}
			return err
		}
	}
}

// drainFrames emits every complete frame in pending and returns the
// remainder (bytes after the last delimiter).
func (d *Decoder) drainFrames(pending []byte, onEvent func(domain.ProgressEvent)) []byte {
	for {
		idx := bytes.IndexByte(pending, '\n')
		if idx < 0 {
			return pending
		}
		frame := pending[:idx]
		pending = pending[idx+1:]
		d.emit(frame, onEvent)
	}
}

// emit forwards one frame if it is non-empty and valid JSON.
func (d *Decoder) emit(frame []byte, onEvent func(domain.ProgressEvent)) {
	frame = bytes.TrimSpace(frame) // tolerate CRLF and keep-alive blank lines
	if len(frame) == 0 {
		return
	}
	if !json.Valid(frame) {
		d.logger.Debug("dropping malformed progress frame", "frame", string(frame))
		return
	}
	raw := make(json.RawMessage, len(frame))
	copy(raw, frame)
	onEvent(domain.ProgressEvent{Raw: raw})
}
