package progress

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// SSE framing for the progress protocol: each event is one
// "event: <type>\ndata: <json>\n\n" block. Comment lines (leading ':') are
// keep-alive noise and carry no data.

// ErrStreamEnded reports that the stream closed without a terminal event.
var ErrStreamEnded = errors.New("stream ended before terminal event")

// Writer frames events onto an output stream, flushing after each block
// when the sink supports it.
type Writer struct {
	out     io.Writer
	flusher interface{ Flush() }
}

func NewWriter(out io.Writer) *Writer {
	w := &Writer{out: out}
	if f, ok := out.(interface{ Flush() }); ok {
		w.flusher = f
	}
	return w
}

func (w *Writer) Progress(event ProgressEvent) error {
	return w.write(EventProgress, event)
}

func (w *Writer) Error(event ErrorEvent) error {
	return w.write(EventError, event)
}

func (w *Writer) Complete(event CompleteEvent) error {
	return w.write(EventComplete, event)
}

// Heartbeat emits an SSE comment to keep idle connections open.
func (w *Writer) Heartbeat() error {
	if _, err := io.WriteString(w.out, ": heartbeat\n\n"); err != nil {
		return err
	}
	w.flush()
	return nil
}

func (w *Writer) write(eventType EventType, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	var block bytes.Buffer
	block.WriteString("event: ")
	block.WriteString(string(eventType))
	block.WriteString("\ndata: ")
	block.Write(data)
	block.WriteString("\n\n")
	if _, err := w.out.Write(block.Bytes()); err != nil {
		return err
	}
	w.flush()
	return nil
}

func (w *Writer) flush() {
	if w.flusher != nil {
		w.flusher.Flush()
	}
}

// Decoder incrementally parses framed events off a byte stream. A block may
// span several reads and one read may carry several blocks; both are
// buffered transparently. Malformed blocks are skipped rather than failing
// the stream.
type Decoder struct {
	r   io.Reader
	buf bytes.Buffer
	eof bool
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Next returns the next well-formed event. It returns ErrStreamEnded when
// the stream closes cleanly without one, or the read error on transport
// failure.
func (d *Decoder) Next() (Event, error) {
	for {
		if block, ok := d.takeBlock(); ok {
			if event, ok := parseBlock(block); ok {
				return event, nil
			}
			continue
		}
		if d.eof {
			return Event{}, ErrStreamEnded
		}
		chunk := make([]byte, 4096)
		n, err := d.r.Read(chunk)
		if n > 0 {
			d.buf.Write(chunk[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				d.eof = true
				continue
			}
			return Event{}, err
		}
	}
}

func (d *Decoder) takeBlock() (string, bool) {
	data := d.buf.Bytes()
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		if d.eof && len(bytes.TrimSpace(data)) > 0 {
			// Final block without trailing delimiter.
			d.buf.Reset()
			return string(data), true
		}
		return "", false
	}
	block := string(data[:idx])
	d.buf.Next(idx + 2)
	return block, true
}

func parseBlock(block string) (Event, bool) {
	var eventType EventType
	var data string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(line, ":"):
			// comment / heartbeat
		case strings.HasPrefix(line, "event:"):
			eventType = EventType(strings.TrimSpace(strings.TrimPrefix(line, "event:")))
		case strings.HasPrefix(line, "data:"):
			data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		}
	}
	if data == "" {
		return Event{}, false
	}

	switch eventType {
	case EventProgress:
		var payload ProgressEvent
		if err := json.Unmarshal([]byte(data), &payload); err != nil {
			return Event{}, false
		}
		return Event{Type: EventProgress, Progress: &payload}, true
	case EventError:
		var payload ErrorEvent
		if err := json.Unmarshal([]byte(data), &payload); err != nil {
			return Event{}, false
		}
		return Event{Type: EventError, Error: &payload}, true
	case EventComplete:
		var payload CompleteEvent
		if err := json.Unmarshal([]byte(data), &payload); err != nil {
			return Event{}, false
		}
		return Event{Type: EventComplete, Complete: &payload}, true
	}
	return Event{}, false
}
