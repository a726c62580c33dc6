package progress

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

// chunkReader yields the stream in fixed-size slices to exercise partial
// buffering.
type chunkReader struct {
	data []byte
	size int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := r.size
	if n > len(r.data) {
		n = len(r.data)
	}
	if n > len(p) {
		n = len(p)
	}
	copy(p, r.data[:n])
	r.data = r.data[n:]
	return n, nil
}

func TestWriterFraming(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out)
	if err := w.Progress(ProgressEvent{Processed: 1, Total: 4, Percentage: 25, CurrentItem: "Asset A"}); err != nil {
		t.Fatalf("write progress failed: %v", err)
	}
	got := out.String()
	if !strings.HasPrefix(got, "event: progress\ndata: ") || !strings.HasSuffix(got, "\n\n") {
		t.Fatalf("bad framing: %q", got)
	}
}

func TestDecoderSpanningReads(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out)
	_ = w.Progress(ProgressEvent{Processed: 10, Total: 100, Percentage: 10})
	_ = w.Heartbeat()
	_ = w.Progress(ProgressEvent{Processed: 25, Total: 100, Percentage: 25})
	_ = w.Complete(CompleteEvent{Processed: 100, Total: 100, OperationID: "op-1"})

	for _, size := range []int{1, 3, 7, 4096} {
		decoder := NewDecoder(&chunkReader{data: append([]byte(nil), out.Bytes()...), size: size})
		var sequence []EventType
		for {
			event, err := decoder.Next()
			if err != nil {
				t.Fatalf("size %d: decode failed: %v", size, err)
			}
			sequence = append(sequence, event.Type)
			if event.Type == EventComplete {
				if event.Complete.OperationID != "op-1" {
					t.Fatalf("size %d: lost operation id", size)
				}
				break
			}
		}
		if len(sequence) != 3 {
			t.Fatalf("size %d: got %v, want progress,progress,complete", size, sequence)
		}
	}
}

func TestDecoderSkipsMalformedBlocks(t *testing.T) {
	raw := "event: progress\ndata: {broken json\n\n" +
		"data: \n\n" +
		"event: mystery\ndata: {}\n\n" +
		"event: complete\ndata: {\"processed\":2,\"total\":2,\"operation_id\":\"op-9\"}\n\n"
	decoder := NewDecoder(strings.NewReader(raw))
	event, err := decoder.Next()
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if event.Type != EventComplete || event.Complete.Processed != 2 {
		t.Fatalf("malformed blocks must be skipped, got %+v", event)
	}
}

func TestDecoderReportsCleanEndWithoutTerminal(t *testing.T) {
	decoder := NewDecoder(strings.NewReader("event: progress\ndata: {\"processed\":1,\"total\":2}\n\n"))
	if _, err := decoder.Next(); err != nil {
		t.Fatalf("first event failed: %v", err)
	}
	if _, err := decoder.Next(); !errors.Is(err, ErrStreamEnded) {
		t.Fatalf("expected ErrStreamEnded, got %v", err)
	}
}

func TestDecoderPropagatesReadError(t *testing.T) {
	boom := errors.New("boom")
	decoder := NewDecoder(io.MultiReader(
		strings.NewReader("event: progress\ndata: {\"processed\":1,\"total\":2}\n\n"),
		&failingReader{err: boom},
	))
	if _, err := decoder.Next(); err != nil {
		t.Fatalf("first event failed: %v", err)
	}
	if _, err := decoder.Next(); !errors.Is(err, boom) {
		t.Fatalf("expected read error, got %v", err)
	}
}

type failingReader struct{ err error }

func (r *failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestPercentageRounding(t *testing.T) {
	cases := []struct {
		processed, total, want int
	}{
		{0, 100, 0},
		{1, 3, 33},
		{2, 3, 67},
		{100, 100, 100},
		{5, 0, 0},
	}
	for _, c := range cases {
		if got := Percentage(c.processed, c.total); got != c.want {
			t.Fatalf("Percentage(%d,%d) = %d, want %d", c.processed, c.total, got, c.want)
		}
	}
}
