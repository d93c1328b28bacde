// ABOUTME: Looping PCM reader
// ABOUTME: Replays an encoded unit buffer a fixed number of times with an optional byte cap
package output

import "io"

// loopReader replays data loops times, stopping early after limit bytes
type loopReader struct {
	data      []byte
	pos       int
	remaining int
}

// newLoopReader creates a reader over loops copies of data.
// A limit of 0 means no cap.
func newLoopReader(data []byte, loops, limit int) *loopReader {
	total := len(data) * loops
	if limit > 0 && limit < total {
		total = limit
	}
	return &loopReader{data: data, remaining: total}
}

func (r *loopReader) Read(p []byte) (int, error) {
	if r.remaining <= 0 || len(r.data) == 0 {
		return 0, io.EOF
	}

	n := 0
	for n < len(p) && r.remaining > 0 {
		want := len(p) - n
		if want > r.remaining {
			want = r.remaining
		}
		c := copy(p[n:n+want], r.data[r.pos:])
		r.pos = (r.pos + c) % len(r.data)
		r.remaining -= c
		n += c
	}
	return n, nil
}

// Len returns the number of bytes still to be read
func (r *loopReader) Len() int {
	return r.remaining
}

// fill reads into p and pads any shortfall with the silence byte pattern.
// A nil reader produces pure silence.
func fill(r *loopReader, p []byte, silence []byte) {
	n := 0
	if r != nil {
		n, _ = io.ReadFull(r, p)
	}
	for i := n; i < len(p); i++ {
		p[i] = silence[i%len(silence)]
	}
}
