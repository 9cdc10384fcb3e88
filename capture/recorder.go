package capture

import "sync"

// Recorder buffers the frames of one recording session. Appends are
// serialized with a mutex so a live tick loop and a snapshot-taking
// consumer never race; the intended discipline is still single-writer,
// with "recording stopped" as the synchronization point before batch
// analysis starts.
type Recorder struct {
	mu     sync.Mutex
	frames []RecordedFrame
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Append adds one frame to the session buffer
func (r *Recorder) Append(frame RecordedFrame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, frame)
}

// Len returns the number of buffered frames
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// Duration returns the timestamp of the last buffered frame, zero when
// the buffer is empty
func (r *Recorder) Duration() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return 0
	}
	return r.frames[len(r.frames)-1].T
}

// Snapshot returns a copy of the buffered frames safe to iterate while
// the live path keeps appending
func (r *Recorder) Snapshot() []RecordedFrame {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedFrame, len(r.frames))
	copy(out, r.frames)
	return out
}

// Reset truncates the buffer for a new recording session
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = r.frames[:0]
}
