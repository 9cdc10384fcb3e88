package common

// RollingWindow is a bounded FIFO over float64 samples: pushing past the
// capacity drops the oldest value. Used for short history windows (median
// denoising) where the full ordered contents are read every tick.
type RollingWindow struct {
	values []float64
	size   int
}

// NewRollingWindow creates a window holding at most size values
func NewRollingWindow(size int) *RollingWindow {
	if size < 1 {
		size = 1
	}
	return &RollingWindow{
		values: make([]float64, 0, size),
		size:   size,
	}
}

// Push appends a value, dropping the oldest when the window is full
func (w *RollingWindow) Push(value float64) {
	if len(w.values) == w.size {
		copy(w.values, w.values[1:])
		w.values[len(w.values)-1] = value
		return
	}
	w.values = append(w.values, value)
}

// Values returns the current contents, oldest first. The returned slice
// aliases the window; callers must not retain it across a Push.
func (w *RollingWindow) Values() []float64 {
	return w.values
}

// Len returns the number of held values
func (w *RollingWindow) Len() int {
	return len(w.values)
}

// Resize changes the capacity, keeping the newest values
func (w *RollingWindow) Resize(size int) {
	if size < 1 {
		size = 1
	}
	w.size = size
	if len(w.values) > size {
		w.values = w.values[len(w.values)-size:]
	}
}

// Clear drops all held values
func (w *RollingWindow) Clear() {
	w.values = w.values[:0]
}
