package lifecycle

// Handle identifies one run of a self-rescheduling loop (enemy ticks,
// overlay frames). Every Start bumps the generation so messages scheduled
// by an older run are recognised as stale and dropped.
type Handle struct {
	gen    uint64
	active bool
}

// Start begins a new run, replacing any previous one, and returns its generation.
func (h *Handle) Start() uint64 {
	h.gen++
	h.active = true
	return h.gen
}

// Stop ends the current run. Safe to call when nothing is running.
func (h *Handle) Stop() {
	if !h.active {
		return
	}
	h.active = false
	h.gen++
}

// Active reports whether a run is in progress.
func (h *Handle) Active() bool {
	return h.active
}

// Valid reports whether gen belongs to the current run.
func (h *Handle) Valid(gen uint64) bool {
	return h.active && gen == h.gen
}

// Generation returns the current generation.
func (h *Handle) Generation() uint64 {
	return h.gen
}
