package parallax

type syntheticKind uint8

const (
	syntheticPress syntheticKind = iota
	syntheticMove
	syntheticRelease
	syntheticKey
)

// syntheticEvent represents a single injected input event.
type syntheticEvent struct {
	kind   syntheticKind
	x, y   float64
	button MouseButton
	key    string
}

// InjectPress queues a left-button press at the given viewport coordinates.
// The event is consumed by the next ProcessInjected call.
func (h *InteractionHandler) InjectPress(x, y float64) {
	h.injectQueue = append(h.injectQueue, syntheticEvent{
		kind: syntheticPress, x: x, y: y, button: MouseButtonLeft,
	})
}

// InjectMove queues a pointer move. Use this between InjectPress and
// InjectRelease to simulate a drag.
func (h *InteractionHandler) InjectMove(x, y float64) {
	h.injectQueue = append(h.injectQueue, syntheticEvent{kind: syntheticMove, x: x, y: y})
}

// InjectRelease queues a pointer release.
func (h *InteractionHandler) InjectRelease(x, y float64) {
	h.injectQueue = append(h.injectQueue, syntheticEvent{kind: syntheticRelease, x: x, y: y})
}

// InjectKey queues a key press.
func (h *InteractionHandler) InjectKey(key string) {
	h.injectQueue = append(h.injectQueue, syntheticEvent{kind: syntheticKey, key: key})
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and a final move and
// release at (toX, toY). The total sequence consumes frames+1 frames.
// Minimum frames is 2.
func (h *InteractionHandler) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	h.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		h.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	h.InjectMove(toX, toY)
	h.InjectRelease(toX, toY)
}

// Pending returns the number of queued synthetic events.
func (h *InteractionHandler) Pending() int {
	return len(h.injectQueue)
}

// ProcessInjected pops one queued event and dispatches it. It reports
// whether an event was consumed, in which case real pointer input should be
// skipped for the frame.
func (h *InteractionHandler) ProcessInjected() bool {
	if len(h.injectQueue) == 0 {
		return false
	}
	evt := h.injectQueue[0]
	copy(h.injectQueue, h.injectQueue[1:])
	h.injectQueue = h.injectQueue[:len(h.injectQueue)-1]

	switch evt.kind {
	case syntheticPress:
		h.PointerDown(evt.x, evt.y, evt.button)
	case syntheticMove:
		h.PointerMove(evt.x, evt.y)
	case syntheticRelease:
		h.PointerUp(evt.x, evt.y)
	case syntheticKey:
		h.KeyPress(evt.key)
	}
	return true
}
