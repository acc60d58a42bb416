package parallax

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// DefaultResetKey is the key that resets the camera.
const DefaultResetKey = "R"

// pointerState tracks the single mouse pointer.
type pointerState struct {
	down  bool
	lastX float64
	lastY float64
}

// InteractionHandler turns pointer drags into camera orbit angles and a key
// press into a camera reset. It owns no scene state; it only mutates the
// camera it was created with.
//
// Events carry viewport-local coordinates. Only left-button drags rotate the
// camera. A pointer that leaves the viewport mid-drag or a button toggled
// quickly is not an error: tracking simply continues from the latest known
// position.
type InteractionHandler struct {
	// ResetKey is the logical key name that resets the camera.
	ResetKey string

	camera      *OrbitCamera
	pointer     pointerState
	injectQueue []syntheticEvent
}

// NewInteractionHandler creates a handler driving cam.
func NewInteractionHandler(cam *OrbitCamera) *InteractionHandler {
	return &InteractionHandler{
		ResetKey: DefaultResetKey,
		camera:   cam,
	}
}

// Camera returns the camera driven by the handler.
func (h *InteractionHandler) Camera() *OrbitCamera {
	return h.camera
}

// PointerDown starts tracking at (x, y). Only the left button starts a drag;
// any other button ends one.
func (h *InteractionHandler) PointerDown(x, y float64, button MouseButton) {
	h.pointer.lastX, h.pointer.lastY = x, y
	h.pointer.down = button == MouseButtonLeft
}

// PointerMove rotates the camera by the movement since the last known
// position while the left button is down.
func (h *InteractionHandler) PointerMove(x, y float64) {
	if h.pointer.down {
		h.camera.Drag(h.pointer.lastX-x, h.pointer.lastY-y)
	}
	h.pointer.lastX, h.pointer.lastY = x, y
}

// PointerUp ends a drag at (x, y).
func (h *InteractionHandler) PointerUp(x, y float64) {
	h.pointer.lastX, h.pointer.lastY = x, y
	h.pointer.down = false
}

// KeyPress handles a logical key press. It reports whether the key was
// consumed.
func (h *InteractionHandler) KeyPress(key string) bool {
	if key != h.ResetKey {
		return false
	}
	h.camera.Reset()
	return true
}

// Dragging reports whether the left button is down.
func (h *InteractionHandler) Dragging() bool {
	return h.pointer.down
}

// Position returns the last known pointer position.
func (h *InteractionHandler) Position() (x, y float64) {
	return h.pointer.lastX, h.pointer.lastY
}
