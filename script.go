package parallax

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Key    string  `json:"key,omitempty"`
	Steps  int     `json:"steps,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure for an input script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"drag":       true,
	"key":        true,
	"height":     true,
	"wait":       true,
	"screenshot": true,
}

// Script sequences injected input, height adjustments and screenshots across
// frames for unattended runs. Attach to an App with SetScript.
//
// Example:
//
//	{"steps": [
//	  {"action": "drag", "fromX": 100, "fromY": 100, "toX": 160, "toY": 120, "frames": 10},
//	  {"action": "height", "steps": 3},
//	  {"action": "wait", "frames": 30},
//	  {"action": "screenshot", "label": "dragged"},
//	  {"action": "key", "key": "R"}
//	]}
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// ParseScript parses a JSON input script.
func ParseScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, errors.New("parse script: no steps")
	}
	for i, st := range f.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action == "key" && st.Key == "" {
			return nil, fmt.Errorf("parse script: step %d: key action without key", i)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// LoadScript reads and parses a JSON input script from path.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load script: %w", err)
	}
	return ParseScript(data)
}

// Done reports whether all steps in the script have been executed.
func (s *Script) Done() bool {
	return s.done
}

// step advances the script by one frame. Called from App.Update.
func (s *Script) step(a *App) {
	if s.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if a.input.Pending() > 0 {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "screenshot":
		a.Screenshot(st.Label)
	case "key":
		a.input.InjectKey(st.Key)
	case "height":
		a.settings.AdjustHeightScale(st.Steps)
	case "drag":
		a.input.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && a.input.Pending() == 0 {
		s.done = true
	}
}
