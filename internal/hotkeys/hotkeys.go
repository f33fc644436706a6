// Package hotkeys binds the global keyboard shortcuts: cap up, cap down
// and toggle limiting. They work system-wide, so the cap can be nudged
// without leaving whatever is playing.
package hotkeys

import (
	"fmt"

	"golang.design/x/hotkey"
)

// capStep is how much one keypress moves the volume cap.
const capStep = 0.05

// Handler receives hotkey actions. Calls arrive on the hotkey listener
// goroutines.
type Handler interface {
	AdjustVolumeCap(delta float64) float64
	ToggleRunning() bool
}

// Manager owns the registered hotkeys.
type Manager struct {
	keys []*hotkey.Hotkey
	done chan struct{}
}

// Start registers Ctrl+Alt+Up/Down for the cap and Ctrl+Alt+Y for the
// toggle, and starts dispatching to h. Registration can fail on Wayland
// compositors without the global-shortcuts portal; the caller decides
// whether that is fatal.
func Start(h Handler, onChange func()) (*Manager, error) {
	m := &Manager{done: make(chan struct{})}

	bindings := []struct {
		key    hotkey.Key
		action func()
	}{
		{hotkey.KeyUp, func() {
			h.AdjustVolumeCap(capStep)
			if onChange != nil {
				onChange()
			}
		}},
		{hotkey.KeyDown, func() {
			h.AdjustVolumeCap(-capStep)
			if onChange != nil {
				onChange()
			}
		}},
		{hotkey.KeyY, func() {
			h.ToggleRunning()
			if onChange != nil {
				onChange()
			}
		}},
	}

	for _, b := range bindings {
		hk := hotkey.New(modifiers(), b.key)
		if err := hk.Register(); err != nil {
			m.Stop()
			return nil, fmt.Errorf("registering global hotkey: %w", err)
		}
		m.keys = append(m.keys, hk)
		go m.listen(hk, b.action)
	}

	return m, nil
}

func (m *Manager) listen(hk *hotkey.Hotkey, action func()) {
	for {
		select {
		case <-m.done:
			return
		case _, ok := <-hk.Keydown():
			if !ok {
				return
			}
			action()
		}
	}
}

// Stop unregisters every hotkey and ends the listeners.
func (m *Manager) Stop() {
	select {
	case <-m.done:
		return
	default:
	}
	close(m.done)
	for _, hk := range m.keys {
		hk.Unregister()
	}
	m.keys = nil
}
