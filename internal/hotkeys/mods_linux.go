//go:build linux

package hotkeys

import "golang.design/x/hotkey"

// Mod1 is Alt under X11.
func modifiers() []hotkey.Modifier {
	return []hotkey.Modifier{hotkey.ModCtrl, hotkey.Mod1}
}
