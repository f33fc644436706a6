//go:build darwin

package hotkeys

import "golang.design/x/hotkey"

func modifiers() []hotkey.Modifier {
	return []hotkey.Modifier{hotkey.ModCtrl, hotkey.ModOption}
}
