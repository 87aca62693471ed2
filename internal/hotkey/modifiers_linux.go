//go:build linux

package hotkey

import "golang.design/x/hotkey"

// modifierMap маппинг Modifier -> hotkey.Modifier для Linux
var modifierMap = map[Modifier]hotkey.Modifier{
	ModCtrl: hotkey.ModCtrl,
	ModAlt:  hotkey.Mod1, // Alt = Mod1 на X11
}
