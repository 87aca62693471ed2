//go:build windows

package hotkey

import "golang.design/x/hotkey"

// modifierMap маппинг Modifier -> hotkey.Modifier для Windows
var modifierMap = map[Modifier]hotkey.Modifier{
	ModCtrl: hotkey.ModCtrl,
	ModAlt:  hotkey.ModAlt,
}
