package tray

import (
	"testing"

	"auranote/internal/i18n"
)

func TestTray_UpdatesBeforeMenuBuilt(t *testing.T) {
	tr := New(i18n.New(i18n.EN), []byte{1}, Callbacks{})

	// До onReady пунктов меню нет, обновления не должны падать
	tr.SetAutostartChecked(true)
	tr.SetMuteChecked(true)
	tr.Relabel(i18n.New(i18n.PtBR))

	if tr.tr.Locale() != i18n.PtBR {
		t.Errorf("locale = %q, want pt-BR for the next build", tr.tr.Locale())
	}
}
