package session

import (
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/lifecycle"
)

// DialogBox is the default core.Dialog. Text is split into pages on blank
// lines and at word boundaries once a page exceeds the rune limit. The game
// is paused while a dialog is open.
type DialogBox struct {
	life      *lifecycle.Controller
	pageRunes int

	pages []string
	page  int
	meta  core.DialogMeta
}

var _ core.Dialog = (*DialogBox)(nil)

// NewDialogBox creates a dialog box. pageRunes <= 0 disables wrapping.
func NewDialogBox(life *lifecycle.Controller, pageRunes int) *DialogBox {
	return &DialogBox{life: life, pageRunes: pageRunes}
}

// ShowDialog opens text, replacing any open dialog.
func (d *DialogBox) ShowDialog(text string, meta core.DialogMeta) {
	pages := paginate(text, d.pageRunes)
	if len(pages) == 0 {
		return
	}
	if !d.Active() {
		d.life.Pause(lifecycle.ReasonDialog)
	}
	d.pages = pages
	d.page = 0
	d.meta = meta
}

// CloseDialog closes the dialog. Safe to call when none is open.
func (d *DialogBox) CloseDialog() {
	if !d.Active() {
		return
	}
	d.pages = nil
	d.page = 0
	d.meta = core.DialogMeta{}
	d.life.Resume(lifecycle.ReasonDialog)
}

// Active reports whether a dialog is open.
func (d *DialogBox) Active() bool {
	return len(d.pages) > 0
}

// NextPage advances one page, closing after the last. Reports whether it closed.
func (d *DialogBox) NextPage() bool {
	if !d.Active() {
		return true
	}
	if d.page+1 < len(d.pages) {
		d.page++
		return false
	}
	d.CloseDialog()
	return true
}

// Page returns the current page text and its 1-based position.
func (d *DialogBox) Page() (text string, n, total int) {
	if !d.Active() {
		return "", 0, 0
	}
	return d.pages[d.page], d.page + 1, len(d.pages)
}

// Meta returns who is speaking.
func (d *DialogBox) Meta() core.DialogMeta {
	return d.meta
}

func paginate(text string, limit int) []string {
	var pages []string
	for _, block := range strings.Split(text, "\n\n") {
		words := strings.Fields(block)
		if len(words) == 0 {
			continue
		}
		var cur strings.Builder
		for _, w := range words {
			if limit > 0 && cur.Len() > 0 && utf8.RuneCountInString(cur.String())+1+utf8.RuneCountInString(w) > limit {
				pages = append(pages, cur.String())
				cur.Reset()
			}
			if cur.Len() > 0 {
				cur.WriteByte(' ')
			}
			cur.WriteString(w)
		}
		if cur.Len() > 0 {
			pages = append(pages, cur.String())
		}
	}
	return pages
}
