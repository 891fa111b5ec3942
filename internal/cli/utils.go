package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mindlens/internal/models"
)

const listExcerptLimit = 70

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func formatEntry(e models.Entry) string {
	text := e.Text
	if text == "" && e.AttachmentDesc != "" {
		text = "[attachment] " + e.AttachmentDesc
	}
	if runes := []rune(text); len(runes) > listExcerptLimit {
		text = string(runes[:listExcerptLimit]) + "..."
	}

	var extras []string
	if len(e.Emotions) > 0 {
		extras = append(extras, strings.Join(e.Emotions, ", "))
	}
	if len(e.Tags) > 0 {
		extras = append(extras, "#"+strings.Join(e.Tags, " #"))
	}

	s := fmt.Sprintf("%s  [%s]  %-8s  %s", e.DocID, e.Date, e.RiskLabel, text)
	if len(extras) > 0 {
		s += "  (" + strings.Join(extras, "; ") + ")"
	}
	return s
}
