package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/mindlens/internal/models"
	"github.com/dmitrijs2005/mindlens/internal/risk"
)

// Add records a new diary entry interactively.
func (a *App) Add(ctx context.Context) error {
	return a.record(ctx, "")
}

// Correct records a new entry that supersedes docID. The original stays in
// the journal but disappears from lists and search results.
func (a *App) Correct(ctx context.Context, docID string) error {
	if _, err := a.journal.GetByID(docID); err != nil {
		return fmt.Errorf("entry %s: %w", docID, err)
	}
	return a.record(ctx, docID)
}

func (a *App) record(ctx context.Context, supersedes string) error {
	date, err := GetSimpleText(a.reader, "Entry date (e.g. 2026-08-31, empty for today)", a.out)
	if err != nil {
		return err
	}

	text, err := GetMultiline(a.reader, "Entry text", a.out)
	if err != nil {
		return err
	}

	emotions, err := GetList(a.reader, "Emotions (comma-separated, optional)", a.out)
	if err != nil {
		return err
	}

	tags, err := GetList(a.reader, "Tags (comma-separated, optional)", a.out)
	if err != nil {
		return err
	}

	attachmentPath, err := GetSimpleText(a.reader, "Attachment file path (optional)", a.out)
	if err != nil {
		return err
	}

	var ref, desc string
	if attachmentPath != "" {
		desc, err = GetSimpleText(a.reader, "Attachment description", a.out)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(attachmentPath)
		if err != nil {
			return fmt.Errorf("reading attachment: %w", err)
		}
		ref, err = a.store.Save(ctx, data, filepath.Ext(attachmentPath))
		if err != nil {
			return err
		}
	}

	entry, err := a.pipeline.Ingest(ctx, models.ProcessedEntry{
		Date:           date,
		Text:           text,
		Emotions:       emotions,
		Tags:           tags,
		AttachmentRef:  ref,
		AttachmentDesc: desc,
		Supersedes:     supersedes,
	})
	if err != nil {
		return err
	}

	a.println(fmt.Sprintf("Recorded entry %s [%s] (risk: %s)", entry.DocID, entry.Date, entry.RiskLabel))
	if entry.RiskLabel == string(risk.LabelHigh) {
		a.println("This entry mentions serious distress. Type 'helplines' for immediate support options.")
	}
	return nil
}

// Delete tombstones an entry.
func (a *App) Delete(ctx context.Context, docID string) error {
	if err := a.pipeline.Delete(ctx, docID); err != nil {
		return err
	}
	a.println("Deleted entry " + docID)
	return nil
}

// List prints the current view of the journal: latest corrections only, no
// tombstones.
func (a *App) List(_ context.Context) error {
	entries := a.journal.Current()
	if len(entries) == 0 {
		a.println("No entries yet.")
		return nil
	}
	for _, e := range entries {
		a.println(formatEntry(e))
	}
	return nil
}
