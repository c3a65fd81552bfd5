package cli

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/noema/internal/core/domain"
)

// loadRecord resolves the content a command should operate on: a stored
// record when an ID is given, otherwise an ephemeral record wrapping the
// inline text.
func loadRecord(ctx context.Context, contentID, text string) (*domain.ContentRecord, error) {
	if contentID != "" {
		if contentStore == nil {
			return nil, errors.New("content store not configured")
		}
		return contentStore.Get(ctx, contentID)
	}
	if text == "" {
		return nil, errors.New("provide text or --id")
	}
	return &domain.ContentRecord{
		ID:        "inline",
		Type:      domain.ContentTypeText,
		Body:      text,
		Source:    "cli",
		CreatedAt: time.Now(),
	}, nil
}
