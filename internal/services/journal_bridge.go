package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/deskapps/domain"
	"github.com/fastygo/deskapps/internal/infrastructure/journal"
	"github.com/fastygo/deskapps/usecase"
)

// JournalBridge turns repository changes into journal entries and serves
// them back for the console history views.
type JournalBridge struct {
	store  *journal.Store
	logger *zap.Logger
}

func NewJournalBridge(store *journal.Store, logger *zap.Logger) *JournalBridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JournalBridge{store: store, logger: logger}
}

func (b *JournalBridge) RecordChange(ctx context.Context, change usecase.Change) error {
	if b.store == nil {
		return domain.NewError(domain.ErrCodeInternal, "journal is not open")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	entry := journal.Entry{
		App:       change.App,
		Operation: change.Operation,
		Subject:   change.Subject,
	}
	if change.Payload != nil {
		payload, err := json.Marshal(change.Payload)
		if err != nil {
			return err
		}
		entry.Data = payload
	}
	if err := b.store.Append(entry); err != nil {
		return err
	}
	b.logger.Debug("change journaled",
		zap.String("app", change.App),
		zap.String("operation", change.Operation),
		zap.String("subject", change.Subject))
	return nil
}

// History returns the latest entries for app, newest first.
func (b *JournalBridge) History(ctx context.Context, app string, limit int) ([]journal.Entry, error) {
	if b.store == nil {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return b.store.Recent(app, limit)
}

// Prune drops entries older than retention. A non-positive retention keeps everything.
func (b *JournalBridge) Prune(retention time.Duration) (int, error) {
	if b.store == nil || retention <= 0 {
		return 0, nil
	}
	removed, err := b.store.Cleanup(time.Now().Add(-retention))
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		b.logger.Info("journal pruned", zap.Int("removed", removed), zap.Duration("retention", retention))
	}
	return removed, nil
}

var _ usecase.ChangeRecorder = (*JournalBridge)(nil)
