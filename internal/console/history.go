package console

import (
	"context"
	"fmt"
	"io"

	"github.com/fastygo/deskapps/internal/infrastructure/journal"
)

// HistorySource serves the most recent journal entries of an app.
type HistorySource interface {
	History(ctx context.Context, app string, limit int) ([]journal.Entry, error)
}

// HistoryHandler prints the latest changes recorded for app.
func HistoryHandler(source HistorySource, app string, limit int, out io.Writer) Handler {
	return func(ctx context.Context) error {
		if source == nil {
			fmt.Fprintln(out, "History is disabled.")
			return nil
		}
		entries, err := source.History(ctx, app, limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(out, "No changes recorded yet.")
			return nil
		}
		for _, e := range entries {
			line := fmt.Sprintf("%s  %-18s %s", e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Operation, e.Subject)
			if len(e.Data) > 0 {
				line += "  " + string(e.Data)
			}
			fmt.Fprintln(out, line)
		}
		return nil
	}
}
