package console

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fastygo/deskapps/internal/infrastructure/journal"
)

type fakeHistory struct {
	app     string
	limit   int
	entries []journal.Entry
}

func (f *fakeHistory) History(_ context.Context, app string, limit int) ([]journal.Entry, error) {
	f.app, f.limit = app, limit
	return f.entries, nil
}

func TestHistoryHandler(t *testing.T) {
	out := &bytes.Buffer{}
	src := &fakeHistory{entries: []journal.Entry{
		{Operation: "deposit", Subject: "a-1", Data: json.RawMessage(`{"amount":5}`), Timestamp: time.Now()},
	}}

	require.NoError(t, HistoryHandler(src, "bank", 15, out)(context.Background()))
	require.Equal(t, "bank", src.app)
	require.Equal(t, 15, src.limit)
	require.Contains(t, out.String(), "deposit")
	require.Contains(t, out.String(), `{"amount":5}`)

	out.Reset()
	src.entries = nil
	require.NoError(t, HistoryHandler(src, "bank", 15, out)(context.Background()))
	require.Contains(t, out.String(), "No changes recorded yet.")

	out.Reset()
	require.NoError(t, HistoryHandler(nil, "bank", 15, out)(context.Background()))
	require.Contains(t, out.String(), "History is disabled.")
}
