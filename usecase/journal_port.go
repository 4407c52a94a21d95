package usecase

import "context"

const (
	AppBank    = "bank"
	AppLibrary = "library"
	AppShop    = "shop"
)

// Change describes one successful mutation of a repository.
type Change struct {
	App       string
	Operation string
	Subject   string
	Payload   any
}

// ChangeRecorder abstracts the change journal so repositories stay storage-agnostic.
type ChangeRecorder interface {
	RecordChange(ctx context.Context, change Change) error
}
