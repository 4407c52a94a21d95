package repository

import (
	"context"

	"github.com/fastygo/deskapps/domain"
)

// ShopSnapshot holds the catalog and the cart. Product quantities are the
// remaining stock, with cart quantities already taken out.
type ShopSnapshot struct {
	Products []domain.ProductRecord
	Cart     []domain.CartItemRecord
}

type ShopStorage interface {
	LoadShop(ctx context.Context) (*ShopSnapshot, error)
	SaveShop(ctx context.Context, snapshot *ShopSnapshot) error
}
