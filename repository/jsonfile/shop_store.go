package jsonfile

import (
	"context"

	"github.com/fastygo/deskapps/domain"
	"github.com/fastygo/deskapps/repository"
)

// ShopStore keeps the product catalog and the cart as JSON arrays.
type ShopStore struct {
	productsPath string
	cartPath     string
}

func NewShopStore(productsPath, cartPath string) *ShopStore {
	if productsPath == "" {
		productsPath = DefaultProductsFile
	}
	if cartPath == "" {
		cartPath = DefaultCartFile
	}
	return &ShopStore{productsPath: productsPath, cartPath: cartPath}
}

func (s *ShopStore) LoadShop(ctx context.Context) (*repository.ShopSnapshot, error) {
	snapshot := &repository.ShopSnapshot{}
	if err := readDocument(ctx, s.productsPath, &snapshot.Products); err != nil {
		return nil, err
	}
	if err := readDocument(ctx, s.cartPath, &snapshot.Cart); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *ShopStore) SaveShop(ctx context.Context, snapshot *repository.ShopSnapshot) error {
	cart := snapshot.Cart
	if cart == nil {
		cart = []domain.CartItemRecord{}
	}
	products := snapshot.Products
	if products == nil {
		products = []domain.ProductRecord{}
	}
	if err := writeDocument(ctx, s.cartPath, cart, "  "); err != nil {
		return err
	}
	return writeDocument(ctx, s.productsPath, products, "  ")
}

var _ repository.ShopStorage = (*ShopStore)(nil)
