package shop

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Pallinder/go-randomdata"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/deskapps/domain"
	"github.com/fastygo/deskapps/repository"
	"github.com/fastygo/deskapps/repository/jsonfile"
)

type memStorage struct {
	snapshot *repository.ShopSnapshot
	saves    int
	failSave bool
	failNext bool
}

func (m *memStorage) LoadShop(context.Context) (*repository.ShopSnapshot, error) {
	if m.snapshot == nil {
		return &repository.ShopSnapshot{}, nil
	}
	return m.snapshot, nil
}

func (m *memStorage) SaveShop(_ context.Context, s *repository.ShopSnapshot) error {
	if m.failSave || m.failNext {
		m.failNext = false
		return errors.New("permission denied")
	}
	m.saves++
	m.snapshot = s
	return nil
}

func newCart(t *testing.T, stock int) (*Cart, *memStorage) {
	t.Helper()
	storage := &memStorage{}
	c, err := New(context.Background(), storage, nil, nil)
	require.NoError(t, err)
	p, err := domain.NewProduct("P1", "Pen", 2.5, stock)
	require.NoError(t, err)
	require.NoError(t, c.AddProduct(context.Background(), p))
	return c, storage
}

func stockAndQty(t *testing.T, c *Cart, id string) (int, int) {
	t.Helper()
	p, ok := c.Product(id)
	require.True(t, ok)
	for _, line := range c.Items() {
		if line.Item.ProductID() == id {
			return p.QuantityAvailable(), line.Item.Quantity()
		}
	}
	return p.QuantityAvailable(), 0
}

func TestCartScenario(t *testing.T) {
	ctx := context.Background()
	c, _ := newCart(t, 10)

	require.NoError(t, c.AddItem(ctx, "P1", 4))
	stock, qty := stockAndQty(t, c, "P1")
	require.Equal(t, 6, stock)
	require.Equal(t, 4, qty)

	require.NoError(t, c.UpdateQuantity(ctx, "P1", 2))
	stock, qty = stockAndQty(t, c, "P1")
	require.Equal(t, 8, stock)
	require.Equal(t, 2, qty)

	require.NoError(t, c.RemoveItem(ctx, "P1"))
	stock, _ = stockAndQty(t, c, "P1")
	require.Equal(t, 10, stock)
	require.Empty(t, c.Items())
}

func TestConservation(t *testing.T) {
	ctx := context.Background()
	const initial = 50
	c, _ := newCart(t, initial)

	for i := 0; i < 40; i++ {
		switch randomdata.Number(0, 3) {
		case 0:
			_ = c.AddItem(ctx, "P1", randomdata.Number(1, 20))
		case 1:
			_ = c.UpdateQuantity(ctx, "P1", randomdata.Number(0, 60))
		case 2:
			_ = c.RemoveItem(ctx, "P1")
		}
		stock, qty := stockAndQty(t, c, "P1")
		require.Equal(t, initial, stock+qty)
		require.GreaterOrEqual(t, stock, 0)
	}
}

func TestAddItemRejections(t *testing.T) {
	ctx := context.Background()
	c, storage := newCart(t, 3)
	saves := storage.saves

	require.ErrorIs(t, c.AddItem(ctx, "P1", 4), domain.ErrStockUnavailable)
	require.ErrorIs(t, c.AddItem(ctx, "P1", 0), domain.ErrInvalidQuantity)
	require.True(t, domain.IsDomainError(c.AddItem(ctx, "P9", 1), domain.ErrCodeNotFound))
	require.Equal(t, saves, storage.saves)

	require.NoError(t, c.AddItem(ctx, "P1", 1))
	require.NoError(t, c.AddItem(ctx, "P1", 2))
	items := c.Items()
	require.Len(t, items, 1)
	require.Equal(t, 3, items[0].Item.Quantity())
	require.InDelta(t, 7.5, c.Total(), 1e-9)
	require.InDelta(t, 7.5, items[0].Subtotal, 1e-9)
}

func TestUpdateQuantityEdges(t *testing.T) {
	ctx := context.Background()
	c, storage := newCart(t, 5)

	require.True(t, domain.IsDomainError(c.UpdateQuantity(ctx, "P1", 1), domain.ErrCodeNotFound))
	require.NoError(t, c.AddItem(ctx, "P1", 2))

	saves := storage.saves
	require.NoError(t, c.UpdateQuantity(ctx, "P1", 2))
	require.Equal(t, saves, storage.saves, "zero delta does not persist")

	require.ErrorIs(t, c.UpdateQuantity(ctx, "P1", -1), domain.ErrInvalidQuantity)
	require.ErrorIs(t, c.UpdateQuantity(ctx, "P1", 9), domain.ErrStockUnavailable)
	stock, qty := stockAndQty(t, c, "P1")
	require.Equal(t, 3, stock)
	require.Equal(t, 2, qty)

	require.NoError(t, c.UpdateQuantity(ctx, "P1", 0))
	require.Len(t, c.Items(), 1, "a zero line stays in the cart")
	stock, _ = stockAndQty(t, c, "P1")
	require.Equal(t, 5, stock)
	require.Zero(t, c.Total())
}

func TestCatalogManagement(t *testing.T) {
	ctx := context.Background()
	c, _ := newCart(t, 1)

	dup, err := domain.NewProduct("P1", "Other", 1, 1)
	require.NoError(t, err)
	require.True(t, domain.IsDomainError(c.AddProduct(ctx, dup), domain.ErrCodeConflict))

	ebook, err := domain.NewDigitalProduct("D1", "Manual", 9.99, 100, "https://example.com/manual.pdf")
	require.NoError(t, err)
	require.NoError(t, c.AddProduct(ctx, ebook))
	box, err := domain.NewPhysicalProduct("H1", "Box", 4, 2, 1.5)
	require.NoError(t, err)
	require.NoError(t, c.AddProduct(ctx, box))
	require.Len(t, c.Products(), 3)

	require.NoError(t, c.Restock(ctx, "P1", 4))
	p, _ := c.Product("P1")
	require.Equal(t, 5, p.QuantityAvailable())
	require.ErrorIs(t, c.Restock(ctx, "P1", 0), domain.ErrInvalidQuantity)

	require.NoError(t, c.AddItem(ctx, "H1", 1))
	require.True(t, domain.IsDomainError(c.RemoveProduct(ctx, "H1"), domain.ErrCodeRejected))
	require.NoError(t, c.RemoveItem(ctx, "H1"))
	require.NoError(t, c.RemoveProduct(ctx, "H1"))
	_, ok := c.Product("H1")
	require.False(t, ok)
}

func TestPersistFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	c, storage := newCart(t, 10)
	require.NoError(t, c.AddItem(ctx, "P1", 2))
	require.NoError(t, c.UpdateQuantity(ctx, "P1", 0))

	storage.failSave = true
	err := c.AddItem(ctx, "P1", 3)
	require.True(t, domain.IsDomainError(err, domain.ErrCodeInternal))

	stock, qty := stockAndQty(t, c, "P1")
	require.Equal(t, 10, stock)
	require.Zero(t, qty)
	require.Len(t, c.Items(), 1)
}

func TestFailedProductsWriteRestoresCartFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	productsPath := filepath.Join(dir, "products.json")
	store := jsonfile.NewShopStore(productsPath, filepath.Join(dir, "cart.json"))

	c, err := New(ctx, store, nil, nil)
	require.NoError(t, err)
	p, err := domain.NewProduct("P1", "Pen", 2.5, 5)
	require.NoError(t, err)
	require.NoError(t, c.AddProduct(ctx, p))
	require.NoError(t, c.AddItem(ctx, "P1", 2))

	// cart.json is written first, so only the products document fails to land.
	require.NoError(t, os.Remove(productsPath))
	require.NoError(t, os.Mkdir(productsPath, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(productsPath, "keep"), nil, 0o644))

	err = c.AddItem(ctx, "P1", 1)
	require.True(t, domain.IsDomainError(err, domain.ErrCodeInternal))

	raw, err := os.ReadFile(filepath.Join(dir, "cart.json"))
	require.NoError(t, err)
	var onDisk []domain.CartItemRecord
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	require.Equal(t, []domain.CartItemRecord{{ProductID: "P1", Quantity: 2}}, onDisk)

	stock, qty := stockAndQty(t, c, "P1")
	require.Equal(t, 3, stock)
	require.Equal(t, 2, qty)
}

func TestFailedSaveWritesPreviousSnapshotBack(t *testing.T) {
	ctx := context.Background()
	c, storage := newCart(t, 4)
	storage.failNext = true

	err := c.AddItem(ctx, "P1", 1)
	require.True(t, domain.IsDomainError(err, domain.ErrCodeInternal))
	require.Len(t, storage.snapshot.Products, 1)
	require.Equal(t, 4, storage.snapshot.Products[0].QuantityAvailable)
	require.Empty(t, storage.snapshot.Cart)
}

func TestLoadSkipsDanglingLinesWithoutTouchingStock(t *testing.T) {
	storage := &memStorage{snapshot: &repository.ShopSnapshot{
		Products: []domain.ProductRecord{
			{ProductID: "P1", Name: "Pen", Price: 1, QuantityAvailable: 6, Type: "product"},
			{ProductID: "X", Name: "Odd", Price: 1, QuantityAvailable: 1, Type: "service"},
		},
		Cart: []domain.CartItemRecord{
			{ProductID: "P1", Quantity: 4},
			{ProductID: "ghost", Quantity: 1},
			{ProductID: "X", Quantity: 1},
		},
	}}
	c, err := New(context.Background(), storage, nil, nil)
	require.NoError(t, err)

	require.Len(t, c.Products(), 1)
	items := c.Items()
	require.Len(t, items, 1)
	stock, qty := stockAndQty(t, c, "P1")
	require.Equal(t, 6, stock)
	require.Equal(t, 4, qty)
}

func TestReloadFromJSONFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := jsonfile.NewShopStore(filepath.Join(dir, "products.json"), filepath.Join(dir, "cart.json"))

	c, err := New(ctx, store, nil, nil)
	require.NoError(t, err)
	p, err := domain.NewPhysicalProduct("P1", "Lamp", 20, 10, 2.25)
	require.NoError(t, err)
	require.NoError(t, c.AddProduct(ctx, p))
	require.NoError(t, c.AddItem(ctx, "P1", 4))

	reloaded, err := New(ctx, store, nil, nil)
	require.NoError(t, err)
	stock, qty := stockAndQty(t, reloaded, "P1")
	require.Equal(t, 6, stock)
	require.Equal(t, 4, qty)
	got, _ := reloaded.Product("P1")
	require.Equal(t, domain.ProductPhysical, got.Kind())
	require.Equal(t, 2.25, got.Weight())
}
