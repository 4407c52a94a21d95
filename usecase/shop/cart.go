package shop

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"github.com/fastygo/deskapps/domain"
	"github.com/fastygo/deskapps/repository"
	"github.com/fastygo/deskapps/usecase"
)

// Line is a cart entry resolved against the catalog.
type Line struct {
	Item     *domain.CartItem
	Product  *domain.Product
	Subtotal float64
}

// Cart couples the product catalog with a single shopping cart. Stock held in
// the cart is taken out of the product's available quantity, so for every
// product stock plus cart quantity stays constant across cart operations.
type Cart struct {
	storage  repository.ShopStorage
	recorder usecase.ChangeRecorder
	logger   *zap.Logger

	products     map[string]*domain.Product
	productOrder []string
	items        map[string]*domain.CartItem
	itemOrder    []string
}

func New(ctx context.Context, storage repository.ShopStorage, recorder usecase.ChangeRecorder, logger *zap.Logger) (*Cart, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Cart{
		storage:  storage,
		recorder: recorder,
		logger:   logger,
	}
	snapshot, err := storage.LoadShop(ctx)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "load shop", err)
	}
	snapshot.Cart = slices.DeleteFunc(snapshot.Cart, func(rec domain.CartItemRecord) bool {
		return rec.Quantity <= 0
	})
	c.apply(snapshot)
	logger.Info("shop loaded",
		zap.Int("products", len(c.products)),
		zap.Int("cart_lines", len(c.items)))
	return c, nil
}

// AddProduct puts a new product into the catalog.
func (c *Cart) AddProduct(ctx context.Context, product *domain.Product) error {
	if product == nil {
		return domain.NewError(domain.ErrCodeInvalid, "product is required")
	}
	id := product.ID()
	if _, exists := c.products[id]; exists {
		return domain.Errorf(domain.ErrCodeConflict, "product id %s already exists", id)
	}
	stored, err := domain.ProductFromRecord(product.Record())
	if err != nil {
		return err
	}
	prev := c.snapshot()
	c.products[id] = stored
	c.productOrder = append(c.productOrder, id)
	return c.commit(ctx, prev, "add_product", id, stored.Record())
}

func (c *Cart) Restock(ctx context.Context, productID string, n int) error {
	product, err := c.product(productID)
	if err != nil {
		return err
	}
	prev := c.snapshot()
	if err := product.IncreaseQuantity(n); err != nil {
		return err
	}
	return c.commit(ctx, prev, "restock", productID, map[string]any{"added": n, "available": product.QuantityAvailable()})
}

// RemoveProduct drops a product from the catalog unless the cart still references it.
func (c *Cart) RemoveProduct(ctx context.Context, productID string) error {
	if _, err := c.product(productID); err != nil {
		return err
	}
	if _, inCart := c.items[productID]; inCart {
		return domain.Errorf(domain.ErrCodeRejected, "product %s is in the cart", productID)
	}
	prev := c.snapshot()
	delete(c.products, productID)
	c.productOrder = remove(c.productOrder, productID)
	return c.commit(ctx, prev, "remove_product", productID, nil)
}

// AddItem reserves qty units of the product and merges them into the cart.
func (c *Cart) AddItem(ctx context.Context, productID string, qty int) error {
	product, err := c.product(productID)
	if err != nil {
		return err
	}
	if qty <= 0 {
		return domain.ErrInvalidQuantity
	}
	prev := c.snapshot()
	if err := product.DecreaseQuantity(qty); err != nil {
		return err
	}
	if item, ok := c.items[productID]; ok {
		if err := item.SetQuantity(item.Quantity() + qty); err != nil {
			c.apply(prev)
			return err
		}
	} else {
		item, err := domain.NewCartItem(productID, qty)
		if err != nil {
			c.apply(prev)
			return err
		}
		c.items[productID] = item
		c.itemOrder = append(c.itemOrder, productID)
	}
	return c.commit(ctx, prev, "add_item", productID, map[string]any{"quantity": qty})
}

// UpdateQuantity sets the cart quantity for a product, moving only the
// difference between cart and stock.
func (c *Cart) UpdateQuantity(ctx context.Context, productID string, newQty int) error {
	item, ok := c.items[productID]
	if !ok {
		return domain.Errorf(domain.ErrCodeNotFound, "product %s is not in the cart", productID)
	}
	if newQty < 0 {
		return domain.ErrInvalidQuantity
	}
	product, err := c.product(productID)
	if err != nil {
		return err
	}

	delta := newQty - item.Quantity()
	if delta == 0 {
		return nil
	}
	prev := c.snapshot()
	if delta > 0 {
		err = product.DecreaseQuantity(delta)
	} else {
		err = product.IncreaseQuantity(-delta)
	}
	if err != nil {
		return err
	}
	if err := item.SetQuantity(newQty); err != nil {
		c.apply(prev)
		return err
	}
	return c.commit(ctx, prev, "update_quantity", productID, map[string]any{"quantity": newQty, "delta": delta})
}

// RemoveItem drops the line and returns its quantity to stock.
func (c *Cart) RemoveItem(ctx context.Context, productID string) error {
	item, ok := c.items[productID]
	if !ok {
		return domain.Errorf(domain.ErrCodeNotFound, "product %s is not in the cart", productID)
	}
	prev := c.snapshot()
	if product, ok := c.products[productID]; ok && item.Quantity() > 0 {
		if err := product.IncreaseQuantity(item.Quantity()); err != nil {
			return err
		}
	}
	delete(c.items, productID)
	c.itemOrder = remove(c.itemOrder, productID)
	return c.commit(ctx, prev, "remove_item", productID, map[string]any{"quantity": item.Quantity()})
}

func (c *Cart) Products() []*domain.Product {
	out := make([]*domain.Product, 0, len(c.productOrder))
	for _, id := range c.productOrder {
		out = append(out, cloneProduct(c.products[id]))
	}
	return out
}

func (c *Cart) Product(id string) (*domain.Product, bool) {
	p, ok := c.products[id]
	if !ok {
		return nil, false
	}
	return cloneProduct(p), true
}

// Items lists the cart lines in the order they were first added.
func (c *Cart) Items() []Line {
	out := make([]Line, 0, len(c.itemOrder))
	for _, id := range c.itemOrder {
		item := c.items[id]
		product := c.products[id]
		out = append(out, Line{
			Item:     cloneItem(item),
			Product:  cloneProduct(product),
			Subtotal: item.Subtotal(product.Price()),
		})
	}
	return out
}

func (c *Cart) Total() float64 {
	var total float64
	for _, id := range c.itemOrder {
		total += c.items[id].Subtotal(c.products[id].Price())
	}
	return total
}

func (c *Cart) product(id string) (*domain.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return nil, domain.Errorf(domain.ErrCodeNotFound, "product %s not found", id)
	}
	return p, nil
}

func (c *Cart) snapshot() *repository.ShopSnapshot {
	s := &repository.ShopSnapshot{
		Products: make([]domain.ProductRecord, 0, len(c.productOrder)),
		Cart:     make([]domain.CartItemRecord, 0, len(c.itemOrder)),
	}
	for _, id := range c.productOrder {
		s.Products = append(s.Products, c.products[id].Record())
	}
	for _, id := range c.itemOrder {
		s.Cart = append(s.Cart, c.items[id].Record())
	}
	return s
}

// apply replaces the in-memory catalog and cart. Products with an unknown
// type or out-of-range fields and cart lines that do not resolve to a product are skipped; stored
// product quantities already exclude what sits in the cart.
func (c *Cart) apply(s *repository.ShopSnapshot) {
	c.products = make(map[string]*domain.Product, len(s.Products))
	c.productOrder = c.productOrder[:0]
	c.items = make(map[string]*domain.CartItem, len(s.Cart))
	c.itemOrder = c.itemOrder[:0]

	for _, rec := range s.Products {
		product, err := domain.ProductFromRecord(rec)
		if err != nil {
			c.logger.Warn("skipping product record",
				zap.String("product_id", rec.ProductID),
				zap.String("type", rec.Type),
				zap.Error(err))
			continue
		}
		if _, dup := c.products[rec.ProductID]; dup {
			continue
		}
		c.products[rec.ProductID] = product
		c.productOrder = append(c.productOrder, rec.ProductID)
	}
	for _, rec := range s.Cart {
		if _, ok := c.products[rec.ProductID]; !ok {
			c.logger.Warn("skipping cart line for unknown product", zap.String("product_id", rec.ProductID))
			continue
		}
		if _, dup := c.items[rec.ProductID]; dup {
			continue
		}
		item, err := domain.CartItemFromRecord(rec)
		if err != nil {
			c.logger.Warn("skipping cart line", zap.String("product_id", rec.ProductID), zap.Error(err))
			continue
		}
		c.items[rec.ProductID] = item
		c.itemOrder = append(c.itemOrder, rec.ProductID)
	}
}

// commit persists the current state. On failure memory returns to prev and
// prev is written back once more; if that write fails too the files may stay
// out of step until the next successful save.
func (c *Cart) commit(ctx context.Context, prev *repository.ShopSnapshot, operation, subject string, payload any) error {
	if err := c.storage.SaveShop(ctx, c.snapshot()); err != nil {
		c.apply(prev)
		c.logger.Error("shop persist failed", zap.String("operation", operation), zap.Error(err))
		if restoreErr := c.storage.SaveShop(ctx, prev); restoreErr != nil {
			c.logger.Warn("shop files may disagree until the next save", zap.Error(restoreErr))
		}
		return domain.WrapError(domain.ErrCodeInternal, "save shop", err)
	}
	if c.recorder != nil {
		change := usecase.Change{App: usecase.AppShop, Operation: operation, Subject: subject, Payload: payload}
		if err := c.recorder.RecordChange(ctx, change); err != nil {
			c.logger.Warn("failed to journal shop change", zap.String("operation", operation), zap.Error(err))
		}
	}
	return nil
}

func cloneItem(i *domain.CartItem) *domain.CartItem {
	clone, _ := domain.CartItemFromRecord(i.Record())
	return clone
}

func cloneProduct(p *domain.Product) *domain.Product {
	clone, _ := domain.ProductFromRecord(p.Record())
	return clone
}

func remove(ids []string, id string) []string {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(ids, i, i+1)
	}
	return ids
}
