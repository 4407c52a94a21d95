package domain

// CartItem references a product by id; the price is looked up at use time.
type CartItem struct {
	productID string
	quantity  int
}

func NewCartItem(productID string, quantity int) (*CartItem, error) {
	if quantity < 0 {
		return nil, NewError(ErrCodeInvalid, "quantity cannot be negative")
	}
	return &CartItem{productID: productID, quantity: quantity}, nil
}

func (c *CartItem) ProductID() string { return c.productID }
func (c *CartItem) Quantity() int     { return c.quantity }

func (c *CartItem) SetQuantity(quantity int) error {
	if quantity < 0 {
		return NewError(ErrCodeInvalid, "quantity cannot be negative")
	}
	c.quantity = quantity
	return nil
}

func (c *CartItem) Subtotal(unitPrice float64) float64 {
	return unitPrice * float64(c.quantity)
}

// CartItemRecord is the persisted form of a CartItem.
type CartItemRecord struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (c *CartItem) Record() CartItemRecord {
	return CartItemRecord{ProductID: c.productID, Quantity: c.quantity}
}

func CartItemFromRecord(rec CartItemRecord) (*CartItem, error) {
	return NewCartItem(rec.ProductID, rec.Quantity)
}
