package domain

import "fmt"

// ProductKind discriminates the catalog variants.
type ProductKind string

const (
	ProductBase     ProductKind = "product"
	ProductPhysical ProductKind = "physical"
	ProductDigital  ProductKind = "digital"
)

// ParseProductKind maps a discriminator onto a product variant. An empty
// discriminator means a plain product.
func ParseProductKind(s string) (ProductKind, error) {
	switch ProductKind(s) {
	case "":
		return ProductBase, nil
	case ProductBase, ProductPhysical, ProductDigital:
		return ProductKind(s), nil
	default:
		return "", ErrUnknownKind
	}
}

// Product is a catalog entry. Stock tracking applies to every kind, digital included.
type Product struct {
	id        string
	name      string
	price     float64
	available int
	kind      ProductKind

	weight       float64
	downloadLink string
}

func NewProduct(id, name string, price float64, available int) (*Product, error) {
	return newProduct(ProductBase, id, name, price, available)
}

func NewPhysicalProduct(id, name string, price float64, available int, weight float64) (*Product, error) {
	if !nonNegative(weight) {
		return nil, NewError(ErrCodeInvalid, "weight cannot be negative")
	}
	p, err := newProduct(ProductPhysical, id, name, price, available)
	if err != nil {
		return nil, err
	}
	p.weight = weight
	return p, nil
}

func NewDigitalProduct(id, name string, price float64, available int, downloadLink string) (*Product, error) {
	p, err := newProduct(ProductDigital, id, name, price, available)
	if err != nil {
		return nil, err
	}
	p.downloadLink = downloadLink
	return p, nil
}

func newProduct(kind ProductKind, id, name string, price float64, available int) (*Product, error) {
	if id == "" {
		return nil, NewError(ErrCodeInvalid, "product id cannot be empty")
	}
	if !nonNegative(price) {
		return nil, NewError(ErrCodeInvalid, "price cannot be negative")
	}
	if available < 0 {
		return nil, NewError(ErrCodeInvalid, "quantity cannot be negative")
	}
	return &Product{id: id, name: name, price: price, available: available, kind: kind}, nil
}

func (p *Product) ID() string             { return p.id }
func (p *Product) Name() string           { return p.name }
func (p *Product) Price() float64         { return p.price }
func (p *Product) QuantityAvailable() int { return p.available }
func (p *Product) Kind() ProductKind      { return p.kind }
func (p *Product) Weight() float64        { return p.weight }
func (p *Product) DownloadLink() string   { return p.downloadLink }

func (p *Product) SetQuantityAvailable(quantity int) error {
	if quantity < 0 {
		return NewError(ErrCodeInvalid, "quantity cannot be negative")
	}
	p.available = quantity
	return nil
}

func (p *Product) DecreaseQuantity(n int) error {
	if n <= 0 {
		return ErrInvalidQuantity
	}
	if p.available < n {
		return ErrStockUnavailable
	}
	p.available -= n
	return nil
}

func (p *Product) IncreaseQuantity(n int) error {
	if n <= 0 {
		return ErrInvalidQuantity
	}
	p.available += n
	return nil
}

func (p *Product) Details() string {
	base := fmt.Sprintf("ID: %s | Name: %s | Price: $%.2f", p.id, p.name, p.price)
	switch p.kind {
	case ProductPhysical:
		return fmt.Sprintf("%s | Available: %d | Weight: %g kg", base, p.available, p.weight)
	case ProductDigital:
		return fmt.Sprintf("%s | Available: %d | Download Link: %s", base, p.available, p.downloadLink)
	default:
		return fmt.Sprintf("%s | Available: %d", base, p.available)
	}
}

// ProductRecord is the persisted form of a Product.
type ProductRecord struct {
	ProductID         string   `json:"product_id"`
	Name              string   `json:"name"`
	Price             float64  `json:"price"`
	QuantityAvailable int      `json:"quantity_available"`
	Type              string   `json:"type"`
	Weight            *float64 `json:"weight,omitempty"`
	DownloadLink      *string  `json:"download_link,omitempty"`
}

func (p *Product) Record() ProductRecord {
	rec := ProductRecord{
		ProductID:         p.id,
		Name:              p.name,
		Price:             p.price,
		QuantityAvailable: p.available,
		Type:              string(p.kind),
	}
	switch p.kind {
	case ProductPhysical:
		weight := p.weight
		rec.Weight = &weight
	case ProductDigital:
		link := p.downloadLink
		rec.DownloadLink = &link
	}
	return rec
}

// ProductFromRecord rebuilds a product, applying the same bounds as the constructors.
func ProductFromRecord(rec ProductRecord) (*Product, error) {
	kind, err := ParseProductKind(rec.Type)
	if err != nil {
		return nil, err
	}
	p := &Product{
		id:        rec.ProductID,
		name:      rec.Name,
		price:     rec.Price,
		available: rec.QuantityAvailable,
		kind:      kind,
	}
	if !nonNegative(p.price) {
		return nil, NewError(ErrCodeInvalid, "price cannot be negative")
	}
	if p.available < 0 {
		return nil, NewError(ErrCodeInvalid, "quantity cannot be negative")
	}
	switch kind {
	case ProductPhysical:
		if rec.Weight != nil {
			if !nonNegative(*rec.Weight) {
				return nil, NewError(ErrCodeInvalid, "weight cannot be negative")
			}
			p.weight = *rec.Weight
		}
	case ProductDigital:
		if rec.DownloadLink != nil {
			p.downloadLink = *rec.DownloadLink
		}
	}
	return p, nil
}
