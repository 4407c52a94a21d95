package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/deskapps/domain"
	"github.com/fastygo/deskapps/internal/console"
	"github.com/fastygo/deskapps/usecase"
	"github.com/fastygo/deskapps/usecase/shop"
)

const rule = "--------------------------------------------------"

type menuDeps struct {
	prompt       *console.Prompter
	out          io.Writer
	history      console.HistorySource
	historyLimit int
	logger       *zap.Logger
}

func buildMenu(cart *shop.Cart, d menuDeps) *console.Menu {
	p, out := d.prompt, d.out
	m := console.NewMenu("======= Online Shopping Cart =======", "0", p, out, d.logger)

	m.Register("1", "View Products", func(context.Context) error {
		products := cart.Products()
		if len(products) == 0 {
			fmt.Fprintln(out, "No products available.")
			return nil
		}
		fmt.Fprintln(out, "\nAvailable Products:")
		fmt.Fprintln(out, rule)
		for _, product := range products {
			fmt.Fprintln(out, product.Details())
		}
		fmt.Fprintln(out, rule)
		return nil
	})

	m.Register("2", "Add Item to Cart", func(ctx context.Context) error {
		id, err := p.Ask(ctx, "Enter Product ID to add: ")
		if err != nil {
			return err
		}
		qty, err := p.AskInt(ctx, "Enter quantity: ")
		if err != nil {
			return err
		}
		if qty <= 0 {
			fmt.Fprintln(out, "Quantity must be positive.")
			return nil
		}
		if err := cart.AddItem(ctx, id, qty); err != nil {
			return err
		}
		fmt.Fprintln(out, "Item added to cart.")
		return nil
	})

	m.Register("3", "View Cart", func(context.Context) error {
		lines := cart.Items()
		if len(lines) == 0 {
			fmt.Fprintln(out, "Your cart is empty.")
			return nil
		}
		fmt.Fprintln(out, "\nCurrent Shopping Cart:")
		fmt.Fprintln(out, rule)
		for _, line := range lines {
			fmt.Fprintf(out, "Item: %s, Quantity: %d, Price: $%.2f, Subtotal: $%.2f\n",
				line.Product.Name(), line.Item.Quantity(), line.Product.Price(), line.Subtotal)
		}
		fmt.Fprintln(out, rule)
		fmt.Fprintf(out, "Grand Total: $%.2f\n", cart.Total())
		return nil
	})

	m.Register("4", "Update Quantity", func(ctx context.Context) error {
		id, err := p.Ask(ctx, "Enter Product ID to update: ")
		if err != nil {
			return err
		}
		qty, err := p.AskInt(ctx, "Enter new quantity: ")
		if err != nil {
			return err
		}
		if qty < 0 {
			fmt.Fprintln(out, "Quantity cannot be negative.")
			return nil
		}
		if err := cart.UpdateQuantity(ctx, id, qty); err != nil {
			return err
		}
		fmt.Fprintln(out, "Cart updated.")
		return nil
	})

	m.Register("5", "Remove Item", func(ctx context.Context) error {
		id, err := p.Ask(ctx, "Enter Product ID to remove: ")
		if err != nil {
			return err
		}
		if err := cart.RemoveItem(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(out, "Item removed from cart.")
		return nil
	})

	m.Register("6", "Add Product to Catalog", func(ctx context.Context) error {
		product, err := askProduct(ctx, p)
		if err != nil {
			return err
		}
		if err := cart.AddProduct(ctx, product); err != nil {
			return err
		}
		fmt.Fprintln(out, "Product added to catalog.")
		return nil
	})

	m.Register("7", "Restock Product", func(ctx context.Context) error {
		id, err := p.Ask(ctx, "Enter Product ID to restock: ")
		if err != nil {
			return err
		}
		n, err := p.AskInt(ctx, "Enter quantity to add: ")
		if err != nil {
			return err
		}
		if err := cart.Restock(ctx, id, n); err != nil {
			return err
		}
		fmt.Fprintln(out, "Product restocked.")
		return nil
	})

	m.Register("8", "Remove Product from Catalog", func(ctx context.Context) error {
		id, err := p.Ask(ctx, "Enter Product ID to remove from catalog: ")
		if err != nil {
			return err
		}
		if err := cart.RemoveProduct(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(out, "Product removed from catalog.")
		return nil
	})

	m.Register("9", "History", console.HistoryHandler(d.history, usecase.AppShop, d.historyLimit, out))
	return m
}

func askProduct(ctx context.Context, p *console.Prompter) (*domain.Product, error) {
	raw, err := p.Ask(ctx, "Enter product type (product/physical/digital): ")
	if err != nil {
		return nil, err
	}
	kind, err := domain.ParseProductKind(strings.ToLower(raw))
	if err != nil {
		return nil, err
	}
	id, err := p.Ask(ctx, "Enter Product ID: ")
	if err != nil {
		return nil, err
	}
	name, err := p.Ask(ctx, "Enter product name: ")
	if err != nil {
		return nil, err
	}
	price, err := p.AskFloat(ctx, "Enter price: ")
	if err != nil {
		return nil, err
	}
	qty, err := p.AskInt(ctx, "Enter quantity available: ")
	if err != nil {
		return nil, err
	}

	switch kind {
	case domain.ProductPhysical:
		weight, err := p.AskFloat(ctx, "Enter weight (kg): ")
		if err != nil {
			return nil, err
		}
		return domain.NewPhysicalProduct(id, name, price, qty, weight)
	case domain.ProductDigital:
		link, err := p.Ask(ctx, "Enter download link: ")
		if err != nil {
			return nil, err
		}
		return domain.NewDigitalProduct(id, name, price, qty, link)
	default:
		return domain.NewProduct(id, name, price, qty)
	}
}
