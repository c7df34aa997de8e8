package menu

import (
	"fmt"
	"sync/atomic"

	"github.com/shopspring/decimal"
)

// Category tags which attribute of an Item is meaningful.
type Category string

const (
	Food     Category = "Food"
	Beverage Category = "Beverage"
	Dessert  Category = "Dessert"
)

func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case Food, Beverage, Dessert:
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Attributes is the category payload. Only the field matching the item's
// Category carries meaning; the others are always zero.
type Attributes struct {
	Spiciness int  // Food, 0-5
	Hot       bool // Beverage
	IceCream  bool // Dessert
}

// Spec is the data an Item is created from, either at seed time or when
// loading from storage. ID 0 means "allocate one".
type Spec struct {
	ID         int
	Name       string
	Category   Category
	Price      decimal.Decimal
	Stock      int
	Attributes Attributes
}

func FoodSpec(name string, price int64, stock, spiciness int) Spec {
	return Spec{Name: name, Category: Food, Price: decimal.NewFromInt(price), Stock: stock,
		Attributes: Attributes{Spiciness: spiciness}}
}

func BeverageSpec(name string, price int64, stock int, hot bool) Spec {
	return Spec{Name: name, Category: Beverage, Price: decimal.NewFromInt(price), Stock: stock,
		Attributes: Attributes{Hot: hot}}
}

func DessertSpec(name string, price int64, stock int, iceCream bool) Spec {
	return Spec{Name: name, Category: Dessert, Price: decimal.NewFromInt(price), Stock: stock,
		Attributes: Attributes{IceCream: iceCream}}
}

// Item is a sellable product. Identity fields never change after creation.
// Stock is only written by the owning Catalog, under its lock; reads are
// safe from any goroutine.
type Item struct {
	id       int
	name     string
	category Category
	price    decimal.Decimal
	attrs    Attributes
	stock    atomic.Int64
}

func (i *Item) ID() int                { return i.id }
func (i *Item) Name() string           { return i.name }
func (i *Item) Category() Category     { return i.category }
func (i *Item) Price() decimal.Decimal { return i.price }
func (i *Item) Attributes() Attributes { return i.attrs }
func (i *Item) Stock() int             { return int(i.stock.Load()) }

// Spec returns the item's current data, including stock.
func (i *Item) Spec() Spec {
	return Spec{
		ID:         i.id,
		Name:       i.name,
		Category:   i.category,
		Price:      i.price,
		Stock:      i.Stock(),
		Attributes: i.attrs,
	}
}

func (i *Item) String() string {
	return i.name + " - " + formatPrice(i.price)
}

// View is the read-only snapshot handed to the HTTP layer.
type View struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Category    Category        `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Spiciness   *int            `json:"spiciness,omitempty"`
	Hot         *bool           `json:"hot,omitempty"`
	IceCream    *bool           `json:"ice_cream,omitempty"`
	Description string          `json:"description"`
	LowStock    bool            `json:"low_stock"`
}

// NewView snapshots an item. lowStockThreshold <= 0 disables the flag.
func NewView(i *Item, lowStockThreshold int) View {
	v := View{
		ID:          i.id,
		Name:        i.name,
		Category:    i.category,
		Price:       i.price,
		Stock:       i.Stock(),
		Description: Describe(i),
	}
	v.LowStock = lowStockThreshold > 0 && v.Stock < lowStockThreshold

	switch i.category {
	case Food:
		s := i.attrs.Spiciness
		v.Spiciness = &s
	case Beverage:
		h := i.attrs.Hot
		v.Hot = &h
	case Dessert:
		ic := i.attrs.IceCream
		v.IceCream = &ic
	}
	return v
}
