package catalog

import "fmt"

// Size is one of the closed set of garment sizes a product can be offered in.
type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

func (s Size) String() string {
	return string(s)
}

var validSizes = map[Size]bool{
	SizeXS:  true,
	SizeS:   true,
	SizeM:   true,
	SizeL:   true,
	SizeXL:  true,
	SizeXXL: true,
}

func ParseSize(s string) (Size, error) {
	size := Size(s)
	if !validSizes[size] {
		return "", fmt.Errorf("unknown size %q", s)
	}
	return size, nil
}

// Category is the product department.
type Category string

const (
	CategoryMen   Category = "Men"
	CategoryWomen Category = "Women"
	CategoryKids  Category = "Kids"
)

func (c Category) String() string {
	return string(c)
}

var validCategories = map[Category]bool{
	CategoryMen:   true,
	CategoryWomen: true,
	CategoryKids:  true,
}

func ParseCategory(s string) (Category, error) {
	category := Category(s)
	if !validCategories[category] {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return category, nil
}

// Product is a catalog entry. Price is an integer amount displayed as
// dollars; no fractional arithmetic happens on it anywhere in the service.
type Product struct {
	ID          uint64   `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Description string   `json:"description" db:"description"`
	Sizes       []Size   `json:"sizes" db:"sizes"`
	Category    Category `json:"category" db:"category"`
	Image       string   `json:"image" db:"image"`
	Price       uint64   `json:"price" db:"price"`
}

// HasSize reports whether the product is offered in the given size.
func (p *Product) HasSize(size Size) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}
