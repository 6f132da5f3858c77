package entity

// ProductStatus tracks the sales lifecycle of a product, independent of the
// soft-delete flag.
type ProductStatus string

const (
	// ProductStatusActive is sellable.
	ProductStatusActive ProductStatus = "active"
	// ProductStatusInactive is temporarily not sellable.
	ProductStatusInactive ProductStatus = "inactive"
	// ProductStatusDiscontinued will not be restocked.
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// IsValid checks if the ProductStatus is a valid value.
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusDiscontinued:
		return true
	default:
		return false
	}
}

// Product is a catalog item. SKU is unique among active products.
type Product struct {
	Base          `bson:",inline"`
	Name          string        `bson:"name" json:"name"`
	Description   string        `bson:"description,omitempty" json:"description,omitempty"`
	SKU           string        `bson:"sku,omitempty" json:"sku,omitempty"`
	Barcode       string        `bson:"barcode,omitempty" json:"barcode,omitempty"`
	Category      string        `bson:"category,omitempty" json:"category,omitempty"`
	Brand         string        `bson:"brand,omitempty" json:"brand,omitempty"`
	UnitPrice     float64       `bson:"unit_price" json:"unit_price"`
	CostPrice     float64       `bson:"cost_price" json:"cost_price"`
	StockQuantity int           `bson:"stock_quantity" json:"stock_quantity"`
	MinStockLevel int           `bson:"min_stock_level" json:"min_stock_level"`
	MaxStockLevel int           `bson:"max_stock_level,omitempty" json:"max_stock_level,omitempty"`
	SupplierID    string        `bson:"supplier_id,omitempty" json:"supplier_id,omitempty"`
	TaxRate       float64       `bson:"tax_rate" json:"tax_rate"`
	Weight        float64       `bson:"weight,omitempty" json:"weight,omitempty"`
	Dimensions    string        `bson:"dimensions,omitempty" json:"dimensions,omitempty"`
	ImageURLs     []string      `bson:"image_urls" json:"image_urls"`
	Status        ProductStatus `bson:"status" json:"status"`
	Tags          []string      `bson:"tags" json:"tags"`
}
