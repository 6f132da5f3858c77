package entity

import "time"

// PaymentMethod is how a sale was settled.
type PaymentMethod string

const (
	// PaymentMethodCash settles in cash.
	PaymentMethodCash PaymentMethod = "cash"
	// PaymentMethodCard settles by card.
	PaymentMethodCard PaymentMethod = "card"
	// PaymentMethodTransfer settles by bank transfer.
	PaymentMethodTransfer PaymentMethod = "transfer"
	// PaymentMethodCredit settles against the customer's credit line.
	PaymentMethodCredit PaymentMethod = "credit"
)

// IsValid checks if the PaymentMethod is a valid value.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodCredit:
		return true
	default:
		return false
	}
}

// SaleStatus tracks the lifecycle of a sale.
type SaleStatus string

const (
	// SaleStatusPending has not been settled yet.
	SaleStatusPending SaleStatus = "pending"
	// SaleStatusCompleted has been settled and counts in reports.
	SaleStatusCompleted SaleStatus = "completed"
	// SaleStatusCancelled was voided before settlement.
	SaleStatusCancelled SaleStatus = "cancelled"
	// SaleStatusRefunded was settled and later reimbursed.
	SaleStatusRefunded SaleStatus = "refunded"
)

// SaleItem is one line of a sale.
type SaleItem struct {
	ProductID   string  `bson:"product_id" json:"product_id"`
	ProductName string  `bson:"product_name" json:"product_name"`
	SKU         string  `bson:"sku" json:"sku"`
	Quantity    int     `bson:"quantity" json:"quantity"`
	UnitPrice   float64 `bson:"unit_price" json:"unit_price"`
	Discount    float64 `bson:"discount" json:"discount"`
	TaxRate     float64 `bson:"tax_rate" json:"tax_rate"`
	Subtotal    float64 `bson:"subtotal" json:"subtotal"`
	TaxAmount   float64 `bson:"tax_amount" json:"tax_amount"`
	Total       float64 `bson:"total" json:"total"`
}

// Sale is a completed or pending transaction. SaleNumber is unique and
// sequential per calendar day.
type Sale struct {
	Base             `bson:",inline"`
	SaleNumber       string        `bson:"sale_number" json:"sale_number"`
	CustomerID       string        `bson:"customer_id" json:"customer_id"`
	CustomerName     string        `bson:"customer_name" json:"customer_name"`
	CashierID        string        `bson:"cashier_id" json:"cashier_id"`
	CashierName      string        `bson:"cashier_name" json:"cashier_name"`
	Items            []SaleItem    `bson:"items" json:"items"`
	Subtotal         float64       `bson:"subtotal" json:"subtotal"`
	DiscountAmount   float64       `bson:"discount_amount" json:"discount_amount"`
	TaxAmount        float64       `bson:"tax_amount" json:"tax_amount"`
	TotalAmount      float64       `bson:"total_amount" json:"total_amount"`
	PaymentMethod    PaymentMethod `bson:"payment_method" json:"payment_method"`
	PaymentReference string        `bson:"payment_reference,omitempty" json:"payment_reference,omitempty"`
	Status           SaleStatus    `bson:"status" json:"status"`
	Notes            string        `bson:"notes,omitempty" json:"notes,omitempty"`
	SaleDate         time.Time     `bson:"sale_date" json:"sale_date"`
}

// DailySummary aggregates the completed sales of one calendar day.
type DailySummary struct {
	TotalSales    int     `bson:"total_sales" json:"total_sales"`
	TotalAmount   float64 `bson:"total_amount" json:"total_amount"`
	TotalTax      float64 `bson:"total_tax" json:"total_tax"`
	TotalDiscount float64 `bson:"total_discount" json:"total_discount"`
}

// TopProduct is one row of the best-seller report.
type TopProduct struct {
	ProductID     string  `bson:"_id" json:"product_id"`
	ProductName   string  `bson:"product_name" json:"product_name"`
	TotalQuantity int     `bson:"total_quantity" json:"total_quantity"`
	TotalRevenue  float64 `bson:"total_revenue" json:"total_revenue"`
}
