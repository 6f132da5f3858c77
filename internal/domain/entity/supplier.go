package entity

// Supplier is a vendor on record. Email and tax id are unique among active
// suppliers.
type Supplier struct {
	Base           `bson:",inline"`
	Name           string  `bson:"name" json:"name"`
	Email          string  `bson:"email" json:"email"`
	Phone          string  `bson:"phone" json:"phone"`
	Address        string  `bson:"address" json:"address"`
	TaxID          string  `bson:"tax_id" json:"tax_id"`
	ContactPerson  string  `bson:"contact_person" json:"contact_person"`
	Website        string  `bson:"website,omitempty" json:"website,omitempty"`
	PaymentTerms   string  `bson:"payment_terms,omitempty" json:"payment_terms,omitempty"`
	CreditLimit    float64 `bson:"credit_limit" json:"credit_limit"`
	CurrentBalance float64 `bson:"current_balance" json:"current_balance"`
	Notes          string  `bson:"notes,omitempty" json:"notes,omitempty"`
}
