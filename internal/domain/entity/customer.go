package entity

// CustomerType distinguishes individual from business customers.
type CustomerType string

const (
	// CustomerTypeIndividual is a natural person.
	CustomerTypeIndividual CustomerType = "fisica"
	// CustomerTypeBusiness is a legal entity.
	CustomerTypeBusiness CustomerType = "moral"
)

// IsValid checks if the CustomerType is a valid value.
func (t CustomerType) IsValid() bool {
	switch t {
	case CustomerTypeIndividual, CustomerTypeBusiness:
		return true
	default:
		return false
	}
}

// Customer is a buyer on record. Email and tax id are unique among active
// customers.
type Customer struct {
	Base           `bson:",inline"`
	Name           string       `bson:"name" json:"name"`
	Email          string       `bson:"email" json:"email"`
	Phone          string       `bson:"phone" json:"phone"`
	Address        string       `bson:"address" json:"address"`
	TaxID          string       `bson:"tax_id" json:"tax_id"`
	CustomerType   CustomerType `bson:"customer_type" json:"customer_type"`
	CreditLimit    float64      `bson:"credit_limit" json:"credit_limit"`
	CurrentBalance float64      `bson:"current_balance" json:"current_balance"`
	Notes          string       `bson:"notes,omitempty" json:"notes,omitempty"`
}
