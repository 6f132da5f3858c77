package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backoffice/internal/domain/entity"
	"backoffice/internal/domain/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- user repository fake ---

type fakeUserRepo struct {
	users   map[string]*entity.User
	updates []repository.Fields
	err     error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) add(user *entity.User) *entity.User {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.IsActive = true
	f.users[user.ID.Hex()] = user

	return user
}

func (f *fakeUserRepo) Create(_ context.Context, doc *entity.User) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.add(doc)

	return doc.ID.Hex(), nil
}

// copyUser mimics a store decode: callers never share memory with the
// stored document.
func copyUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	clone := *u

	return &clone
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}

	return copyUser(f.users[id]), nil
}

func (f *fakeUserRepo) GetAll(_ context.Context, _, _ int64, _ repository.Filters) ([]*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.User
	for _, u := range f.users {
		if u.IsActive {
			out = append(out, u)
		}
	}

	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, id string, fields repository.Fields) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.updates = append(f.updates, fields)
	u, ok := f.users[id]
	if !ok {
		return false, nil
	}
	for key, value := range fields {
		switch key {
		case "hashed_password":
			u.HashedPassword = value.(string)
		case "email":
			u.Email = value.(string)
		case "username":
			u.Username = value.(string)
		case "role":
			u.Role = value.(entity.Role)
		case "is_verified":
			u.IsVerified = value.(bool)
		}
	}

	return true, nil
}

func (f *fakeUserRepo) Deactivate(_ context.Context, id string) (bool, error) {
	return f.setActive(id, false)
}

func (f *fakeUserRepo) Activate(_ context.Context, id string) (bool, error) {
	return f.setActive(id, true)
}

func (f *fakeUserRepo) setActive(id string, active bool) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return false, nil
	}
	u.IsActive = active

	return true, nil
}

func (f *fakeUserRepo) HardDelete(_ context.Context, id string) (bool, error) {
	_, ok := f.users[id]
	delete(f.users, id)

	return ok, nil
}

func (f *fakeUserRepo) Count(_ context.Context, _ repository.Filters) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) Exists(_ context.Context, _ repository.Filters) (bool, error) {
	return len(f.users) > 0, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.IsActive && u.Email == email {
			return copyUser(u), nil
		}
	}

	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.IsActive && u.Username == username {
			return copyUser(u), nil
		}
	}

	return nil, nil
}

func (f *fakeUserRepo) EmailExists(_ context.Context, email, excludeID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for id, u := range f.users {
		if u.IsActive && u.Email == email && id != excludeID {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeUserRepo) UsernameExists(_ context.Context, username, excludeID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for id, u := range f.users {
		if u.IsActive && u.Username == username && id != excludeID {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, id string) (bool, error) {
	u, ok := f.users[id]
	if !ok {
		return false, nil
	}
	now := time.Now()
	u.LastLogin = &now

	return true, nil
}

func (f *fakeUserRepo) IncrementFailedAttempts(_ context.Context, id string) (bool, error) {
	u, ok := f.users[id]
	if !ok {
		return false, nil
	}
	u.FailedAttempts++

	return true, nil
}

func (f *fakeUserRepo) ResetFailedAttempts(_ context.Context, id string) (bool, error) {
	u, ok := f.users[id]
	if !ok {
		return false, nil
	}
	u.FailedAttempts = 0

	return true, nil
}

func (f *fakeUserRepo) LockUser(_ context.Context, id string) (bool, error) {
	u, ok := f.users[id]
	if !ok {
		return false, nil
	}
	u.IsLocked = true

	return true, nil
}

func (f *fakeUserRepo) UnlockUser(_ context.Context, id string) (bool, error) {
	u, ok := f.users[id]
	if !ok {
		return false, nil
	}
	u.IsLocked = false
	u.FailedAttempts = 0

	return true, nil
}

// --- password hasher fake ---

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// --- customer repository fake ---

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
	updates   []repository.Fields
	err       error
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[string]*entity.Customer{}}
}

func (f *fakeCustomerRepo) add(customer *entity.Customer) *entity.Customer {
	if customer.ID.IsZero() {
		customer.ID = primitive.NewObjectID()
	}
	customer.IsActive = true
	f.customers[customer.ID.Hex()] = customer

	return customer
}

func (f *fakeCustomerRepo) Create(_ context.Context, doc *entity.Customer) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.add(doc)

	return doc.ID.Hex(), nil
}

func copyCustomer(c *entity.Customer) *entity.Customer {
	if c == nil {
		return nil
	}
	clone := *c

	return &clone
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}

	return copyCustomer(f.customers[id]), nil
}

func (f *fakeCustomerRepo) GetAll(_ context.Context, _, _ int64, _ repository.Filters) ([]*entity.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.Customer
	for _, c := range f.customers {
		if c.IsActive {
			out = append(out, c)
		}
	}

	return out, nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, id string, fields repository.Fields) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.updates = append(f.updates, fields)
	c, ok := f.customers[id]
	if !ok {
		return false, nil
	}
	for key, value := range fields {
		switch key {
		case "name":
			c.Name = value.(string)
		case "email":
			c.Email = value.(string)
		case "tax_id":
			c.TaxID = value.(string)
		case "credit_limit":
			c.CreditLimit = value.(float64)
		}
	}

	return true, nil
}

func (f *fakeCustomerRepo) Deactivate(_ context.Context, id string) (bool, error) {
	return f.setActive(id, false)
}

func (f *fakeCustomerRepo) Activate(_ context.Context, id string) (bool, error) {
	return f.setActive(id, true)
}

func (f *fakeCustomerRepo) setActive(id string, active bool) (bool, error) {
	c, ok := f.customers[id]
	if !ok {
		return false, nil
	}
	c.IsActive = active

	return true, nil
}

func (f *fakeCustomerRepo) HardDelete(_ context.Context, id string) (bool, error) {
	_, ok := f.customers[id]
	delete(f.customers, id)

	return ok, nil
}

func (f *fakeCustomerRepo) Count(_ context.Context, _ repository.Filters) (int64, error) {
	return int64(len(f.customers)), nil
}

func (f *fakeCustomerRepo) Exists(_ context.Context, _ repository.Filters) (bool, error) {
	return len(f.customers) > 0, nil
}

func (f *fakeCustomerRepo) GetByEmail(_ context.Context, email string) (*entity.Customer, error) {
	for _, c := range f.customers {
		if c.IsActive && c.Email == email {
			return c, nil
		}
	}

	return nil, nil
}

func (f *fakeCustomerRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Customer, error) {
	for _, c := range f.customers {
		if c.IsActive && c.TaxID == taxID {
			return c, nil
		}
	}

	return nil, nil
}

func (f *fakeCustomerRepo) EmailExists(_ context.Context, email, excludeID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for id, c := range f.customers {
		if c.IsActive && c.Email == email && id != excludeID {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeCustomerRepo) TaxIDExists(_ context.Context, taxID, excludeID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for id, c := range f.customers {
		if c.IsActive && c.TaxID == taxID && id != excludeID {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeCustomerRepo) Search(_ context.Context, term string, _ int64) ([]*entity.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.Customer
	needle := strings.ToLower(term)
	for _, c := range f.customers {
		if c.IsActive && strings.Contains(strings.ToLower(c.Name), needle) {
			out = append(out, c)
		}
	}

	return out, nil
}

func (f *fakeCustomerRepo) UpdateBalance(_ context.Context, id string, amount float64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	c, ok := f.customers[id]
	if !ok {
		return false, nil
	}
	c.CurrentBalance += amount

	return true, nil
}

// --- product repository fake ---

type fakeProductRepo struct {
	products map[string]*entity.Product
	err      error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (f *fakeProductRepo) add(product *entity.Product) *entity.Product {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	product.IsActive = true
	f.products[product.ID.Hex()] = product

	return product
}

func (f *fakeProductRepo) Create(_ context.Context, doc *entity.Product) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.add(doc)

	return doc.ID.Hex(), nil
}

func copyProduct(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	clone := *p

	return &clone
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if f.err != nil {
		return nil, f.err
	}

	return copyProduct(f.products[id]), nil
}

func (f *fakeProductRepo) GetAll(_ context.Context, _, _ int64, _ repository.Filters) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if p.IsActive {
			out = append(out, p)
		}
	}

	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, id string, _ repository.Fields) (bool, error) {
	_, ok := f.products[id]

	return ok, nil
}

func (f *fakeProductRepo) Deactivate(_ context.Context, id string) (bool, error) {
	return f.setActive(id, false)
}

func (f *fakeProductRepo) Activate(_ context.Context, id string) (bool, error) {
	return f.setActive(id, true)
}

func (f *fakeProductRepo) setActive(id string, active bool) (bool, error) {
	p, ok := f.products[id]
	if !ok {
		return false, nil
	}
	p.IsActive = active

	return true, nil
}

func (f *fakeProductRepo) HardDelete(_ context.Context, id string) (bool, error) {
	_, ok := f.products[id]
	delete(f.products, id)

	return ok, nil
}

func (f *fakeProductRepo) Count(_ context.Context, _ repository.Filters) (int64, error) {
	return int64(len(f.products)), nil
}

func (f *fakeProductRepo) Exists(_ context.Context, _ repository.Filters) (bool, error) {
	return len(f.products) > 0, nil
}

func (f *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.IsActive && p.SKU == sku {
			return p, nil
		}
	}

	return nil, nil
}

func (f *fakeProductRepo) GetByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.IsActive && p.Barcode == barcode {
			return p, nil
		}
	}

	return nil, nil
}

func (f *fakeProductRepo) GetByCategory(_ context.Context, category string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if p.IsActive && p.Category == category {
			out = append(out, p)
		}
	}

	return out, nil
}

func (f *fakeProductRepo) SKUExists(_ context.Context, sku, excludeID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for id, p := range f.products {
		if p.IsActive && p.SKU == sku && id != excludeID {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeProductRepo) Search(_ context.Context, term string, _ int64) ([]*entity.Product, error) {
	var out []*entity.Product
	needle := strings.ToLower(term)
	for _, p := range f.products {
		if p.IsActive && strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}

	return out, nil
}

func (f *fakeProductRepo) GetLowStock(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if p.IsActive && p.StockQuantity <= p.MinStockLevel {
			out = append(out, p)
		}
	}

	return out, nil
}

func (f *fakeProductRepo) UpdateStock(_ context.Context, id string, quantityChange int) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return false, nil
	}
	p.StockQuantity += quantityChange

	return true, nil
}

// --- sale repository fake ---

type fakeSaleRepo struct {
	sales       map[string]*entity.Sale
	updates     []repository.Fields
	sequence    int
	summary     *entity.DailySummary
	topProducts []*entity.TopProduct
	lastLimit   int64
	err         error
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: map[string]*entity.Sale{}}
}

func (f *fakeSaleRepo) add(sale *entity.Sale) *entity.Sale {
	if sale.ID.IsZero() {
		sale.ID = primitive.NewObjectID()
	}
	sale.IsActive = true
	f.sales[sale.ID.Hex()] = sale

	return sale
}

func (f *fakeSaleRepo) Create(_ context.Context, doc *entity.Sale) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.add(doc)

	return doc.ID.Hex(), nil
}

func copySale(s *entity.Sale) *entity.Sale {
	if s == nil {
		return nil
	}
	clone := *s

	return &clone
}

func (f *fakeSaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	if f.err != nil {
		return nil, f.err
	}

	return copySale(f.sales[id]), nil
}

func (f *fakeSaleRepo) GetAll(_ context.Context, _, _ int64, _ repository.Filters) ([]*entity.Sale, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.Sale
	for _, s := range f.sales {
		if s.IsActive {
			out = append(out, s)
		}
	}

	return out, nil
}

func (f *fakeSaleRepo) Update(_ context.Context, id string, fields repository.Fields) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.updates = append(f.updates, fields)
	s, ok := f.sales[id]
	if !ok {
		return false, nil
	}
	for key, value := range fields {
		switch key {
		case "status":
			s.Status = value.(entity.SaleStatus)
		case "payment_reference":
			s.PaymentReference = value.(string)
		case "notes":
			s.Notes = value.(string)
		}
	}

	return true, nil
}

func (f *fakeSaleRepo) Deactivate(_ context.Context, id string) (bool, error) {
	return f.setActive(id, false)
}

func (f *fakeSaleRepo) Activate(_ context.Context, id string) (bool, error) {
	return f.setActive(id, true)
}

func (f *fakeSaleRepo) setActive(id string, active bool) (bool, error) {
	s, ok := f.sales[id]
	if !ok {
		return false, nil
	}
	s.IsActive = active

	return true, nil
}

func (f *fakeSaleRepo) HardDelete(_ context.Context, id string) (bool, error) {
	_, ok := f.sales[id]
	delete(f.sales, id)

	return ok, nil
}

func (f *fakeSaleRepo) Count(_ context.Context, _ repository.Filters) (int64, error) {
	return int64(len(f.sales)), nil
}

func (f *fakeSaleRepo) Exists(_ context.Context, _ repository.Filters) (bool, error) {
	return len(f.sales) > 0, nil
}

func (f *fakeSaleRepo) GetBySaleNumber(_ context.Context, saleNumber string) (*entity.Sale, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, s := range f.sales {
		if s.SaleNumber == saleNumber {
			return s, nil
		}
	}

	return nil, nil
}

func (f *fakeSaleRepo) GetByCustomer(_ context.Context, customerID string) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range f.sales {
		if s.CustomerID == customerID {
			out = append(out, s)
		}
	}

	return out, nil
}

func (f *fakeSaleRepo) GetByCashier(_ context.Context, cashierID string) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range f.sales {
		if s.CashierID == cashierID {
			out = append(out, s)
		}
	}

	return out, nil
}

func (f *fakeSaleRepo) GetByDateRange(_ context.Context, start, end time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range f.sales {
		if !s.SaleDate.Before(start) && !s.SaleDate.After(end) {
			out = append(out, s)
		}
	}

	return out, nil
}

func (f *fakeSaleRepo) GetDailySummary(_ context.Context, _ time.Time) (*entity.DailySummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.summary == nil {
		return &entity.DailySummary{}, nil
	}

	return f.summary, nil
}

func (f *fakeSaleRepo) GetTopSellingProducts(_ context.Context, limit int64) ([]*entity.TopProduct, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastLimit = limit

	return f.topProducts, nil
}

func (f *fakeSaleRepo) GenerateSaleNumber(_ context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sequence++

	return fmt.Sprintf("SALE-%s-%04d", time.Now().UTC().Format("20060102"), f.sequence), nil
}
