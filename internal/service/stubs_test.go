package service

import (
	"context"
	"errors"
	"time"

	"github.com/Pessima-byte/Estommy-sub002/internal/dto"
	"github.com/Pessima-byte/Estommy-sub002/internal/model"
	"github.com/Pessima-byte/Estommy-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. Their DB() returns nil, which puts RunTx in
// pass-through mode: the closure runs once with a nil tx and no retries.

// ── Products ──────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) add(p *model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Status = model.StockStatus(p.Stock)
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	r.add(p)
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku && p.Active {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.products[id]; ok {
		p.Active = false
	}
	return nil
}

func (r *stubProductRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if p, ok := r.products[id]; ok {
		p.Active = true
	}
	return nil
}

func (r *stubProductRepo) FindForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) SetStockTx(_ *gorm.DB, id uuid.UUID, stock int, status string) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock = stock
	p.Status = status
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── Customers ─────────────────────────────────────────────────────────────────

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) add(c *model.Customer) *model.Customer {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.Active = true
	r.customers[c.ID] = c
	return c
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	r.add(c)
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCustomerRepo) List(_ context.Context, _ dto.CustomerFilter) ([]model.Customer, int64, error) {
	return nil, 0, nil
}

func (r *stubCustomerRepo) ListIDs(_ context.Context) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(r.customers))
	for id := range r.customers {
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if c, ok := r.customers[id]; ok {
		c.Active = false
	}
	return nil
}

func (r *stubCustomerRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if c, ok := r.customers[id]; ok {
		c.Active = true
	}
	return nil
}

func (r *stubCustomerRepo) IncrementDebtTx(_ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	c, ok := r.customers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.TotalDebt = c.TotalDebt.Add(delta)
	return nil
}

func (r *stubCustomerRepo) SetDebt(_ context.Context, id uuid.UUID, total decimal.Decimal) error {
	c, ok := r.customers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.TotalDebt = total
	return nil
}

func (r *stubCustomerRepo) DB() *gorm.DB { return nil }

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

// ── Sales ─────────────────────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales map[uuid.UUID]*model.Sale
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	r.sales[s.ID] = &cp
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubSaleRepo) FindForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubSaleRepo) List(_ context.Context, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status string) error {
	s, ok := r.sales[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Status = status
	return nil
}

func (r *stubSaleRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.sales, id)
	return nil
}

func (r *stubSaleRepo) SumProfit(_ context.Context, from, to time.Time) (*repository.ProfitRow, error) {
	row := &repository.ProfitRow{}
	for _, s := range r.sales {
		if s.Status == model.SaleRefunded || s.Date.Before(from) || !s.Date.Before(to) {
			continue
		}
		qty := decimal.NewFromInt(int64(s.Quantity))
		row.Revenue = row.Revenue.Add(s.Amount.Mul(qty))
		row.Cost = row.Cost.Add(s.CostPrice.Mul(qty))
		row.Count++
	}
	row.Profit = row.Revenue.Sub(row.Cost)
	return row, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── Credits ───────────────────────────────────────────────────────────────────

type stubCreditRepo struct {
	credits map[uuid.UUID]*model.Credit
}

func newStubCreditRepo() *stubCreditRepo {
	return &stubCreditRepo{credits: make(map[uuid.UUID]*model.Credit)}
}

func (r *stubCreditRepo) CreateTx(_ *gorm.DB, c *model.Credit) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.credits[c.ID] = &cp
	return nil
}

func (r *stubCreditRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Credit, error) {
	c, ok := r.credits[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCreditRepo) FindForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Credit, error) {
	c, ok := r.credits[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCreditRepo) List(_ context.Context, _ dto.CreditFilter) ([]model.Credit, int64, error) {
	out := make([]model.Credit, 0, len(r.credits))
	for _, c := range r.credits {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCreditRepo) UpdateTx(_ *gorm.DB, c *model.Credit) error {
	cp := *c
	r.credits[c.ID] = &cp
	return nil
}

func (r *stubCreditRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.credits, id)
	return nil
}

func (r *stubCreditRepo) SumOutstanding(_ context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, c := range r.credits {
		if c.CustomerID == customerID && c.Status != model.CreditCleared {
			sum = sum.Add(c.Outstanding())
		}
	}
	return sum, nil
}

func (r *stubCreditRepo) DB() *gorm.DB { return nil }

var _ repository.CreditRepository = (*stubCreditRepo)(nil)

// ── Activities ────────────────────────────────────────────────────────────────

type stubActivityRepo struct {
	entries    []model.Activity
	failCreate bool
}

func (r *stubActivityRepo) CreateTx(_ *gorm.DB, a *model.Activity) error {
	if r.failCreate {
		return errors.New("activity insert failed")
	}
	r.entries = append(r.entries, *a)
	return nil
}

func (r *stubActivityRepo) List(_ context.Context, _ dto.ActivityFilter) ([]model.Activity, int64, error) {
	return r.entries, int64(len(r.entries)), nil
}

var _ repository.ActivityRepository = (*stubActivityRepo)(nil)

// ── Stock movements ───────────────────────────────────────────────────────────

type stubMovementRepo struct {
	movements []model.StockMovement
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, _ dto.MovementFilter) ([]model.StockMovement, int64, error) {
	return r.movements, int64(len(r.movements)), nil
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

// ── Shared fixtures ───────────────────────────────────────────────────────────

type saleFixture struct {
	svc       SaleService
	products  *stubProductRepo
	customers *stubCustomerRepo
	sales     *stubSaleRepo
	movements *stubMovementRepo
	activity  *stubActivityRepo
}

func newSaleFixture(activityRepo *stubActivityRepo) *saleFixture {
	if activityRepo == nil {
		activityRepo = &stubActivityRepo{}
	}
	products := newStubProductRepo()
	customers := newStubCustomerRepo()
	sales := newStubSaleRepo()
	movements := &stubMovementRepo{}
	activitySvc := NewActivityService(activityRepo)
	inventorySvc := NewInventoryService(products, movements, activitySvc)
	svc := NewSaleService(sales, products, customers, inventorySvc, activitySvc, nil)
	return &saleFixture{
		svc:       svc,
		products:  products,
		customers: customers,
		sales:     sales,
		movements: movements,
		activity:  activityRepo,
	}
}

type creditFixture struct {
	svc       CreditService
	ledger    LedgerService
	products  *stubProductRepo
	customers *stubCustomerRepo
	sales     *stubSaleRepo
	credits   *stubCreditRepo
	movements *stubMovementRepo
	activity  *stubActivityRepo
}

func newCreditFixture() *creditFixture {
	products := newStubProductRepo()
	customers := newStubCustomerRepo()
	sales := newStubSaleRepo()
	credits := newStubCreditRepo()
	movements := &stubMovementRepo{}
	activityRepo := &stubActivityRepo{}
	activitySvc := NewActivityService(activityRepo)
	inventorySvc := NewInventoryService(products, movements, activitySvc)
	ledgerSvc := NewLedgerService(customers, credits)
	svc := NewCreditService(credits, sales, customers, inventorySvc, ledgerSvc, activitySvc, nil)
	return &creditFixture{
		svc:       svc,
		ledger:    ledgerSvc,
		products:  products,
		customers: customers,
		sales:     sales,
		credits:   credits,
		movements: movements,
		activity:  activityRepo,
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var testActor = Actor{ID: uuid.New(), Name: "tester"}
