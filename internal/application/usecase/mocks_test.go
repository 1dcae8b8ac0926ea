package usecase_test

import (
	"context"
	"strings"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/sisbar-inventario/internal/domain"
	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
	stockstate "github.com/jhoicas/sisbar-inventario/internal/domain/inventory"
	"github.com/jhoicas/sisbar-inventario/internal/domain/repository"
)

// ── CategoryRepository ───────────────────────────────────────────────────────

type mockCategoryRepo struct{ mock.Mock }

var _ repository.CategoryRepository = (*mockCategoryRepo)(nil)

func (m *mockCategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockCategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Category)
	return c, args.Error(1)
}
func (m *mockCategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(*entity.Category)
	return c, args.Error(1)
}
func (m *mockCategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockCategoryRepo) List(ctx context.Context, includeInactive bool) ([]*entity.Category, error) {
	args := m.Called(ctx, includeInactive)
	l, _ := args.Get(0).([]*entity.Category)
	return l, args.Error(1)
}
func (m *mockCategoryRepo) CreateSubcategory(ctx context.Context, s *entity.Subcategory) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockCategoryRepo) GetSubcategory(ctx context.Context, id string) (*entity.Subcategory, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*entity.Subcategory)
	return s, args.Error(1)
}
func (m *mockCategoryRepo) ListSubcategories(ctx context.Context, categoryID string) ([]*entity.Subcategory, error) {
	args := m.Called(ctx, categoryID)
	l, _ := args.Get(0).([]*entity.Subcategory)
	return l, args.Error(1)
}

// ── ProductRepository (solo lo que usan categorías) ──────────────────────────

type mockProductRepo struct {
	mock.Mock
	repository.ProductRepository
}

func (m *mockProductRepo) CountActiveByCategory(ctx context.Context, categoryID string) (int, error) {
	args := m.Called(ctx, categoryID)
	return args.Int(0), args.Error(1)
}
func (m *mockProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	args := m.Called(ctx, f)
	l, _ := args.Get(0).([]*entity.Product)
	return l, args.Error(1)
}

// ── UserRepository ───────────────────────────────────────────────────────────

type mockUserRepo struct{ mock.Mock }

var _ repository.UserRepository = (*mockUserRepo)(nil)

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}
func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}
func (m *mockUserRepo) Update(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserRepo) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, error) {
	args := m.Called(ctx, f)
	l, _ := args.Get(0).([]*entity.User)
	return l, args.Error(1)
}
func (m *mockUserRepo) CountActiveByRole(ctx context.Context, role string) (int, error) {
	args := m.Called(ctx, role)
	return args.Int(0), args.Error(1)
}
func (m *mockUserRepo) CountPending(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// ── Activity ─────────────────────────────────────────────────────────────────

type nopRecorder struct{ n int }

func (r *nopRecorder) Record(context.Context, string, entity.ActivityKind, string, string) { r.n++ }

var (
	superAdmin = entity.Actor{UserID: "sa-1", Role: entity.RoleSuperAdmin}
	admin      = entity.Actor{UserID: "ad-1", Role: entity.RoleAdmin}
	employee   = entity.Actor{UserID: "em-1", Role: entity.RoleEmployee}
)

// ── SupplierRepository ───────────────────────────────────────────────────────

type mockSupplierRepo struct{ mock.Mock }

var _ repository.SupplierRepository = (*mockSupplierRepo)(nil)

func (m *mockSupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockSupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*entity.Supplier)
	return s, args.Error(1)
}
func (m *mockSupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockSupplierRepo) List(ctx context.Context, includeInactive bool) ([]*entity.Supplier, error) {
	args := m.Called(ctx, includeInactive)
	l, _ := args.Get(0).([]*entity.Supplier)
	return l, args.Error(1)
}

// ── Productos + movimientos en memoria con tx (snapshot + restore) ───────────

type productStore struct {
	products     map[string]*entity.Product
	movements    []*entity.Movement
	failMovement error
}

func newProductStore(products ...*entity.Product) *productStore {
	s := &productStore{products: map[string]*entity.Product{}}
	for _, p := range products {
		cp := *p
		stockstate.ApplyState(&cp)
		s.products[p.ID] = &cp
	}
	return s
}

type storeTx struct{ s *productStore }

func (t storeTx) Run(_ context.Context, fn func(repository.ProductRepository, repository.MovementRepository) error) error {
	snapshot := make(map[string]entity.Product, len(t.s.products))
	for id, p := range t.s.products {
		snapshot[id] = *p
	}
	movLen := len(t.s.movements)
	if err := fn(storeProducts{t.s}, storeMovements{t.s}); err != nil {
		t.s.products = make(map[string]*entity.Product, len(snapshot))
		for id := range snapshot {
			p := snapshot[id]
			t.s.products[id] = &p
		}
		t.s.movements = t.s.movements[:movLen]
		return err
	}
	return nil
}

type storeProducts struct{ s *productStore }

var _ repository.ProductRepository = storeProducts{}

func (r storeProducts) Create(_ context.Context, p *entity.Product) error {
	for _, existing := range r.s.products {
		if strings.EqualFold(existing.Code, p.Code) {
			return domain.ErrDuplicate
		}
	}
	stockstate.ApplyState(p)
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}
func (r storeProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r storeProducts) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}
func (r storeProducts) FindByCodeOrBarcode(_ context.Context, code string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if strings.EqualFold(p.Code, code) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}
func (r storeProducts) Save(_ context.Context, p *entity.Product) error {
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	stockstate.ApplyState(p)
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}
func (r storeProducts) List(_ context.Context, _ repository.ProductFilter) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}
func (r storeProducts) FindActiveBelowThreshold(context.Context) ([]*entity.Product, error) {
	return nil, nil
}
func (r storeProducts) CountActiveByCategory(context.Context, string) (int, error) { return 0, nil }
func (r storeProducts) SetActive(_ context.Context, id string, active bool) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Active = active
	return nil
}

type storeMovements struct{ s *productStore }

var _ repository.MovementRepository = storeMovements{}

func (r storeMovements) Create(_ context.Context, m *entity.Movement) error {
	if r.s.failMovement != nil {
		return r.s.failMovement
	}
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}
func (r storeMovements) List(context.Context, repository.MovementFilter) ([]*entity.Movement, error) {
	return r.s.movements, nil
}
func (r storeMovements) CountSince(context.Context, time.Time) (int, error) {
	return len(r.s.movements), nil
}
