package inventory_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/sisbar-inventario/internal/application/ports"
	"github.com/jhoicas/sisbar-inventario/internal/domain"
	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
	stockstate "github.com/jhoicas/sisbar-inventario/internal/domain/inventory"
	"github.com/jhoicas/sisbar-inventario/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria con semántica de transacción (snapshot + restore)
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	txMu      sync.Mutex // serializa transacciones como SELECT FOR UPDATE sobre una fila
	products  map[string]*entity.Product
	movements []*entity.Movement
	alerts    []*entity.Alert

	failMovementCreate error
	failAlertCreate    error
}

func newMemStore(products ...*entity.Product) *memStore {
	s := &memStore{products: map[string]*entity.Product{}}
	for _, p := range products {
		cp := *p
		stockstate.ApplyState(&cp)
		s.products[p.ID] = &cp
	}
	return s
}

func (s *memStore) product(id string) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *s.products[id]
	return &cp
}

func (s *memStore) has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.products[id]
	return ok
}

func (s *memStore) movementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

type memTxRunner struct{ s *memStore }

func (r memTxRunner) Run(ctx context.Context, fn func(repository.ProductRepository, repository.MovementRepository) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	r.s.mu.Lock()
	snapshot := make(map[string]entity.Product, len(r.s.products))
	for id, p := range r.s.products {
		snapshot[id] = *p
	}
	movLen := len(r.s.movements)
	r.s.mu.Unlock()

	if err := fn(&memProductRepo{r.s}, &memMovementRepo{r.s}); err != nil {
		r.s.mu.Lock()
		r.s.products = make(map[string]*entity.Product, len(snapshot))
		for id := range snapshot {
			p := snapshot[id]
			r.s.products[id] = &p
		}
		r.s.movements = r.s.movements[:movLen]
		r.s.mu.Unlock()
		return err
	}
	return nil
}

// ── ProductRepository ────────────────────────────────────────────────────────

type memProductRepo struct{ s *memStore }

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
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

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *memProductRepo) FindByCodeOrBarcode(_ context.Context, code string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.Active && (strings.EqualFold(p.Code, code) || (p.Barcode != "" && p.Barcode == code)) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Save(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	stockstate.ApplyState(p)
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if !p.Active && !f.IncludeInactive {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memProductRepo) FindActiveBelowThreshold(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.Active && p.Quantity <= p.MinQuantity {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memProductRepo) CountActiveByCategory(_ context.Context, categoryID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, p := range r.s.products {
		if p.Active && p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *memProductRepo) SetActive(_ context.Context, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Active = active
	return nil
}

// ── MovementRepository ───────────────────────────────────────────────────────

type memMovementRepo struct{ s *memStore }

var _ repository.MovementRepository = (*memMovementRepo)(nil)

func (r *memMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failMovementCreate != nil {
		return r.s.failMovementCreate
	}
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Movement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *memMovementRepo) CountSince(_ context.Context, since time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, m := range r.s.movements {
		if !m.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

// ── AlertRepository ──────────────────────────────────────────────────────────

type memAlertRepo struct{ s *memStore }

var _ repository.AlertRepository = (*memAlertRepo)(nil)

func (r *memAlertRepo) Create(_ context.Context, a *entity.Alert) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failAlertCreate != nil {
		return r.s.failAlertCreate
	}
	for _, existing := range r.s.alerts {
		if existing.ProductID == a.ProductID && existing.Type == a.Type && !existing.Resolved {
			return domain.ErrDuplicate
		}
	}
	cp := *a
	r.s.alerts = append(r.s.alerts, &cp)
	return nil
}

func (r *memAlertRepo) GetByID(_ context.Context, id string) (*entity.Alert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.alerts {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memAlertRepo) ExistsUnresolved(_ context.Context, productID string, t entity.AlertType) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.alerts {
		if a.ProductID == productID && a.Type == t && !a.Resolved {
			return true, nil
		}
	}
	return false, nil
}

func (r *memAlertRepo) ListUnresolved(_ context.Context, limit, offset int) ([]*entity.Alert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Alert
	for _, a := range r.s.alerts {
		if !a.Resolved {
			cp := *a
			out = append(out, &cp)
		}
	}
	if offset > len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memAlertRepo) CountUnread(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, a := range r.s.alerts {
		if !a.Resolved && !a.Read {
			n++
		}
	}
	return n, nil
}

func (r *memAlertRepo) MarkRead(_ context.Context, id string) error {
	return r.update(id, func(a *entity.Alert) {
		now := time.Now()
		a.Read, a.ReadAt = true, &now
	})
}

func (r *memAlertRepo) Resolve(_ context.Context, id string) error {
	return r.update(id, func(a *entity.Alert) {
		now := time.Now()
		a.Resolved, a.ResolvedAt = true, &now
	})
}

func (r *memAlertRepo) update(id string, fn func(*entity.Alert)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.alerts {
		if a.ID == id {
			fn(a)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ── Activity / eventos ───────────────────────────────────────────────────────

type recordedActivity struct {
	UserID      string
	Kind        entity.ActivityKind
	Description string
}

type spyRecorder struct {
	mu      sync.Mutex
	entries []recordedActivity
}

func (s *spyRecorder) Record(_ context.Context, userID string, kind entity.ActivityKind, description, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, recordedActivity{UserID: userID, Kind: kind, Description: description})
}

type spyPublisher struct {
	mu     sync.Mutex
	types  []string
	failOn error
}

func (s *spyPublisher) Publish(_ context.Context, e ports.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.types = append(s.types, e.Type)
	return s.failOn
}

// ── Fixtures ─────────────────────────────────────────────────────────────────

var (
	employee = entity.Actor{UserID: "u-employee", Role: entity.RoleEmployee, ClientIP: "10.0.0.1"}
	auditor  = entity.Actor{UserID: "u-auditor", Role: entity.RoleAuditor}
)

func newProduct(id, code string, qty, min int) *entity.Product {
	return &entity.Product{
		ID:          id,
		Code:        code,
		Name:        "Producto " + code,
		CategoryID:  "cat-1",
		Quantity:    qty,
		MinQuantity: min,
		Unit:        entity.UnitUnit,
		Active:      true,
	}
}
