package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tu-usuario/taller-pro/internal/domain"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
	"github.com/tu-usuario/taller-pro/pkg/logger"
)

// Repositorios en memoria para probar los casos de uso sin base de datos.

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// ─────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	users map[string]*entity.User // por id
}

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	r := &memUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) Create(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}
func (r *memUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
func (r *memUserRepo) Update(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *memUserRepo) Delete(id string) error      { delete(r.users, id); return nil }
func (r *memUserRepo) ListTechnicians() ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.Role == entity.RoleTechnician {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ─────────────────────────────────────────────────────────────────────────────

type memCustomerRepo struct {
	customers map[string]*entity.Customer
	inUse     map[string]bool // ids con reparaciones asociadas
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{customers: map[string]*entity.Customer{}, inUse: map[string]bool{}}
}

func (r *memCustomerRepo) Create(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *memCustomerRepo) GetByPhone(phone string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, nil
}
func (r *memCustomerRepo) Update(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *memCustomerRepo) Delete(id string) error {
	if r.inUse[id] {
		return domain.ErrCustomerInUse
	}
	if _, ok := r.customers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.customers, id)
	return nil
}
func (r *memCustomerRepo) List(limit, offset int) ([]*repository.CustomerWithCounts, error) {
	var out []*repository.CustomerWithCounts
	for _, c := range r.customers {
		out = append(out, &repository.CustomerWithCounts{Customer: *c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ─────────────────────────────────────────────────────────────────────────────

type memRepairRepo struct {
	repairs map[string]*entity.Repair
	notes   []*entity.RepairNote
	seq     int
}

func newMemRepairRepo() *memRepairRepo {
	return &memRepairRepo{repairs: map[string]*entity.Repair{}}
}

func (r *memRepairRepo) Create(rep *entity.Repair) error { r.repairs[rep.ID] = rep; return nil }
func (r *memRepairRepo) GetByID(id string) (*entity.Repair, error) {
	rep, ok := r.repairs[id]
	if !ok {
		return nil, nil
	}
	cp := *rep
	for _, n := range r.notes {
		if n.RepairID == id {
			cp.Notes = append(cp.Notes, *n)
		}
	}
	return &cp, nil
}
func (r *memRepairRepo) Update(rep *entity.Repair) error {
	if _, ok := r.repairs[rep.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *rep
	cp.Notes = nil
	r.repairs[rep.ID] = &cp
	return nil
}
func (r *memRepairRepo) List(f repository.RepairFilter) ([]*entity.Repair, error) {
	excluded := map[string]bool{}
	for _, s := range f.ExcludeStatuses {
		excluded[s] = true
	}
	included := map[string]bool{}
	for _, s := range f.Statuses {
		included[s] = true
	}
	var out []*entity.Repair
	for _, rep := range r.repairs {
		if f.TechnicianID != "" && rep.TechnicianID != f.TechnicianID {
			continue
		}
		if excluded[rep.Status] {
			continue
		}
		if len(included) > 0 && !included[rep.Status] {
			continue
		}
		out = append(out, rep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RepairNumber > out[j].RepairNumber })
	return out, nil
}
func (r *memRepairRepo) Search(term string, limit int) ([]*entity.Repair, error) {
	term = strings.ToLower(term)
	var out []*entity.Repair
	for _, rep := range r.repairs {
		if !entity.IsFinished(rep.Status) {
			continue
		}
		if strings.Contains(strings.ToLower(rep.RepairNumber), term) ||
			strings.Contains(strings.ToLower(rep.Brand), term) ||
			strings.Contains(strings.ToLower(rep.Model), term) {
			out = append(out, rep)
		}
	}
	return out, nil
}
func (r *memRepairRepo) ListWithParts() ([]*entity.Repair, error) {
	var out []*entity.Repair
	for _, rep := range r.repairs {
		if rep.Status == entity.StatusWaitingParts || rep.PartsStatus != "" {
			out = append(out, rep)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RepairNumber < out[j].RepairNumber })
	return out, nil
}
func (r *memRepairRepo) NextNumber() (string, error) {
	r.seq++
	return fmt.Sprintf("%06d", r.seq), nil
}
func (r *memRepairRepo) CountByStatus(status string) (int, error) {
	n := 0
	for _, rep := range r.repairs {
		if rep.Status == status {
			n++
		}
	}
	return n, nil
}
func (r *memRepairRepo) AddNote(n *entity.RepairNote) error {
	n.CreatedAt = time.Now()
	r.notes = append(r.notes, n)
	return nil
}

func (r *memRepairRepo) notesFor(repairID string) []*entity.RepairNote {
	var out []*entity.RepairNote
	for _, n := range r.notes {
		if n.RepairID == repairID {
			out = append(out, n)
		}
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────

type memProductRepo struct {
	products map[string]*entity.Product
	seq      int
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: map[string]*entity.Product{}}
}

func (r *memProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *memProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *memProductRepo) Delete(id string) error         { delete(r.products, id); return nil }
func (r *memProductRepo) List(f repository.ProductFilter) ([]*entity.Product, error) {
	term := strings.ToLower(f.Search)
	var out []*entity.Product
	for _, p := range r.products {
		if f.OnlyInStock && p.Stock <= 0 {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Code), term) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
func (r *memProductRepo) NextCode() (string, error) {
	r.seq++
	return fmt.Sprintf("%06d", r.seq), nil
}

type memCategoryRepo struct {
	categories map[string]*entity.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: map[string]*entity.Category{}}
}

func (r *memCategoryRepo) Create(c *entity.Category) error { r.categories[c.ID] = c; return nil }
func (r *memCategoryRepo) GetByID(id string) (*entity.Category, error) {
	return r.categories[id], nil
}
func (r *memCategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range r.categories {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, nil
}
func (r *memCategoryRepo) List() ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

// ─────────────────────────────────────────────────────────────────────────────

type memMetricsRepo struct {
	byTechnician map[string][]repository.PeriodRepair
}

func (r *memMetricsRepo) RepairsByTechnician(_ context.Context, technicianID string, from, to time.Time) ([]repository.PeriodRepair, error) {
	var out []repository.PeriodRepair
	for _, rep := range r.byTechnician[technicianID] {
		if rep.ReceivedDate.Before(from) || rep.ReceivedDate.After(to) {
			continue
		}
		out = append(out, rep)
	}
	return out, nil
}
