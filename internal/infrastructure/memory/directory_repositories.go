package memory

import (
	"sort"

	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
)

// CategoryRepo directorio de categorías en memoria.
type CategoryRepo struct {
	s *Store
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(s *Store) *CategoryRepo {
	return &CategoryRepo{s: s}
}

func (r *CategoryRepo) Create(category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categories {
		if c.Code == category.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.categories[category.ID] = *category
	return nil
}

func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if c, ok := r.s.categories[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *CategoryRepo) GetByCode(code string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.categories {
		if c.Code == code {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepo) Update(category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[category.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.categories[category.ID] = *category
	return nil
}

func (r *CategoryRepo) List(limit, offset int) ([]*entity.Category, error) {
	r.s.mu.RLock()
	all := make([]entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		all = append(all, c)
	}
	r.s.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return pageOf(all, limit, offset), nil
}

func (r *CategoryRepo) GetMany(ids []string) (map[string]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]*entity.Category, len(ids))
	for _, id := range ids {
		if c, ok := r.s.categories[id]; ok {
			cp := c
			out[id] = &cp
		}
	}
	return out, nil
}

// SupplierRepo directorio de proveedores en memoria.
type SupplierRepo struct {
	s *Store
}

// NewSupplierRepository construye el adaptador.
func NewSupplierRepository(s *Store) *SupplierRepo {
	return &SupplierRepo{s: s}
}

func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if sup, ok := r.s.suppliers[id]; ok {
		return &sup, nil
	}
	return nil, nil
}

func (r *SupplierRepo) Update(supplier *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[supplier.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *SupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	r.s.mu.RLock()
	all := make([]entity.Supplier, 0, len(r.s.suppliers))
	for _, sup := range r.s.suppliers {
		all = append(all, sup)
	}
	r.s.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return pageOf(all, limit, offset), nil
}

func (r *SupplierRepo) GetMany(ids []string) (map[string]*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]*entity.Supplier, len(ids))
	for _, id := range ids {
		if sup, ok := r.s.suppliers[id]; ok {
			cp := sup
			out[id] = &cp
		}
	}
	return out, nil
}

// UserRepo usuarios en memoria.
type UserRepo struct {
	s *Store
}

// NewUserRepository construye el adaptador.
func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

func (r *UserRepo) Create(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

// pageOf aplica limit/offset a un slice ya ordenado.
func pageOf[T any](all []T, limit, offset int) []*T {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	out := make([]*T, 0, end-offset)
	for i := offset; i < end; i++ {
		v := all[i]
		out = append(out, &v)
	}
	return out
}
