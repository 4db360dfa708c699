package memory

import (
	"sort"
	"time"

	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre el almacén en memoria.
type ProductRepo struct {
	s *Store
}

// NewProductRepository construye el adaptador.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

// Create persiste un nuevo producto. Falla con ErrDuplicate si el SKU ya existe.
func (r *ProductRepo) Create(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.SKU == product.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.products[product.ID] = *product
	return nil
}

// GetByID obtiene un producto por ID; nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if p, ok := r.s.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

// GetBySKU obtiene un producto por SKU; nil si no existe.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

// Update reemplaza los atributos de catálogo de un producto existente.
func (r *ProductRepo) Update(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, p := range r.s.products {
		if id != product.ID && p.SKU == product.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.products[product.ID] = *product
	return nil
}

// List devuelve productos ordenados por id ascendente, con filtro opcional por categoría.
func (r *ProductRepo) List(categoryID string, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	all := make([]entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if categoryID != "" && p.CategoryID != categoryID {
			continue
		}
		all = append(all, p)
	}
	r.s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	out := make([]*entity.Product, 0, end-offset)
	for i := offset; i < end; i++ {
		p := all[i]
		out = append(out, &p)
	}
	return out, nil
}

// Count cuenta productos, con filtro opcional por categoría.
func (r *ProductRepo) Count(categoryID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if categoryID == "" {
		return len(r.s.products), nil
	}
	n := 0
	for _, p := range r.s.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

// Disable marca el producto como inactivo (borrado lógico).
func (r *ProductRepo) Disable(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Active = false
	p.UpdatedAt = time.Now()
	r.s.products[id] = p
	return nil
}
