package store

import (
	"slices"

	"github.com/BruksfildServices01/reception-scheduler/internal/models"
)

func (s *Store) Products() []models.Product {
	return slices.Clone(s.current().Products)
}

func (s *Store) Product(id uint) (models.Product, bool) {
	return find(s.current().Products, id)
}

func (s *Store) AddProduct(p models.Product) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current()
	next := *cur

	p.ID = nextID(cur.Products, cur.Sequences.Products)
	next.Products = appended(cur.Products, p)
	next.Sequences.Products = p.ID

	s.commit(&next, changedProducts)
	s.rec.Mutation("product", "add", nil)
	return p
}

func (s *Store) UpdateProduct(p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current()
	i := indexOf(cur.Products, p.ID)
	if i < 0 {
		s.rec.Mutation("product", "update", ErrProductNotFound)
		return ErrProductNotFound
	}

	next := *cur
	next.Products = replaced(cur.Products, i, p)

	s.commit(&next, changedProducts)
	s.rec.Mutation("product", "update", nil)
	return nil
}

// DeleteProduct does not touch appointments: their line items keep the
// stale product id.
func (s *Store) DeleteProduct(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current()
	if indexOf(cur.Products, id) < 0 {
		s.rec.Mutation("product", "delete", ErrProductNotFound)
		return ErrProductNotFound
	}

	next := *cur
	next.Products = without(cur.Products, id)

	s.commit(&next, changedProducts)
	s.rec.Mutation("product", "delete", nil)
	return nil
}
