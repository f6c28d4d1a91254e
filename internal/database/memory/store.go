// Package memory is a process-local implementation of the repository used
// when MongoDB is disabled and by tests.
package memory

import (
	"ShelfGuardian/entity"
	"context"
	"sort"
	"strings"
	"sync"
)

type Store struct {
	mu        sync.RWMutex
	users     map[int64]entity.User
	products  map[int64]entity.Product
	userSeq   int64
	productID int64
}

func New() *Store {
	return &Store{
		users:    make(map[int64]entity.User),
		products: make(map[int64]entity.Product),
	}
}

func (s *Store) CreateUser(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return entity.ErrEmailTaken
		}
		if u.Username == user.Username {
			return entity.ErrUsernameTaken
		}
	}

	s.userSeq++
	user.ID = s.userSeq
	s.users[user.ID] = *user
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return s.findUser(func(u entity.User) bool { return u.Email == email })
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	return s.findUser(func(u entity.User) bool { return u.Username == username })
}

func (s *Store) findUser(match func(entity.User) bool) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *Store) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return entity.ErrNotFound
	}
	for pid, p := range s.products {
		if p.UserID == id {
			delete(s.products, pid)
		}
	}
	delete(s.users, id)
	return nil
}

func (s *Store) CreateProduct(_ context.Context, product *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.productID++
	product.ID = s.productID
	s.products[product.ID] = *product
	return nil
}

func (s *Store) GetProduct(_ context.Context, id int64) (*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) UpdateProduct(_ context.Context, product *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[product.ID]; !ok {
		return entity.ErrNotFound
	}
	s.products[product.ID] = *product
	return nil
}

func (s *Store) DeleteProduct(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *Store) ListProducts(_ context.Context, filter entity.ProductFilter) ([]entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]entity.Product, 0)
	for _, p := range s.products {
		if filter.UserID != 0 && p.UserID != filter.UserID {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	if filter.Skip >= int64(len(result)) {
		return []entity.Product{}, nil
	}
	result = result[filter.Skip:]
	if filter.Limit > 0 && filter.Limit < int64(len(result)) {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (s *Store) ListProductsByExpiry(_ context.Context, filter entity.ExpiryFilter) ([]entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]entity.Product, 0)
	for _, p := range s.products {
		if filter.UserID != 0 && p.UserID != filter.UserID {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if !filter.From.IsZero() && p.ExpiryDate.Before(filter.From.Time) {
			continue
		}
		if !filter.To.IsZero() && p.ExpiryDate.After(filter.To.Time) {
			continue
		}
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].ExpiryDate.Equal(result[j].ExpiryDate.Time) {
			return result[i].ExpiryDate.Before(result[j].ExpiryDate.Time)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *Store) DeleteExpiredBefore(_ context.Context, before entity.Date) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, p := range s.products {
		if p.ExpiryDate.Before(before.Time) {
			delete(s.products, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *Store) DeleteProductsByName(_ context.Context, userID int64, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, p := range s.products {
		if p.UserID == userID && strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			delete(s.products, id)
			deleted++
		}
	}
	return deleted, nil
}
