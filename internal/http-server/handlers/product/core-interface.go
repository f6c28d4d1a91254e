package product

import (
	"ShelfGuardian/entity"
	"context"
)

type Core interface {
	CreateProduct(ctx context.Context, user *entity.User, req *entity.ProductCreate) (*entity.Product, error)
	ListProducts(ctx context.Context, user *entity.User, filter entity.ProductFilter) ([]entity.Product, error)
	GetProduct(ctx context.Context, user *entity.User, id int64) (*entity.Product, error)
	ListUserProducts(ctx context.Context, user *entity.User, userID int64) ([]entity.Product, error)
	UpdateProduct(ctx context.Context, user *entity.User, id int64, req *entity.ProductUpdate) (*entity.Product, error)
	DeleteProduct(ctx context.Context, user *entity.User, id int64) error
	ProductsByCategory(ctx context.Context, user *entity.User, category entity.Category) ([]entity.Product, error)
	ExpiringSoon(ctx context.Context, user *entity.User, days int) ([]entity.Product, error)
}
