package core

import (
	"ShelfGuardian/entity"
	"context"
	"fmt"
	"log/slog"
)

func (c *Core) CreateProduct(ctx context.Context, user *entity.User, req *entity.ProductCreate) (*entity.Product, error) {
	if c.repo == nil {
		return nil, fmt.Errorf("repository not initialized")
	}

	product := req.Product(user.ID)
	if err := c.repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	c.log.With(
		slog.Int64("user_id", user.ID),
		slog.Int64("product_id", product.ID),
	).Debug("product created")
	c.publish(user.ID, entity.EventProductCreated, product)

	return product, nil
}

func (c *Core) ListProducts(ctx context.Context, user *entity.User, filter entity.ProductFilter) ([]entity.Product, error) {
	if c.repo == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	filter.UserID = user.ID
	return c.repo.ListProducts(ctx, filter)
}

// ownedProduct loads a product and checks that user owns it.
func (c *Core) ownedProduct(ctx context.Context, user *entity.User, id int64) (*entity.Product, error) {
	if c.repo == nil {
		return nil, fmt.Errorf("repository not initialized")
	}

	product, err := c.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, entity.ErrNotFound
	}
	if !user.Owns(product) {
		return nil, entity.ErrForbidden
	}
	return product, nil
}

func (c *Core) GetProduct(ctx context.Context, user *entity.User, id int64) (*entity.Product, error) {
	return c.ownedProduct(ctx, user, id)
}

func (c *Core) ListUserProducts(ctx context.Context, user *entity.User, userID int64) ([]entity.Product, error) {
	if userID != user.ID {
		return nil, entity.ErrForbidden
	}
	return c.ListProducts(ctx, user, entity.ProductFilter{})
}

func (c *Core) UpdateProduct(ctx context.Context, user *entity.User, id int64, req *entity.ProductUpdate) (*entity.Product, error) {
	product, err := c.ownedProduct(ctx, user, id)
	if err != nil {
		return nil, err
	}

	req.Apply(product)
	if err = c.repo.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}

	c.publish(user.ID, entity.EventProductUpdated, product)
	return product, nil
}

func (c *Core) DeleteProduct(ctx context.Context, user *entity.User, id int64) error {
	product, err := c.ownedProduct(ctx, user, id)
	if err != nil {
		return err
	}

	if err = c.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	c.publish(user.ID, entity.EventProductDeleted, product)
	return nil
}

func (c *Core) ProductsByCategory(ctx context.Context, user *entity.User, category entity.Category) ([]entity.Product, error) {
	return c.ListProducts(ctx, user, entity.ProductFilter{Category: category})
}

// ExpiringSoon returns the user's products expiring between today and
// today+days inclusive, soonest first.
func (c *Core) ExpiringSoon(ctx context.Context, user *entity.User, days int) ([]entity.Product, error) {
	if c.repo == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	if days < 1 {
		return nil, fmt.Errorf("days must be at least 1")
	}

	today := c.today()
	return c.repo.ListProductsByExpiry(ctx, entity.ExpiryFilter{
		UserID: user.ID,
		From:   today,
		To:     today.AddDays(days),
	})
}
