package repository

import (
	"ShelfGuardian/entity"
	"context"
	"fmt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"regexp"
)

func (m *MongoDB) CreateProduct(ctx context.Context, product *entity.Product) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(ctx, connection)

	id, err := m.nextID(ctx, connection, productsCollection)
	if err != nil {
		return err
	}
	product.ID = id

	collection := connection.Database(m.database).Collection(productsCollection)
	if _, err = collection.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("mongodb insert product: %w", err)
	}
	return nil
}

func (m *MongoDB) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(productsCollection)

	var product entity.Product
	err = collection.FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&product)
	if err != nil {
		return nil, m.findError(err)
	}
	return &product, nil
}

func (m *MongoDB) UpdateProduct(ctx context.Context, product *entity.Product) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(productsCollection)

	result, err := collection.ReplaceOne(ctx, bson.D{{Key: "id", Value: product.ID}}, product)
	if err != nil {
		return fmt.Errorf("mongodb update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (m *MongoDB) DeleteProduct(ctx context.Context, id int64) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(productsCollection)

	result, err := collection.DeleteOne(ctx, bson.D{{Key: "id", Value: id}})
	if err != nil {
		return fmt.Errorf("mongodb delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (m *MongoDB) ListProducts(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error) {
	query := bson.D{}
	if filter.UserID != 0 {
		query = append(query, bson.E{Key: "user_id", Value: filter.UserID})
	}
	if filter.Category != "" {
		query = append(query, bson.E{Key: "category", Value: filter.Category})
	}

	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}}).SetSkip(filter.Skip)
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	return m.findProducts(ctx, query, opts)
}

// ListProductsByExpiry returns products inside the window ordered by expiry.
func (m *MongoDB) ListProductsByExpiry(ctx context.Context, filter entity.ExpiryFilter) ([]entity.Product, error) {
	query := bson.D{}
	if filter.UserID != 0 {
		query = append(query, bson.E{Key: "user_id", Value: filter.UserID})
	}
	if filter.Category != "" {
		query = append(query, bson.E{Key: "category", Value: filter.Category})
	}

	window := bson.D{}
	if !filter.From.IsZero() {
		window = append(window, bson.E{Key: "$gte", Value: filter.From.Time})
	}
	if !filter.To.IsZero() {
		window = append(window, bson.E{Key: "$lte", Value: filter.To.Time})
	}
	if len(window) > 0 {
		query = append(query, bson.E{Key: "expiry_date", Value: window})
	}

	opts := options.Find().SetSort(bson.D{{Key: "expiry_date", Value: 1}, {Key: "id", Value: 1}})

	return m.findProducts(ctx, query, opts)
}

func (m *MongoDB) findProducts(ctx context.Context, query bson.D, opts *options.FindOptions) ([]entity.Product, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(productsCollection)

	cursor, err := collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]entity.Product, 0)
	if err = cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("mongodb decode products: %w", err)
	}
	return products, nil
}

// DeleteExpiredBefore removes every product whose expiry is strictly before the date.
func (m *MongoDB) DeleteExpiredBefore(ctx context.Context, before entity.Date) (int64, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return 0, err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(productsCollection)

	result, err := collection.DeleteMany(ctx, bson.D{{Key: "expiry_date", Value: bson.D{{Key: "$lt", Value: before.Time}}}})
	if err != nil {
		return 0, fmt.Errorf("mongodb delete expired products: %w", err)
	}
	return result.DeletedCount, nil
}

func (m *MongoDB) DeleteProductsByName(ctx context.Context, userID int64, name string) (int64, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return 0, err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(productsCollection)

	filter := bson.D{
		{Key: "user_id", Value: userID},
		{Key: "name", Value: primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"}},
	}
	result, err := collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("mongodb delete products by name: %w", err)
	}
	return result.DeletedCount, nil
}
