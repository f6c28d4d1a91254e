package repository

import (
	"ShelfGuardian/entity"
	"context"
	"fmt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"strings"
)

func (m *MongoDB) CreateUser(ctx context.Context, user *entity.User) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(ctx, connection)

	id, err := m.nextID(ctx, connection, usersCollection)
	if err != nil {
		return err
	}
	user.ID = id

	collection := connection.Database(m.database).Collection(usersCollection)
	_, err = collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), "email") {
				return entity.ErrEmailTaken
			}
			return entity.ErrUsernameTaken
		}
		return fmt.Errorf("mongodb insert user: %w", err)
	}
	return nil
}

func (m *MongoDB) findUser(ctx context.Context, filter bson.D) (*entity.User, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(usersCollection)

	var user entity.User
	err = collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		return nil, m.findError(err)
	}
	return &user, nil
}

func (m *MongoDB) GetUserByID(ctx context.Context, id int64) (*entity.User, error) {
	return m.findUser(ctx, bson.D{{Key: "id", Value: id}})
}

func (m *MongoDB) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return m.findUser(ctx, bson.D{{Key: "email", Value: strings.ToLower(strings.TrimSpace(email))}})
}

func (m *MongoDB) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	return m.findUser(ctx, bson.D{{Key: "username", Value: strings.TrimSpace(username)}})
}

// DeleteUser removes the user together with every product they own.
func (m *MongoDB) DeleteUser(ctx context.Context, id int64) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(ctx, connection)

	db := connection.Database(m.database)

	_, err = db.Collection(productsCollection).DeleteMany(ctx, bson.D{{Key: "user_id", Value: id}})
	if err != nil {
		return fmt.Errorf("mongodb delete user products: %w", err)
	}

	result, err := db.Collection(usersCollection).DeleteOne(ctx, bson.D{{Key: "id", Value: id}})
	if err != nil {
		return fmt.Errorf("mongodb delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}
