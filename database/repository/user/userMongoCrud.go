package userRepo

import (
	"context"
	"fmt"
	"time"

	"checkfree/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Create inserts a new user document.
func (r *MongoUserRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

// UpdateRefreshToken replaces the encrypted refresh token of the user with the given email.
func (r *MongoUserRepo) UpdateRefreshToken(ctx context.Context, email, encryptedToken string) error {
	return r.updateSetDocument(ctx, email, bson.M{"refreshToken": encryptedToken})
}

// SetRole sets the role of the user with the given email.
func (r *MongoUserRepo) SetRole(ctx context.Context, email string, role models.Role) error {
	return r.updateSetDocument(ctx, email, bson.M{"role": role})
}

func (r *MongoUserRepo) updateSetDocument(ctx context.Context, email string, updateDoc bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	updateDoc["updatedAt"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update user with email %s: %w", email, err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
