package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"ids-dashboard/models"
)

var (
	ErrEmailTaken    = errors.New("user already exists with this email")
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("current password is incorrect")
	ErrInvalidUserID = errors.New("invalid user ID format")
)

// CreateUser creates a new user in the database. The email must not be in
// use; the check runs before the insert so the handler can report a conflict.
func CreateUser(ctx context.Context, user *models.User) error {
	collection := database.Collection("users")

	existingUser := collection.FindOne(ctx, bson.M{"email": user.Email})
	if existingUser.Err() != mongo.ErrNoDocuments {
		if existingUser.Err() == nil {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to check existing user: %w", existingUser.Err())
	}

	hashedPassword, err := HashPassword(user.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashedPassword

	if user.Role == "" {
		user.Role = models.DefaultRole
	}
	if !models.IsValidRole(string(user.Role)) {
		return fmt.Errorf("invalid role: %s", user.Role)
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	if _, err := collection.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("User created",
		"userID", user.ID.Hex(),
		"email", user.Email,
		"role", user.Role)

	return nil
}

// GetUserByID retrieves a user by their ObjectID
func GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	collection := database.Collection("users")

	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidUserID
	}

	var user models.User
	err = collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// GetUserByEmail retrieves a user by their email
func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	collection := database.Collection("users")

	var user models.User
	err := collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// UpdateUserProfile overwrites the profile fields for a user and bumps the
// updated timestamp.
func UpdateUserProfile(ctx context.Context, userID, name, email, department, avatarURL string) error {
	return updateUser(ctx, userID, bson.M{
		"name":       name,
		"email":      email,
		"department": department,
		"avatar_url": avatarURL,
	})
}

// UpdateUserPassword verifies the current password and stores a hash of the
// new one.
func UpdateUserPassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !CheckPasswordHash(currentPassword, user.Password) {
		return ErrWrongPassword
	}

	hashedPassword, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return updateUser(ctx, userID, bson.M{"password": hashedPassword})
}

// DeleteUser removes the user record and the user's settings document.
// The two deletes are sequential and best-effort: an orphaned settings
// document is harmless without its owning user. Log entries are not
// user-scoped and are left untouched.
func DeleteUser(ctx context.Context, userID string) error {
	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrInvalidUserID
	}

	result, err := database.Collection("users").DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrUserNotFound
	}

	if err := DeleteSettings(ctx, userID); err != nil {
		slog.Error("Failed to delete user settings", "error", err, "userID", userID)
	}

	slog.Info("User deleted", "userID", userID)
	return nil
}

func updateUser(ctx context.Context, userID string, update bson.M) error {
	collection := database.Collection("users")

	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrInvalidUserID
	}

	update["updated_at"] = time.Now()

	result, err := collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": update},
	)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

// HashPassword generates a bcrypt hash of the password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
