package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ids-dashboard/models"
)

// SaveSettings upserts the single settings document for a user.
func SaveSettings(ctx context.Context, userID string, settings *models.UserSettings) error {
	collection := database.Collection("user_settings")

	settings.UserID = userID
	settings.UpdatedAt = time.Now()

	filter := bson.M{"user_id": userID}
	update := bson.M{"$set": bson.M{
		"user_id":               userID,
		"dark_mode":             settings.DarkMode,
		"auto_refresh":          settings.AutoRefresh,
		"compact_view":          settings.CompactView,
		"email_notifications":   settings.EmailNotifications,
		"browser_notifications": settings.BrowserNotifications,
		"notification_email":    settings.NotificationEmail,
		"two_factor":            settings.TwoFactor,
		"session_timeout":       settings.SessionTimeout,
		"updated_at":            settings.UpdatedAt,
	}}
	opts := options.Update().SetUpsert(true)

	if _, err := collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}

// GetSettings returns the settings document for a user, or zero-value
// defaults when the user never saved any.
func GetSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	collection := database.Collection("user_settings")

	var settings models.UserSettings
	err := collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&settings)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return &models.UserSettings{UserID: userID}, nil
		}
		return nil, err
	}

	return &settings, nil
}

// DeleteSettings removes the settings document for a user.
func DeleteSettings(ctx context.Context, userID string) error {
	collection := database.Collection("user_settings")

	if _, err := collection.DeleteOne(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("failed to delete settings: %w", err)
	}

	return nil
}
