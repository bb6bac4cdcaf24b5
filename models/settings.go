package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserSettings holds per-user dashboard preferences. At most one document
// exists per user (upsert keyed by user_id).
type UserSettings struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID string             `bson:"user_id" json:"-"`

	DarkMode    bool `bson:"dark_mode" json:"darkMode"`
	AutoRefresh bool `bson:"auto_refresh" json:"autoRefresh"`
	CompactView bool `bson:"compact_view" json:"compactView"`

	EmailNotifications   bool   `bson:"email_notifications" json:"emailNotifications"`
	BrowserNotifications bool   `bson:"browser_notifications" json:"browserNotifications"`
	NotificationEmail    string `bson:"notification_email" json:"notificationEmail"`

	TwoFactor      bool `bson:"two_factor" json:"twoFactor"`
	SessionTimeout bool `bson:"session_timeout" json:"sessionTimeout"`

	UpdatedAt time.Time `bson:"updated_at" json:"-"`
}
