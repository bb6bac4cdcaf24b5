package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultAction is stored when an ingested event carries no action_taken.
const DefaultAction = "Logged"

// LogEntry represents a single security event in the append-only log store.
// Type and SourceIP are free text: the detection agents upstream already
// label events, and the dashboard renders whatever they send.
type LogEntry struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id,omitempty"`
	Timestamp   time.Time              `bson:"timestamp" json:"timestamp"`
	Type        string                 `bson:"type" json:"type"`
	SourceIP    string                 `bson:"source_ip" json:"source_ip"`
	ActionTaken string                 `bson:"action_taken" json:"action_taken"`
	Details     map[string]interface{} `bson:"details" json:"details"`
}

// LogStats is the response shape of the stats endpoint.
type LogStats struct {
	TotalLogs    int64         `json:"totalLogs"`
	LogsByType   []GroupCount  `json:"logsByType"`
	LogsByAction []GroupCount  `json:"logsByAction"`
	LogsByHour   []HourlyCount `json:"logsByHour"`
}

// GroupCount is one bucket of a $group aggregation keyed by a string field.
type GroupCount struct {
	ID    string `bson:"_id" json:"_id"`
	Count int32  `bson:"count" json:"count"`
}

// HourlyCount is one (hour-of-day, day-of-month) bucket over the last 24 hours.
type HourlyCount struct {
	ID    HourlyKey `bson:"_id" json:"_id"`
	Count int32     `bson:"count" json:"count"`
}

type HourlyKey struct {
	Hour int32 `bson:"hour" json:"hour"`
	Day  int32 `bson:"day" json:"day"`
}
