// Package events defines the lifecycle notifications published by the project hub.
package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

// Topic carries every hub event.
const Topic = "projecthub.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// Session gate events.
	SessionStartedEvent EventType = "session.started"
	SessionEndedEvent   EventType = "session.ended"

	// Workflow simulator events.
	ReportGeneratedEvent EventType = "report.generated"
	ReportClearedEvent   EventType = "report.cleared"
	ExportRequestedEvent EventType = "report.export_requested"
)

type BaseEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	SessionID string         `json:"session_id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

func NewBaseEvent(eventType EventType, sessionID string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		SessionID: sessionID,
	}
}

type SessionStarted struct {
	BaseEvent

	Identity string `json:"identity"`
	DemoMode bool   `json:"demo_mode"`
}

func (e SessionStarted) GetType() EventType {
	return SessionStartedEvent
}

type SessionEnded struct {
	BaseEvent

	Identity string `json:"identity"`
}

func (e SessionEnded) GetType() EventType {
	return SessionEndedEvent
}

type ReportGenerated struct {
	BaseEvent

	ReportID   string            `json:"report_id"`
	Kind       string            `json:"kind"`
	Title      string            `json:"title"`
	ProducedAt time.Time         `json:"produced_at"`
	Facts      map[string]string `json:"facts,omitempty"`
}

func (e ReportGenerated) GetType() EventType {
	return ReportGeneratedEvent
}

type ReportCleared struct {
	BaseEvent

	Kind string `json:"kind"`
}

func (e ReportCleared) GetType() EventType {
	return ReportClearedEvent
}

type ExportRequested struct {
	BaseEvent

	ReportID string `json:"report_id"`
	Kind     string `json:"kind"`
	Format   string `json:"format"`
	Served   bool   `json:"served"`
}

func (e ExportRequested) GetType() EventType {
	return ExportRequestedEvent
}
