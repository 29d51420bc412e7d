package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ms-events/internal/clock"
	"ms-events/internal/kafka"
	"ms-events/internal/logger"
	"ms-events/internal/models"
)

// DBLayer is the storage surface the event service depends on.
type DBLayer interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEventByID(ctx context.Context, eventID int64) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	RegisteredUsers(ctx context.Context, eventID int64) ([]models.User, error)
	CountRegistrations(ctx context.Context, eventID int64) (int, error)
}

type Publisher interface {
	Publish(topic string, key string, value []byte) error
}

type Service struct {
	DB     DBLayer
	Kafka  Publisher
	Clock  clock.Clock
	Logger *logger.Logger
}

func NewService(db DBLayer, publisher Publisher, clk clock.Clock, log *logger.Logger) *Service {
	return &Service{DB: db, Kafka: publisher, Clock: clk, Logger: log}
}

const dateLayout = "2006-01-02"

// CreateEvent validates the request and persists a new event, returning the
// generated id. The event date may be today but not earlier.
func (s *Service) CreateEvent(ctx context.Context, req models.CreateEventRequest) (int64, error) {
	if req.Title == "" || req.Date == "" || req.Location == "" || req.Capacity == 0 {
		return 0, models.ErrMissingFields
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return 0, models.ErrInvalidDate
	}
	if date.Before(clock.DateOf(s.Clock.Now())) {
		return 0, models.ErrPastDate
	}

	event := &models.Event{
		Title:     req.Title,
		EventDate: date,
		Location:  req.Location,
		Capacity:  req.Capacity,
	}
	if err := s.DB.CreateEvent(ctx, event); err != nil {
		return 0, err
	}

	s.publish(kafka.TopicEventCreated, event.EventID, event)
	return event.EventID, nil
}

// EventDetail returns an event and its registered users. The event is
// returned alongside ErrNoRegistrants when nobody has registered yet, so
// the handler can keep the historical "event plus message" response shape.
func (s *Service) EventDetail(ctx context.Context, eventID int64) (*models.Event, []models.User, error) {
	event, err := s.DB.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}

	users, err := s.DB.RegisteredUsers(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	if len(users) == 0 {
		return event, nil, models.ErrNoRegistrants
	}
	return event, users, nil
}

// UpcomingEvents lists events strictly after today. Same-day events are
// excluded; registration deliberately still accepts them (see the
// registration service), matching the deployed behavior.
//
// ErrNoUpcomingEvents means the events table is empty. When events exist
// but all lie in the past, the result is an empty list, not an error.
func (s *Service) UpcomingEvents(ctx context.Context) ([]models.Event, error) {
	all, err := s.DB.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, models.ErrNoUpcomingEvents
	}

	today := clock.DateOf(s.Clock.Now())
	upcoming := make([]models.Event, 0, len(all))
	for _, event := range all {
		if clock.DateOf(event.EventDate).After(today) {
			upcoming = append(upcoming, event)
		}
	}
	return upcoming, nil
}

// EventStats reports occupancy for an event. Remaining capacity can go
// negative only when the legacy admission policy is in effect.
func (s *Service) EventStats(ctx context.Context, eventID int64) (*models.EventStats, error) {
	event, err := s.DB.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	count, err := s.DB.CountRegistrations(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return &models.EventStats{
		TotalRegistrations: count,
		RemainingCapacity:  event.Capacity - count,
		PercentageUsed:     fmt.Sprintf("%.2f%%", float64(count)/float64(event.Capacity)*100),
	}, nil
}

func (s *Service) publish(topic string, eventID int64, payload interface{}) {
	if s.Kafka == nil {
		return
	}
	value, err := json.Marshal(payload)
	if err != nil {
		s.Logger.Error("KAFKA", fmt.Sprintf("Failed to marshal payload for %s: %v", topic, err))
		return
	}
	if err := s.Kafka.Publish(topic, fmt.Sprintf("%d", eventID), value); err != nil {
		s.Logger.Error("KAFKA", fmt.Sprintf("Failed to publish to %s: %v", topic, err))
	}
}
