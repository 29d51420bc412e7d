package registration

import (
	"context"
	"encoding/json"
	"fmt"

	"ms-events/internal/clock"
	"ms-events/internal/kafka"
	"ms-events/internal/logger"
	"ms-events/internal/models"
)

// DBLayer is the storage surface the admission workflow depends on.
type DBLayer interface {
	GetEventForAdmission(ctx context.Context, eventID int64) (*models.Event, error)
	CountRegistrations(ctx context.Context, eventID int64) (int, error)
	CreateRegistration(ctx context.Context, registration *models.Registration) error
	DeleteRegistration(ctx context.Context, userID, eventID int64) error
}

// AdmissionLock serializes registrations per event.
type AdmissionLock interface {
	AcquireEventLock(ctx context.Context, eventID int64) (string, error)
	ReleaseEventLock(ctx context.Context, eventID int64, token string) error
}

type Publisher interface {
	Publish(topic string, key string, value []byte) error
}

// CapacityPolicy selects the comparison used by the capacity check.
type CapacityPolicy string

const (
	// PolicyStrict rejects a registration once the event is at capacity.
	PolicyStrict CapacityPolicy = "strict"
	// PolicyLegacy reproduces the historical off-by-one comparison, which
	// admits one registrant past capacity before rejecting.
	PolicyLegacy CapacityPolicy = "legacy"
)

type Service struct {
	DB     DBLayer
	Lock   AdmissionLock
	Kafka  Publisher
	Clock  clock.Clock
	Policy CapacityPolicy
	Logger *logger.Logger
}

func NewService(db DBLayer, lock AdmissionLock, publisher Publisher, clk clock.Clock, policy CapacityPolicy, log *logger.Logger) *Service {
	if policy != PolicyLegacy {
		policy = PolicyStrict
	}
	return &Service{DB: db, Lock: lock, Kafka: publisher, Clock: clk, Policy: policy, Logger: log}
}

// Register runs the admission workflow for a (user, event) pair: capacity
// check, date check, insert. The whole sequence holds the per-event
// admission lock so concurrent registrations for the same event cannot both
// pass the capacity check; the unique constraint on the pair remains the
// backstop against duplicate booking by the same user.
func (s *Service) Register(ctx context.Context, userID, eventID int64) error {
	token, err := s.Lock.AcquireEventLock(ctx, eventID)
	if err != nil {
		return fmt.Errorf("admission lock for event %d: %w", eventID, err)
	}
	defer func() {
		if err := s.Lock.ReleaseEventLock(ctx, eventID, token); err != nil {
			s.Logger.Error("REDIS", fmt.Sprintf("Failed to release admission lock for event %d: %v", eventID, err))
		}
	}()

	event, err := s.DB.GetEventForAdmission(ctx, eventID)
	if err != nil {
		return err
	}

	count, err := s.DB.CountRegistrations(ctx, eventID)
	if err != nil {
		return fmt.Errorf("count registrations for event %d: %w", eventID, err)
	}

	if s.atCapacity(count, event.Capacity) {
		return models.ErrEventFull
	}
	if clock.DateOf(event.EventDate).Before(clock.DateOf(s.Clock.Now())) {
		return models.ErrEventInPast
	}

	registration := &models.Registration{
		UserID:       userID,
		EventID:      eventID,
		RegisteredAt: s.Clock.Now(),
	}
	if err := s.DB.CreateRegistration(ctx, registration); err != nil {
		return err
	}

	s.publish(kafka.TopicRegistrationCreated, registration)
	return nil
}

// CancelRegistration deletes the pair. Repeating a cancellation reports
// ErrRegistrationNotFound the second time; the effect is idempotent but the
// outcome is not.
func (s *Service) CancelRegistration(ctx context.Context, userID, eventID int64) error {
	if err := s.DB.DeleteRegistration(ctx, userID, eventID); err != nil {
		return err
	}

	s.publish(kafka.TopicRegistrationCancelled, &models.Registration{UserID: userID, EventID: eventID})
	return nil
}

func (s *Service) atCapacity(count, capacity int) bool {
	if s.Policy == PolicyLegacy {
		return count > capacity
	}
	return count >= capacity
}

func (s *Service) publish(topic string, registration *models.Registration) {
	if s.Kafka == nil {
		return
	}
	value, err := json.Marshal(registration)
	if err != nil {
		s.Logger.Error("KAFKA", fmt.Sprintf("Failed to marshal payload for %s: %v", topic, err))
		return
	}
	key := fmt.Sprintf("%d", registration.EventID)
	if err := s.Kafka.Publish(topic, key, value); err != nil {
		s.Logger.Error("KAFKA", fmt.Sprintf("Failed to publish to %s: %v", topic, err))
	}
}
