package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ms-events/internal/events"
	"ms-events/internal/logger"
	"ms-events/internal/models"
	"ms-events/internal/utils"
)

type Handler struct {
	Service *events.Service
	Logger  *logger.Logger
}

func NewHandler(service *events.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

// RegisterRoutes registers the event routes on a chi router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/create-events", h.CreateEvent)
	r.Get("/event/{eventId}", h.GetEventDetail)
	r.Get("/upcoming-events", h.UpcomingEvents)
	r.Get("/events-stats/{eventId}", h.EventStats)
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateEvent: failed to decode request body: %v", err))
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	eventID, err := h.Service.CreateEvent(r.Context(), req)
	switch {
	case err == nil:
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"event_id": eventID})
	case errors.Is(err, models.ErrMissingFields):
		utils.RespondMessage(w, http.StatusNotFound, "Please fill in all the required fields")
	case errors.Is(err, models.ErrInvalidDate):
		utils.RespondMessage(w, http.StatusBadRequest, "Event date must be a valid date in YYYY-MM-DD format")
	case errors.Is(err, models.ErrPastDate):
		utils.RespondMessage(w, http.StatusBadRequest, "Event date must be a future date")
	case errors.Is(err, models.ErrCapacityOutOfRange):
		utils.RespondMessage(w, http.StatusConflict, "Capacity must be less than 1000")
	default:
		h.Logger.Error("API", fmt.Sprintf("CreateEvent: %v", err))
		utils.RespondMessage(w, http.StatusInternalServerError, "Event creation failed: An unexpected error occurred. Please try again later")
	}
}

func (h *Handler) GetEventDetail(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.parseEventID(w, r)
	if !ok {
		return
	}

	event, users, err := h.Service.EventDetail(r.Context(), eventID)
	switch {
	case err == nil:
		// The event field has always been a one-element array on the wire.
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"event":            []*models.Event{event},
			"registered_users": users,
		})
	case errors.Is(err, models.ErrEventNotFound):
		utils.RespondMessage(w, http.StatusNotFound, "Event not found")
	case errors.Is(err, models.ErrNoRegistrants):
		utils.RespondJSON(w, http.StatusNotFound, map[string]interface{}{
			"event":   []*models.Event{event},
			"message": "No user registered for this event",
		})
	default:
		h.Logger.Error("API", fmt.Sprintf("GetEventDetail: %v", err))
		utils.RespondMessage(w, http.StatusInternalServerError, "Failed to load event details: An unexpected error occurred. Please try again later")
	}
}

// UpcomingEvents answers 201 on success. Odd for a read, but it is the
// status the deployed service has always returned. The 404 applies only
// when no events exist at all; an all-past table gets 201 with an empty
// list.
func (h *Handler) UpcomingEvents(w http.ResponseWriter, r *http.Request) {
	upcoming, err := h.Service.UpcomingEvents(r.Context())
	switch {
	case err == nil:
		utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{"upcoming_events": upcoming})
	case errors.Is(err, models.ErrNoUpcomingEvents):
		utils.RespondMessage(w, http.StatusNotFound, "There are no upcoming events")
	default:
		h.Logger.Error("API", fmt.Sprintf("UpcomingEvents: %v", err))
		utils.RespondMessage(w, http.StatusInternalServerError, "Failed to load upcoming events: An unexpected error occurred. Please try again later")
	}
}

func (h *Handler) EventStats(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.parseEventID(w, r)
	if !ok {
		return
	}

	stats, err := h.Service.EventStats(r.Context(), eventID)
	switch {
	case err == nil:
		utils.RespondJSON(w, http.StatusOK, stats)
	case errors.Is(err, models.ErrEventNotFound):
		utils.RespondMessage(w, http.StatusNotFound, "Event not found")
	default:
		h.Logger.Error("API", fmt.Sprintf("EventStats: %v", err))
		utils.RespondMessage(w, http.StatusInternalServerError, "Failed to load event statistics: An unexpected error occurred. Please try again later")
	}
}

func (h *Handler) parseEventID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	eventID, err := strconv.ParseInt(chi.URLParam(r, "eventId"), 10, 64)
	if err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "Event not found")
		return 0, false
	}
	return eventID, true
}
