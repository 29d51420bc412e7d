package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-events/internal/logger"
	"ms-events/internal/models"
	"ms-events/internal/registration"
	"ms-events/internal/utils"
)

type Handler struct {
	Service *registration.Service
	Logger  *logger.Logger
}

func NewHandler(service *registration.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

// RegisterRoutes registers the registration routes on a chi router. The
// cancel path keeps its historical spelling; clients depend on it.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.Register)
	r.Delete("/cancel-registeration", h.CancelRegistration)
}

// Register admits a user to an event. Full and past-date rejections answer
// 200 with a message body rather than an error status; that is the contract
// the deployed service established.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Register: failed to decode request body: %v", err))
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.Service.Register(r.Context(), req.UserID, req.EventID)
	switch {
	case err == nil:
		utils.RespondMessage(w, http.StatusOK, "You've successfully registered for the event!")
	case errors.Is(err, models.ErrDetailsUnavailable):
		utils.RespondMessage(w, http.StatusNotFound, "We are unable to retrieve event details at this moment. Please try again later.")
	case errors.Is(err, models.ErrEventFull):
		utils.RespondMessage(w, http.StatusOK, "We are sorry, but this event is now fully booked")
	case errors.Is(err, models.ErrEventInPast):
		utils.RespondMessage(w, http.StatusOK, "Registration is only available for upcoming events")
	case errors.Is(err, models.ErrAlreadyRegistered):
		utils.RespondMessage(w, http.StatusConflict, "You are already registered for this event")
	default:
		h.Logger.Error("API", fmt.Sprintf("Register: %v", err))
		utils.RespondMessage(w, http.StatusInternalServerError, "Registration failed: An unexpected error occurred. Please try again later")
	}
}

func (h *Handler) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	var req models.RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CancelRegistration: failed to decode request body: %v", err))
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.UserID == 0 || req.EventID == 0 {
		utils.RespondMessage(w, http.StatusNotFound, "Event ID or User ID not found")
		return
	}

	err := h.Service.CancelRegistration(r.Context(), req.UserID, req.EventID)
	switch {
	case err == nil:
		utils.RespondMessage(w, http.StatusOK, "Your registration has been successfully cancelled")
	case errors.Is(err, models.ErrRegistrationNotFound):
		utils.RespondMessage(w, http.StatusNotFound, "User ID or Event ID dont exist")
	default:
		h.Logger.Error("API", fmt.Sprintf("CancelRegistration: %v", err))
		utils.RespondMessage(w, http.StatusInternalServerError, "Cancellation failed: An unexpected error occurred. Please try again later")
	}
}

