package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-events/internal/logger"
	"ms-events/internal/models"
	"ms-events/internal/users"
	"ms-events/internal/utils"
)

type Handler struct {
	Service *users.Service
	Logger  *logger.Logger
}

func NewHandler(service *users.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/create-user", h.CreateUser)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateUser: failed to decode request body: %v", err))
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.Service.CreateUser(r.Context(), req)
	switch {
	case err == nil:
		utils.RespondMessage(w, http.StatusOK, "User created successfully")
	case errors.Is(err, models.ErrMissingFields):
		utils.RespondMessage(w, http.StatusNotFound, "All Fields required")
	default:
		h.Logger.Error("API", fmt.Sprintf("CreateUser: %v", err))
		utils.RespondMessage(w, http.StatusInternalServerError, "User creation failed: An unexpected error occurred. Please try again later")
	}
}

