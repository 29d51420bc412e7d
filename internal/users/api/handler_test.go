package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ms-events/internal/logger"
	"ms-events/internal/models"
	"ms-events/internal/users"
	"ms-events/internal/users/api"
)

type MockDBLayer struct {
	mock.Mock
}

func (m *MockDBLayer) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func setupRouter(db *MockDBLayer) chi.Router {
	svc := users.NewService(db)
	h := api.NewHandler(svc, logger.NewLogger())
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func TestCreateUserHandlerSuccess(t *testing.T) {
	db := new(MockDBLayer)
	db.On("CreateUser", mock.Anything, mock.Anything).Return(nil)
	router := setupRouter(db)

	req := httptest.NewRequest(http.MethodPost, "/create-user", strings.NewReader(`{"name":"Alice","email":"alice@example.com"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User created successfully")
}

func TestCreateUserHandlerMissingFields(t *testing.T) {
	db := new(MockDBLayer)
	router := setupRouter(db)

	req := httptest.NewRequest(http.MethodPost, "/create-user", strings.NewReader(`{"name":"Alice"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "All Fields required")
	db.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestCreateUserHandlerBadBody(t *testing.T) {
	db := new(MockDBLayer)
	router := setupRouter(db)

	req := httptest.NewRequest(http.MethodPost, "/create-user", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateUserHandlerDBError(t *testing.T) {
	db := new(MockDBLayer)
	db.On("CreateUser", mock.Anything, mock.Anything).Return(assert.AnError)
	router := setupRouter(db)

	req := httptest.NewRequest(http.MethodPost, "/create-user", strings.NewReader(`{"name":"Alice","email":"alice@example.com"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "User creation failed")
}
