package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"checkfree/handlers"
	"checkfree/models"
	"checkfree/services/appointment"
	"checkfree/services/auth"
	"checkfree/services/availability"
	"checkfree/services/user"
	"checkfree/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var (
	buyer  = &models.User{ID: primitive.NewObjectID(), Email: "buyer@example.com", Name: "Bea", Role: models.RoleBuyer}
	seller = &models.User{ID: primitive.NewObjectID(), Email: "seller@example.com", Name: "Sam", Role: models.RoleSeller}
)

type fakeAuth struct{}

func (fakeAuth) BeginLogin(context.Context) (string, error) {
	return "https://accounts.google.com/o/oauth2/auth?state=s", nil
}

func (fakeAuth) CompleteLogin(context.Context, string, string) (*auth.LoginResult, error) {
	return nil, auth.ErrInvalidState
}

func (fakeAuth) Authenticate(_ context.Context, token string) (*utils.SessionClaims, error) {
	for _, u := range []*models.User{buyer, seller} {
		if token == u.Email {
			return &utils.SessionClaims{Email: u.Email, StandardClaims: jwt.StandardClaims{Subject: u.ID.Hex()}}, nil
		}
	}
	return nil, auth.ErrInvalidSession
}

func (fakeAuth) Logout(context.Context, string) error { return nil }

type fakeUsers struct{}

func (fakeUsers) SignIn(context.Context, models.GoogleProfile, string) (*models.User, error) {
	return nil, errors.New("not used")
}

func (fakeUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range []*models.User{buyer, seller} {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (fakeUsers) CheckUser(_ context.Context, email string) (*models.UserStatus, error) {
	if email != buyer.Email {
		return nil, user.ErrUserNotFound
	}
	role := buyer.Role
	return &models.UserStatus{ID: buyer.ID.Hex(), Email: email, Name: buyer.Name, Role: &role, HasRole: true, Redirect: user.RedirectFor(role)}, nil
}

func (fakeUsers) SetRole(_ context.Context, _ string, role models.Role) error {
	if !role.Valid() {
		return user.ErrInvalidRole
	}
	return nil
}

func (fakeUsers) ListSellers(context.Context) ([]models.SellerSummary, error) {
	return []models.SellerSummary{{ID: seller.ID, Name: seller.Name, Email: seller.Email}}, nil
}

type fakeAvailability struct{}

func (fakeAvailability) GetSlots(_ context.Context, sellerID, date string) ([]models.Slot, error) {
	switch {
	case sellerID == "" || date == "":
		return nil, availability.ErrMissingParams
	case sellerID != seller.ID.Hex():
		return nil, availability.ErrSellerNotFound
	case date == "bad":
		return nil, errors.New("invalid date")
	}
	start := time.Date(2025, 1, 15, 3, 30, 0, 0, time.UTC)
	return []models.Slot{
		{Start: start, End: start.Add(30 * time.Minute), Available: true},
		{Start: start.Add(30 * time.Minute), End: start.Add(time.Hour), Available: false},
	}, nil
}

type fakeAppointments struct{}

func (fakeAppointments) Book(_ context.Context, _ string, req models.AppointmentRequest) (*models.CalendarEvent, error) {
	if req.StartTime >= req.EndTime {
		return nil, appointment.ErrInvalidTimeRange
	}
	return &models.CalendarEvent{ID: "evt-1", Summary: req.Title, Description: models.AppointmentMarker}, nil
}

func (fakeAppointments) Upcoming(context.Context, string) ([]models.CalendarEvent, error) {
	return []models.CalendarEvent{}, nil
}

func (fakeAppointments) History(context.Context, string) ([]models.Appointment, error) {
	return []models.Appointment{{Title: "Consultation"}}, nil
}

func newRouter() *gin.Engine {
	return newRouterWithOrigins("http://localhost:3000")
}

func newRouterWithOrigins(origins ...string) *gin.Engine {
	r := gin.New()
	hb := &handlers.HandlerBundle{
		AuthService:  fakeAuth{},
		UserService:  fakeUsers{},
		Auth:         handlers.NewAuthHandler(fakeAuth{}, "http://localhost:3000", time.Hour, false),
		User:         handlers.NewUserHandler(fakeUsers{}),
		Availability: handlers.NewAvailabilityHandler(fakeAvailability{}),
		Appointment:  handlers.NewAppointmentHandler(fakeAppointments{}),
	}
	RegisterRoutes(r, hb, origins)
	return r
}

func do(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	r := newRouter()
	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/user/check"},
		{http.MethodPost, "/api/user/role"},
		{http.MethodGet, "/api/sellers"},
		{http.MethodGet, "/api/availability"},
		{http.MethodGet, "/api/appointments"},
		{http.MethodPost, "/api/appointments"},
		{http.MethodGet, "/api/appointments/history"},
	} {
		w := do(r, route.method, route.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.path)
		assert.JSONEq(t, `{"message":"Unauthorized"}`, w.Body.String(), route.path)
	}
}

func TestUserRoutes(t *testing.T) {
	r := newRouter()

	w := do(r, http.MethodGet, "/api/user/check", buyer.Email, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"`+buyer.ID.Hex()+`","email":"buyer@example.com","name":"Bea","role":"buyer","hasRole":true,"redirect":"/buyer/dashboard"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/user/check", seller.Email, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"User not found"}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/user/role", buyer.Email, `{"role":"seller"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Role updated successfully","role":"seller"}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/user/role", buyer.Email, `{"role":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid role"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/sellers", buyer.Email, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"_id":"`+seller.ID.Hex()+`","name":"Sam","email":"seller@example.com"}]`, w.Body.String())
}

func TestAvailabilityRoute(t *testing.T) {
	r := newRouter()

	w := do(r, http.MethodGet, "/api/availability?sellerId="+seller.ID.Hex()+"&date=2025-01-15", buyer.Email, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"slots":[
		{"start":"2025-01-15T03:30:00.000Z","end":"2025-01-15T04:00:00.000Z","available":true},
		{"start":"2025-01-15T04:00:00.000Z","end":"2025-01-15T04:30:00.000Z","available":false}]}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/availability?date=2025-01-15", buyer.Email, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Missing sellerId or date"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/availability?sellerId="+buyer.ID.Hex()+"&date=2025-01-15", buyer.Email, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Seller not found"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/availability?sellerId="+seller.ID.Hex()+"&date=bad", buyer.Email, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, w.Body.String())
}

func TestAppointmentRoutes(t *testing.T) {
	r := newRouter()
	body := `{"sellerId":"` + seller.ID.Hex() + `","startTime":"2025-01-15T04:30:00Z","endTime":"2025-01-15T05:00:00Z","title":"Consultation"}`

	w := do(r, http.MethodPost, "/api/appointments", buyer.Email, body)
	require.Equal(t, http.StatusOK, w.Code)
	var created struct {
		Message string               `json:"message"`
		Event   models.CalendarEvent `json:"event"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Appointment created successfully", created.Message)
	assert.Equal(t, "evt-1", created.Event.ID)

	w = do(r, http.MethodPost, "/api/appointments", seller.Email, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodPost, "/api/appointments", buyer.Email, `{"sellerId":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Missing required fields"}`, w.Body.String())

	reversed := `{"sellerId":"` + seller.ID.Hex() + `","startTime":"2025-01-15T05:00:00Z","endTime":"2025-01-15T04:30:00Z","title":"Consultation"}`
	w = do(r, http.MethodPost, "/api/appointments", buyer.Email, reversed)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid time range"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/appointments", seller.Email, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"appointments":[]}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/appointments/history", buyer.Email, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Consultation"`)
}

func TestMethodNotAllowed(t *testing.T) {
	r := newRouter()

	for _, route := range []struct{ method, path string }{
		{http.MethodDelete, "/api/appointments"},
		{http.MethodPut, "/api/user/role"},
		{http.MethodPost, "/api/sellers"},
		{http.MethodPost, "/api/availability"},
	} {
		w := do(r, route.method, route.path, buyer.Email, "")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, route.path)
		assert.JSONEq(t, `{"message":"Method not allowed"}`, w.Body.String(), route.path)
	}

	w := do(r, http.MethodGet, "/api/nope", buyer.Email, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthRoutes(t *testing.T) {
	r := newRouter()

	w := do(r, http.MethodGet, "/api/auth/google/login", "", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "https://accounts.google.com/"))

	w = do(r, http.MethodGet, "/api/auth/google/callback?code=c&state=forged", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/auth/logout", buyer.Email, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthAndCORS(t *testing.T) {
	r := newRouter()

	w := do(r, http.MethodGet, "/health", "", "")
	assert.Contains(t, []int{http.StatusOK, http.StatusServiceUnavailable}, w.Code)
	assert.Contains(t, w.Body.String(), `"mongo"`)

	req := httptest.NewRequest(http.MethodOptions, "/api/appointments", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func preflight(r *gin.Engine, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, "/api/appointments", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCORSRejectsUnlistedOrigin(t *testing.T) {
	rec := preflight(newRouter(), "http://evil.test")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSWildcardDropsCredentials(t *testing.T) {
	rec := preflight(newRouterWithOrigins("*"), "http://evil.test")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}
