package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"canteen-backend/domain"
	"canteen-backend/entities"
	"canteen-backend/internal/access"
	"canteen-backend/internal/middleware"
	"canteen-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthenticator struct {
	identities map[string]domain.Identity
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, token string) (string, domain.Identity, error) {
	identity, ok := f.identities[token]
	if !ok {
		return "", domain.Identity{}, domain.ErrTokenInvalid
	}
	return "session-" + token, identity, nil
}

type fakeResolver struct {
	profiles map[string]*entities.Profile
}

func (f *fakeResolver) Resolve(_ context.Context, identity domain.Identity) (*entities.Profile, error) {
	return f.profiles[identity.UserID], nil
}

type fakeStaffService struct {
	calls int
}

func (f *fakeStaffService) ListStaff(context.Context, domain.Session, domain.StaffFilter) ([]domain.ProfileResponse, error) {
	f.calls++
	return []domain.ProfileResponse{}, nil
}

func (f *fakeStaffService) UpdateStaff(context.Context, domain.Session, string, domain.UpdateStaffRequest) (domain.ProfileResponse, error) {
	f.calls++
	return domain.ProfileResponse{}, nil
}

func (f *fakeStaffService) SetStaffActive(context.Context, domain.Session, string, bool) (domain.ProfileResponse, error) {
	f.calls++
	return domain.ProfileResponse{}, nil
}

func newStaffApp(t *testing.T) (*fiber.App, *fakeStaffService) {
	t.Helper()
	utils.InitValidator()

	enforcer, err := access.NewEnforcer()
	require.NoError(t, err)

	canteenID := uuid.New()
	profileFor := func(role domain.Role, canteen *uuid.UUID) *entities.Profile {
		return &entities.Profile{ID: uuid.New(), UserID: uuid.New(), Role: role, CanteenID: canteen, IsActive: true}
	}
	cashier := profileFor(domain.RoleCashier, &canteenID)
	owner := profileFor(domain.RoleOwner, &canteenID)
	fresh := profileFor(domain.RoleOwner, nil)
	inactive := profileFor(domain.RoleManager, &canteenID)
	inactive.IsActive = false

	auth := &fakeAuthenticator{identities: map[string]domain.Identity{}}
	resolver := &fakeResolver{profiles: map[string]*entities.Profile{}}
	for token, p := range map[string]*entities.Profile{
		"cashier": cashier, "owner": owner, "fresh": fresh, "inactive": inactive,
	} {
		auth.identities[token] = domain.Identity{UserID: p.UserID.String()}
		resolver.profiles[p.UserID.String()] = p
	}

	mw := middleware.NewMiddleware(auth, resolver, enforcer)
	svc := &fakeStaffService{}
	h := NewStaffHandler(svc, utils.Validate)

	app := fiber.New()
	app.Get("/staff", mw.AuthMiddleware(), mw.RequirePermission(access.ResourceStaff), mw.RequireCanteen(), h.GetStaff)
	app.Patch("/staff/:id/active", mw.AuthMiddleware(), mw.RequirePermission(access.ResourceStaff), mw.RequireCanteen(), h.SetStaffActive)
	return app, svc
}

func doRequest(t *testing.T, app *fiber.App, method, path, token, body string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestStaffRoutesGuardedBeforeService(t *testing.T) {
	app, svc := newStaffApp(t)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"unknown token", "nope", http.StatusUnauthorized},
		{"cashier lacks staff permission", "cashier", http.StatusForbidden},
		{"inactive profile", "inactive", http.StatusForbidden},
		{"owner without canteen", "fresh", http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, doRequest(t, app, http.MethodGet, "/staff", tt.token, ""))
		})
	}
	assert.Zero(t, svc.calls)
}

func TestStaffRoutesReachServiceForOwner(t *testing.T) {
	app, svc := newStaffApp(t)

	assert.Equal(t, http.StatusOK, doRequest(t, app, http.MethodGet, "/staff", "owner", ""))
	assert.Equal(t, 1, svc.calls)
}

func TestSetStaffActiveRequiresFlag(t *testing.T) {
	app, svc := newStaffApp(t)

	path := "/staff/" + uuid.NewString() + "/active"
	assert.Equal(t, http.StatusBadRequest, doRequest(t, app, http.MethodPatch, path, "owner", `{}`))
	assert.Zero(t, svc.calls)

	assert.Equal(t, http.StatusOK, doRequest(t, app, http.MethodPatch, path, "owner", `{"is_active":false}`))
	assert.Equal(t, 1, svc.calls)
}
