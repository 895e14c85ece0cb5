package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adhub/adhub/internal/api/middleware"
	"github.com/adhub/adhub/internal/ldap"
	"github.com/adhub/adhub/internal/samba"
	"github.com/adhub/adhub/internal/security"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService records directory mutations so tests can assert that
// protected names never reach the service layer.
type stubService struct {
	calls []string
}

func (s *stubService) record(call string) { s.calls = append(s.calls, call) }

func (s *stubService) ListUsers(ctx context.Context) ([]samba.User, error) {
	return []samba.User{{Username: "alice"}, {Username: "bob", AccountDisabled: true}}, nil
}

func (s *stubService) GetUser(ctx context.Context, username string) (*samba.User, error) {
	return &samba.User{Username: username}, nil
}

func (s *stubService) CreateUser(ctx context.Context, params samba.CreateUserParams) error {
	s.record("create user " + params.Username)
	return nil
}

func (s *stubService) DeleteUser(ctx context.Context, username string) error {
	s.record("delete user " + username)
	return nil
}

func (s *stubService) EnableUser(ctx context.Context, username string) error {
	s.record("enable user " + username)
	return nil
}

func (s *stubService) DisableUser(ctx context.Context, username string) error {
	s.record("disable user " + username)
	return nil
}

func (s *stubService) SetPassword(ctx context.Context, username, newPassword string, mustChange bool) error {
	s.record("setpassword " + username)
	return nil
}

func (s *stubService) ListGroups(ctx context.Context) ([]samba.Group, error) { return nil, nil }

func (s *stubService) GetGroup(ctx context.Context, groupname string) (*samba.Group, error) {
	return &samba.Group{Name: groupname}, nil
}

func (s *stubService) CreateGroup(ctx context.Context, groupname, description string) error {
	s.record("create group " + groupname)
	return nil
}

func (s *stubService) DeleteGroup(ctx context.Context, groupname string) error {
	s.record("delete group " + groupname)
	return nil
}

func (s *stubService) AddGroupMembers(ctx context.Context, groupname string, usernames []string) error {
	s.record("addmembers " + groupname)
	return nil
}

func (s *stubService) RemoveGroupMembers(ctx context.Context, groupname string, usernames []string) error {
	s.record("removemembers " + groupname)
	return nil
}

func (s *stubService) ListShares(ctx context.Context) ([]samba.Share, error) { return nil, nil }

func (s *stubService) GetShare(ctx context.Context, sharename string) (*samba.Share, error) {
	return &samba.Share{Name: sharename}, nil
}

func (s *stubService) CreateShare(ctx context.Context, params samba.ShareParams) error {
	s.record("create share " + params.Name)
	return nil
}

func (s *stubService) UpdateShare(ctx context.Context, sharename string, update samba.ShareUpdate) error {
	s.record("update share " + sharename)
	return nil
}

func (s *stubService) DeleteShare(ctx context.Context, sharename string) error {
	s.record("delete share " + sharename)
	return nil
}

func (s *stubService) ListZones(ctx context.Context) ([]samba.DNSZone, error) { return nil, nil }

func (s *stubService) AddDNSRecord(ctx context.Context, record samba.DNSRecord, adminPassword string) error {
	s.record("add dns " + record.Name)
	return nil
}

func (s *stubService) DeleteDNSRecord(ctx context.Context, record samba.DNSRecord, adminPassword string) error {
	s.record("delete dns " + record.Name)
	return nil
}

func (s *stubService) DomainInfo(ctx context.Context) (*samba.DomainInfo, error) {
	return &samba.DomainInfo{Domain: "example.com", NetbiosDomain: "EXAMPLE"}, nil
}

func (s *stubService) DashboardStats(ctx context.Context) (*samba.DashboardStats, error) {
	return &samba.DashboardStats{TotalUsers: 2}, nil
}

// stubLDAP authenticates a single known user.
type stubLDAP struct{}

func (s *stubLDAP) Authenticate(ctx context.Context, username, password string) (*ldap.Identity, error) {
	if username == "admin" && password == "Passw0rd123" {
		return &ldap.Identity{
			Username: "admin",
			Domain:   "example.com",
			Groups:   []string{"Domain Admins"},
			IsAdmin:  true,
		}, nil
	}
	return nil, ldap.ErrInvalidCredentials
}

func (s *stubLDAP) UpdateUser(ctx context.Context, username string, update ldap.UserUpdate, adminPassword string) error {
	return nil
}

func (s *stubLDAP) UpdateGroup(ctx context.Context, groupname string, description *string, adminPassword string) error {
	return nil
}

func testRouter(t *testing.T, service *stubService) (*gin.Engine, *security.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	tokens := security.NewManager(&security.Config{Secret: "test-secret"})
	handler := NewSambaHandler(service, &stubLDAP{}, tokens)
	authHandler := NewAuthHandler(&stubLDAP{}, tokens)

	r := gin.New()
	r.POST("/login", authHandler.LoginHandler)

	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(tokens), middleware.AdminRequired())
	admin.POST("/users", handler.CreateUserHandler)
	admin.DELETE("/users/:username", handler.DeleteUserHandler)
	admin.POST("/users/:username/disable", handler.DisableUserHandler)
	admin.DELETE("/groups/:groupname", handler.DeleteGroupHandler)
	admin.DELETE("/shares/:sharename", handler.DeleteShareHandler)
	admin.GET("/users", handler.GetUsersHandler)

	return r, tokens
}

func adminToken(t *testing.T, tokens *security.Manager) string {
	t.Helper()
	token, _, err := tokens.Issue(&ldap.Identity{
		Username: "admin",
		Domain:   "example.com",
		IsAdmin:  true,
	}, "Passw0rd123", false)
	require.NoError(t, err)
	return token
}

func doRequest(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginSuccess(t *testing.T) {
	r, _ := testRouter(t, &stubService{})

	w := doRequest(r, http.MethodPost, "/login", "", gin.H{"username": "admin", "password": "Passw0rd123"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
}

func TestLoginInvalidCredentials(t *testing.T) {
	r, _ := testRouter(t, &stubService{})

	w := doRequest(r, http.MethodPost, "/login", "", gin.H{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r, _ := testRouter(t, &stubService{})

	w := doRequest(r, http.MethodGet, "/admin/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodGet, "/admin/users", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	r, tokens := testRouter(t, &stubService{})

	token, _, err := tokens.Issue(&ldap.Identity{Username: "user", Domain: "example.com"}, "Passw0rd123", false)
	require.NoError(t, err)

	w := doRequest(r, http.MethodGet, "/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestProtectedNamesNeverReachTheService(t *testing.T) {
	service := &stubService{}
	r, tokens := testRouter(t, service)
	token := adminToken(t, tokens)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"DeleteAdministrator", http.MethodDelete, "/admin/users/Administrator", nil},
		{"DeleteKrbtgt", http.MethodDelete, "/admin/users/krbtgt", nil},
		{"DisableGuest", http.MethodPost, "/admin/users/guest/disable", nil},
		{"CreateShadowAdmin", http.MethodPost, "/admin/users", gin.H{"username": "ADMINISTRATOR", "password": "Passw0rd123"}},
		{"DeleteDomainAdmins", http.MethodDelete, "/admin/groups/Domain%20Admins", nil},
		{"DeleteSysvol", http.MethodDelete, "/admin/shares/SYSVOL", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, tt.method, tt.path, token, tt.body)
			assert.Equal(t, http.StatusForbidden, w.Code)
		})
	}

	assert.Empty(t, service.calls, "no protected-name operation may reach the service")
}

func TestCreateUserRejectsWeakPassword(t *testing.T) {
	service := &stubService{}
	r, tokens := testRouter(t, service)

	w := doRequest(r, http.MethodPost, "/admin/users", adminToken(t, tokens), gin.H{
		"username": "carol",
		"password": "weak",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, service.calls)
}

func TestDeleteRegularUser(t *testing.T) {
	service := &stubService{}
	r, tokens := testRouter(t, service)

	w := doRequest(r, http.MethodDelete, "/admin/users/carol", adminToken(t, tokens), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"delete user carol"}, service.calls)
}
