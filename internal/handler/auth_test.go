package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/farmsync/farmsync-api/internal/config"
	"github.com/farmsync/farmsync-api/internal/model"
	"github.com/farmsync/farmsync-api/internal/repository"
	"github.com/farmsync/farmsync-api/internal/utils"
)

// fakeUserStore is an in-memory UserStore with the same semantics as the
// MySQL repository: normalized emails, unique email enforcement, empty
// profile created with the user.
type fakeUserStore struct {
	mu          sync.Mutex
	nextID      uint64
	users       map[string]model.User // keyed by email
	farmers     map[uint64]model.FarmerProfile
	researchers map[uint64]model.ResearcherProfile
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:       make(map[string]model.User),
		farmers:     make(map[uint64]model.FarmerProfile),
		researchers: make(map[uint64]model.ResearcherProfile),
	}
}

func (s *fakeUserStore) Create(ctx context.Context, email, password, name, userType string, cost int) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	if _, ok := s.users[email]; ok {
		return 0, repository.ErrEmailExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	s.nextID++
	u := model.User{ID: s.nextID, Email: email, PasswordHash: hash, Name: name, UserType: userType}
	s.users[email] = u
	switch userType {
	case model.UserTypeFarmer:
		s.farmers[u.ID] = model.FarmerProfile{UserID: u.ID, CropTypes: []string{}}
	case model.UserTypeResearcher:
		s.researchers[u.ID] = model.ResearcherProfile{UserID: u.ID, ResearchFocus: []string{}}
	}
	return u.ID, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uint64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, sql.ErrNoRows
}

func (s *fakeUserStore) Exists(ctx context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(ctx, email)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (s *fakeUserStore) UpdatePassword(ctx context.Context, id uint64, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for email, u := range s.users {
		if u.ID == id {
			u.PasswordHash = hash
			s.users[email] = u
			return nil
		}
	}
	return sql.ErrNoRows
}

func (s *fakeUserStore) FarmerProfile(ctx context.Context, userID uint64) (model.FarmerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.farmers[userID]
	if !ok {
		return model.FarmerProfile{}, sql.ErrNoRows
	}
	return p, nil
}

func (s *fakeUserStore) ResearcherProfile(ctx context.Context, userID uint64) (model.ResearcherProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.researchers[userID]
	if !ok {
		return model.ResearcherProfile{}, sql.ErrNoRows
	}
	return p, nil
}

func (s *fakeUserStore) UpdateFarmerProfile(ctx context.Context, p model.FarmerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.farmers[p.UserID] = p
	return nil
}

func (s *fakeUserStore) UpdateResearcherProfile(ctx context.Context, p model.ResearcherProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.researchers[p.UserID] = p
	return nil
}

func testConfig() config.Config {
	return config.Config{
		Env:           "test",
		JWTSecret:     "test-secret",
		TokenTTLHours: 24,
		BcryptCost:    4, // min cost keeps tests fast
	}
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string, setup func(echo.Context)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	require.NoError(t, h(c))
	return rec
}

func TestSignupThenLogin(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(testConfig(), newFakeUserStore())

	rec := doJSON(t, h.Signup, http.MethodPost, "/v1/auth/signup",
		`{"email":"A@X.com","password":"Passw0rd!","name":"Ada","userType":"FARMER"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"email":"a@x.com"`)
	require.Contains(t, rec.Body.String(), `"farmerProfile"`)
	require.NotContains(t, rec.Body.String(), "Passw0rd")
	require.NotContains(t, rec.Body.String(), "password")

	rec = doJSON(t, h.Login, http.MethodPost, "/v1/auth/login",
		`{"email":"a@x.com","password":"Passw0rd!"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"token"`)

	var resp loginResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	claims, err := utils.VerifySessionToken("test-secret", resp.Token)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", claims.Email)
	require.Equal(t, model.UserTypeFarmer, claims.UserType)
	require.Equal(t, resp.User.ID, claims.UserID)
}

func TestSignupDuplicateEmail(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(testConfig(), newFakeUserStore())
	body := `{"email":"dup@x.com","password":"Passw0rd!","userType":"RESEARCHER"}`

	rec := doJSON(t, h.Signup, http.MethodPost, "/v1/auth/signup", body, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Same email, different password: still a conflict.
	rec = doJSON(t, h.Signup, http.MethodPost, "/v1/auth/signup",
		`{"email":"dup@x.com","password":"OtherPass1!","userType":"FARMER"}`, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "already exists")
}

func TestSignupInvalidInput(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(testConfig(), newFakeUserStore())
	for name, body := range map[string]string{
		"missing email":    `{"password":"Passw0rd!","userType":"FARMER"}`,
		"missing password": `{"email":"a@x.com","userType":"FARMER"}`,
		"short password":   `{"email":"a@x.com","password":"short","userType":"FARMER"}`,
		"bad user type":    `{"email":"a@x.com","password":"Passw0rd!","userType":"ADMIN"}`,
	} {
		rec := doJSON(t, h.Signup, http.MethodPost, "/v1/auth/signup", body, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
}

func TestLoginDoesNotLeakExistence(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(testConfig(), newFakeUserStore())
	rec := doJSON(t, h.Signup, http.MethodPost, "/v1/auth/signup",
		`{"email":"known@x.com","password":"Passw0rd!","userType":"FARMER"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	wrongPass := doJSON(t, h.Login, http.MethodPost, "/v1/auth/login",
		`{"email":"known@x.com","password":"WrongPass1!"}`, nil)
	noUser := doJSON(t, h.Login, http.MethodPost, "/v1/auth/login",
		`{"email":"ghost@x.com","password":"Passw0rd!"}`, nil)

	require.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	require.Equal(t, http.StatusUnauthorized, noUser.Code)
	require.Equal(t, wrongPass.Body.String(), noUser.Body.String())
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	h := NewAuthHandler(testConfig(), store)
	rec := doJSON(t, h.Signup, http.MethodPost, "/v1/auth/signup",
		`{"email":"p@x.com","password":"Passw0rd!","userType":"FARMER"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	asUser := func(c echo.Context) {
		c.Set("user_id", uint64(1))
		c.Set("user_type", model.UserTypeFarmer)
	}

	rec = doJSON(t, h.ChangePassword, http.MethodPost, "/v1/password",
		`{"currentPassword":"WrongPass1!","newPassword":"NewPassw0rd!"}`, asUser)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h.ChangePassword, http.MethodPost, "/v1/password",
		`{"currentPassword":"Passw0rd!","newPassword":"NewPassw0rd!"}`, asUser)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Old password no longer works, new one does.
	rec = doJSON(t, h.Login, http.MethodPost, "/v1/auth/login",
		`{"email":"p@x.com","password":"Passw0rd!"}`, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = doJSON(t, h.Login, http.MethodPost, "/v1/auth/login",
		`{"email":"p@x.com","password":"NewPassw0rd!"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateProfileTaggedVariant(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	h := NewAuthHandler(testConfig(), store)
	rec := doJSON(t, h.Signup, http.MethodPost, "/v1/auth/signup",
		`{"email":"f@x.com","password":"Passw0rd!","userType":"FARMER"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	asFarmer := func(c echo.Context) {
		c.Set("user_id", uint64(1))
		c.Set("user_type", model.UserTypeFarmer)
	}

	// Researcher variant on a farmer account is rejected.
	rec = doJSON(t, h.UpdateProfile, http.MethodPut, "/v1/profile",
		`{"researcher":{"institution":"ARI","specialization":"Soil","researchFocus":["Soil Health"]}}`, asFarmer)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Non-positive farm size is invalid.
	rec = doJSON(t, h.UpdateProfile, http.MethodPut, "/v1/profile",
		`{"farmer":{"farmName":"Green Acres","location":"Midwest, USA","farmSize":-3,"cropTypes":["Corn"]}}`, asFarmer)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h.UpdateProfile, http.MethodPut, "/v1/profile",
		`{"farmer":{"farmName":"Green Acres","location":"Midwest, USA","farmSize":150.5,"cropTypes":["Corn","Wheat"]}}`, asFarmer)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"farmName":"Green Acres"`)

	p, err := store.FarmerProfile(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 150.5, p.FarmSize)
	require.Equal(t, []string{"Corn", "Wheat"}, p.CropTypes)
}
