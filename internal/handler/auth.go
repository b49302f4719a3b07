package handler

import (
	"context"  // provides context with cancellation for DB calls
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/farmsync/farmsync-api/internal/config"
	"github.com/farmsync/farmsync-api/internal/model"
	"github.com/farmsync/farmsync-api/internal/repository"
	"github.com/farmsync/farmsync-api/internal/utils"
)

// UserStore is the credential-store surface the auth handlers depend on.
// *repository.UserRepo satisfies it; tests substitute an in-memory fake so
// no database is needed to exercise the flows.
type UserStore interface {
	Create(ctx context.Context, email, password, name, userType string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	Exists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uint64, hash string) error
	FarmerProfile(ctx context.Context, userID uint64) (model.FarmerProfile, error)
	ResearcherProfile(ctx context.Context, userID uint64) (model.ResearcherProfile, error)
	UpdateFarmerProfile(ctx context.Context, p model.FarmerProfile) error
	UpdateResearcherProfile(ctx context.Context, p model.ResearcherProfile) error
}

// AuthHandler bundles dependencies for the signup/login/profile endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, u UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type signupReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	UserType string `json:"userType"` // FARMER | RESEARCHER
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type passwordChangeReq struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// profileReq is the tagged profile variant: exactly one of the two fields
// must be set, and it must match the caller's account type.
type profileReq struct {
	Farmer     *model.FarmerProfile     `json:"farmer"`
	Researcher *model.ResearcherProfile `json:"researcher"`
}

type userPart struct {
	ID                uint64                   `json:"id"`
	Email             string                   `json:"email"`
	Name              string                   `json:"name,omitempty"`
	UserType          string                   `json:"userType"`
	FarmerProfile     *model.FarmerProfile     `json:"farmerProfile,omitempty"`
	ResearcherProfile *model.ResearcherProfile `json:"researcherProfile,omitempty"`
}

type loginResp struct {
	User    userPart  `json:"user"`
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// userView assembles the password-stripped user representation, attaching
// the profile matching the account type when one can be loaded.
func (h *AuthHandler) userView(ctx context.Context, u model.User) userPart {
	part := userPart{ID: u.ID, Email: u.Email, Name: u.Name, UserType: u.UserType}
	switch u.UserType {
	case model.UserTypeFarmer:
		if p, err := h.Users.FarmerProfile(ctx, u.ID); err == nil {
			part.FarmerProfile = &p
		}
	case model.UserTypeResearcher:
		if p, err := h.Users.ResearcherProfile(ctx, u.ID); err == nil {
			part.ResearcherProfile = &p
		}
	}
	return part
}

// Signup: validate, reject duplicate emails, create user plus empty profile
// atomically, return the created user without its password hash.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}
	if len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 8 characters"})
	}
	if !model.ValidUserType(req.UserType) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user type"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	exists, err := h.Users.Exists(ctx, req.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "signup failed"})
	}
	if exists {
		return c.JSON(http.StatusConflict, echo.Map{"error": "an account with this email already exists"})
	}

	uid, err := h.Users.Create(ctx, req.Email, req.Password, strings.TrimSpace(req.Name), req.UserType, h.Cfg.BcryptCost)
	if err != nil {
		// Two signups can race past the Exists check; the unique email
		// index decides the winner.
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "an account with this email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"user": h.userView(ctx, u)})
}

// Login: verify credentials and issue a session token. Unknown email and
// wrong password produce the same response so account existence is not
// leaked.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
	}

	ttl := time.Duration(h.Cfg.TokenTTLHours) * time.Hour
	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, u.ID, u.Email, u.UserType, ttl)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, loginResp{
		User:    h.userView(ctx, u),
		Token:   tok.Token,
		Expires: tok.Exp,
	})
}

// Me: return the authenticated user with its profile. The identity comes
// from the verified token claims; the store is consulted only to fill in
// the current profile data.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": h.userView(ctx, u)})
}

// ChangePassword: re-verify the current password before storing a new hash.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req passwordChangeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "current and new password are required"})
	}
	if len(req.NewPassword) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 8 characters"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.CurrentPassword) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
	}

	hash, err := utils.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update password failed"})
	}
	if err := h.Users.UpdatePassword(ctx, uid, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update password failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateProfile: overwrite the caller's profile. The body carries a tagged
// variant; the variant present must match the caller's account type, which
// keeps the one-profile-per-user invariant enforced at the boundary instead
// of inferred at persistence time.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	userType, _ := c.Get("user_type").(string)

	var req profileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if (req.Farmer == nil) == (req.Researcher == nil) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "exactly one of farmer or researcher profile is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch {
	case req.Farmer != nil:
		if userType != model.UserTypeFarmer {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "profile does not match account type"})
		}
		p := *req.Farmer
		if p.FarmName == "" || p.Location == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "farm name and location are required"})
		}
		if p.FarmSize <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "farm size must be a positive number"})
		}
		if len(p.CropTypes) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "select at least one crop type"})
		}
		p.UserID = uid
		if err := h.Users.UpdateFarmerProfile(ctx, p); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update profile failed"})
		}
	default:
		if userType != model.UserTypeResearcher {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "profile does not match account type"})
		}
		p := *req.Researcher
		if p.Institution == "" || p.Specialization == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "institution and specialization are required"})
		}
		if len(p.ResearchFocus) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "select at least one research focus"})
		}
		p.UserID = uid
		if err := h.Users.UpdateResearcherProfile(ctx, p); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update profile failed"})
		}
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": h.userView(ctx, u)})
}
