package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/authenticore/registry/internal/config"
	"github.com/authenticore/registry/internal/model"
	"github.com/authenticore/registry/internal/repository"
	"github.com/authenticore/registry/internal/schema"
	"github.com/authenticore/registry/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Store  *repository.Store
	Tokens *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, s *repository.Store, t *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Store: s, Tokens: t}
}

// ----- DTOs -----

type walletReq struct {
	WalletAddress string `json:"walletAddress"`
}
type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// userPart is the outward shape of a user. The password hash is stripped
// here, at the boundary, and nowhere else.
type userPart struct {
	ID              uint64             `json:"id"`
	Username        string             `json:"username"`
	CompanyName     string             `json:"companyName,omitempty"`
	Role            model.Role         `json:"role"`
	Permissions     []model.Permission `json:"permissions"`
	WalletAddress   string             `json:"walletAddress,omitempty"`
	Email           string             `json:"email,omitempty"`
	PhoneNumber     string             `json:"phoneNumber,omitempty"`
	ProfileImageURL string             `json:"profileImageUrl,omitempty"`
	IsVerified      bool               `json:"isVerified"`
	LastLogin       *time.Time         `json:"lastLogin,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       *time.Time         `json:"updatedAt,omitempty"`
}

type authResp struct {
	User    userPart  `json:"user"`
	Message string    `json:"message"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

func toUserPart(u model.User) userPart {
	return userPart{
		ID:              u.ID,
		Username:        u.Username,
		CompanyName:     u.CompanyName,
		Role:            u.Role,
		Permissions:     u.Permissions,
		WalletAddress:   u.WalletAddress,
		Email:           u.Email,
		PhoneNumber:     u.PhoneNumber,
		ProfileImageURL: u.ProfileImageURL,
		IsVerified:      u.IsVerified,
		LastLogin:       u.LastLogin,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// Register validates the input, creates the user and returns it together
// with a fresh token pair. Duplicate usernames yield 409.
func (h *AuthHandler) Register(c echo.Context) error {
	var req schema.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if errs := schema.ValidateRegister(&req); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid user data", "errors": errs})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create user"})
	}

	u, err := h.Store.CreateUser(repository.NewUser{
		Username:      req.Username,
		PasswordHash:  hash,
		CompanyName:   strings.TrimSpace(req.CompanyName),
		Role:          model.Role(req.Role),
		WalletAddress: strings.TrimSpace(req.WalletAddress),
		Email:         req.Email,
		PhoneNumber:   strings.TrimSpace(req.PhoneNumber),
	})
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return c.JSON(http.StatusConflict, echo.Map{"message": "Username already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create user"})
	}

	access, refresh, err := h.issueTokens(c, u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to issue tokens"})
	}
	return c.JSON(http.StatusCreated, authResp{
		User:    toUserPart(u),
		Message: "User registered successfully",
		Access:  access,
		Refresh: refresh,
	})
}

// Login verifies credentials and stamps LastLogin. A wrong password leaves
// LastLogin untouched.
func (h *AuthHandler) Login(c echo.Context) error {
	var req schema.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if errs := schema.ValidateLogin(&req); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid login data", "errors": errs})
	}

	u, err := h.Store.GetUserByUsername(req.Username)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid username or password"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid username or password"})
	}

	if err := h.Store.TouchLastLogin(u.ID); err != nil {
		slog.Warn("stamping last login failed", "user_id", u.ID, "err", err)
	} else if fresh, err := h.Store.GetUser(u.ID); err == nil {
		u = fresh // reload so the response carries lastLogin
	}

	access, refresh, err := h.issueTokens(c, u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to issue tokens"})
	}
	return c.JSON(http.StatusOK, authResp{
		User:    toUserPart(u),
		Message: "Login successful",
		Access:  access,
		Refresh: refresh,
	})
}

// Wallet resolves a user by wallet address. The wallet "connection" has no
// cryptographic backing; this is a plain lookup.
func (h *AuthHandler) Wallet(c echo.Context) error {
	var req walletReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.WalletAddress) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Wallet address is required"})
	}
	u, err := h.Store.GetUserByWalletAddress(strings.TrimSpace(req.WalletAddress))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found with this wallet address"})
	}
	return c.JSON(http.StatusOK, toUserPart(u))
}

// Refresh validates a refresh token by hash, revokes it and issues a new
// pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "refreshToken required"})
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx := c.Request().Context()
	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid refresh token"})
	}
	_ = h.Tokens.RevokeByHash(ctx, hash)

	u, err := h.Store.GetUser(userID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid refresh token"})
	}
	access, refresh, err := h.issueTokens(c, u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to issue tokens"})
	}
	return c.JSON(http.StatusOK, authResp{
		User:    toUserPart(u),
		Message: "Token refreshed",
		Access:  access,
		Refresh: refresh,
	})
}

// Logout revokes the presented refresh token.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "refreshToken required"})
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))
	ctx := c.Request().Context()
	if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid refresh token"})
	}
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me resolves the current user from an optional bearer token. Without a
// token (or with an invalid one) it answers {"user": null}, never an
// error; there is no session mechanism behind this endpoint.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, ok := bearerSubject(c, h.Cfg.JWTSecret)
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{"user": nil})
	}
	u, err := h.Store.GetUser(uid)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"user": nil})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": toUserPart(u)})
}

func (h *AuthHandler) issueTokens(c echo.Context, u model.User) (tokenPart, tokenPart, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, string(u.Role), h.Cfg.AccessTTLMin)
	if err != nil {
		return tokenPart{}, tokenPart{}, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return tokenPart{}, tokenPart{}, err
	}
	if err := h.Tokens.StoreRefresh(c.Request().Context(), u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return tokenPart{}, tokenPart{}, err
	}
	return tokenPart{Token: access.Token, Expires: access.Exp},
		tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
		nil
}

// bearerSubject parses an optional Authorization header and returns the
// subject claim. A missing or invalid token is not an error here; callers
// treat it as "not logged in".
func bearerSubject(c echo.Context, secret string) (uint64, bool) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return 0, false
	}
	raw := strings.TrimPrefix(auth, "Bearer ")
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	switch sub := claims["sub"].(type) {
	case float64:
		return uint64(sub), true
	case string:
		if n, err := strconv.ParseUint(sub, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
