package auth_controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository"
	"github.com/waterlife-shop/waterlife-backend/services"
	"github.com/waterlife-shop/waterlife-backend/utils"
)

const (
	stateCookie   = "oauth_state"
	stateMaxAge   = 10 * 60
	googleSuccess = "/konto"
	googleFailure = "/logowanie?error=google"
)

// OIDCIdentity implements GoogleIdentity on top of the discovered Google
// provider.
type OIDCIdentity struct {
	*config.GoogleOAuth
}

func (g OIDCIdentity) AuthCodeURL(state string) string {
	return g.Config.AuthCodeURL(state)
}

func (g OIDCIdentity) Identify(ctx context.Context, code string) (*models.GoogleUserInfo, error) {
	token, err := g.Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}
	rawID, ok := token.Extra("id_token").(string)
	if !ok || rawID == "" {
		return nil, errors.New("token response has no id_token")
	}
	idToken, err := g.Verifier.Verify(ctx, rawID)
	if err != nil {
		return nil, fmt.Errorf("verify id_token: %w", err)
	}
	var info models.GoogleUserInfo
	if err := idToken.Claims(&info); err != nil {
		return nil, fmt.Errorf("decode claims: %w", err)
	}
	return &info, nil
}

// GoogleLogin godoc
// @Summary Start Google sign-in
// @Description Stores a state token in a short-lived cookie and redirects to Google's consent page.
// @Tags Storefront - Auth
// @Success 307 "Redirect to Google"
// @Failure 404 {object} models.ApiResponse "Google sign-in not configured"
// @Router /auth/google [get]
func (h *Handler) GoogleLogin(c *gin.Context) {
	if h.google == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Logowanie przez Google jest niedostępne"))
		return
	}
	state, err := services.GenerateToken()
	if err != nil {
		h.logger.Error("state generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się rozpocząć logowania"))
		return
	}
	utils.SetCookie(c, stateCookie, state, stateMaxAge, h.opts.SecureCookies)
	c.Redirect(http.StatusTemporaryRedirect, h.google.AuthCodeURL(state))
}

// GoogleCallback godoc
// @Summary Google sign-in callback
// @Description Checks the state, verifies the ID token, links or creates the account, sets the auth cookie and redirects to the storefront.
// @Tags Storefront - Auth
// @Param state query string true "State token"
// @Param code query string true "Authorization code"
// @Success 307 "Redirect to the storefront account page"
// @Router /auth/google/callback [get]
func (h *Handler) GoogleCallback(c *gin.Context) {
	if h.google == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Logowanie przez Google jest niedostępne"))
		return
	}

	saved, err := c.Cookie(stateCookie)
	utils.ClearCookie(c, stateCookie, h.opts.SecureCookies)
	if err != nil || saved == "" || c.Query("state") != saved {
		h.logger.Warn("google state mismatch")
		h.redirect(c, googleFailure)
		return
	}
	code := c.Query("code")
	if code == "" {
		h.redirect(c, googleFailure)
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	info, err := h.google.Identify(ctx, code)
	if err != nil {
		h.logger.Warn("google identification failed", zap.Error(err))
		h.redirect(c, googleFailure)
		return
	}
	if info.Sub == "" || info.Email == "" || !info.EmailVerified {
		h.logger.Warn("google account rejected", zap.String("sub", info.Sub), zap.Bool("email_verified", info.EmailVerified))
		h.redirect(c, googleFailure)
		return
	}

	user, err := h.linkGoogleUser(ctx, info)
	if err != nil {
		h.logger.Error("google user link failed", zap.Error(err))
		h.redirect(c, googleFailure)
		return
	}
	if _, err := h.signIn(c, ctx, user); err != nil {
		h.logger.Error("token generation failed", zap.Error(err))
		h.redirect(c, googleFailure)
		return
	}
	h.redirect(c, googleSuccess)
}

// linkGoogleUser finds the account by Google id, then by email (attaching
// the Google id), and creates one otherwise.
func (h *Handler) linkGoogleUser(ctx context.Context, info *models.GoogleUserInfo) (*models.User, error) {
	user, err := h.users.GetByGoogleID(ctx, info.Sub)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	sub := info.Sub
	var avatar *string
	if info.Picture != "" {
		avatar = &info.Picture
	}

	user, err = h.users.GetByEmail(ctx, info.Email)
	switch {
	case err == nil:
		user.GoogleID = &sub
		if user.Avatar == nil {
			user.Avatar = avatar
		}
		if err := h.users.Update(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	first, last := info.GivenName, info.FamilyName
	if first == "" {
		first, last, _ = strings.Cut(info.Name, " ")
	}
	user = &models.User{
		Email:     info.Email,
		FirstName: first,
		LastName:  last,
		GoogleID:  &sub,
		Provider:  models.ProviderGoogle,
		Avatar:    avatar,
	}
	if err := h.users.Create(ctx, user); err != nil {
		return nil, err
	}
	h.logger.Info("user registered via google", zap.String("user_id", user.ID.String()))
	return user, nil
}

func (h *Handler) redirect(c *gin.Context, path string) {
	c.Redirect(http.StatusTemporaryRedirect, strings.TrimRight(h.opts.FrontendURL, "/")+path)
}
