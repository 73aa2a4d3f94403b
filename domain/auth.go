package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessSignUp         = "sign up successful, please check your email to confirm your account"
	MessageSuccessSignIn         = "signed in successfully"
	MessageSuccessSignOut        = "signed out successfully"
	MessageSuccessRefreshSession = "session refreshed successfully"
	MessageSuccessConfirmEmail   = "email confirmed successfully"
	MessageSuccessGetSession     = "session retrieved successfully"
	MessageSuccessGetUser        = "user retrieved successfully"

	MessageFailedSignUp         = "sign up failed"
	MessageFailedSignIn         = "sign in failed"
	MessageFailedSignOut        = "sign out failed"
	MessageFailedRefreshSession = "failed to refresh session"
	MessageFailedConfirmEmail   = "failed to confirm email"
	MessageFailedGetUser        = "failed to retrieve user"
	MessageFailedOAuth          = "oauth sign in failed"

	ErrInvalidCredentials   = errors.New("invalid login credentials")
	ErrEmailNotConfirmed    = errors.New("email not confirmed")
	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrUserNotFound         = errors.New("user not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionRevoked       = errors.New("session has been revoked")
	ErrOAuthStateMismatch   = errors.New("oauth state mismatch")
	ErrOAuthNotConfigured   = errors.New("oauth provider is not configured")
	ErrOAuthEmailUnverified = errors.New("oauth provider did not return a verified email")
)

type (
	SignUpRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
		FullName string `json:"full_name" validate:"required"`
	}

	SignInRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	// UserMetadata is attached to an identity at sign-up.
	UserMetadata struct {
		FullName string `json:"full_name"`
		Role     Role   `json:"role,omitempty"`
	}

	SessionResponse struct {
		AccessToken string       `json:"access_token"`
		TokenType   string       `json:"token_type"`
		ExpiresAt   time.Time    `json:"expires_at"`
		User        UserResponse `json:"user"`
	}

	UserResponse struct {
		ID               string       `json:"id"`
		Email            string       `json:"email"`
		FullName         string       `json:"full_name"`
		Provider         string       `json:"provider"`
		EmailConfirmedAt *time.Time   `json:"email_confirmed_at,omitempty"`
		Metadata         UserMetadata `json:"user_metadata"`
		CreatedAt        time.Time    `json:"created_at"`
	}

	OAuthRedirectResponse struct {
		URL string `json:"url"`
	}
)
