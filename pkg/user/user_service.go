package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"canteen-backend/domain"
	"canteen-backend/entities"
	"canteen-backend/internal/utils/mailing"
	"canteen-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"

	purposeConfirmEmail = "confirm_email"
	purposeOAuthState   = "oauth_state"
	confirmEmailTTL     = 24 * time.Hour
	oauthStateTTL       = 10 * time.Minute
)

type (
	UserService interface {
		SignUp(ctx context.Context, req domain.SignUpRequest) (domain.UserResponse, error)
		ConfirmEmail(ctx context.Context, token string) error
		SendConfirmationEmail(ctx context.Context, user *entities.User) error
		SignIn(ctx context.Context, req domain.SignInRequest) (domain.SessionResponse, error)
		SignOut(ctx context.Context, sessionID string) error
		RefreshSession(ctx context.Context, sessionID string) (domain.SessionResponse, error)
		Authenticate(ctx context.Context, token string) (string, domain.Identity, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)

		OAuthRedirectURL(ctx context.Context) (string, error)
		OAuthCallback(ctx context.Context, state, code string) (domain.SessionResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		mailer         mailing.Mailer
		oauth          OAuthProvider
		appURL         string
		now            func() time.Time
	}
)

func NewUserService(
	userRepository UserRepository,
	jwtService jwt.JWTService,
	mailer mailing.Mailer,
	oauth OAuthProvider,
	appURL string,
) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		mailer:         mailer,
		oauth:          oauth,
		appURL:         appURL,
		now:            time.Now,
	}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *userService) SignUp(ctx context.Context, req domain.SignUpRequest) (domain.UserResponse, error) {
	hash, err := HashPassword(req.Password)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user := &entities.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         domain.RoleOwner,
		Provider:     ProviderEmail,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}

	if err := s.SendConfirmationEmail(ctx, user); err != nil {
		log.Errorf("failed to send confirmation email to %s: %v", user.Email, err)
	}

	return toUserResponse(user), nil
}

func (s *userService) SendConfirmationEmail(_ context.Context, user *entities.User) error {
	token, err := s.jwtService.GenerateActionToken(purposeConfirmEmail, map[string]any{
		"user_id": user.ID.String(),
		"email":   user.Email,
	}, confirmEmailTTL)
	if err != nil {
		return err
	}
	body := mailing.ConfirmEmailBody(s.appURL, user.FullName, token)
	return s.mailer.SendMail(user.Email, "Confirm your email", body)
}

func (s *userService) ConfirmEmail(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateActionToken(token, purposeConfirmEmail)
	if err != nil {
		return err
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return domain.ErrTokenInvalid
	}
	if _, err := s.userRepository.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return s.userRepository.ConfirmEmail(ctx, userID, s.now())
}

func (s *userService) SignIn(ctx context.Context, req domain.SignInRequest) (domain.SessionResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SessionResponse{}, domain.ErrInvalidCredentials
		}
		return domain.SessionResponse{}, err
	}
	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return domain.SessionResponse{}, domain.ErrInvalidCredentials
	}
	if user.EmailConfirmedAt == nil {
		return domain.SessionResponse{}, domain.ErrEmailNotConfirmed
	}
	return s.startSession(ctx, user)
}

func (s *userService) startSession(ctx context.Context, user *entities.User) (domain.SessionResponse, error) {
	session := &entities.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(jwt.SessionTTL),
	}
	if err := s.userRepository.CreateSession(ctx, session); err != nil {
		return domain.SessionResponse{}, err
	}
	return s.issue(user, session.ID.String(), session.ExpiresAt)
}

func (s *userService) issue(user *entities.User, sessionID string, expiresAt time.Time) (domain.SessionResponse, error) {
	token, err := s.jwtService.GenerateSessionToken(user.ID.String(), sessionID, expiresAt)
	if err != nil {
		return domain.SessionResponse{}, err
	}
	return domain.SessionResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        toUserResponse(user),
	}, nil
}

func (s *userService) SignOut(ctx context.Context, sessionID string) error {
	return s.userRepository.RevokeSession(ctx, sessionID, s.now())
}

func (s *userService) RefreshSession(ctx context.Context, sessionID string) (domain.SessionResponse, error) {
	session, err := s.activeSession(ctx, sessionID)
	if err != nil {
		return domain.SessionResponse{}, err
	}
	expiresAt := s.now().Add(jwt.SessionTTL)
	if err := s.userRepository.ExtendSession(ctx, sessionID, expiresAt); err != nil {
		return domain.SessionResponse{}, err
	}
	return s.issue(session.User, sessionID, expiresAt)
}

// Authenticate resolves a bearer token into its session id and identity.
func (s *userService) Authenticate(ctx context.Context, token string) (string, domain.Identity, error) {
	claims, err := s.jwtService.ParseSessionToken(token)
	if err != nil {
		return "", domain.Identity{}, err
	}
	session, err := s.activeSession(ctx, claims.SessionID)
	if err != nil {
		return "", domain.Identity{}, err
	}
	if session.UserID.String() != claims.UserID {
		return "", domain.Identity{}, domain.ErrTokenInvalid
	}
	return session.ID.String(), domain.Identity{
		UserID:   session.User.ID.String(),
		Email:    session.User.Email,
		FullName: session.User.FullName,
	}, nil
}

func (s *userService) activeSession(ctx context.Context, sessionID string) (*entities.Session, error) {
	session, err := s.userRepository.GetSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	if session.RevokedAt != nil {
		return nil, domain.ErrSessionRevoked
	}
	if !s.now().Before(session.ExpiresAt) {
		return nil, domain.ErrTokenExpired
	}
	if session.User == nil {
		return nil, domain.ErrUserNotFound
	}
	return session, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (s *userService) OAuthRedirectURL(_ context.Context) (string, error) {
	if s.oauth == nil {
		return "", domain.ErrOAuthNotConfigured
	}
	state, err := s.jwtService.GenerateActionToken(purposeOAuthState, map[string]any{
		"nonce": uuid.NewString(),
	}, oauthStateTTL)
	if err != nil {
		return "", err
	}
	return s.oauth.AuthCodeURL(state), nil
}

func (s *userService) OAuthCallback(ctx context.Context, state, code string) (domain.SessionResponse, error) {
	if s.oauth == nil {
		return domain.SessionResponse{}, domain.ErrOAuthNotConfigured
	}
	if _, err := s.jwtService.ValidateActionToken(state, purposeOAuthState); err != nil {
		return domain.SessionResponse{}, domain.ErrOAuthStateMismatch
	}

	info, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return domain.SessionResponse{}, err
	}
	if info.Email == "" || !info.EmailVerified {
		return domain.SessionResponse{}, domain.ErrOAuthEmailUnverified
	}

	user, err := s.userRepository.GetUserByEmail(ctx, info.Email)
	switch {
	case err == nil:
		if user.EmailConfirmedAt == nil {
			// the provider vouched for the address
			if err := s.userRepository.ConfirmEmail(ctx, user.ID.String(), s.now()); err != nil {
				return domain.SessionResponse{}, err
			}
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		confirmed := s.now()
		user = &entities.User{
			ID:               uuid.New(),
			Email:            strings.ToLower(info.Email),
			FullName:         info.Name,
			Role:             domain.RoleOwner,
			Provider:         ProviderGoogle,
			EmailConfirmedAt: &confirmed,
		}
		if err := s.userRepository.CreateUser(ctx, user); err != nil {
			return domain.SessionResponse{}, err
		}
	default:
		return domain.SessionResponse{}, err
	}

	return s.startSession(ctx, user)
}

func toUserResponse(user *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:               user.ID.String(),
		Email:            user.Email,
		FullName:         user.FullName,
		Provider:         user.Provider,
		EmailConfirmedAt: user.EmailConfirmedAt,
		Metadata: domain.UserMetadata{
			FullName: user.FullName,
			Role:     user.Role,
		},
		CreatedAt: user.CreatedAt,
	}
}
