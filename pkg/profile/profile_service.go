package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"canteen-backend/domain"
	"canteen-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ProfileService interface {
		// Resolve returns the profile linked to the identity, creating an
		// unprovisioned owner profile the first time the identity is seen.
		Resolve(ctx context.Context, identity domain.Identity) (*entities.Profile, error)
		GetProfile(ctx context.Context, session domain.Session) (domain.ProfileResponse, error)
		UpdateOwnProfile(ctx context.Context, session domain.Session, req domain.UpdateProfileRequest) (domain.ProfileResponse, error)
	}

	profileService struct {
		profileRepository ProfileRepository
	}
)

func NewProfileService(profileRepository ProfileRepository) ProfileService {
	return &profileService{
		profileRepository: profileRepository,
	}
}

func (s *profileService) Resolve(ctx context.Context, identity domain.Identity) (*entities.Profile, error) {
	if identity.UserID == "" {
		return nil, fmt.Errorf("%w: %w", domain.ErrProfileResolution, domain.ErrUnauthenticated)
	}
	userID, err := uuid.Parse(identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrProfileResolution, domain.ErrParseUUID)
	}

	profile, err := s.profileRepository.GetProfileByUserID(ctx, identity.UserID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %w", domain.ErrProfileResolution, err)
	}

	name := strings.TrimSpace(identity.FullName)
	if name == "" {
		name = domain.DefaultDisplayName
	}
	profile = &entities.Profile{
		ID:       uuid.New(),
		UserID:   userID,
		Email:    identity.Email,
		FullName: name,
		Role:     domain.RoleOwner,
		IsActive: true,
	}
	if err := s.profileRepository.CreateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrProfileResolution, err)
	}

	created, err := s.profileRepository.GetProfileByUserID(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrProfileResolution, err)
	}
	return created, nil
}

func (s *profileService) GetProfile(ctx context.Context, session domain.Session) (domain.ProfileResponse, error) {
	profile, err := s.profileRepository.GetProfileByUserID(ctx, session.Identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProfileResponse{}, domain.ErrProfileNotFound
		}
		return domain.ProfileResponse{}, err
	}
	return ToProfileResponse(profile), nil
}

func (s *profileService) UpdateOwnProfile(ctx context.Context, session domain.Session, req domain.UpdateProfileRequest) (domain.ProfileResponse, error) {
	profile, err := s.profileRepository.GetProfileByUserID(ctx, session.Identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProfileResponse{}, domain.ErrProfileNotFound
		}
		return domain.ProfileResponse{}, err
	}

	profile.FullName = strings.TrimSpace(req.FullName)
	profile.Phone = strings.TrimSpace(req.Phone)
	if err := s.profileRepository.UpdateProfile(ctx, profile); err != nil {
		return domain.ProfileResponse{}, err
	}
	return ToProfileResponse(profile), nil
}

func ToProfileResponse(profile *entities.Profile) domain.ProfileResponse {
	res := domain.ProfileResponse{
		ID:        profile.ID.String(),
		UserID:    profile.UserID.String(),
		Email:     profile.Email,
		FullName:  profile.FullName,
		Role:      profile.Role,
		IsActive:  profile.IsActive,
		Phone:     profile.Phone,
		CreatedAt: profile.CreatedAt,
	}
	if profile.CanteenID != nil {
		res.CanteenID = profile.CanteenID.String()
	}
	if profile.Canteen != nil {
		res.Canteen = &domain.CanteenSummary{
			ID:      profile.Canteen.ID.String(),
			Name:    profile.Canteen.Name,
			Address: profile.Canteen.Address,
		}
	}
	return res
}

// NewSession builds the per-request session context from a resolved profile.
func NewSession(sessionID string, identity domain.Identity, profile *entities.Profile) domain.Session {
	session := domain.Session{
		ID:        sessionID,
		Identity:  identity,
		ProfileID: profile.ID.String(),
		Role:      profile.Role,
		IsActive:  profile.IsActive,
	}
	if profile.CanteenID != nil {
		session.CanteenID = profile.CanteenID.String()
	}
	return session
}
