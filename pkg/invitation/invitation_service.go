package invitation

import (
	"context"
	"errors"
	"strings"
	"time"

	"canteen-backend/domain"
	"canteen-backend/entities"
	"canteen-backend/internal/utils/mailing"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// ConfirmationSender mails the identity confirmation link to a new member.
	ConfirmationSender interface {
		SendConfirmationEmail(ctx context.Context, user *entities.User) error
	}

	PasswordHasher func(password string) (string, error)

	InvitationService interface {
		FetchInvitation(ctx context.Context, token string) (domain.InvitationResponse, error)
		AcceptInvitation(ctx context.Context, req domain.AcceptInvitationRequest) (domain.AcceptInvitationResponse, error)
		CreateInvitation(ctx context.Context, session domain.Session, req domain.CreateInvitationRequest) (domain.CreateInvitationResponse, error)
	}

	invitationService struct {
		invitationRepository InvitationRepository
		confirmation         ConfirmationSender
		mailer               mailing.Mailer
		hashPassword         PasswordHasher
		appURL               string
		now                  func() time.Time
	}
)

func NewInvitationService(
	invitationRepository InvitationRepository,
	confirmation ConfirmationSender,
	mailer mailing.Mailer,
	hashPassword PasswordHasher,
	appURL string,
) InvitationService {
	return &invitationService{
		invitationRepository: invitationRepository,
		confirmation:         confirmation,
		mailer:               mailer,
		hashPassword:         hashPassword,
		appURL:               appURL,
		now:                  time.Now,
	}
}

func (s *invitationService) FetchInvitation(ctx context.Context, token string) (domain.InvitationResponse, error) {
	details, err := s.validate(ctx, token)
	if err != nil {
		return domain.InvitationResponse{}, err
	}
	return domain.InvitationResponse{
		Email:     details.Email,
		Role:      details.Role,
		CanteenID: details.CanteenID.String(),
		Status:    details.Status,
		ExpiresAt: details.ExpiresAt,
	}, nil
}

func (s *invitationService) validate(ctx context.Context, token string) (*entities.InvitationDetails, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrInvitationMissing
	}
	details, err := s.invitationRepository.GetInvitationDetails(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvitationNotFound
		}
		return nil, err
	}
	if details.Status != domain.InvitationPending {
		return nil, &domain.InvitationConsumedError{Status: details.Status}
	}
	if !s.now().Before(details.ExpiresAt) {
		return nil, domain.ErrInvitationExpired
	}
	return details, nil
}

// AcceptInvitation enrols the invitee. The identity and profile are written in
// one transaction; marking the token accepted runs afterwards and its failure
// only sets BookkeepingPending.
func (s *invitationService) AcceptInvitation(ctx context.Context, req domain.AcceptInvitationRequest) (domain.AcceptInvitationResponse, error) {
	details, err := s.validate(ctx, req.Token)
	if err != nil {
		return domain.AcceptInvitationResponse{}, err
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return domain.AcceptInvitationResponse{}, err
	}

	fullName := strings.TrimSpace(req.FullName)
	canteenID := details.CanteenID
	user := &entities.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(details.Email)),
		PasswordHash: hash,
		FullName:     fullName,
		Role:         details.Role,
		Provider:     "email",
	}
	profile := &entities.Profile{
		ID:        uuid.New(),
		Email:     user.Email,
		FullName:  fullName,
		Role:      details.Role,
		CanteenID: &canteenID,
		IsActive:  true,
	}
	if err := s.invitationRepository.ProvisionMember(ctx, user, profile); err != nil {
		return domain.AcceptInvitationResponse{}, err
	}

	res := domain.AcceptInvitationResponse{
		UserID:    user.ID.String(),
		ProfileID: profile.ID.String(),
		Email:     user.Email,
		Role:      profile.Role,
		CanteenID: canteenID.String(),
	}

	if err := s.invitationRepository.MarkInvitationAccepted(ctx, strings.TrimSpace(req.Token)); err != nil {
		log.Errorf("member %s enrolled but invitation could not be marked accepted: %v", user.Email, err)
		res.BookkeepingPending = true
	}

	if err := s.confirmation.SendConfirmationEmail(ctx, user); err != nil {
		log.Warnf("failed to send confirmation email to %s: %v", user.Email, err)
	}

	return res, nil
}

func (s *invitationService) CreateInvitation(ctx context.Context, session domain.Session, req domain.CreateInvitationRequest) (domain.CreateInvitationResponse, error) {
	if !session.HasCanteen() {
		return domain.CreateInvitationResponse{}, domain.ErrCanteenNotSetUp
	}
	if session.Role != domain.RoleOwner && session.Role != domain.RoleManager {
		return domain.CreateInvitationResponse{}, domain.ErrPermissionDenied
	}
	if !req.Role.Valid() {
		return domain.CreateInvitationResponse{}, domain.ErrValidation
	}
	if req.Role == domain.RoleOwner && session.Role != domain.RoleOwner {
		return domain.CreateInvitationResponse{}, domain.ErrOnlyOwnerAssignsRole
	}

	canteenID, err := uuid.Parse(session.CanteenID)
	if err != nil {
		return domain.CreateInvitationResponse{}, domain.ErrParseUUID
	}
	invitedBy, err := uuid.Parse(session.Identity.UserID)
	if err != nil {
		return domain.CreateInvitationResponse{}, domain.ErrParseUUID
	}

	invitation := &entities.Invitation{
		ID:        uuid.New(),
		Token:     strings.ReplaceAll(uuid.NewString(), "-", "") + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Role:      req.Role,
		CanteenID: canteenID,
		InvitedBy: invitedBy,
		Status:    domain.InvitationPending,
		ExpiresAt: s.now().Add(domain.InvitationTTL),
	}
	if err := s.invitationRepository.CreateInvitation(ctx, invitation); err != nil {
		return domain.CreateInvitationResponse{}, err
	}

	res := domain.CreateInvitationResponse{
		ID:        invitation.ID.String(),
		Email:     invitation.Email,
		Role:      invitation.Role,
		ExpiresAt: invitation.ExpiresAt,
	}

	canteenName, err := s.invitationRepository.GetCanteenName(ctx, session.CanteenID)
	if err != nil {
		log.Warnf("failed to load canteen name for invitation %s: %v", invitation.ID, err)
		canteenName = "your canteen"
	}
	body := mailing.InvitationBody(s.appURL, canteenName, string(invitation.Role), invitation.Token)
	if err := s.mailer.SendMail(invitation.Email, "You're invited to join "+canteenName, body); err != nil {
		log.Errorf("failed to send invitation email to %s: %v", invitation.Email, err)
		return res, nil
	}
	res.EmailSent = true
	return res, nil
}
