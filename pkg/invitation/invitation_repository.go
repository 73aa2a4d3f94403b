package invitation

import (
	"context"
	"errors"

	"canteen-backend/domain"
	"canteen-backend/entities"

	"gorm.io/gorm"
)

type (
	InvitationRepository interface {
		GetInvitationDetails(ctx context.Context, token string) (*entities.InvitationDetails, error)
		MarkInvitationAccepted(ctx context.Context, token string) error
		CreateInvitation(ctx context.Context, invitation *entities.Invitation) error
		GetCanteenName(ctx context.Context, canteenID string) (string, error)
		// ProvisionMember creates the identity and its profile together.
		ProvisionMember(ctx context.Context, user *entities.User, profile *entities.Profile) error
	}

	invitationRepository struct {
		db *gorm.DB
	}
)

func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) GetInvitationDetails(ctx context.Context, token string) (*entities.InvitationDetails, error) {
	var rows []entities.InvitationDetails
	if err := r.db.WithContext(ctx).
		Raw("SELECT * FROM get_invitation_details_by_token(?)", token).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *invitationRepository) MarkInvitationAccepted(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Exec("SELECT mark_invitation_accepted(?)", token).Error
}

func (r *invitationRepository) CreateInvitation(ctx context.Context, invitation *entities.Invitation) error {
	return r.db.WithContext(ctx).Create(invitation).Error
}

func (r *invitationRepository) GetCanteenName(ctx context.Context, canteenID string) (string, error) {
	var canteen entities.Canteen
	if err := r.db.WithContext(ctx).Select("name").Where("id = ?", canteenID).First(&canteen).Error; err != nil {
		return "", err
	}
	return canteen.Name, nil
}

func (r *invitationRepository) ProvisionMember(ctx context.Context, user *entities.User, profile *entities.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrEmailAlreadyExists
			}
			return err
		}
		profile.UserID = user.ID
		if err := tx.Omit("Canteen").Create(profile).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrProfileAlreadyExists
			}
			return err
		}
		return nil
	})
}
