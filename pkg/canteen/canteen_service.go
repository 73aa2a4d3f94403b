package canteen

import (
	"context"
	"errors"
	"strings"
	"time"

	"canteen-backend/domain"
	"canteen-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CanteenService interface {
		CreateCanteen(ctx context.Context, session domain.Session, req domain.CanteenRequest) (domain.CanteenResponse, error)
		GetCanteen(ctx context.Context, session domain.Session) (domain.CanteenResponse, error)
		UpdateCanteen(ctx context.Context, session domain.Session, req domain.UpdateCanteenRequest) (domain.CanteenResponse, error)
		DeleteCanteen(ctx context.Context, session domain.Session) error
		SeedSampleData(ctx context.Context, session domain.Session) (domain.CanteenResponse, error)
	}

	canteenService struct {
		canteenRepository CanteenRepository
		now               func() time.Time
	}
)

func NewCanteenService(canteenRepository CanteenRepository) CanteenService {
	return &canteenService{
		canteenRepository: canteenRepository,
		now:               time.Now,
	}
}

func requireUnprovisionedOwner(session domain.Session) (uuid.UUID, error) {
	if session.Role != domain.RoleOwner {
		return uuid.Nil, domain.ErrOnlyOwnerCreatesShops
	}
	if session.HasCanteen() {
		return uuid.Nil, domain.ErrCanteenAlreadyLinked
	}
	ownerID, err := uuid.Parse(session.Identity.UserID)
	if err != nil {
		return uuid.Nil, domain.ErrParseUUID
	}
	return ownerID, nil
}

func requireManager(session domain.Session) error {
	if !session.HasCanteen() {
		return domain.ErrCanteenNotSetUp
	}
	if session.Role != domain.RoleOwner && session.Role != domain.RoleManager {
		return domain.ErrPermissionDenied
	}
	return nil
}

func (s *canteenService) CreateCanteen(ctx context.Context, session domain.Session, req domain.CanteenRequest) (domain.CanteenResponse, error) {
	ownerID, err := requireUnprovisionedOwner(session)
	if err != nil {
		return domain.CanteenResponse{}, err
	}

	canteen := &entities.Canteen{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		OwnerID:     ownerID,
		IsActive:    true,
	}
	if err := s.canteenRepository.CreateCanteenForOwner(ctx, canteen, session.ProfileID); err != nil {
		return domain.CanteenResponse{}, err
	}
	return ToCanteenResponse(canteen), nil
}

func (s *canteenService) getCanteen(ctx context.Context, id string) (*entities.Canteen, error) {
	canteen, err := s.canteenRepository.GetCanteenByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCanteenNotFound
		}
		return nil, err
	}
	return canteen, nil
}

func (s *canteenService) GetCanteen(ctx context.Context, session domain.Session) (domain.CanteenResponse, error) {
	if !session.HasCanteen() {
		return domain.CanteenResponse{}, domain.ErrCanteenNotSetUp
	}
	canteen, err := s.getCanteen(ctx, session.CanteenID)
	if err != nil {
		return domain.CanteenResponse{}, err
	}
	return ToCanteenResponse(canteen), nil
}

func (s *canteenService) UpdateCanteen(ctx context.Context, session domain.Session, req domain.UpdateCanteenRequest) (domain.CanteenResponse, error) {
	if err := requireManager(session); err != nil {
		return domain.CanteenResponse{}, err
	}
	canteen, err := s.getCanteen(ctx, session.CanteenID)
	if err != nil {
		return domain.CanteenResponse{}, err
	}

	canteen.Name = strings.TrimSpace(req.Name)
	canteen.Description = req.Description
	canteen.Address = req.Address
	canteen.Phone = req.Phone
	if req.IsActive != nil {
		canteen.IsActive = *req.IsActive
	}
	if err := s.canteenRepository.UpdateCanteen(ctx, canteen); err != nil {
		return domain.CanteenResponse{}, err
	}
	return ToCanteenResponse(canteen), nil
}

func (s *canteenService) DeleteCanteen(ctx context.Context, session domain.Session) error {
	if err := requireManager(session); err != nil {
		return err
	}
	if err := s.canteenRepository.DeleteCanteen(ctx, session.CanteenID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCanteenNotFound
		}
		return err
	}
	return nil
}

func (s *canteenService) SeedSampleData(ctx context.Context, session domain.Session) (domain.CanteenResponse, error) {
	ownerID, err := requireUnprovisionedOwner(session)
	if err != nil {
		return domain.CanteenResponse{}, err
	}
	name := strings.TrimSpace(session.Identity.FullName)
	if name == "" {
		name = domain.DefaultDisplayName
	}

	data := NewSampleData(ownerID, name, s.now())
	if err := s.canteenRepository.SeedCanteen(ctx, session.ProfileID, data); err != nil {
		return domain.CanteenResponse{}, err
	}
	return ToCanteenResponse(data.Canteen), nil
}

func ToCanteenResponse(canteen *entities.Canteen) domain.CanteenResponse {
	return domain.CanteenResponse{
		ID:          canteen.ID.String(),
		Name:        canteen.Name,
		Description: canteen.Description,
		Address:     canteen.Address,
		Phone:       canteen.Phone,
		OwnerID:     canteen.OwnerID.String(),
		IsActive:    canteen.IsActive,
		CreatedAt:   canteen.CreatedAt,
	}
}
