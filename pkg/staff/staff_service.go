package staff

import (
	"context"
	"errors"
	"strings"

	"canteen-backend/domain"
	"canteen-backend/entities"
	"canteen-backend/pkg/profile"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	StaffService interface {
		ListStaff(ctx context.Context, session domain.Session, filter domain.StaffFilter) ([]domain.ProfileResponse, error)
		UpdateStaff(ctx context.Context, session domain.Session, id string, req domain.UpdateStaffRequest) (domain.ProfileResponse, error)
		SetStaffActive(ctx context.Context, session domain.Session, id string, active bool) (domain.ProfileResponse, error)
	}

	staffService struct {
		staffRepository StaffRepository
	}
)

func NewStaffService(staffRepository StaffRepository) StaffService {
	return &staffService{staffRepository: staffRepository}
}

func canManage(session domain.Session) error {
	if !session.HasCanteen() {
		return domain.ErrCanteenNotSetUp
	}
	if session.Role != domain.RoleOwner && session.Role != domain.RoleManager {
		return domain.ErrPermissionDenied
	}
	return nil
}

func (s *staffService) ListStaff(ctx context.Context, session domain.Session, filter domain.StaffFilter) ([]domain.ProfileResponse, error) {
	if err := canManage(session); err != nil {
		return nil, err
	}
	if filter.Role != "" && !filter.Role.Valid() {
		return nil, domain.ErrValidation
	}
	filter.Search = strings.TrimSpace(filter.Search)

	members, err := s.staffRepository.GetStaff(ctx, session.CanteenID, filter)
	if err != nil {
		return nil, err
	}
	res := make([]domain.ProfileResponse, 0, len(members))
	for _, member := range members {
		res = append(res, profile.ToProfileResponse(member))
	}
	return res, nil
}

func (s *staffService) getMember(ctx context.Context, session domain.Session, id string) (*entities.Profile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrStaffNotFound
	}
	member, err := s.staffRepository.GetStaffByID(ctx, session.CanteenID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStaffNotFound
		}
		return nil, err
	}
	return member, nil
}

func (s *staffService) UpdateStaff(ctx context.Context, session domain.Session, id string, req domain.UpdateStaffRequest) (domain.ProfileResponse, error) {
	if err := canManage(session); err != nil {
		return domain.ProfileResponse{}, err
	}
	if !req.Role.Valid() {
		return domain.ProfileResponse{}, domain.ErrValidation
	}
	member, err := s.getMember(ctx, session, id)
	if err != nil {
		return domain.ProfileResponse{}, err
	}

	if session.Role != domain.RoleOwner && (member.Role == domain.RoleOwner || req.Role == domain.RoleOwner) {
		return domain.ProfileResponse{}, domain.ErrOnlyOwnerAssignsRole
	}
	if member.ID.String() == session.ProfileID && req.Role != member.Role {
		return domain.ProfileResponse{}, domain.ErrCannotChangeOwnRole
	}

	member.FullName = strings.TrimSpace(req.FullName)
	member.Phone = strings.TrimSpace(req.Phone)
	member.Role = req.Role
	if err := s.staffRepository.UpdateStaff(ctx, member); err != nil {
		return domain.ProfileResponse{}, err
	}
	return profile.ToProfileResponse(member), nil
}

func (s *staffService) SetStaffActive(ctx context.Context, session domain.Session, id string, active bool) (domain.ProfileResponse, error) {
	if err := canManage(session); err != nil {
		return domain.ProfileResponse{}, err
	}
	member, err := s.getMember(ctx, session, id)
	if err != nil {
		return domain.ProfileResponse{}, err
	}
	if member.ID.String() == session.ProfileID && !active {
		return domain.ProfileResponse{}, domain.ErrCannotDeactivateSelf
	}
	if session.Role != domain.RoleOwner && member.Role == domain.RoleOwner {
		return domain.ProfileResponse{}, domain.ErrOnlyOwnerAssignsRole
	}

	if err := s.staffRepository.SetStaffActive(ctx, member.ID.String(), active); err != nil {
		return domain.ProfileResponse{}, err
	}
	member.IsActive = active
	return profile.ToProfileResponse(member), nil
}
