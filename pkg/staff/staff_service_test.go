package staff

import (
	"context"
	"testing"

	"canteen-backend/domain"
	"canteen-backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeStaffRepository struct {
	members map[string]*entities.Profile
	writes  int
}

func (r *fakeStaffRepository) GetStaff(_ context.Context, canteenID string, filter domain.StaffFilter) ([]*entities.Profile, error) {
	var out []*entities.Profile
	for _, m := range r.members {
		if m.CanteenID == nil || m.CanteenID.String() != canteenID {
			continue
		}
		if filter.Role != "" && m.Role != filter.Role {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeStaffRepository) GetStaffByID(_ context.Context, canteenID, id string) (*entities.Profile, error) {
	m, ok := r.members[id]
	if !ok || m.CanteenID == nil || m.CanteenID.String() != canteenID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeStaffRepository) UpdateStaff(_ context.Context, profile *entities.Profile) error {
	r.writes++
	cp := *profile
	r.members[profile.ID.String()] = &cp
	return nil
}

func (r *fakeStaffRepository) SetStaffActive(_ context.Context, id string, active bool) error {
	r.writes++
	r.members[id].IsActive = active
	return nil
}

type staffFixture struct {
	repo    *fakeStaffRepository
	svc     StaffService
	canteen uuid.UUID
	owner   *entities.Profile
	manager *entities.Profile
	cashier *entities.Profile
}

func newStaffFixture() *staffFixture {
	f := &staffFixture{repo: &fakeStaffRepository{members: map[string]*entities.Profile{}}, canteen: uuid.New()}
	f.owner = f.add(domain.RoleOwner, "Priya")
	f.manager = f.add(domain.RoleManager, "Dev")
	f.cashier = f.add(domain.RoleCashier, "Meena")
	f.svc = NewStaffService(f.repo)
	return f
}

func (f *staffFixture) add(role domain.Role, name string) *entities.Profile {
	canteenID := f.canteen
	p := &entities.Profile{ID: uuid.New(), UserID: uuid.New(), FullName: name, Role: role, CanteenID: &canteenID, IsActive: true}
	f.repo.members[p.ID.String()] = p
	return p
}

func (f *staffFixture) session(p *entities.Profile) domain.Session {
	return domain.Session{
		Identity:  domain.Identity{UserID: p.UserID.String()},
		ProfileID: p.ID.String(),
		Role:      p.Role,
		CanteenID: f.canteen.String(),
		IsActive:  true,
	}
}

func TestListStaff(t *testing.T) {
	f := newStaffFixture()
	members, err := f.svc.ListStaff(context.Background(), f.session(f.manager), domain.StaffFilter{})
	require.NoError(t, err)
	assert.Len(t, members, 3)

	cashiers, err := f.svc.ListStaff(context.Background(), f.session(f.owner), domain.StaffFilter{Role: domain.RoleCashier})
	require.NoError(t, err)
	require.Len(t, cashiers, 1)
	assert.Equal(t, "Meena", cashiers[0].FullName)

	_, err = f.svc.ListStaff(context.Background(), f.session(f.cashier), domain.StaffFilter{})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestUpdateStaffRules(t *testing.T) {
	ctx := context.Background()
	f := newStaffFixture()

	res, err := f.svc.UpdateStaff(ctx, f.session(f.manager), f.cashier.ID.String(), domain.UpdateStaffRequest{FullName: "Meena K", Role: domain.RoleChef})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleChef, res.Role)

	_, err = f.svc.UpdateStaff(ctx, f.session(f.manager), f.cashier.ID.String(), domain.UpdateStaffRequest{FullName: "Meena", Role: domain.RoleOwner})
	assert.ErrorIs(t, err, domain.ErrOnlyOwnerAssignsRole)

	_, err = f.svc.UpdateStaff(ctx, f.session(f.manager), f.owner.ID.String(), domain.UpdateStaffRequest{FullName: "Priya", Role: domain.RoleOwner})
	assert.ErrorIs(t, err, domain.ErrOnlyOwnerAssignsRole)

	_, err = f.svc.UpdateStaff(ctx, f.session(f.manager), f.manager.ID.String(), domain.UpdateStaffRequest{FullName: "Dev", Role: domain.RoleCashier})
	assert.ErrorIs(t, err, domain.ErrCannotChangeOwnRole)

	_, err = f.svc.UpdateStaff(ctx, f.session(f.cashier), f.manager.ID.String(), domain.UpdateStaffRequest{FullName: "Dev", Role: domain.RoleCashier})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	_, err = f.svc.UpdateStaff(ctx, f.session(f.owner), f.manager.ID.String(), domain.UpdateStaffRequest{FullName: "Dev", Role: domain.RoleOwner})
	require.NoError(t, err)

	assert.Equal(t, 2, f.repo.writes)
}

func TestSetStaffActive(t *testing.T) {
	ctx := context.Background()
	f := newStaffFixture()

	res, err := f.svc.SetStaffActive(ctx, f.session(f.manager), f.cashier.ID.String(), false)
	require.NoError(t, err)
	assert.False(t, res.IsActive)
	assert.False(t, f.repo.members[f.cashier.ID.String()].IsActive)

	_, err = f.svc.SetStaffActive(ctx, f.session(f.owner), f.owner.ID.String(), false)
	assert.ErrorIs(t, err, domain.ErrCannotDeactivateSelf)

	_, err = f.svc.SetStaffActive(ctx, f.session(f.manager), f.owner.ID.String(), false)
	assert.ErrorIs(t, err, domain.ErrOnlyOwnerAssignsRole)

	_, err = f.svc.SetStaffActive(ctx, f.session(f.manager), uuid.NewString(), true)
	assert.ErrorIs(t, err, domain.ErrStaffNotFound)
}
