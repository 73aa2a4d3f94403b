package canteen

import (
	"context"
	"testing"
	"time"

	"canteen-backend/domain"
	"canteen-backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCanteenRepository struct {
	canteens map[string]*entities.Canteen
	linked   map[string]string
	seeded   *SampleData
	writes   int
}

func newFakeCanteenRepository() *fakeCanteenRepository {
	return &fakeCanteenRepository{
		canteens: map[string]*entities.Canteen{},
		linked:   map[string]string{},
	}
}

func (r *fakeCanteenRepository) link(profileID string, canteenID uuid.UUID) error {
	if _, ok := r.linked[profileID]; ok {
		return domain.ErrCanteenAlreadyLinked
	}
	r.linked[profileID] = canteenID.String()
	return nil
}

func (r *fakeCanteenRepository) CreateCanteenForOwner(_ context.Context, canteen *entities.Canteen, profileID string) error {
	r.writes++
	if err := r.link(profileID, canteen.ID); err != nil {
		return err
	}
	r.canteens[canteen.ID.String()] = canteen
	return nil
}

func (r *fakeCanteenRepository) GetCanteenByID(_ context.Context, id string) (*entities.Canteen, error) {
	if c, ok := r.canteens[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCanteenRepository) UpdateCanteen(_ context.Context, canteen *entities.Canteen) error {
	r.writes++
	cp := *canteen
	r.canteens[canteen.ID.String()] = &cp
	return nil
}

func (r *fakeCanteenRepository) DeleteCanteen(_ context.Context, id string) error {
	r.writes++
	if _, ok := r.canteens[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.canteens, id)
	return nil
}

func (r *fakeCanteenRepository) SeedCanteen(_ context.Context, profileID string, data *SampleData) error {
	r.writes++
	if err := r.link(profileID, data.Canteen.ID); err != nil {
		return err
	}
	r.canteens[data.Canteen.ID.String()] = data.Canteen
	r.seeded = data
	return nil
}

func ownerSession() domain.Session {
	return domain.Session{
		ID:        "s",
		Identity:  domain.Identity{UserID: uuid.NewString(), FullName: "Priya"},
		ProfileID: uuid.NewString(),
		Role:      domain.RoleOwner,
		IsActive:  true,
	}
}

func TestCreateCanteenLinksOwner(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCanteenRepository()
	svc := NewCanteenService(repo)
	session := ownerSession()

	res, err := svc.CreateCanteen(ctx, session, domain.CanteenRequest{Name: " Campus Canteen ", Address: "Block A"})
	require.NoError(t, err)
	assert.Equal(t, "Campus Canteen", res.Name)
	assert.Equal(t, session.Identity.UserID, res.OwnerID)
	assert.Equal(t, res.ID, repo.linked[session.ProfileID])

	session.CanteenID = res.ID
	_, err = svc.CreateCanteen(ctx, session, domain.CanteenRequest{Name: "Second"})
	assert.ErrorIs(t, err, domain.ErrCanteenAlreadyLinked)
	assert.Equal(t, 1, repo.writes)
}

func TestCreateCanteenOnlyOwner(t *testing.T) {
	repo := newFakeCanteenRepository()
	session := ownerSession()
	session.Role = domain.RoleManager

	_, err := NewCanteenService(repo).CreateCanteen(context.Background(), session, domain.CanteenRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrOnlyOwnerCreatesShops)
	assert.Zero(t, repo.writes)
}

func TestUpdateAndDeleteCanteen(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCanteenRepository()
	svc := NewCanteenService(repo)
	session := ownerSession()
	created, err := svc.CreateCanteen(ctx, session, domain.CanteenRequest{Name: "Campus"})
	require.NoError(t, err)
	session.CanteenID = created.ID

	inactive := false
	updated, err := svc.UpdateCanteen(ctx, session, domain.UpdateCanteenRequest{Name: "Campus East", Phone: "080", IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Campus East", updated.Name)
	assert.False(t, updated.IsActive)

	chef := session
	chef.Role = domain.RoleChef
	_, err = svc.UpdateCanteen(ctx, chef, domain.UpdateCanteenRequest{Name: "Nope"})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	assert.ErrorIs(t, svc.DeleteCanteen(ctx, chef), domain.ErrPermissionDenied)

	require.NoError(t, svc.DeleteCanteen(ctx, session))
	_, err = svc.GetCanteen(ctx, session)
	assert.ErrorIs(t, err, domain.ErrCanteenNotFound)
	assert.ErrorIs(t, svc.DeleteCanteen(ctx, session), domain.ErrCanteenNotFound)
}

func TestSeedSampleData(t *testing.T) {
	repo := newFakeCanteenRepository()
	session := ownerSession()

	res, err := NewCanteenService(repo).SeedSampleData(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, "Priya's Canteen", res.Name)
	assert.Equal(t, 1, repo.writes)

	data := repo.seeded
	require.NotNil(t, data)
	assert.Len(t, data.Categories, 3)
	assert.Len(t, data.MenuItems, 6)
	require.Len(t, data.Orders, 3)
	assert.Len(t, data.OrderItems, 5)

	totals := map[string]float64{}
	for _, o := range data.Orders {
		totals[*o.CustomerName] = o.TotalAmount
		assert.Equal(t, data.Canteen.ID, o.CanteenID)
	}
	assert.Equal(t, map[string]float64{"Ankit": 165, "Bhavna": 130, "Chirag": 50}, totals)

	completed := data.Orders[0]
	assert.Equal(t, domain.OrderStatusCompleted, completed.Status)
	require.NotNil(t, completed.ServedBy)
	assert.Equal(t, session.Identity.UserID, completed.ServedBy.String())
	assert.Nil(t, data.Orders[2].ServedBy)
}

func TestNewSampleDataOrdersAreBackdated(t *testing.T) {
	now := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	data := NewSampleData(uuid.New(), "Sam", now)
	for _, o := range data.Orders {
		assert.True(t, o.CreatedAt.Before(now))
	}
	for _, item := range data.MenuItems {
		assert.NotEqual(t, uuid.Nil, item.CategoryID)
	}
}
