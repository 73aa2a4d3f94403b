package invitation

import (
	"context"
	"errors"
	"testing"
	"time"

	"canteen-backend/domain"
	"canteen-backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeInvitationRepository struct {
	invitations map[string]*entities.Invitation
	users       map[string]*entities.User
	profiles    []*entities.Profile
	markErr     error
	marks       int
	created     []*entities.Invitation
}

func newFakeInvitationRepository() *fakeInvitationRepository {
	return &fakeInvitationRepository{
		invitations: map[string]*entities.Invitation{},
		users:       map[string]*entities.User{},
	}
}

func (r *fakeInvitationRepository) add(token string, role domain.Role, status domain.InvitationStatus, expiresAt time.Time) *entities.Invitation {
	inv := &entities.Invitation{
		ID:        uuid.New(),
		Token:     token,
		Email:     "Staff@Example.com",
		Role:      role,
		CanteenID: uuid.New(),
		Status:    status,
		ExpiresAt: expiresAt,
	}
	r.invitations[token] = inv
	return inv
}

func (r *fakeInvitationRepository) GetInvitationDetails(_ context.Context, token string) (*entities.InvitationDetails, error) {
	inv, ok := r.invitations[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &entities.InvitationDetails{
		Email:     inv.Email,
		Role:      inv.Role,
		CanteenID: inv.CanteenID,
		Status:    inv.Status,
		ExpiresAt: inv.ExpiresAt,
	}, nil
}

func (r *fakeInvitationRepository) MarkInvitationAccepted(_ context.Context, token string) error {
	r.marks++
	if r.markErr != nil {
		return r.markErr
	}
	if inv, ok := r.invitations[token]; ok && inv.Status == domain.InvitationPending {
		inv.Status = domain.InvitationAccepted
	}
	return nil
}

func (r *fakeInvitationRepository) CreateInvitation(_ context.Context, invitation *entities.Invitation) error {
	r.created = append(r.created, invitation)
	r.invitations[invitation.Token] = invitation
	return nil
}

func (r *fakeInvitationRepository) GetCanteenName(context.Context, string) (string, error) {
	return "Campus Canteen", nil
}

func (r *fakeInvitationRepository) ProvisionMember(_ context.Context, user *entities.User, profile *entities.Profile) error {
	if _, ok := r.users[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	r.users[user.Email] = user
	profile.UserID = user.ID
	r.profiles = append(r.profiles, profile)
	return nil
}

type fakeConfirmation struct{ sent []string }

func (f *fakeConfirmation) SendConfirmationEmail(_ context.Context, user *entities.User) error {
	f.sent = append(f.sent, user.Email)
	return nil
}

type fakeMailer struct {
	to   []string
	body []string
	err  error
}

func (m *fakeMailer) SendMail(to, _, body string) error {
	m.to = append(m.to, to)
	m.body = append(m.body, body)
	return m.err
}

func plainHash(password string) (string, error) { return "hashed:" + password, nil }

type invitationFixture struct {
	repo    *fakeInvitationRepository
	confirm *fakeConfirmation
	mailer  *fakeMailer
	svc     *invitationService
	now     time.Time
}

func newInvitationFixture() *invitationFixture {
	f := &invitationFixture{
		repo:    newFakeInvitationRepository(),
		confirm: &fakeConfirmation{},
		mailer:  &fakeMailer{},
		now:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewInvitationService(f.repo, f.confirm, f.mailer, plainHash, "http://localhost:3000").(*invitationService)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func TestFetchInvitation(t *testing.T) {
	ctx := context.Background()
	f := newInvitationFixture()
	inv := f.repo.add("tok", domain.RoleChef, domain.InvitationPending, f.now.Add(time.Hour))

	res, err := f.svc.FetchInvitation(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleChef, res.Role)
	assert.Equal(t, inv.CanteenID.String(), res.CanteenID)

	_, err = f.svc.FetchInvitation(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrInvitationNotFound)

	_, err = f.svc.FetchInvitation(ctx, " ")
	assert.ErrorIs(t, err, domain.ErrInvitationMissing)
}

func TestFetchInvitationExpiresAtBoundary(t *testing.T) {
	f := newInvitationFixture()
	f.repo.add("tok", domain.RoleChef, domain.InvitationPending, f.now)

	_, err := f.svc.FetchInvitation(context.Background(), "tok")
	assert.ErrorIs(t, err, domain.ErrInvitationExpired)
}

func TestAcceptInvitationTwice(t *testing.T) {
	ctx := context.Background()
	f := newInvitationFixture()
	inv := f.repo.add("tok", domain.RoleCashier, domain.InvitationPending, f.now.Add(48*time.Hour))
	req := domain.AcceptInvitationRequest{Token: "tok", FullName: " Meena ", Password: "secret123"}

	res, err := f.svc.AcceptInvitation(ctx, req)
	require.NoError(t, err)
	assert.False(t, res.BookkeepingPending)
	assert.Equal(t, domain.RoleCashier, res.Role)
	assert.Equal(t, inv.CanteenID.String(), res.CanteenID)
	assert.Equal(t, "staff@example.com", res.Email)
	assert.Equal(t, domain.InvitationAccepted, inv.Status)

	require.Len(t, f.repo.profiles, 1)
	profile := f.repo.profiles[0]
	assert.Equal(t, "Meena", profile.FullName)
	assert.Equal(t, inv.CanteenID, *profile.CanteenID)
	assert.Equal(t, domain.RoleCashier, f.repo.users["staff@example.com"].Role)
	assert.Equal(t, "hashed:secret123", f.repo.users["staff@example.com"].PasswordHash)
	assert.Equal(t, []string{"staff@example.com"}, f.confirm.sent)

	_, err = f.svc.AcceptInvitation(ctx, req)
	var consumed *domain.InvitationConsumedError
	require.ErrorAs(t, err, &consumed)
	assert.Equal(t, domain.InvitationAccepted, consumed.Status)
	assert.Equal(t, "this invitation has already been accepted", err.Error())
	assert.Len(t, f.repo.users, 1)
	assert.Len(t, f.repo.profiles, 1)
	assert.Equal(t, 1, f.repo.marks)
}

func TestAcceptInvitationRejectsWithoutWrites(t *testing.T) {
	ctx := context.Background()
	f := newInvitationFixture()
	f.repo.add("accepted", domain.RoleChef, domain.InvitationAccepted, f.now.Add(time.Hour))
	f.repo.add("expired-status", domain.RoleChef, domain.InvitationExpired, f.now.Add(time.Hour))
	f.repo.add("past", domain.RoleChef, domain.InvitationPending, f.now.Add(-time.Minute))

	for _, token := range []string{"accepted", "expired-status", "past", "unknown"} {
		_, err := f.svc.AcceptInvitation(ctx, domain.AcceptInvitationRequest{Token: token, FullName: "X", Password: "secret123"})
		assert.Error(t, err, token)
	}
	assert.Empty(t, f.repo.users)
	assert.Empty(t, f.repo.profiles)
	assert.Zero(t, f.repo.marks)
	assert.Empty(t, f.confirm.sent)
}

func TestAcceptInvitationBookkeepingFailureStillEnrols(t *testing.T) {
	f := newInvitationFixture()
	f.repo.add("tok", domain.RoleChef, domain.InvitationPending, f.now.Add(time.Hour))
	f.repo.markErr = errors.New("procedure failed")

	res, err := f.svc.AcceptInvitation(context.Background(), domain.AcceptInvitationRequest{Token: "tok", FullName: "Ravi", Password: "secret123"})
	require.NoError(t, err)
	assert.True(t, res.BookkeepingPending)
	assert.Len(t, f.repo.profiles, 1)
}

func TestAcceptInvitationRaceLosesOnUniqueEmail(t *testing.T) {
	f := newInvitationFixture()
	f.repo.add("tok", domain.RoleChef, domain.InvitationPending, f.now.Add(time.Hour))
	f.repo.markErr = errors.New("procedure failed")
	req := domain.AcceptInvitationRequest{Token: "tok", FullName: "Ravi", Password: "secret123"}

	_, err := f.svc.AcceptInvitation(context.Background(), req)
	require.NoError(t, err)

	// the token is still pending, the identity constraint stops the reuse
	_, err = f.svc.AcceptInvitation(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Len(t, f.repo.profiles, 1)
}

func TestCreateInvitation(t *testing.T) {
	ctx := context.Background()
	f := newInvitationFixture()
	owner := domain.Session{
		Identity:  domain.Identity{UserID: uuid.NewString()},
		Role:      domain.RoleOwner,
		CanteenID: uuid.NewString(),
	}

	res, err := f.svc.CreateInvitation(ctx, owner, domain.CreateInvitationRequest{Email: "New@Example.com", Role: domain.RoleManager})
	require.NoError(t, err)
	assert.True(t, res.EmailSent)
	assert.Equal(t, "new@example.com", res.Email)
	assert.Equal(t, f.now.Add(domain.InvitationTTL), res.ExpiresAt)

	require.Len(t, f.repo.created, 1)
	created := f.repo.created[0]
	assert.Equal(t, domain.InvitationPending, created.Status)
	assert.Len(t, created.Token, 64)
	assert.Contains(t, f.mailer.body[0], created.Token)
	assert.Contains(t, f.mailer.body[0], "Campus Canteen")

	// the new token validates straight away
	fetched, err := f.svc.FetchInvitation(ctx, created.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, fetched.Role)
}

func TestCreateInvitationRules(t *testing.T) {
	ctx := context.Background()
	f := newInvitationFixture()
	manager := domain.Session{Identity: domain.Identity{UserID: uuid.NewString()}, Role: domain.RoleManager, CanteenID: uuid.NewString()}
	cashier := manager
	cashier.Role = domain.RoleCashier
	unprovisioned := domain.Session{Identity: domain.Identity{UserID: uuid.NewString()}, Role: domain.RoleOwner}

	_, err := f.svc.CreateInvitation(ctx, manager, domain.CreateInvitationRequest{Email: "o@example.com", Role: domain.RoleOwner})
	assert.ErrorIs(t, err, domain.ErrOnlyOwnerAssignsRole)

	_, err = f.svc.CreateInvitation(ctx, cashier, domain.CreateInvitationRequest{Email: "c@example.com", Role: domain.RoleChef})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	_, err = f.svc.CreateInvitation(ctx, unprovisioned, domain.CreateInvitationRequest{Email: "c@example.com", Role: domain.RoleChef})
	assert.ErrorIs(t, err, domain.ErrCanteenNotSetUp)

	assert.Empty(t, f.repo.created)
}

func TestCreateInvitationMailFailureIsReported(t *testing.T) {
	f := newInvitationFixture()
	f.mailer.err = errors.New("smtp down")
	owner := domain.Session{Identity: domain.Identity{UserID: uuid.NewString()}, Role: domain.RoleOwner, CanteenID: uuid.NewString()}

	res, err := f.svc.CreateInvitation(context.Background(), owner, domain.CreateInvitationRequest{Email: "a@example.com", Role: domain.RoleChef})
	require.NoError(t, err)
	assert.False(t, res.EmailSent)
	assert.Len(t, f.repo.created, 1)
}
