package property

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darlink/rental-booking-backend/internal/user"
)

type fakeRepo struct {
	byID   map[string]*Property
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*Property)}
}

func (r *fakeRepo) Create(_ context.Context, p *Property) error {
	r.nextID++
	p.ID = fmt.Sprintf("prop-%d", r.nextID)
	r.byID[p.ID] = p
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Property, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeRepo) List(_ context.Context, filter Filter) ([]*Property, int, error) {
	var result []*Property
	for _, p := range r.byID {
		if filter.Status != "" && string(p.Status) != filter.Status {
			continue
		}
		result = append(result, p)
	}
	return result, len(result), nil
}

func (r *fakeRepo) Update(_ context.Context, p *Property) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	copied := *p
	r.byID[p.ID] = &copied
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type fakeUserService struct {
	users map[string]*user.User
}

func (s *fakeUserService) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (s *fakeUserService) Register(_ context.Context, _, _, _, _ string) (*user.User, error) {
	return nil, nil
}

func (s *fakeUserService) Login(_ context.Context, _, _ string) (*user.User, error) {
	return nil, nil
}

func (s *fakeUserService) List(_ context.Context, _ user.Filter) ([]*user.User, int, error) {
	return nil, 0, nil
}

func (s *fakeUserService) Approve(_ context.Context, _ string) (*user.User, error) {
	return nil, nil
}

const (
	approvedHostID   = "host-approved"
	unapprovedHostID = "host-pending"
	clientID         = "guest-1"
)

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	users := &fakeUserService{users: map[string]*user.User{
		approvedHostID:   {ID: approvedHostID, Role: user.RoleHouseOwner, IsApproved: true},
		unapprovedHostID: {ID: unapprovedHostID, Role: user.RoleHouseOwner, IsApproved: false},
		clientID:         {ID: clientID, Role: user.RoleClient, IsApproved: true},
	}}
	return NewService(repo, users), repo
}

func validCreate(ownerID string) CreateRequest {
	return CreateRequest{
		OwnerID:     ownerID,
		Title:       "Seaside House",
		Description: "Two floors by the beach",
		Type:        string(TypeHouse),
		Address:     "1 Shore Rd",
		City:        "Alexandria",
		Governorate: "Alexandria",
	}
}

func TestCreateProperty(t *testing.T) {
	t.Run("approved host creates a pending listing", func(t *testing.T) {
		svc, _ := newTestService()

		p, err := svc.Create(context.Background(), validCreate(approvedHostID))
		require.NoError(t, err)

		assert.Equal(t, StatusPending, p.Status, "new listings must await moderation")
		assert.Equal(t, TypeHouse, p.Type)
	})

	t.Run("unapproved host is rejected", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Create(context.Background(), validCreate(unapprovedHostID))
		assert.ErrorIs(t, err, ErrOwnerNotApproved)
	})

	t.Run("client cannot list", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Create(context.Background(), validCreate(clientID))
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("blank title", func(t *testing.T) {
		svc, _ := newTestService()

		req := validCreate(approvedHostID)
		req.Title = "  "
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrTitleRequired)
	})

	t.Run("unknown type", func(t *testing.T) {
		svc, _ := newTestService()

		req := validCreate(approvedHostID)
		req.Type = "Castle"
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidType)
	})
}

func TestUpdateProperty(t *testing.T) {
	newPublished := func(t *testing.T) (Service, *Property) {
		t.Helper()
		svc, _ := newTestService()

		p, err := svc.Create(context.Background(), validCreate(approvedHostID))
		require.NoError(t, err)

		p, err = svc.SetStatus(context.Background(), p.ID, StatusPublished)
		require.NoError(t, err)
		return svc, p
	}

	t.Run("owner edit resets moderation", func(t *testing.T) {
		svc, p := newPublished(t)

		title := "Renovated Seaside House"
		updated, err := svc.Update(context.Background(), p.ID, UpdateRequest{Title: &title}, approvedHostID, false)
		require.NoError(t, err)

		assert.Equal(t, title, updated.Title)
		assert.Equal(t, StatusPending, updated.Status)
	})

	t.Run("admin edit keeps the status", func(t *testing.T) {
		svc, p := newPublished(t)

		title := "Featured Seaside House"
		updated, err := svc.Update(context.Background(), p.ID, UpdateRequest{Title: &title}, "admin-1", true)
		require.NoError(t, err)
		assert.Equal(t, StatusPublished, updated.Status)
	})

	t.Run("non-owner is denied", func(t *testing.T) {
		svc, p := newPublished(t)

		title := "Hijacked"
		_, err := svc.Update(context.Background(), p.ID, UpdateRequest{Title: &title}, clientID, false)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestModeration(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), validCreate(approvedHostID))
	require.NoError(t, err)

	published, err := svc.SetStatus(context.Background(), p.ID, StatusPublished)
	require.NoError(t, err)
	assert.Equal(t, StatusPublished, published.Status)

	rejected, err := svc.SetStatus(context.Background(), p.ID, StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)

	_, err = svc.SetStatus(context.Background(), p.ID, Status("Archived"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.SetStatus(context.Background(), "missing", StatusPublished)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIsOwner(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), validCreate(approvedHostID))
	require.NoError(t, err)

	isOwner, err := svc.IsOwner(context.Background(), p.ID, approvedHostID)
	require.NoError(t, err)
	assert.True(t, isOwner)

	isOwner, err = svc.IsOwner(context.Background(), p.ID, clientID)
	require.NoError(t, err)
	assert.False(t, isOwner)
}
