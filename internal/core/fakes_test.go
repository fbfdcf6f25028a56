package core

import (
	"context"
	"fmt"
	"sync"

	"commdesk-backend-go/internal/db"
	"commdesk-backend-go/internal/models"
)

// fakeUserRepo is an in-memory UserRepository. Subscription writes are merged into
// subState so merge semantics can be asserted; the mutex makes it safe under the
// reconciler's fan-out.
type fakeUserRepo struct {
	mu       sync.Mutex
	users    map[string]*models.User
	subState map[string]map[string]interface{}
	subCalls int

	findByEmailErr error
	setSubErr      error
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{
		users:    make(map[string]*models.User),
		subState: make(map[string]map[string]interface{}),
	}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, fmt.Errorf("user '%s': %w", userID, db.ErrNotFound)
	}
	return u, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; ok {
		return fmt.Errorf("user '%s': %w", user.ID, db.ErrAlreadyExists)
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findByEmailErr != nil {
		return nil, r.findByEmailErr
	}
	var out []*models.User
	for _, u := range r.users {
		if u.Email == email {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ListAll(_ context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) ListByTenant(_ context.Context, tenantID string) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.User
	for _, u := range r.users {
		for _, tid := range u.TenantIDs {
			if tid == tenantID {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeUserRepo) SetSubscription(_ context.Context, userID string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.setSubErr != nil {
		return r.setSubErr
	}
	r.subCalls++
	if r.subState[userID] == nil {
		r.subState[userID] = make(map[string]interface{})
	}
	for k, v := range fields {
		r.subState[userID][k] = v
	}
	return nil
}

// fakeTenantRepo is an in-memory TenantRepository.
type fakeTenantRepo struct {
	mu       sync.Mutex
	tenants  map[string]*models.Tenant
	subState map[string]map[string]interface{}

	getErr    error
	setSubErr error
}

func newFakeTenantRepo(tenants ...*models.Tenant) *fakeTenantRepo {
	repo := &fakeTenantRepo{
		tenants:  make(map[string]*models.Tenant),
		subState: make(map[string]map[string]interface{}),
	}
	for _, t := range tenants {
		repo.tenants[t.ID] = t
	}
	return repo
}

func (r *fakeTenantRepo) GetByID(_ context.Context, tenantID string) (*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	t, ok := r.tenants[tenantID]
	if !ok {
		return nil, fmt.Errorf("tenant '%s': %w", tenantID, db.ErrNotFound)
	}
	return t, nil
}

func (r *fakeTenantRepo) Create(_ context.Context, tenant *models.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tenants[tenant.ID]; ok {
		return fmt.Errorf("tenant '%s': %w", tenant.ID, db.ErrAlreadyExists)
	}
	r.tenants[tenant.ID] = tenant
	return nil
}

func (r *fakeTenantRepo) SetSubscription(_ context.Context, tenantID string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.setSubErr != nil {
		return r.setSubErr
	}
	if r.subState[tenantID] == nil {
		r.subState[tenantID] = make(map[string]interface{})
	}
	for k, v := range fields {
		r.subState[tenantID][k] = v
	}
	return nil
}

// fakeAuthProvider is an in-memory AuthProvider keyed by email.
type fakeAuthProvider struct {
	mu      sync.Mutex
	byEmail map[string]string // email -> uid
	nextUID int

	createErr error
}

func newFakeAuthProvider() *fakeAuthProvider {
	return &fakeAuthProvider{byEmail: make(map[string]string)}
}

func (p *fakeAuthProvider) CreateUser(_ context.Context, email, _, _ string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.createErr != nil {
		return "", p.createErr
	}
	p.nextUID++
	uid := fmt.Sprintf("uid-%d", p.nextUID)
	p.byEmail[email] = uid
	return uid, nil
}

func (p *fakeAuthProvider) GetUserByEmail(_ context.Context, email string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	uid, ok := p.byEmail[email]
	if !ok {
		return "", fmt.Errorf("auth account for '%s': %w", email, db.ErrNotFound)
	}
	return uid, nil
}
