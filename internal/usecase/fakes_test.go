package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"fleet-admin/internal/data/entity"
	"fleet-admin/internal/data/repository"
	"fleet-admin/internal/dto/request"
	"fleet-admin/internal/seatlayout"
	"fleet-admin/pkg/cache"
	"fleet-admin/pkg/queue"

	"github.com/google/uuid"
)

type fakeConfigurations struct {
	items map[uuid.UUID]*entity.BusConfiguration
}

func (f *fakeConfigurations) Create(_ context.Context, cfg *entity.BusConfiguration) error {
	c := *cfg
	f.items[cfg.ID] = &c
	return nil
}

func (f *fakeConfigurations) FindByID(_ context.Context, id uuid.UUID) (*entity.BusConfiguration, error) {
	cfg, ok := f.items[id]
	if !ok || cfg.DeletedAt != nil {
		return nil, nil
	}
	c := *cfg
	return &c, nil
}

func (f *fakeConfigurations) FindAll(_ context.Context, filter entity.ConfigurationFilter, limit, offset int) ([]*entity.BusConfiguration, error) {
	var out []*entity.BusConfiguration
	for _, cfg := range f.items {
		if cfg.DeletedAt != nil {
			continue
		}
		if filter.BusType != "" && string(cfg.BusType) != filter.BusType {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(cfg.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, cfg)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeConfigurations) CountAll(ctx context.Context, filter entity.ConfigurationFilter) (int64, error) {
	all, _ := f.FindAll(ctx, filter, len(f.items), 0)
	return int64(len(all)), nil
}

func (f *fakeConfigurations) Update(_ context.Context, cfg *entity.BusConfiguration) error {
	c := *cfg
	f.items[cfg.ID] = &c
	return nil
}

func (f *fakeConfigurations) Delete(_ context.Context, id uuid.UUID) error {
	now := time.Now()
	f.items[id].DeletedAt = &now
	return nil
}

type fakeBuses struct {
	items map[uuid.UUID]*entity.Bus
}

func (f *fakeBuses) Create(_ context.Context, bus *entity.Bus) error {
	b := *bus
	f.items[bus.ID] = &b
	return nil
}

func (f *fakeBuses) FindByID(_ context.Context, id uuid.UUID) (*entity.Bus, error) {
	bus, ok := f.items[id]
	if !ok || bus.DeletedAt != nil {
		return nil, nil
	}
	b := *bus
	return &b, nil
}

func (f *fakeBuses) FindByPlateNumber(_ context.Context, plate string) (*entity.Bus, error) {
	for _, bus := range f.items {
		if bus.DeletedAt == nil && bus.PlateNumber == plate {
			b := *bus
			return &b, nil
		}
	}
	return nil, nil
}

func (f *fakeBuses) FindAll(_ context.Context, filter entity.BusFilter, limit, offset int) ([]*entity.Bus, error) {
	var out []*entity.Bus
	for _, bus := range f.items {
		if bus.DeletedAt != nil {
			continue
		}
		if filter.ConfigurationID != nil && bus.ConfigurationID != *filter.ConfigurationID {
			continue
		}
		if filter.Status != "" && string(bus.Status) != filter.Status {
			continue
		}
		out = append(out, bus)
	}
	return out, nil
}

func (f *fakeBuses) CountAll(ctx context.Context, filter entity.BusFilter) (int64, error) {
	all, _ := f.FindAll(ctx, filter, 0, 0)
	return int64(len(all)), nil
}

func (f *fakeBuses) CountByConfiguration(ctx context.Context, configurationID uuid.UUID) (int64, error) {
	return f.CountAll(ctx, entity.BusFilter{ConfigurationID: &configurationID})
}

func (f *fakeBuses) Update(_ context.Context, bus *entity.Bus) error {
	b := *bus
	f.items[bus.ID] = &b
	return nil
}

func (f *fakeBuses) Delete(_ context.Context, id uuid.UUID) error {
	now := time.Now()
	f.items[id].DeletedAt = &now
	return nil
}

type fakeUsers struct {
	items map[uuid.UUID]*entity.User
}

func (f *fakeUsers) Create(_ context.Context, user *entity.User) error {
	u := *user
	f.items[user.ID] = &u
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	u := *user
	return &u, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range f.items {
		if strings.EqualFold(user.Email, email) {
			u := *user
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, user := range f.items {
		out = append(out, user)
	}
	return out, nil
}

func (f *fakeUsers) CountAll(context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

func (f *fakeUsers) Update(_ context.Context, user *entity.User) error {
	u := *user
	f.items[user.ID] = &u
	return nil
}

type fakeSessions struct {
	created      []*entity.Session
	revoked      []string
	revokedUsers []uuid.UUID
	expired      int64
}

func (f *fakeSessions) Create(_ context.Context, session *entity.Session) error {
	f.created = append(f.created, session)
	return nil
}

func (f *fakeSessions) FindValidSession(context.Context, string) (*entity.SessionUser, error) {
	return nil, nil
}

func (f *fakeSessions) Revoke(_ context.Context, token string) error {
	f.revoked = append(f.revoked, token)
	return nil
}

func (f *fakeSessions) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	f.revokedUsers = append(f.revokedUsers, userID)
	return nil
}

func (f *fakeSessions) CleanExpiredSessions(context.Context) (int64, error) {
	return f.expired, nil
}

// memoryCache stores JSON like the redis implementation does.
type memoryCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.items[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = data
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

func (c *memoryCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
			c.deleted = append(c.deleted, k)
		}
	}
	return nil
}

func (c *memoryCache) Ping(context.Context) error { return nil }
func (c *memoryCache) Close() error { return nil }

type recordingPublisher struct {
	events []queue.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event queue.Event) error {
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type fixture struct {
	repo      *repository.Repository
	configs   *fakeConfigurations
	buses     *fakeBuses
	users     *fakeUsers
	sessions  *fakeSessions
	cache     *memoryCache
	publisher *recordingPublisher
}

func newFixture() *fixture {
	f := &fixture{
		configs:   &fakeConfigurations{items: map[uuid.UUID]*entity.BusConfiguration{}},
		buses:     &fakeBuses{items: map[uuid.UUID]*entity.Bus{}},
		users:     &fakeUsers{items: map[uuid.UUID]*entity.User{}},
		sessions:  &fakeSessions{},
		cache:     newMemoryCache(),
		publisher: &recordingPublisher{},
	}
	f.repo = &repository.Repository{
		User:             f.users,
		Session:          f.sessions,
		BusConfiguration: f.configs,
		Bus:              f.buses,
	}
	return f
}

// validRequest returns a 3x4 2x2 configuration with 13 available seats.
func validRequest(t *testing.T, name string) request.BusConfigurationRequest {
	t.Helper()
	state, err := seatlayout.NewEditorState(3, 4, seatlayout.Pattern2x2)
	if err != nil {
		t.Fatalf("NewEditorState() error = %v", err)
	}
	state.Name = name
	cfg, _, err := state.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	return request.ConfigurationToRequest(cfg)
}
