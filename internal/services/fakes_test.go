package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"eventhub/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

const testTimeout = time.Second

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byEmail   map[string]*domain.User
	nextID    int
	lookupErr error
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.nextID++
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

// fakeHasher prefixes passwords instead of hashing them and counts comparisons.
type fakeHasher struct {
	compares int
	hashErr  error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + password, nil
}

func (h *fakeHasher) Compare(hash, password string) (bool, error) {
	h.compares++
	if !strings.HasPrefix(hash, "hashed:") {
		return false, errors.New("corrupt hash")
	}
	return hash == "hashed:"+password, nil
}

type fakeTokens struct {
	err error
}

func (t fakeTokens) Issue(userID string) (string, error) {
	if t.err != nil {
		return "", t.err
	}
	return "token-for-" + userID, nil
}

type fakeEmailService struct {
	sent  []*domain.User
	err   error
	stall bool
}

func (f *fakeEmailService) SendWelcome(ctx context.Context, user *domain.User) error {
	if f.stall {
		<-ctx.Done()
		return ctx.Err()
	}
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, user)
	return nil
}

// fakePublisher records activities. With stall set it blocks until ctx ends,
// like a broker that never answers.
type fakePublisher struct {
	activities []domain.Activity
	err        error
	stall      bool
	stalled    int
}

func (f *fakePublisher) Publish(ctx context.Context, a domain.Activity) error {
	if f.stall {
		f.stalled++
		<-ctx.Done()
		return ctx.Err()
	}
	if f.err != nil {
		return f.err
	}
	f.activities = append(f.activities, a)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID      map[string]*domain.Event
	nextID    int
	err       error
	updates   int
	deletions int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event), nextID: 1}
}

func (f *fakeEventRepo) Create(_ context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *e
	out.CreatedBy = &domain.UserSummary{ID: e.CreatedByID}
	return &out, nil
}

func (f *fakeEventRepo) GetOwnerID(_ context.Context, id string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	e, ok := f.byID[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	return e.CreatedByID, nil
}

func (f *fakeEventRepo) ListByCreator(_ context.Context, createdByID string) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Event, 0)
	for _, e := range f.byID {
		if e.CreatedByID == createdByID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EventDate.Equal(out[j].EventDate) {
			return out[i].EventDate.Before(out[j].EventDate)
		}
		return out[i].EventTime.Before(out[j].EventTime)
	})
	return out, nil
}

func (f *fakeEventRepo) Update(_ context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	f.updates++
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.SetDescription {
		e.Description = patch.Description
	}
	if patch.EventDate != nil {
		e.EventDate = *patch.EventDate
	}
	if patch.EventTime != nil {
		e.EventTime = *patch.EventTime
	}
	if patch.Location != nil {
		e.Location = *patch.Location
	}
	return e, nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	f.deletions++
	delete(f.byID, id)
	return nil
}
