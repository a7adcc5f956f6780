package service

import (
	"context"
	"sync"
	"time"

	"dronedata/internal/models"
	"dronedata/internal/repository"
)

// fakeUsers is an in-memory repository.Users.
type fakeUsers struct {
	mu     sync.Mutex
	byName map[string]*models.User
	nextID int

	getErr    error
	createErr error

	createCalls int
	getCalls    []string
}

func newFakeUsers(users ...models.User) *fakeUsers {
	f := &fakeUsers{byName: map[string]*models.User{}, nextID: 1}
	for i := range users {
		u := users[i]
		if u.ID >= f.nextID {
			f.nextID = u.ID + 1
		}
		f.byName[u.Username] = &u
	}
	return f
}

func (f *fakeUsers) Create(ctx context.Context, username, hash, location string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return 0, f.createErr
	}
	if _, ok := f.byName[username]; ok {
		return 0, repository.ErrDuplicateUsername
	}
	id := f.nextID
	f.nextID++
	f.byName[username] = &models.User{ID: id, Username: username, PasswordHash: hash, Location: location}
	return id, nil
}

func (f *fakeUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls = append(f.getCalls, username)
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byName[username]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id int) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byName {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// fakeSessions is an in-memory repository.Sessions.
type fakeSessions struct {
	mu        sync.Mutex
	rows      map[string]models.Session
	createErr error
	sweepErr  error
	sweeps    int
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{rows: map[string]models.Session{}}
}

func (f *fakeSessions) Create(ctx context.Context, s models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.rows[s.ID] = s
	return nil
}

func (f *fakeSessions) Get(ctx context.Context, id string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeSessions) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

func (f *fakeSessions) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sweeps++
	if f.sweepErr != nil {
		return 0, f.sweepErr
	}
	var n int64
	for id, s := range f.rows {
		if s.Expired(now) {
			delete(f.rows, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeSessions) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

func (f *fakeSessions) sweepCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sweeps
}

// fakeDirectory returns canned enumerations per relative directory.
type fakeDirectory struct {
	entries map[string][]repository.DirEntry
	err     error
	reads   []string
}

func (f *fakeDirectory) Read(ctx context.Context, rel string) ([]repository.DirEntry, error) {
	f.reads = append(f.reads, rel)
	if f.err != nil {
		return nil, f.err
	}
	return f.entries[rel], nil
}

// fakeEventRepo is a minimal stub that satisfies the repository.EventRepo interface.
type fakeEventRepo struct {
	gotQuery repository.EventQuery
	appended []models.AccessEvent

	events    []models.AccessEvent
	err       error
	appendErr error

	calls int
}

func (f *fakeEventRepo) List(ctx context.Context, q repository.EventQuery) ([]models.AccessEvent, error) {
	f.calls++
	f.gotQuery = q
	return f.events, f.err
}

func (f *fakeEventRepo) Append(ctx context.Context, e models.AccessEvent) error {
	f.appended = append(f.appended, e)
	return f.appendErr
}
