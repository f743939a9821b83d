package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/draftforge/draftforge/internal/domain"
)

// FakeStore is a test-only in-memory implementation of Store. It
// mirrors the repository semantics (guarded inserts, atomic selection,
// child cleanup) and exposes error fields for behavior injection.
type FakeStore struct {
	mu       sync.RWMutex
	nextID   int64
	projects map[int64]*domain.Project
	sessions map[int64]*domain.Session
	versions map[int64]*domain.ContentVersion
	assets   map[int64]*domain.GeneratedAsset
	usage    []*domain.UsageEntry

	createErr error
	getErr    error
	selectErr error
	usageErr  error
}

var _ Store = (*FakeStore)(nil)

func NewFakeStore() *FakeStore {
	return &FakeStore{
		projects: make(map[int64]*domain.Project),
		sessions: make(map[int64]*domain.Session),
		versions: make(map[int64]*domain.ContentVersion),
		assets:   make(map[int64]*domain.GeneratedAsset),
	}
}

func (f *FakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *FakeStore) CreateProject(_ context.Context, p *domain.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	p.ID = f.id()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	f.projects[p.ID] = &cp
	return nil
}

func (f *FakeStore) GetProject(_ context.Context, id int64) (*domain.Project, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *FakeStore) ListProjectsByUser(_ context.Context, userID int64) ([]domain.Project, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []domain.Project
	for _, p := range f.projects {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *FakeStore) DeleteProject(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(f.projects, id)
	return nil
}

func (f *FakeStore) CreateSession(_ context.Context, s *domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	p, ok := f.projects[s.ProjectID]
	if !ok || p.UserID != s.UserID {
		return domain.ErrProjectNotFound
	}
	s.ID = f.id()
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *FakeStore) GetSession(_ context.Context, id int64) (*domain.Session, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *FakeStore) ListSessionsByProject(_ context.Context, projectID int64) ([]domain.Session, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []domain.Session
	for _, s := range f.sessions {
		if s.ProjectID == projectID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *FakeStore) CountSessionsByProject(_ context.Context, projectID int64) (int64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var n int64
	for _, s := range f.sessions {
		if s.ProjectID == projectID {
			n++
		}
	}
	return n, nil
}

func (f *FakeStore) UpdateSessionState(_ context.Context, s *domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.sessions[s.ID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	cur.Status = s.Status
	cur.CurrentStep = s.CurrentStep
	cur.NeedsAsset = s.NeedsAsset
	cur.AssetGenerated = s.AssetGenerated
	cur.IsCompleted = s.IsCompleted
	cur.UpdatedAt = time.Now()
	return nil
}

func (f *FakeStore) DeleteSession(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	for vid, v := range f.versions {
		if v.SessionID == id {
			delete(f.versions, vid)
		}
	}
	for aid, a := range f.assets {
		if a.SessionID == id {
			delete(f.assets, aid)
		}
	}
	delete(f.sessions, id)
	return nil
}

func (f *FakeStore) SessionStatusCounts(_ context.Context, projectID int64) (map[domain.Status]int64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	counts := make(map[domain.Status]int64)
	for _, s := range f.sessions {
		if s.ProjectID == projectID {
			counts[s.Status]++
		}
	}
	return counts, nil
}

func (f *FakeStore) CreateVersion(_ context.Context, v *domain.ContentVersion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.sessions[v.SessionID]; !ok {
		return domain.ErrSessionNotFound
	}
	v.ID = f.id()
	v.CreatedAt = time.Now()
	cp := *v
	f.versions[v.ID] = &cp
	return nil
}

func (f *FakeStore) GetVersion(_ context.Context, id int64) (*domain.ContentVersion, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.versions[id]
	if !ok {
		return nil, domain.ErrVersionNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *FakeStore) ListVersionsBySession(_ context.Context, sessionID int64) ([]domain.ContentVersion, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []domain.ContentVersion
	for _, v := range f.versions {
		if v.SessionID == sessionID {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *FakeStore) CountVersionsBySession(_ context.Context, sessionID int64) (int64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var n int64
	for _, v := range f.versions {
		if v.SessionID == sessionID {
			n++
		}
	}
	return n, nil
}

func (f *FakeStore) SelectVersion(_ context.Context, userID, sessionID, versionID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.selectErr != nil {
		return f.selectErr
	}
	sess, ok := f.sessions[sessionID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	if sess.UserID != userID {
		return domain.ErrNotOwner
	}
	target, ok := f.versions[versionID]
	if !ok || target.SessionID != sessionID {
		return domain.NewOperationFailed("selection could not be applied", nil)
	}
	for _, v := range f.versions {
		if v.SessionID == sessionID {
			v.IsSelected = false
		}
	}
	target.IsSelected = true
	sess.IsCompleted = true
	sess.Status = domain.StatusCompleted
	sess.CurrentStep = domain.StepCompleted
	sess.UpdatedAt = time.Now()
	return nil
}

func (f *FakeStore) CreateAsset(_ context.Context, a *domain.GeneratedAsset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	sess, ok := f.sessions[a.SessionID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	a.ID = f.id()
	a.CreatedAt = time.Now()
	cp := *a
	f.assets[a.ID] = &cp
	sess.AssetGenerated = true
	if sess.CurrentStep == domain.StepAssetPending {
		sess.CurrentStep = domain.StepReviewing
	}
	sess.UpdatedAt = time.Now()
	return nil
}

func (f *FakeStore) ListAssetsBySession(_ context.Context, sessionID int64) ([]domain.GeneratedAsset, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []domain.GeneratedAsset
	for _, a := range f.assets {
		if a.SessionID == sessionID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *FakeStore) AppendUsage(_ context.Context, e *domain.UsageEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.usageErr != nil {
		return f.usageErr
	}
	e.ID = f.id()
	e.CreatedAt = time.Now()
	cp := *e
	f.usage = append(f.usage, &cp)
	return nil
}

func (f *FakeStore) ListRecentUsage(_ context.Context, userID int64, limit int) ([]domain.UsageEntry, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []domain.UsageEntry
	for i := len(f.usage) - 1; i >= 0 && len(out) < limit; i-- {
		if f.usage[i].UserID == userID {
			out = append(out, *f.usage[i])
		}
	}
	return out, nil
}

// UsageCount reports the total number of ledger entries, for
// append-only assertions.
func (f *FakeStore) UsageCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.usage)
}
