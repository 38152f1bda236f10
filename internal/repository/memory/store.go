package memory

import (
	"sort"
	"sync"
	"time"

	"jobflix-backend/internal/domain"
)

// Store keeps every collection behind one RWMutex. Reads work on a consistent
// snapshot and run in parallel; writes are serialized, id counters included.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	jobs         map[int64]domain.Job
	companies    map[int64]domain.Company
	applications map[int64]domain.Application
	bookmarks    map[int64]domain.Bookmark
	users        map[int64]domain.User

	nextJobID         int64
	nextCompanyID     int64
	nextApplicationID int64
	nextBookmarkID    int64
	nextUserID        int64
}

type Option func(*Store)

// WithClock overrides the time source used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		now:          func() time.Time { return time.Now().UTC() },
		jobs:         make(map[int64]domain.Job),
		companies:    make(map[int64]domain.Company),
		applications: make(map[int64]domain.Application),
		bookmarks:    make(map[int64]domain.Bookmark),
		users:        make(map[int64]domain.User),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Jobs() *JobRepository                 { return &JobRepository{s: s} }
func (s *Store) Companies() *CompanyRepository        { return &CompanyRepository{s: s} }
func (s *Store) Applications() *ApplicationRepository { return &ApplicationRepository{s: s} }
func (s *Store) Bookmarks() *BookmarkRepository       { return &BookmarkRepository{s: s} }
func (s *Store) Users() *UserRepository               { return &UserRepository{s: s} }

// sortedKeys returns the keys of m in ascending order. Map iteration order is
// random, so every listing starts from here.
func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
