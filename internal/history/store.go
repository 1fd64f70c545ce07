// Package history keeps a per-employee, time-bounded record of past chat
// exchanges. Entries age out of a retention window, there is no deletion
// API and no background sweep.
package history

import (
	"sync"
	"time"

	"github.com/AnuragRai017/paybot/internal/model"
)

const DefaultRetention = 7 * 24 * time.Hour

// Store owns all chat entries. Sessions are created lazily on first append
// and pruned lazily on both append and read. The sessions map lock is held
// only for lookup/insert so operations on different employees never block
// each other.
type Store struct {
	retention time.Duration
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session
}

type session struct {
	mu sync.Mutex
	// Insertion ordered, oldest first. Timestamps are monotonically
	// non-decreasing, so pruning is a prefix trim.
	entries []model.ChatEntry
}

func NewStore(retention time.Duration) *Store {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Store{
		retention: retention,
		now:       time.Now,
		sessions:  make(map[string]*session),
	}
}

// Append records a new entry stamped with the current time, then prunes
// entries older than the retention window for that employee.
func (s *Store) Append(employeeID, query, response string) {
	sess := s.session(employeeID, true)
	now := s.now()
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.entries = append(sess.entries, model.ChatEntry{
		Timestamp: now,
		Query:     query,
		Response:  response,
	})
	sess.trim(now.Add(-s.retention))
}

// Recent returns the entries currently within the retention window for the
// employee, oldest first. The returned slice is a copy.
func (s *Store) Recent(employeeID string) []model.ChatEntry {
	sess := s.session(employeeID, false)
	if sess == nil {
		return nil
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	// Also prune on read so a long idle period cannot surface stale
	// entries.
	sess.trim(s.now().Add(-s.retention))
	if len(sess.entries) == 0 {
		return nil
	}
	out := make([]model.ChatEntry, len(sess.entries))
	copy(out, sess.entries)
	return out
}

func (s *Store) session(employeeID string, create bool) *session {
	s.mu.RLock()
	sess := s.sessions[employeeID]
	s.mu.RUnlock()
	if sess != nil || !create {
		return sess
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess = s.sessions[employeeID]; sess == nil {
		sess = &session{}
		s.sessions[employeeID] = sess
	}
	return sess
}

// trim drops the prefix older than cutoff. Caller holds the session lock.
func (sess *session) trim(cutoff time.Time) {
	idx := 0
	for idx < len(sess.entries) && sess.entries[idx].Timestamp.Before(cutoff) {
		idx++
	}
	if idx == 0 {
		return
	}
	remaining := len(sess.entries) - idx
	copy(sess.entries, sess.entries[idx:])
	sess.entries = sess.entries[:remaining]
}
