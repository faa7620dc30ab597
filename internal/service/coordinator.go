package service

import (
	"sync"
	"time"
)

// Coordinator tracks, per account, whether a sync cycle is running and when
// the last one completed. At most one cycle per account runs in a process.
type Coordinator struct {
	mu       sync.Mutex
	accounts map[string]*accountState
}

type accountState struct {
	inProgress bool
	lastSyncAt *time.Time
}

func NewCoordinator() *Coordinator {
	return &Coordinator{accounts: make(map[string]*accountState)}
}

// TryBegin marks a cycle for accountID as running. It returns false without
// waiting when one is already running.
func (c *Coordinator) TryBegin(accountID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.state(accountID)
	if st.inProgress {
		return false
	}
	st.inProgress = true
	return true
}

// Finish ends the running cycle and records its completion time.
func (c *Coordinator) Finish(accountID string, completedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.state(accountID)
	st.inProgress = false
	at := completedAt.UTC()
	st.lastSyncAt = &at
}

// Abort ends the running cycle without touching the last-sync time.
func (c *Coordinator) Abort(accountID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state(accountID).inProgress = false
}

// State returns a snapshot for accountID.
func (c *Coordinator) State(accountID string) (inProgress bool, lastSyncAt *time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, ok := c.accounts[accountID]
	if !ok {
		return false, nil
	}
	if st.lastSyncAt != nil {
		at := *st.lastSyncAt
		lastSyncAt = &at
	}
	return st.inProgress, lastSyncAt
}

// state must be called with mu held.
func (c *Coordinator) state(accountID string) *accountState {
	st, ok := c.accounts[accountID]
	if !ok {
		st = &accountState{}
		c.accounts[accountID] = st
	}
	return st
}
