package auth

import (
	"sync"

	"github.com/andreazagoit/upcominghub-native/enums"
	"github.com/andreazagoit/upcominghub-native/models"
)

// Session is the in-memory authentication state. Status is SessionAuthenticated
// exactly when Tokens is a complete pair; User may lag briefly during a restore
// but is only exposed to callers of an authenticated session.
type Session struct {
	Status  enums.SessionStatus
	Tokens  models.TokenPair
	User    *models.User
	Loading bool
}

// Authenticated reports whether the session is currently signed in.
func (s Session) Authenticated() bool {
	return s.Status == enums.SessionAuthenticated
}

type subscriber struct {
	id int
	fn func(Session)
}

// State holds the Session and notifies subscribers on every change. It performs
// no I/O. Mutation only happens through the Manager and the refresh coordinator;
// host code reads and subscribes.
type State struct {
	mu     sync.Mutex
	sess   Session
	subs   []subscriber
	nextID int

	// notifyMu serializes subscriber callbacks so every subscriber observes
	// transitions in the order they were applied.
	notifyMu sync.Mutex
}

func NewState() *State {
	return &State{sess: Session{Status: enums.SessionUnknown}}
}

// Read returns a snapshot of the current session.
func (st *State) Read() Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sess
}

// Subscribe registers fn to run after every session change. The returned function
// removes the subscription.
func (st *State) Subscribe(fn func(Session)) func() {
	st.mu.Lock()
	id := st.nextID
	st.nextID++
	st.subs = append(st.subs, subscriber{id: id, fn: fn})
	st.mu.Unlock()

	return func() {
		st.mu.Lock()
		defer st.mu.Unlock()
		for i, sub := range st.subs {
			if sub.id == id {
				st.subs = append(st.subs[:i], st.subs[i+1:]...)
				break
			}
		}
	}
}

// mutate applies fn to the session and notifies subscribers exactly once, after
// the whole update. A multi-field change (e.g. replacing both tokens) is a single
// notification: subscribers never observe a half-replaced pair.
func (st *State) mutate(fn func(*Session)) {
	st.mu.Lock()
	fn(&st.sess)
	snapshot := st.sess
	subs := make([]subscriber, len(st.subs))
	copy(subs, st.subs)
	st.mu.Unlock()

	st.notifyMu.Lock()
	defer st.notifyMu.Unlock()
	for _, sub := range subs {
		sub.fn(snapshot)
	}
}
