package events

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/andreazagoit/upcominghub-native/auth"
	"github.com/andreazagoit/upcominghub-native/enums"
	"github.com/andreazagoit/upcominghub-native/utils"
	"github.com/andreazagoit/upcominghub-native/utils/logger"
)

// Event types published on session transitions.
const (
	TypeSignedIn       = "session.signed_in"
	TypeSignedOut      = "session.signed_out"
	TypeTokenRefreshed = "session.token_refreshed"
)

// Event is the wire payload for a session lifecycle transition.
type Event struct {
	Type   string `json:"type"`
	UserID string `json:"userId,omitempty"`
	At     int64  `json:"at"`
}

// Bridge subscribes to the session state and publishes one event per lifecycle
// transition, in the order the transitions occur. Publish failures are logged
// and dropped; session handling never blocks on the broker.
type Bridge struct {
	pub  Publisher
	stop func()
}

// NewBridge attaches a bridge to st. Close detaches it; the publisher is left
// open for the caller to close.
func NewBridge(st *auth.State, pub Publisher) *Bridge {
	b := &Bridge{pub: pub}
	// last is only touched from state callbacks, which run serialized.
	last := st.Read()
	b.stop = st.Subscribe(func(sess auth.Session) {
		b.handle(last, sess)
		last = sess
	})
	return b
}

func (b *Bridge) Close() {
	b.stop()
}

func (b *Bridge) handle(prev, curr auth.Session) {
	ctx := context.Background()
	switch {
	case prev.Status != enums.SessionAuthenticated && curr.Status == enums.SessionAuthenticated:
		b.emit(ctx, Event{Type: TypeSignedIn, UserID: userID(curr), At: utils.TimeToTimestamp(time.Now())})
	case prev.Status == enums.SessionAuthenticated && curr.Status == enums.SessionUnauthenticated:
		b.emit(ctx, Event{Type: TypeSignedOut, UserID: userID(prev), At: utils.TimeToTimestamp(time.Now())})
	case prev.Status == enums.SessionAuthenticated && curr.Status == enums.SessionAuthenticated && prev.Tokens != curr.Tokens:
		b.emit(ctx, Event{Type: TypeTokenRefreshed, UserID: userID(curr), At: utils.TimeToTimestamp(time.Now())})
	}
}

func (b *Bridge) emit(ctx context.Context, ev Event) {
	body, err := utils.StructToBytes(ev)
	if err != nil {
		logger.LogWarn("failed to encode session event", zap.Error(err))
		return
	}
	if err := b.pub.Publish(ctx, body); err != nil {
		logger.LogWarn("failed to publish session event", zap.String("type", ev.Type), zap.Error(err))
	}
}

func userID(sess auth.Session) string {
	if sess.User == nil {
		return ""
	}
	return sess.User.ID
}
