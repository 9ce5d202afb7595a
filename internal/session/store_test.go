package session

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillsphere/skillsphere/internal/api"
	"github.com/skillsphere/skillsphere/internal/log"
)

type fakeBackend struct {
	payload   api.SessionPayload
	fetchErr  error
	logoutErr error
	logouts   int
}

func (f *fakeBackend) CurrentSession(ctx context.Context) (api.SessionPayload, error) {
	return f.payload, f.fetchErr
}

func (f *fakeBackend) Logout(ctx context.Context) error {
	f.logouts++
	return f.logoutErr
}

func TestStoreStartsLoading(t *testing.T) {
	store := NewStore(&fakeBackend{}, nil)

	sess, loading := store.Snapshot()
	assert.True(t, loading)
	assert.False(t, sess.IsLoggedIn)
}

func TestBootstrapSuccess(t *testing.T) {
	backend := &fakeBackend{payload: api.SessionPayload{
		IsLoggedIn:             true,
		Email:                  "ada@example.com",
		Firstname:              "Ada",
		Lastname:               "Lovelace",
		Organisation:           &api.Organisation{ID: 1, Role: api.RoleAdmin},
		HasCompletedOnboarding: true,
	}}
	store := NewStore(backend, nil)

	store.Bootstrap(context.Background())

	sess, loading := store.Snapshot()
	assert.False(t, loading)
	assert.True(t, sess.IsLoggedIn)
	assert.Equal(t, "Ada", sess.FirstName)
	assert.True(t, sess.IsAdmin())
	assert.True(t, sess.HasCompletedOnboarding)
}

func TestBootstrapTransportFailureDegradesToLoggedOut(t *testing.T) {
	backend := &fakeBackend{fetchErr: fmt.Errorf("connection refused")}
	store := NewStore(backend, nil)

	store.Bootstrap(context.Background())

	sess, loading := store.Snapshot()
	assert.False(t, loading, "bootstrap failure must still resolve the loading state")
	assert.False(t, sess.IsLoggedIn)
}

func TestBootstrapInvariantViolationDegradesToLoggedOut(t *testing.T) {
	// Completed onboarding without an organisation violates the session
	// invariants and must not be stored.
	backend := &fakeBackend{payload: api.SessionPayload{
		IsLoggedIn:             true,
		Email:                  "ada@example.com",
		HasCompletedOnboarding: true,
	}}
	store := NewStore(backend, nil)

	store.Bootstrap(context.Background())

	sess, loading := store.Snapshot()
	assert.False(t, loading)
	assert.False(t, sess.IsLoggedIn)
}

func TestReplaceNotifiesSubscribersSynchronously(t *testing.T) {
	store := NewStore(&fakeBackend{}, nil)

	var seen []Session
	store.Subscribe(func(s Session) { seen = append(seen, s) })

	next := Session{IsLoggedIn: true, Email: "ada@example.com"}
	store.Replace(next)

	require.Len(t, seen, 1, "subscriber must run before Replace returns")
	assert.Equal(t, next, seen[0])
	assert.Equal(t, next, store.Current())
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	store := NewStore(&fakeBackend{}, nil)

	var count int
	cancel := store.Subscribe(func(Session) { count++ })

	store.Replace(Session{IsLoggedIn: true})
	cancel()
	store.Replace(LoggedOut())

	assert.Equal(t, 1, count)
}

func TestLogoutClearsSessionEvenOnBackendFailure(t *testing.T) {
	backend := &fakeBackend{logoutErr: fmt.Errorf("500 from backend")}
	store := NewStore(backend, nil)
	store.Replace(Session{IsLoggedIn: true, Email: "ada@example.com"})

	err := store.Logout(context.Background())

	require.Error(t, err, "caller must learn the mutation failed")
	assert.False(t, store.Current().IsLoggedIn, "logout always leaves the client logged out")
	assert.Equal(t, 1, backend.logouts)
}

func TestLogoutSuccess(t *testing.T) {
	backend := &fakeBackend{}
	store := NewStore(backend, nil)
	store.Replace(Session{IsLoggedIn: true})

	require.NoError(t, store.Logout(context.Background()))
	assert.False(t, store.Current().IsLoggedIn)
}

func TestFromPayloadLoggedOutIgnoresOtherFields(t *testing.T) {
	sess, err := FromPayload(api.SessionPayload{
		IsLoggedIn: false,
		Email:      "ghost@example.com",
		Firstname:  "Ghost",
	})
	require.NoError(t, err)
	assert.Equal(t, LoggedOut(), sess)
}

func TestFromPayloadUnknownRoleGetsMemberSemantics(t *testing.T) {
	var buf bytes.Buffer
	previous := log.DefaultLogger()
	log.SetDefaultLogger(log.New(log.Config{Level: log.LevelWarn, Format: log.FormatText, Output: &buf}))
	defer log.SetDefaultLogger(previous)

	sess, err := FromPayload(api.SessionPayload{
		IsLoggedIn:             true,
		Organisation:           &api.Organisation{ID: 3, Role: "owner"},
		HasCompletedOnboarding: true,
	})
	require.NoError(t, err)
	require.NotNil(t, sess.Organisation)
	assert.Equal(t, RoleEmployee, sess.Organisation.Role)
	assert.False(t, sess.IsAdmin())

	assert.Contains(t, buf.String(), "unknown organisation role")
	assert.Contains(t, buf.String(), "owner")
}
