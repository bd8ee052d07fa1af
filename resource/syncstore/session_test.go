package syncstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libreshelf/library-console-go/resource"
	"github.com/libreshelf/library-console-go/resource/syncstore"
)

func copyThingDraft(t thing) thingDraft {
	return thingDraft{Label: t.Label}
}

func newSession(t *testing.T, store *syncstore.Store[thing, thingDraft]) *syncstore.EditSession[thing, thingDraft] {
	t.Helper()

	session, err := syncstore.NewEditSession(store, copyThingDraft)
	require.NoError(t, err)

	return session
}

func Test_EditSession_New_Validations(t *testing.T) {
	store := newStore(t, newFakeRemote())

	_, err := syncstore.NewEditSession[thing, thingDraft](nil, copyThingDraft)
	assert.ErrorIs(t, err, syncstore.ErrNilStore)

	_, err = syncstore.NewEditSession[thing, thingDraft](store, nil)
	assert.ErrorIs(t, err, syncstore.ErrNilDraftCopier)
}

func Test_EditSession_StartsIdle(t *testing.T) {
	session := newSession(t, newStore(t, newFakeRemote()))

	assert.Equal(t, syncstore.StateIdle, session.State())
	assert.Equal(t, resource.ID(0), session.TargetID())
}

func Test_EditSession_BeginCreate_InitializesBlankDraft(t *testing.T) {
	session := newSession(t, newStore(t, newFakeRemote()))

	err := session.BeginCreate()

	require.NoError(t, err)
	assert.Equal(t, syncstore.StateCreating, session.State())
	assert.Equal(t, thingDraft{}, session.Draft())
}

func Test_EditSession_BeginEdit_CopiesCommittedFields(t *testing.T) {
	remote := newFakeRemote(thing{ID: 1, Label: "committed"})
	store := newStore(t, remote)
	require.NoError(t, store.Load(context.Background()))
	session := newSession(t, store)

	err := session.BeginEdit(1)

	require.NoError(t, err)
	assert.Equal(t, syncstore.StateEditing, session.State())
	assert.Equal(t, resource.ID(1), session.TargetID())
	assert.Equal(t, thingDraft{Label: "committed"}, session.Draft())

	// Draft edits must not leak into the committed collection.
	session.SetDraft(thingDraft{Label: "half edited"})
	local, found := store.Find(1)
	require.True(t, found)
	assert.Equal(t, "committed", local.Label)
}

func Test_EditSession_BeginEdit_UnknownEntity_Fails(t *testing.T) {
	store := newStore(t, newFakeRemote())
	session := newSession(t, store)

	err := session.BeginEdit(42)

	assert.ErrorIs(t, err, syncstore.ErrUnknownEntity)
	assert.Equal(t, syncstore.StateIdle, session.State())
}

func Test_EditSession_Begin_WhileActive_Fails(t *testing.T) {
	remote := newFakeRemote(thing{ID: 1, Label: "committed"})
	store := newStore(t, remote)
	require.NoError(t, store.Load(context.Background()))
	session := newSession(t, store)

	require.NoError(t, session.BeginCreate())
	assert.ErrorIs(t, session.BeginCreate(), syncstore.ErrSessionActive)
	assert.ErrorIs(t, session.BeginEdit(1), syncstore.ErrSessionActive)

	session.Cancel()

	require.NoError(t, session.BeginEdit(1))
	assert.ErrorIs(t, session.BeginCreate(), syncstore.ErrSessionActive)
	assert.ErrorIs(t, session.BeginEdit(1), syncstore.ErrSessionActive)
}

func Test_EditSession_Cancel_DiscardsDraftWithoutRemoteCall(t *testing.T) {
	remote := newFakeRemote(thing{ID: 1, Label: "committed"})
	store := newStore(t, remote)
	require.NoError(t, store.Load(context.Background()))
	session := newSession(t, store)

	require.NoError(t, session.BeginEdit(1))
	session.SetDraft(thingDraft{Label: "discarded"})

	session.Cancel()

	assert.Equal(t, syncstore.StateIdle, session.State())
	assert.Equal(t, thingDraft{}, session.Draft())
	assert.Equal(t, 0, remote.updateCalls)
	assert.Equal(t, 0, remote.createCalls)

	// Canceling an idle session is a no-op.
	session.Cancel()
	assert.Equal(t, syncstore.StateIdle, session.State())
}

func Test_EditSession_Save_Idle_Fails(t *testing.T) {
	session := newSession(t, newStore(t, newFakeRemote()))

	_, err := session.Save(context.Background())

	assert.ErrorIs(t, err, syncstore.ErrNoActiveSession)
}

func Test_EditSession_Save_Creating_AppendsAndReturnsToIdle(t *testing.T) {
	remote := newFakeRemote(thing{ID: 1, Label: "existing"})
	store := newStore(t, remote)
	require.NoError(t, store.Load(context.Background()))
	session := newSession(t, store)

	require.NoError(t, session.BeginCreate())
	session.SetDraft(thingDraft{Label: "drafted"})

	created, err := session.Save(context.Background())

	require.NoError(t, err)
	assert.Equal(t, resource.ID(2), created.ID)
	assert.Equal(t, syncstore.StateIdle, session.State())
	assert.Equal(t, []resource.ID{1, 2}, identities(store.All()))
}

func Test_EditSession_Save_Editing_CommitsAndReturnsToIdle(t *testing.T) {
	remote := newFakeRemote(thing{ID: 1, Label: "original", Revision: 1})
	store := newStore(t, remote)
	require.NoError(t, store.Load(context.Background()))
	session := newSession(t, store)

	require.NoError(t, session.BeginEdit(1))
	session.SetDraft(thingDraft{Label: "renamed"})

	updated, err := session.Save(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Label)
	assert.Equal(t, 2, updated.Revision)
	assert.Equal(t, syncstore.StateIdle, session.State())
}

func Test_EditSession_Save_Failure_PreservesSessionAndDraft(t *testing.T) {
	remote := newFakeRemote(thing{ID: 1, Label: "original"})
	store := newStore(t, remote)
	require.NoError(t, store.Load(context.Background()))
	session := newSession(t, store)

	require.NoError(t, session.BeginEdit(1))
	session.SetDraft(thingDraft{Label: "renamed"})

	remote.updateErr = resource.NewRemoteError(resource.ErrTransport, "connection refused", 0)

	_, err := session.Save(context.Background())

	require.Error(t, err)
	assert.Equal(t, syncstore.StateEditing, session.State(), "a failed save must not discard the session")
	assert.Equal(t, thingDraft{Label: "renamed"}, session.Draft(), "user input survives for a retry")

	// A retry after the failure cause is gone succeeds and goes idle.
	remote.updateErr = nil

	updated, err := session.Save(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Label)
	assert.Equal(t, syncstore.StateIdle, session.State())
}

func Test_SessionState_String(t *testing.T) {
	assert.Equal(t, "idle", syncstore.StateIdle.String())
	assert.Equal(t, "creating", syncstore.StateCreating.String())
	assert.Equal(t, "editing", syncstore.StateEditing.String())
}
