package syncstore

import (
	"context"
	"errors"

	"github.com/libreshelf/library-console-go/resource"
)

var ErrNilStore = errors.New("nil store supplied")
var ErrNilDraftCopier = errors.New("nil draft copier supplied")
var ErrSessionActive = errors.New("an edit session is already active")
var ErrNoActiveSession = errors.New("no edit session is active")
var ErrUnknownEntity = errors.New("entity to edit is not part of the local collection")

// SessionState represents the mode of an EditSession.
type SessionState int

const (
	StateIdle SessionState = iota
	StateCreating
	StateEditing
)

// String returns the lowercase name of the state.
func (s SessionState) String() string {
	switch s {
	case StateCreating:
		return "creating"
	case StateEditing:
		return "editing"
	default:
		return "idle"
	}
}

// EditSession mediates between "nothing is being edited", "a new entity is
// being drafted" and "an existing entity is being edited" for one collection.
//
// The tagged state makes simultaneous create-mode and edit-mode
// unrepresentable: Begin* calls fail with ErrSessionActive while a session is
// active. The draft is always a copy, independent of the committed collection
// until a Save succeeds, so a half-edited draft never leaks into rendered
// committed state. A failed Save preserves the session and its draft intact;
// discarding user input requires an explicit Cancel.
type EditSession[T resource.Entity, D any] struct {
	store           *Store[T, D]
	draftFromEntity func(T) D
	state           SessionState
	targetID        resource.ID
	draft           D
}

// NewEditSession creates an idle EditSession for the given store.
// draftFromEntity copies an entity's committed fields into a fresh draft when
// an edit begins; it must not retain references into the entity.
func NewEditSession[T resource.Entity, D any](
	store *Store[T, D],
	draftFromEntity func(T) D,
) (*EditSession[T, D], error) {

	if store == nil {
		return nil, ErrNilStore
	}

	if draftFromEntity == nil {
		return nil, ErrNilDraftCopier
	}

	return &EditSession[T, D]{
		store:           store,
		draftFromEntity: draftFromEntity,
		state:           StateIdle,
	}, nil
}

// State returns the current session state.
func (es *EditSession[T, D]) State() SessionState {
	return es.state
}

// TargetID returns the identity of the entity being edited, or zero unless
// the session is in StateEditing.
func (es *EditSession[T, D]) TargetID() resource.ID {
	if es.state != StateEditing {
		return 0
	}

	return es.targetID
}

// Draft returns the current draft value.
func (es *EditSession[T, D]) Draft() D {
	return es.draft
}

// SetDraft replaces the draft with locally edited field values.
// Draft mutation is free-form; validation happens at the remote authority.
func (es *EditSession[T, D]) SetDraft(draft D) {
	es.draft = draft
}

// BeginCreate starts a creation session with an empty default draft.
// Fails with ErrSessionActive while another session is active.
func (es *EditSession[T, D]) BeginCreate() error {
	if es.state != StateIdle {
		return ErrSessionActive
	}

	var blank D
	es.state = StateCreating
	es.targetID = 0
	es.draft = blank

	return nil
}

// BeginEdit starts an edit session for the entity with the given identity,
// initializing the draft as a copy of its current committed fields.
// Fails with ErrSessionActive while another session is active and with
// ErrUnknownEntity when the identity is not in the local collection.
func (es *EditSession[T, D]) BeginEdit(id resource.ID) error {
	if es.state != StateIdle {
		return ErrSessionActive
	}

	entity, found := es.store.Find(id)
	if !found {
		return ErrUnknownEntity
	}

	es.state = StateEditing
	es.targetID = id
	es.draft = es.draftFromEntity(entity)

	return nil
}

// Cancel discards the draft and returns the session to idle without any
// remote call. Canceling an idle session is a no-op.
func (es *EditSession[T, D]) Cancel() {
	var blank D
	es.state = StateIdle
	es.targetID = 0
	es.draft = blank
}

// Save commits the draft: a creating session delegates to Store.Create, an
// editing session to Store.Update. On success the session returns to idle and
// the committed entity is returned. On failure the session and its draft are
// preserved for another attempt.
func (es *EditSession[T, D]) Save(ctx context.Context) (T, error) {
	var empty T

	switch es.state {
	case StateCreating:
		created, err := es.store.Create(ctx, es.draft)
		if err != nil {
			return empty, err
		}

		es.Cancel()

		return created, nil

	case StateEditing:
		updated, err := es.store.Update(ctx, es.targetID, es.draft)
		if err != nil {
			return empty, err
		}

		es.Cancel()

		return updated, nil

	default:
		return empty, ErrNoActiveSession
	}
}
