package syncstore

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/libreshelf/library-console-go/resource"
)

var ErrNilRemoteClient = errors.New("nil remote client supplied")
var ErrLoadingCollectionFailed = errors.New("loading collection from remote authority failed")
var ErrCreatingEntityFailed = errors.New("creating entity at remote authority failed")
var ErrUpdatingEntityFailed = errors.New("updating entity at remote authority failed")
var ErrDeletingEntityFailed = errors.New("deleting entity at remote authority failed")
var ErrRefreshingEntityFailed = errors.New("refreshing entity from remote authority failed")
var ErrEntityNotInCollection = errors.New("entity is not part of the local collection")

const (
	logMsgCollectionLoaded  = "collection loaded"
	logMsgEntityCreated     = "entity created"
	logMsgEntityRefreshed   = "entity refreshed"
	logMsgEntityDeleted     = "entity deleted"
	logMsgRemoteCallFailed  = "remote call failed"
	logMsgRefreshedUnknown  = "refreshed entity is not part of the local collection"
	logMsgDeletedUnknown    = "deleted entity was not part of the local collection"
	logAttrCollection       = "collection"
	logAttrError            = "error"
	logAttrEntityID         = "entity_id"
	logAttrEntityCount      = "entity_count"
	logAttrDurationMS       = "duration_ms"
	metricLoadDuration      = "syncstore.load.duration"
	metricMutationDuration  = "syncstore.mutation.duration"
	metricOperationTotal    = "syncstore.operation.total"
	labelCollection         = "collection"
	labelOperation          = "operation"
	labelStatus             = "status"
	labelStatusOK           = "ok"
	labelStatusFailed       = "failed"
	operationLoad           = "load"
	operationCreate         = "create"
	operationUpdate         = "update"
	operationDelete         = "delete"
	operationRefresh        = "refresh"
	defaultCollectionNoName = "unnamed"
)

// Store maintains the local ordered collection of one entity type,
// synchronized with a remote authority following the write-then-read protocol.
//
// The collection is exclusively owned by the Store: presentation order is
// authoritative-fetch order, then create-order. No resequencing or sorting is
// performed. The Store does not serialize concurrent calls; at most one
// in-flight mutating operation per collection is a caller precondition.
type Store[T resource.Entity, D any] struct {
	remote           resource.RemoteClient[T, D]
	name             string
	entities         []T
	ready            bool
	logger           resource.Logger
	contextualLogger resource.ContextualLogger
	metricsCollector resource.MetricsCollector
}

// New creates a Store bound to the given remote client with optional configuration.
// The collection starts empty and not ready; call Load to initialize it.
func New[T resource.Entity, D any](
	remote resource.RemoteClient[T, D],
	options ...Option[T, D],
) (*Store[T, D], error) {

	if remote == nil {
		return nil, ErrNilRemoteClient
	}

	s := &Store[T, D]{
		remote:   remote,
		name:     defaultCollectionNoName,
		entities: make([]T, 0),
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Load fetches the full collection and replaces the local snapshot atomically.
// On failure the prior snapshot (last-known-good) is preserved, the store's
// readiness is unchanged, and the error is surfaced to the caller; Load is
// never retried automatically.
func (s *Store[T, D]) Load(ctx context.Context) error {
	start := time.Now()
	listed, listErr := s.remote.List(ctx)
	duration := time.Since(start)
	s.recordOperation(operationLoad, listErr == nil)
	s.recordDuration(metricLoadDuration, operationLoad, duration)

	if listErr != nil {
		s.logError(ctx, operationLoad, listErr)
		return errors.Join(ErrLoadingCollectionFailed, listErr)
	}

	replacement := make([]T, len(listed))
	copy(replacement, listed)
	s.entities = replacement
	s.ready = true

	s.logInfo(ctx, logMsgCollectionLoaded,
		logAttrCollection, s.name,
		logAttrEntityCount, len(replacement),
		logAttrDurationMS, durationToMilliseconds(duration))

	return nil
}

// Create sends the identity-less draft to the remote authority and appends the
// fully-populated server-returned entity to the end of the local collection.
// On failure the collection is left untouched; the caller keeps the draft.
func (s *Store[T, D]) Create(ctx context.Context, draft D) (T, error) {
	var empty T

	start := time.Now()
	created, createErr := s.remote.Create(ctx, draft)
	duration := time.Since(start)
	s.recordOperation(operationCreate, createErr == nil)
	s.recordDuration(metricMutationDuration, operationCreate, duration)

	if createErr != nil {
		s.logError(ctx, operationCreate, createErr)
		return empty, errors.Join(ErrCreatingEntityFailed, createErr)
	}

	s.entities = append(s.entities, created)

	s.logInfo(ctx, logMsgEntityCreated,
		logAttrCollection, s.name,
		logAttrEntityID, created.Identity(),
		logAttrDurationMS, durationToMilliseconds(duration))

	return created, nil
}

// Update sends the patch keyed by id, then re-fetches the canonical entity and
// replaces the matching local entry in place (write-then-read). The response
// of the write itself is treated as an acknowledgement only, so server-side
// computed fields are always reflected locally. On failure the local entry is
// untouched and the error is surfaced.
func (s *Store[T, D]) Update(ctx context.Context, id resource.ID, patch D) (T, error) {
	var empty T

	start := time.Now()
	updateErr := s.remote.Update(ctx, id, patch)
	duration := time.Since(start)
	s.recordOperation(operationUpdate, updateErr == nil)
	s.recordDuration(metricMutationDuration, operationUpdate, duration)

	if updateErr != nil {
		s.logError(ctx, operationUpdate, updateErr)
		return empty, errors.Join(ErrUpdatingEntityFailed, updateErr)
	}

	refreshed, refreshErr := s.Refresh(ctx, id)
	if refreshErr != nil {
		return empty, errors.Join(ErrUpdatingEntityFailed, refreshErr)
	}

	return refreshed, nil
}

// Refresh fetches the canonical representation of a single entity and replaces
// the matching local entry in place, preserving its position. It is the
// read-after-write primitive behind Update and domain-specific actions whose
// observable effect is a server-side field change.
func (s *Store[T, D]) Refresh(ctx context.Context, id resource.ID) (T, error) {
	var empty T

	start := time.Now()
	canonical, getErr := s.remote.Get(ctx, id)
	duration := time.Since(start)
	s.recordOperation(operationRefresh, getErr == nil)
	s.recordDuration(metricMutationDuration, operationRefresh, duration)

	if getErr != nil {
		s.logError(ctx, operationRefresh, getErr)
		return empty, errors.Join(ErrRefreshingEntityFailed, getErr)
	}

	index := s.indexOf(id)
	if index < 0 {
		s.logWarn(ctx, logMsgRefreshedUnknown, logAttrCollection, s.name, logAttrEntityID, id)
		return empty, errors.Join(ErrRefreshingEntityFailed, ErrEntityNotInCollection)
	}

	s.entities[index] = canonical

	s.logInfo(ctx, logMsgEntityRefreshed,
		logAttrCollection, s.name,
		logAttrEntityID, id,
		logAttrDurationMS, durationToMilliseconds(duration))

	return canonical, nil
}

// Delete removes the entity at the remote authority, then removes the matching
// local entry by identity, preserving the relative order of the remainder.
// On failure the entry is retained and the error is surfaced. A successful
// remote delete of an id that is not held locally is logged at warn level as
// an inconsistency, like Refresh does for a missing entry.
func (s *Store[T, D]) Delete(ctx context.Context, id resource.ID) error {
	start := time.Now()
	deleteErr := s.remote.Delete(ctx, id)
	duration := time.Since(start)
	s.recordOperation(operationDelete, deleteErr == nil)
	s.recordDuration(metricMutationDuration, operationDelete, duration)

	if deleteErr != nil {
		s.logError(ctx, operationDelete, deleteErr)
		return errors.Join(ErrDeletingEntityFailed, deleteErr)
	}

	index := s.indexOf(id)
	if index < 0 {
		s.logWarn(ctx, logMsgDeletedUnknown, logAttrCollection, s.name, logAttrEntityID, id)
		return nil
	}

	s.entities = append(s.entities[:index], s.entities[index+1:]...)

	s.logInfo(ctx, logMsgEntityDeleted,
		logAttrCollection, s.name,
		logAttrEntityID, id,
		logAttrDurationMS, durationToMilliseconds(duration))

	return nil
}

// All returns a copy of the local collection in presentation order.
// Consumers never observe a partially replaced collection.
func (s *Store[T, D]) All() []T {
	snapshot := make([]T, len(s.entities))
	copy(snapshot, s.entities)

	return snapshot
}

// Find returns the local entity with the given identity, if present.
func (s *Store[T, D]) Find(id resource.ID) (T, bool) {
	var empty T

	index := s.indexOf(id)
	if index < 0 {
		return empty, false
	}

	return s.entities[index], true
}

// Len returns the number of entities in the local collection.
func (s *Store[T, D]) Len() int {
	return len(s.entities)
}

// Ready reports whether the store has completed at least one successful Load.
func (s *Store[T, D]) Ready() bool {
	return s.ready
}

// Name returns the collection name used for logging and metrics.
func (s *Store[T, D]) Name() string {
	return s.name
}

func (s *Store[T, D]) indexOf(id resource.ID) int {
	for i, entity := range s.entities {
		if entity.Identity() == id {
			return i
		}
	}

	return -1
}

func (s *Store[T, D]) logInfo(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, msg, args...)
		return
	}
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Store[T, D]) logWarn(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, msg, args...)
		return
	}
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

func (s *Store[T, D]) logError(ctx context.Context, operation string, err error) {
	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, logMsgRemoteCallFailed,
			logAttrCollection, s.name, labelOperation, operation, logAttrError, err.Error())
		return
	}
	if s.logger != nil {
		s.logger.Error(logMsgRemoteCallFailed,
			logAttrCollection, s.name, labelOperation, operation, logAttrError, err.Error())
	}
}

func (s *Store[T, D]) recordOperation(operation string, succeeded bool) {
	if s.metricsCollector == nil {
		return
	}

	status := labelStatusOK
	if !succeeded {
		status = labelStatusFailed
	}

	s.metricsCollector.IncrementCounter(metricOperationTotal, map[string]string{
		labelCollection: s.name,
		labelOperation:  operation,
		labelStatus:     status,
	})
}

func (s *Store[T, D]) recordDuration(metric string, operation string, duration time.Duration) {
	if s.metricsCollector == nil {
		return
	}

	s.metricsCollector.RecordDuration(metric, duration, map[string]string{
		labelCollection: s.name,
		labelOperation:  operation,
	})
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
