package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Dias221467/Marketplace_Hub/internal/apperrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errConflict = errors.New("conflicting row")

// table keeps the documents of one kind in insertion order.
type table[T any] struct {
	mu     *sync.RWMutex
	rows   []T
	entity string
	id     func(*T) *primitive.ObjectID
	ref    func(*T, string) (primitive.ObjectID, bool)
}

func newTable[T any](mu *sync.RWMutex, entity string, id func(*T) *primitive.ObjectID, ref func(*T, string) (primitive.ObjectID, bool)) *table[T] {
	return &table[T]{mu: mu, entity: entity, id: id, ref: ref}
}

func (t *table[T]) insert(doc *T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	*t.id(doc) = primitive.NewObjectID()
	t.rows = append(t.rows, *doc)
}

// insertUnless inserts doc unless a stored row satisfies conflict. The check and the
// insert hold the same lock.
func (t *table[T]) insertUnless(doc *T, conflict func(*T) bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.rows {
		if conflict(&t.rows[i]) {
			return false
		}
	}
	*t.id(doc) = primitive.NewObjectID()
	t.rows = append(t.rows, *doc)
	return true
}

func (t *table[T]) get(id primitive.ObjectID) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i := range t.rows {
		if *t.id(&t.rows[i]) == id {
			doc := t.rows[i]
			return &doc, nil
		}
	}
	return nil, apperrors.NotFound(t.entity)
}

func (t *table[T]) where(keep func(*T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := []T{}
	for i := range t.rows {
		if keep == nil || keep(&t.rows[i]) {
			out = append(out, t.rows[i])
		}
	}
	return out
}

func (t *table[T]) update(id primitive.ObjectID, apply func(*T)) (*T, error) {
	return t.updateUnless(id, nil, apply)
}

// updateUnless is update that refuses with errConflict when another row satisfies
// conflict.
func (t *table[T]) updateUnless(id primitive.ObjectID, conflict func(*T) bool, apply func(*T)) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if conflict != nil {
		for i := range t.rows {
			if *t.id(&t.rows[i]) != id && conflict(&t.rows[i]) {
				return nil, errConflict
			}
		}
	}
	for i := range t.rows {
		if *t.id(&t.rows[i]) == id {
			apply(&t.rows[i])
			doc := t.rows[i]
			return &doc, nil
		}
	}
	return nil, apperrors.NotFound(t.entity)
}

func (t *table[T]) remove(id primitive.ObjectID) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.rows {
		if *t.id(&t.rows[i]) == id {
			doc := t.rows[i]
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			return &doc, nil
		}
	}
	return nil, apperrors.NotFound(t.entity)
}

func (t *table[T]) removeWhere(drop func(*T) bool) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.rows[:0]
	var n int64
	for i := range t.rows {
		if drop(&t.rows[i]) {
			n++
			continue
		}
		kept = append(kept, t.rows[i])
	}
	t.rows = kept
	return n
}

func (t *table[T]) matches(doc *T, field string, values []primitive.ObjectID) bool {
	var got primitive.ObjectID
	if field == "_id" {
		got = *t.id(doc)
	} else {
		v, ok := t.ref(doc, field)
		if !ok {
			return false
		}
		got = v
	}
	for _, v := range values {
		if got == v {
			return true
		}
	}
	return false
}

// FindIDs returns the ids of documents whose field holds one of values.
func (t *table[T]) FindIDs(_ context.Context, field string, values []primitive.ObjectID) ([]primitive.ObjectID, error) {
	docs := t.where(func(doc *T) bool { return t.matches(doc, field, values) })
	ids := make([]primitive.ObjectID, 0, len(docs))
	for i := range docs {
		ids = append(ids, *t.id(&docs[i]))
	}
	return ids, nil
}

// DeleteMany removes every document whose field holds one of values.
func (t *table[T]) DeleteMany(_ context.Context, field string, values []primitive.ObjectID) (int64, error) {
	return t.removeWhere(func(doc *T) bool { return t.matches(doc, field, values) }), nil
}

func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}

func optionalRef(id *primitive.ObjectID) (primitive.ObjectID, bool) {
	if id == nil {
		return primitive.NilObjectID, false
	}
	return *id, true
}
