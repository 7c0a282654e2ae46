// Package cascade describes which documents go away together with a deleted parent
// and removes them.
package cascade

import (
	"context"
	"fmt"

	"github.com/Dias221467/Marketplace_Hub/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind names an entity kind, persisted or external.
type Kind string

const (
	Category     Kind = "category"
	Offer        Kind = "offer"
	Review       Kind = "review"
	Comment      Kind = "comment"
	Notification Kind = "notification"
	User         Kind = "user"
)

// Rule deletes every Child document whose Field holds the parent id.
type Rule struct {
	Child Kind
	Field string
}

var rules = map[Kind][]Rule{
	Offer:    {{Child: Comment, Field: "post.id"}},
	Review:   {{Child: Comment, Field: "post.id"}},
	Category: {{Child: Review, Field: "category"}},
	User: {
		{Child: Offer, Field: "author"},
		{Child: Review, Field: "author"},
		{Child: Comment, Field: "author"},
	},
}

// Rules returns the cascade targets of kind.
func Rules(kind Kind) []Rule {
	out := make([]Rule, len(rules[kind]))
	copy(out, rules[kind])
	return out
}

// Collection is the part of a store the executor needs for one kind.
type Collection interface {
	FindIDs(ctx context.Context, field string, values []primitive.ObjectID) ([]primitive.ObjectID, error)
	DeleteMany(ctx context.Context, field string, values []primitive.ObjectID) (int64, error)
}

// Report counts the documents removed per kind.
type Report map[Kind]int64

type Executor struct {
	collections map[Kind]Collection
}

func NewExecutor(collections map[Kind]Collection) *Executor {
	return &Executor{collections: collections}
}

// DeleteDependents removes everything that hangs off the given parents, depth first.
// The parents themselves are left for the caller to delete, normally inside the same
// transaction. The first failing step aborts the run.
func (e *Executor) DeleteDependents(ctx context.Context, kind Kind, ids ...primitive.ObjectID) (Report, error) {
	report := Report{}
	if err := e.run(ctx, kind, ids, report); err != nil {
		logger.Log.WithError(err).WithField("kind", kind).Error("Cascade delete failed")
		return report, err
	}

	if len(report) > 0 {
		fields := logrus.Fields{"kind": kind, "parents": len(ids)}
		for child, n := range report {
			fields[string(child)] = n
		}
		logger.Log.WithFields(fields).Info("Cascade delete completed")
	}
	return report, nil
}

func (e *Executor) run(ctx context.Context, kind Kind, ids []primitive.ObjectID, report Report) error {
	if len(ids) == 0 {
		return nil
	}
	for _, rule := range rules[kind] {
		coll, ok := e.collections[rule.Child]
		if !ok {
			return fmt.Errorf("cascade %s -> %s: no collection registered", kind, rule.Child)
		}

		if len(rules[rule.Child]) > 0 {
			childIDs, err := coll.FindIDs(ctx, rule.Field, ids)
			if err != nil {
				return fmt.Errorf("cascade %s -> %s: %w", kind, rule.Child, err)
			}
			if err := e.run(ctx, rule.Child, childIDs, report); err != nil {
				return err
			}
		}

		n, err := coll.DeleteMany(ctx, rule.Field, ids)
		if err != nil {
			return fmt.Errorf("cascade %s -> %s: %w", kind, rule.Child, err)
		}
		report[rule.Child] += n
	}
	return nil
}
