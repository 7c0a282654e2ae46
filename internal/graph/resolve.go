package graph

import (
	"context"
	"time"

	"github.com/Dias221467/Marketplace_Hub/internal/apperrors"
	"github.com/Dias221467/Marketplace_Hub/internal/models"
	"github.com/Dias221467/Marketplace_Hub/pkg/middleware"
	"github.com/graphql-go/graphql"
)

// guard classifies every resolver error so it reaches the client with a code.
func guard(fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		out, err := fn(p)
		if err != nil {
			return nil, apperrors.From(err)
		}
		return out, nil
	}
}

func callerFrom(ctx context.Context) *models.Caller {
	if ctx == nil {
		return nil
	}
	return middleware.GetUserFromContext(ctx)
}

func ctxOf(p graphql.ResolveParams) context.Context {
	if p.Context == nil {
		return context.Background()
	}
	return p.Context
}

// ptrs lets list resolvers hand out the same pointer shape the single-item resolvers
// return, so field resolvers only deal with *T.
func ptrs[T any](items []T) []*T {
	out := make([]*T, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}

// listOf adapts a service list call to a resolver result.
func listOf[T any](items []T, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	return ptrs(items), nil
}

// one adapts a service single-item call, keeping a nil pointer from becoming a
// non-nil interface.
func one[T any](item *T, err error) (interface{}, error) {
	if err != nil || item == nil {
		return nil, err
	}
	return item, nil
}

func argString(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

func argOptString(args map[string]interface{}, key string) *string {
	s, ok := args[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func argOptInt(args map[string]interface{}, key string) *int {
	n, ok := args[key].(int)
	if !ok {
		return nil
	}
	return &n
}

func argOptTime(args map[string]interface{}, key string) *time.Time {
	switch v := args[key].(type) {
	case time.Time:
		return &v
	case *time.Time:
		return v
	}
	return nil
}

func argInput(p graphql.ResolveParams, key string) map[string]interface{} {
	m, _ := p.Args[key].(map[string]interface{})
	if m == nil {
		m = map[string]interface{}{}
	}
	return m
}

func argStrings(args map[string]interface{}, key string) []string {
	raw, _ := args[key].([]interface{})
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
