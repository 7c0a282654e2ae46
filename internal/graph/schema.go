// Package graph builds the GraphQL schema over the entity services.
package graph

import (
	"context"
	"fmt"

	"github.com/Dias221467/Marketplace_Hub/internal/services"
	"github.com/Dias221467/Marketplace_Hub/pkg/logger"
	"github.com/Dias221467/Marketplace_Hub/pkg/metrics"
	"github.com/graphql-go/graphql"
	"github.com/sirupsen/logrus"
)

// Services are the resolvers' backends.
type Services struct {
	Categories    *services.CategoryService
	Offers        *services.OfferService
	Reviews       *services.ReviewService
	Comments      *services.CommentService
	Notifications *services.NotificationService
	Users         *services.UserService
}

type Schema struct {
	schema graphql.Schema
	svc    Services

	categoryType      *graphql.Object
	userType          *graphql.Object
	userResponseType  *graphql.Object
	loginResponseType *graphql.Object
	offerType         *graphql.Object
	reviewType        *graphql.Object
	commentType       *graphql.Object
	notificationType  *graphql.Object
	postType          *graphql.Union
}

func NewSchema(svc Services) (*Schema, error) {
	s := &Schema{svc: svc}

	// Comment, Offer and Review refer to each other through Post; their fields are
	// thunks so the order below only matters for the non-thunk types.
	s.categoryType = s.defineCategoryType()
	s.userType = s.defineUserType()
	s.userResponseType = s.defineUserResponseType()
	s.loginResponseType = s.defineLoginResponseType()
	s.commentType = s.defineCommentType()
	s.offerType = s.defineOfferType()
	s.reviewType = s.defineReviewType()
	s.postType = s.definePostType()
	s.notificationType = s.defineNotificationType()

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: s.queryFields(),
		}),
		Mutation: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Mutation",
			Fields: s.mutationFields(),
		}),
		Types: []graphql.Type{s.offerType, s.reviewType},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build schema: %w", err)
	}
	s.schema = schema
	return s, nil
}

// Do executes one GraphQL request. ctx carries the caller identity and the request
// deadline down to the services.
func (s *Schema) Do(ctx context.Context, query string, variables map[string]interface{}, operationName string) *graphql.Result {
	result := graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  query,
		VariableValues: variables,
		OperationName:  operationName,
		Context:        ctx,
	})

	for _, gqlErr := range result.Errors {
		code, _ := gqlErr.Extensions["code"].(string)
		if code == "" {
			code = "GRAPHQL_VALIDATION_FAILED"
		}
		metrics.GraphQLErrors.WithLabelValues(code).Inc()
		logger.Log.WithFields(logrus.Fields{
			"operation": operationName,
			"code":      code,
		}).Debug(gqlErr.Message)
	}
	return result
}
