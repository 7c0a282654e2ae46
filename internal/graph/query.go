package graph

import (
	"github.com/graphql-go/graphql"
)

func idArg() graphql.FieldConfigArgument {
	return namedIDArg("id")
}

func namedIDArg(name string) graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		name: &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}
}

func searchArg() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"searchTerm": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
	}
}

func (s *Schema) queryFields() graphql.Fields {
	fields := graphql.Fields{}
	for _, group := range []graphql.Fields{
		s.categoryQueries(),
		s.offerQueries(),
		s.reviewQueries(),
		s.commentQueries(),
		s.notificationQueries(),
		s.userQueries(),
	} {
		for name, field := range group {
			fields[name] = field
		}
	}
	return fields
}

func (s *Schema) categoryQueries() graphql.Fields {
	svc := s.svc.Categories
	return graphql.Fields{
		"categories": &graphql.Field{
			Type: graphql.NewList(s.categoryType),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				return listOf(svc.GetCategories(ctxOf(p)))
			}),
		},
		"categoryById": &graphql.Field{
			Type: s.categoryType,
			Args: idArg(),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				return one(svc.GetCategory(ctxOf(p), argString(p.Args, "id")))
			}),
		},
		"searchCategories": &graphql.Field{
			Type: graphql.NewList(s.categoryType),
			Args: searchArg(),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				return listOf(svc.SearchCategories(ctxOf(p), argString(p.Args, "searchTerm")))
			}),
		},
		"categoriesByUser": &graphql.Field{
			Type: graphql.NewList(s.categoryType),
			Args: namedIDArg("userId"),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				return listOf(svc.GetCategoriesByUser(ctxOf(p), argString(p.Args, "userId")))
			}),
		},
	}
}

func (s *Schema) offerQueries() graphql.Fields {
	svc := s.svc.Offers
	return graphql.Fields{
		"offers": &graphql.Field{
			Type: graphql.NewList(s.offerType),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				return listOf(svc.GetOffers(ctxOf(p)))
			}),
		},
		"offerById": &graphql.Field{
			Type: s.offerType,
			Args: idArg(),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				return one(svc.GetOffer(ctxOf(p), argString(p.Args, "id")))
			}),
		},
		"searchOffers": &graphql.Field{
			Type: graphql.NewList(s.offerType),
			Args: searchArg(),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				return listOf(svc.SearchOffers(ctxOf(p), argString(p.Args, "searchTerm")))
			}),
		},
		"offersByCategory": &graphql.Field{
			Type: graphql.NewList(s.offerType),
			Args: namedIDArg("categoryId"),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				return listOf(svc.GetOffersByCategory(ctxOf(p), argString(p.Args, "categoryId")))
			}),
		},
		"offersByAuthor": &graphql.Field{
			Type: graphql.NewList(s.offerType),
			Args: namedIDArg("authorId"),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				return listOf(svc.GetOffersByAuthor(ctxOf(p), argString(p.Args, "authorId")))
			}),
		},
	}
}

func (s *Schema) reviewQueries() graphql.Fields {
	svc := s.svc.Reviews
	byID := guard(func(p graphql.ResolveParams) (interface{}, error) {
		return one(svc.GetReview(ctxOf(p), argString(p.Args, "id")))
	})
	return graphql.Fields{
		"reviews": &graphql.Field{
			Type: graphql.NewList(s.reviewType),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				return listOf(svc.GetReviews(ctxOf(p)))
			}),
		},
		"review":     &graphql.Field{Type: s.reviewType, Args: idArg(), Resolve: byID},
		"reviewById": &graphql.Field{Type: s.reviewType, Args: idArg(), Resolve: byID},
		"reviewsByCategory": &graphql.Field{
			Type: graphql.NewList(s.reviewType),
			Args: namedIDArg("categoryId"),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				return listOf(svc.GetReviewsByCategory(ctxOf(p), argString(p.Args, "categoryId")))
			}),
		},
		"reviewsByAuthor": &graphql.Field{
			Type: graphql.NewList(s.reviewType),
			Args: namedIDArg("authorId"),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				return listOf(svc.GetReviewsByAuthor(ctxOf(p), argString(p.Args, "authorId")))
			}),
		},
		"reviewsByRating": &graphql.Field{
			Type: graphql.NewList(s.reviewType),
			Args: graphql.FieldConfigArgument{
				"rating": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			},
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				rating, _ := p.Args["rating"].(int)
				return listOf(svc.GetReviewsByRating(ctxOf(p), rating))
			}),
		},
		"searchReviews": &graphql.Field{
			Type: graphql.NewList(s.reviewType),
			Args: searchArg(),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				return listOf(svc.SearchReviews(ctxOf(p), argString(p.Args, "searchTerm")))
			}),
		},
	}
}

func (s *Schema) commentQueries() graphql.Fields {
	svc := s.svc.Comments
	return graphql.Fields{
		"comments": &graphql.Field{
			Type: graphql.NewList(s.commentType),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				return listOf(svc.GetComments(ctxOf(p)))
			}),
		},
		"commentById": &graphql.Field{
			Type: s.commentType,
			Args: idArg(),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				return one(svc.GetComment(ctxOf(p), argString(p.Args, "id")))
			}),
		},
		"searchComments": &graphql.Field{
			Type: graphql.NewList(s.commentType),
			Args: searchArg(),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				return listOf(svc.SearchComments(ctxOf(p), argString(p.Args, "searchTerm")))
			}),
		},
		"commentsByPost": &graphql.Field{
			Type: graphql.NewList(s.commentType),
			Args: namedIDArg("postId"),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				return listOf(svc.GetCommentsByPost(ctxOf(p), argString(p.Args, "postId")))
			}),
		},
	}
}

func (s *Schema) notificationQueries() graphql.Fields {
	svc := s.svc.Notifications
	return graphql.Fields{
		"notifications": &graphql.Field{
			Type: graphql.NewList(s.notificationType),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				return listOf(svc.GetNotifications(ctxOf(p)))
			}),
		},
		"notificationById": &graphql.Field{
			Type: s.notificationType,
			Args: idArg(),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				return one(svc.GetNotification(ctxOf(p), argString(p.Args, "id")))
			}),
		},
		"searchNotifications": &graphql.Field{
			Type: graphql.NewList(s.notificationType),
			Args: searchArg(),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				return listOf(svc.SearchNotifications(ctxOf(p), argString(p.Args, "searchTerm")))
			}),
		},
		"notificationsByReceiver": &graphql.Field{
			Type: graphql.NewList(s.notificationType),
			Args: namedIDArg("receiverId"),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				ctx := ctxOf(p)
				return listOf(svc.GetNotificationsByReceiver(ctx, callerFrom(ctx), argString(p.Args, "receiverId")))
			}),
		},
	}
}

func (s *Schema) userQueries() graphql.Fields {
	svc := s.svc.Users
	return graphql.Fields{
		"users": &graphql.Field{
			Type: graphql.NewList(s.userType),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				return listOf(svc.GetUsers(ctxOf(p)))
			}),
		},
		"userById": &graphql.Field{
			Type: s.userType,
			Args: idArg(),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				return one(svc.GetUser(ctxOf(p), argString(p.Args, "id")))
			}),
		},
		"usersByCategory": &graphql.Field{
			Type: graphql.NewList(s.userType),
			Args: namedIDArg("categoryId"),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				return listOf(svc.GetUsersByCategory(ctxOf(p), argString(p.Args, "categoryId")))
			}),
		},
		"checkToken": &graphql.Field{
			Type: s.userResponseType,
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				return svc.CheckToken(callerFrom(ctxOf(p))), nil
			}),
		},
	}
}
