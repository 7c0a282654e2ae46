package graph

import (
	"github.com/Dias221467/Marketplace_Hub/internal/models"
	"github.com/graphql-go/graphql"
)

var (
	offerInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "OfferInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"category":     &graphql.InputObjectFieldConfig{Type: graphql.ID},
			"header":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"text":         &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"deletionDate": &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		},
	})

	offerModifyInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "OfferModifyInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"category":     &graphql.InputObjectFieldConfig{Type: graphql.ID},
			"header":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"text":         &graphql.InputObjectFieldConfig{Type: graphql.String},
			"deletionDate": &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		},
	})

	reviewInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ReviewInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"category": &graphql.InputObjectFieldConfig{Type: graphql.ID},
			"header":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"text":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"rating":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"filename": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	reviewModifyInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ReviewModifyInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"category": &graphql.InputObjectFieldConfig{Type: graphql.ID},
			"header":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"text":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"rating":   &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"filename": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	commentInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CommentInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"text":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"post":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"postKind": &graphql.InputObjectFieldConfig{Type: postKindEnum},
		},
	})

	commentModifyInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CommentModifyInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"text": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	notificationInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "NotificationInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"receiver": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"text":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"link":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	credentialsInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "Credentials",
		Fields: graphql.InputObjectConfigFieldMap{
			"username": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	userInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"username": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	userModifyInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserModifyInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"username": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
)

func inputArg(name string, t graphql.Input) graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		name: &graphql.ArgumentConfig{Type: graphql.NewNonNull(t)},
	}
}

func idAndInputArgs(t graphql.Input) graphql.FieldConfigArgument {
	args := inputArg("input", t)
	args["id"] = &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}
	return args
}

func (s *Schema) mutationFields() graphql.Fields {
	fields := graphql.Fields{}
	for _, group := range []graphql.Fields{
		s.categoryMutations(),
		s.offerMutations(),
		s.reviewMutations(),
		s.commentMutations(),
		s.notificationMutations(),
		s.userMutations(),
	} {
		for name, field := range group {
			fields[name] = field
		}
	}
	return fields
}

func (s *Schema) categoryMutations() graphql.Fields {
	svc := s.svc.Categories
	nameArg := &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)}
	return graphql.Fields{
		"createCategory": &graphql.Field{
			Type: s.categoryType,
			Args: graphql.FieldConfigArgument{"name": nameArg},
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				ctx := ctxOf(p)
				return one(svc.CreateCategory(ctx, callerFrom(ctx), argString(p.Args, "name")))
			}),
		},
		"updateCategory": &graphql.Field{
			Type: s.categoryType,
			Args: graphql.FieldConfigArgument{
				"id":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				"name": nameArg,
			},
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				ctx := ctxOf(p)
				return one(svc.UpdateCategory(ctx, callerFrom(ctx), argString(p.Args, "id"), argString(p.Args, "name")))
			}),
		},
		"deleteCategory": &graphql.Field{
			Type: s.categoryType,
			Args: idArg(),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				ctx := ctxOf(p)
				return one(svc.DeleteCategory(ctx, callerFrom(ctx), argString(p.Args, "id")))
			}),
		},
	}
}

func (s *Schema) offerMutations() graphql.Fields {
	svc := s.svc.Offers
	return graphql.Fields{
		"createOffer": &graphql.Field{
			Type: s.offerType,
			Args: inputArg("input", offerInput),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				ctx := ctxOf(p)
				in := argInput(p, "input")
				return one(svc.CreateOffer(ctx, callerFrom(ctx), models.OfferInput{
					Category:     argOptString(in, "category"),
					Header:       argString(in, "header"),
					Text:         argString(in, "text"),
					DeletionDate: argOptTime(in, "deletionDate"),
				}))
			}),
		},
		"updateOffer": &graphql.Field{
			Type: s.offerType,
			Args: idAndInputArgs(offerModifyInput),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				ctx := ctxOf(p)
				in := argInput(p, "input")
				return one(svc.UpdateOffer(ctx, callerFrom(ctx), argString(p.Args, "id"), models.OfferUpdate{
					Category:     argOptString(in, "category"),
					Header:       argOptString(in, "header"),
					Text:         argOptString(in, "text"),
					DeletionDate: argOptTime(in, "deletionDate"),
				}))
			}),
		},
		"deleteOffer": &graphql.Field{
			Type: s.offerType,
			Args: idArg(),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				ctx := ctxOf(p)
				return one(svc.DeleteOffer(ctx, callerFrom(ctx), argString(p.Args, "id")))
			}),
		},
	}
}

func (s *Schema) reviewMutations() graphql.Fields {
	svc := s.svc.Reviews
	return graphql.Fields{
		"addReview": &graphql.Field{
			Type: s.reviewType,
			Args: inputArg("input", reviewInput),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				ctx := ctxOf(p)
				in := argInput(p, "input")
				rating, _ := in["rating"].(int)
				return one(svc.CreateReview(ctx, callerFrom(ctx), models.ReviewInput{
					Category: argOptString(in, "category"),
					Header:   argString(in, "header"),
					Text:     argString(in, "text"),
					Rating:   rating,
					Filename: argString(in, "filename"),
				}))
			}),
		},
		"updateReview": &graphql.Field{
			Type: s.reviewType,
			Args: idAndInputArgs(reviewModifyInput),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				ctx := ctxOf(p)
				in := argInput(p, "input")
				return one(svc.UpdateReview(ctx, callerFrom(ctx), argString(p.Args, "id"), models.ReviewUpdate{
					Category: argOptString(in, "category"),
					Header:   argOptString(in, "header"),
					Text:     argOptString(in, "text"),
					Rating:   argOptInt(in, "rating"),
					Filename: argOptString(in, "filename"),
				}))
			}),
		},
		"deleteReview": &graphql.Field{
			Type: s.reviewType,
			Args: idArg(),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				ctx := ctxOf(p)
				return one(svc.DeleteReview(ctx, callerFrom(ctx), argString(p.Args, "id")))
			}),
		},
	}
}

func (s *Schema) commentMutations() graphql.Fields {
	svc := s.svc.Comments
	return graphql.Fields{
		"createComment": &graphql.Field{
			Type: s.commentType,
			Args: inputArg("input", commentInput),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				ctx := ctxOf(p)
				in := argInput(p, "input")
				kind, _ := in["postKind"].(models.PostKind)
				return one(svc.CreateComment(ctx, callerFrom(ctx), models.CommentInput{
					Text:     argString(in, "text"),
					PostID:   argString(in, "post"),
					PostKind: kind,
				}))
			}),
		},
		"updateComment": &graphql.Field{
			Type: s.commentType,
			Args: idAndInputArgs(commentModifyInput),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				ctx := ctxOf(p)
				in := argInput(p, "input")
				return one(svc.UpdateComment(ctx, callerFrom(ctx), argString(p.Args, "id"), models.CommentPatch{
					Text: argOptString(in, "text"),
				}))
			}),
		},
		"deleteComment": &graphql.Field{
			Type: s.commentType,
			Args: idArg(),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				ctx := ctxOf(p)
				return one(svc.DeleteComment(ctx, callerFrom(ctx), argString(p.Args, "id")))
			}),
		},
	}
}

func (s *Schema) notificationMutations() graphql.Fields {
	svc := s.svc.Notifications
	return graphql.Fields{
		"addNotification": &graphql.Field{
			Type: s.notificationType,
			Args: inputArg("input", notificationInput),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				ctx := ctxOf(p)
				in := argInput(p, "input")
				return one(svc.AddNotification(ctx, callerFrom(ctx), models.NotificationInput{
					Receiver: argString(in, "receiver"),
					Text:     argString(in, "text"),
					Link:     argString(in, "link"),
				}))
			}),
		},
		"sendNotificationToManyUsers": &graphql.Field{
			Type: graphql.NewList(s.notificationType),
			Args: graphql.FieldConfigArgument{
				"userIds": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID)))},
				"text":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"link":    &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				ctx := ctxOf(p)
				return listOf(svc.SendNotificationToManyUsers(ctx, callerFrom(ctx),
					argStrings(p.Args, "userIds"), argString(p.Args, "text"), argString(p.Args, "link")))
			}),
		},
		"deleteNotification": &graphql.Field{
			Type: s.notificationType,
			Args: idArg(),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				ctx := ctxOf(p)
				return one(svc.DeleteNotification(ctx, callerFrom(ctx), argString(p.Args, "id")))
			}),
		},
	}
}

func userInputFrom(in map[string]interface{}) models.UserInput {
	return models.UserInput{
		Username: argString(in, "username"),
		Email:    argString(in, "email"),
		Password: argString(in, "password"),
	}
}

func (s *Schema) userMutations() graphql.Fields {
	svc := s.svc.Users
	return graphql.Fields{
		"login": &graphql.Field{
			Type: s.loginResponseType,
			Args: inputArg("credentials", credentialsInput),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				in := argInput(p, "credentials")
				return one(svc.Login(ctxOf(p), models.Credentials{
					Username: argString(in, "username"),
					Password: argString(in, "password"),
				}))
			}),
		},
		"register": &graphql.Field{
			Type: s.userResponseType,
			Args: inputArg("user", userInput),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				return one(svc.Register(ctxOf(p), userInputFrom(argInput(p, "user"))))
			}),
		},
		"addCategoryToUser": &graphql.Field{
			Type: s.userType,
			Args: namedIDArg("categoryId"),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				ctx := ctxOf(p)
				return one(svc.AddCategoryToUser(ctx, callerFrom(ctx), argString(p.Args, "categoryId")))
			}),
		},
		"removeCategoryFromUser": &graphql.Field{
			Type: s.userType,
			Args: namedIDArg("categoryId"),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				ctx := ctxOf(p)
				return one(svc.RemoveCategoryFromUser(ctx, callerFrom(ctx), argString(p.Args, "categoryId")))
			}),
		},
		"updateUser": &graphql.Field{
			Type: s.userResponseType,
			Args: inputArg("user", userModifyInput),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				ctx := ctxOf(p)
				return one(svc.UpdateUser(ctx, callerFrom(ctx), userInputFrom(argInput(p, "user"))))
			}),
		},
		"deleteUser": &graphql.Field{
			Type: s.userResponseType,
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				ctx := ctxOf(p)
				return one(svc.DeleteUser(ctx, callerFrom(ctx)))
			}),
		},
		"updateUserAsAdmin": &graphql.Field{
			Type: s.userResponseType,
			Args: graphql.FieldConfigArgument{
				"id":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				"user": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userModifyInput)},
			},
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				ctx := ctxOf(p)
				return one(svc.UpdateUserAsAdmin(ctx, callerFrom(ctx), argString(p.Args, "id"), userInputFrom(argInput(p, "user"))))
			}),
		},
		"deleteUserAsAdmin": &graphql.Field{
			Type: s.userResponseType,
			Args: idArg(),
			Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
				ctx := ctxOf(p)
				return one(svc.DeleteUserAsAdmin(ctx, callerFrom(ctx), argString(p.Args, "id")))
			}),
		},
	}
}
