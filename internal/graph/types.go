package graph

import (
	"github.com/Dias221467/Marketplace_Hub/internal/apperrors"
	"github.com/Dias221467/Marketplace_Hub/internal/models"
	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var postKindEnum = graphql.NewEnum(graphql.EnumConfig{
	Name:        "PostKind",
	Description: "What a comment is attached to.",
	Values: graphql.EnumValueConfigMap{
		"offer":  &graphql.EnumValueConfig{Value: models.PostOffer},
		"review": &graphql.EnumValueConfig{Value: models.PostReview},
	},
})

// objectID resolves an ObjectID valued field to its hex form.
func objectID(get func(interface{}) (primitive.ObjectID, bool)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		id, ok := get(p.Source)
		if !ok {
			return nil, nil
		}
		return id.Hex(), nil
	}
}

func (s *Schema) defineCategoryType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: objectID(func(src interface{}) (primitive.ObjectID, bool) {
					c, ok := src.(*models.Category)
					if !ok {
						return primitive.NilObjectID, false
					}
					return c.ID, true
				}),
			},
			"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})
}

func (s *Schema) defineUserType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"username": &graphql.Field{Type: graphql.String},
			"email":    &graphql.Field{Type: graphql.String},
			"role":     &graphql.Field{Type: graphql.String},
			"isFollowing": &graphql.Field{
				Type: graphql.NewList(s.categoryType),
				Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
					user, ok := p.Source.(*models.User)
					if !ok || len(user.IsFollowing) == 0 {
						return []*models.Category{}, nil
					}
					return listOf(s.svc.Categories.GetCategoriesByIDs(ctxOf(p), user.IsFollowing))
				}),
			},
		},
	})
}

func (s *Schema) defineUserResponseType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "UserResponse",
		Fields: graphql.Fields{
			"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"user":    &graphql.Field{Type: s.userType},
		},
	})
}

func (s *Schema) defineLoginResponseType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "LoginResponse",
		Fields: graphql.Fields{
			"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"token":   &graphql.Field{Type: graphql.String},
			"user":    &graphql.Field{Type: s.userType},
		},
	})
}

// userField resolves an author or receiver reference through the auth service.
func (s *Schema) userField(get func(interface{}) (primitive.ObjectID, bool)) *graphql.Field {
	return &graphql.Field{
		Type: s.userType,
		Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
			id, ok := get(p.Source)
			if !ok {
				return nil, nil
			}
			return one(s.svc.Users.GetUser(ctxOf(p), id.Hex()))
		}),
	}
}

// categoryField resolves an optional category reference. A reference to a category
// that no longer exists resolves to null.
func (s *Schema) categoryField(get func(interface{}) *primitive.ObjectID) *graphql.Field {
	return &graphql.Field{
		Type: s.categoryType,
		Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
			id := get(p.Source)
			if id == nil {
				return nil, nil
			}
			category, err := s.svc.Categories.GetCategory(ctxOf(p), id.Hex())
			if apperrors.Is(err, apperrors.KindNotFound) {
				return nil, nil
			}
			return one(category, err)
		}),
	}
}

func (s *Schema) commentsField(get func(interface{}) (primitive.ObjectID, bool)) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(s.commentType),
		Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
			id, ok := get(p.Source)
			if !ok {
				return nil, nil
			}
			return listOf(s.svc.Comments.GetCommentsByPostID(ctxOf(p), id))
		}),
	}
}

func (s *Schema) defineOfferType() *graphql.Object {
	offer := func(src interface{}) (*models.Offer, bool) {
		o, ok := src.(*models.Offer)
		return o, ok
	}
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Offer",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id": &graphql.Field{
					Type: graphql.NewNonNull(graphql.ID),
					Resolve: objectID(func(src interface{}) (primitive.ObjectID, bool) {
						o, ok := offer(src)
						if !ok {
							return primitive.NilObjectID, false
						}
						return o.ID, true
					}),
				},
				"author": s.userField(func(src interface{}) (primitive.ObjectID, bool) {
					o, ok := offer(src)
					if !ok {
						return primitive.NilObjectID, false
					}
					return o.Author, true
				}),
				"category": s.categoryField(func(src interface{}) *primitive.ObjectID {
					if o, ok := offer(src); ok {
						return o.Category
					}
					return nil
				}),
				"header":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"text":            &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"publicationDate": &graphql.Field{Type: graphql.DateTime},
				"deletionDate":    &graphql.Field{Type: graphql.DateTime},
				"comments": s.commentsField(func(src interface{}) (primitive.ObjectID, bool) {
					o, ok := offer(src)
					if !ok {
						return primitive.NilObjectID, false
					}
					return o.ID, true
				}),
			}
		}),
	})
}

func (s *Schema) defineReviewType() *graphql.Object {
	review := func(src interface{}) (*models.Review, bool) {
		r, ok := src.(*models.Review)
		return r, ok
	}
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Review",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id": &graphql.Field{
					Type: graphql.NewNonNull(graphql.ID),
					Resolve: objectID(func(src interface{}) (primitive.ObjectID, bool) {
						r, ok := review(src)
						if !ok {
							return primitive.NilObjectID, false
						}
						return r.ID, true
					}),
				},
				"author": s.userField(func(src interface{}) (primitive.ObjectID, bool) {
					r, ok := review(src)
					if !ok {
						return primitive.NilObjectID, false
					}
					return r.Author, true
				}),
				"category": s.categoryField(func(src interface{}) *primitive.ObjectID {
					if r, ok := review(src); ok {
						return r.Category
					}
					return nil
				}),
				"header":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"text":            &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"rating":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
				"filename":        &graphql.Field{Type: graphql.String},
				"publicationDate": &graphql.Field{Type: graphql.DateTime},
				"comments": s.commentsField(func(src interface{}) (primitive.ObjectID, bool) {
					r, ok := review(src)
					if !ok {
						return primitive.NilObjectID, false
					}
					return r.ID, true
				}),
			}
		}),
	})
}

func (s *Schema) defineCommentType() *graphql.Object {
	comment := func(src interface{}) (*models.Comment, bool) {
		c, ok := src.(*models.Comment)
		return c, ok
	}
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Comment",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id": &graphql.Field{
					Type: graphql.NewNonNull(graphql.ID),
					Resolve: objectID(func(src interface{}) (primitive.ObjectID, bool) {
						c, ok := comment(src)
						if !ok {
							return primitive.NilObjectID, false
						}
						return c.ID, true
					}),
				},
				"author": s.userField(func(src interface{}) (primitive.ObjectID, bool) {
					c, ok := comment(src)
					if !ok {
						return primitive.NilObjectID, false
					}
					return c.Author, true
				}),
				"text":            &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"publicationDate": &graphql.Field{Type: graphql.DateTime},
				"post": &graphql.Field{
					Type: s.postType,
					Resolve: guard(func(p graphql.ResolveParams) (interface{}, error) {
						c, ok := comment(p.Source)
						if !ok {
							return nil, nil
						}
						return s.svc.Comments.GetPost(ctxOf(p), c.Post)
					}),
				},
			}
		}),
	})
}

func (s *Schema) definePostType() *graphql.Union {
	return graphql.NewUnion(graphql.UnionConfig{
		Name:  "Post",
		Types: []*graphql.Object{s.offerType, s.reviewType},
		ResolveType: func(p graphql.ResolveTypeParams) *graphql.Object {
			switch p.Value.(type) {
			case *models.Offer:
				return s.offerType
			case *models.Review:
				return s.reviewType
			}
			return nil
		},
	})
}

func (s *Schema) defineNotificationType() *graphql.Object {
	notification := func(src interface{}) (*models.Notification, bool) {
		n, ok := src.(*models.Notification)
		return n, ok
	}
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Notification",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: objectID(func(src interface{}) (primitive.ObjectID, bool) {
					n, ok := notification(src)
					if !ok {
						return primitive.NilObjectID, false
					}
					return n.ID, true
				}),
			},
			"receiver": s.userField(func(src interface{}) (primitive.ObjectID, bool) {
				n, ok := notification(src)
				if !ok {
					return primitive.NilObjectID, false
				}
				return n.Receiver, true
			}),
			"text":            &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"link":            &graphql.Field{Type: graphql.String},
			"publicationDate": &graphql.Field{Type: graphql.DateTime},
			"expire":          &graphql.Field{Type: graphql.DateTime},
		},
	})
}
