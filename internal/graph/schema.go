package graph

import (
	"feedback_backend/internal/auth"
	"feedback_backend/internal/services"
	"feedback_backend/internal/services/dto"

	"github.com/graphql-go/graphql"
)

// NewSchema assembles the caller-facing GraphQL schema over the service
// registry. Authorization lives in the services (guard policy table), not
// in the resolvers.
func NewSchema(reg *services.Registry) (graphql.Schema, error) {
	b := &builder{reg: reg}
	b.buildTypes()

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    b.buildQuery(),
		Mutation: b.buildMutation(),
	})
}

func stringArg(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}

func intArg(p graphql.ResolveParams, name string, fallback int) int {
	if v, ok := p.Args[name].(int); ok {
		return v
	}
	return fallback
}

func optStringArg(p graphql.ResolveParams, name string) *string {
	if v, ok := p.Args[name].(string); ok {
		return &v
	}
	return nil
}

func optIntArg(p graphql.ResolveParams, name string) *int {
	if v, ok := p.Args[name].(int); ok {
		return &v
	}
	return nil
}

var paginationArgs = graphql.FieldConfigArgument{
	"limit":  &graphql.ArgumentConfig{Type: graphql.Int},
	"offset": &graphql.ArgumentConfig{Type: graphql.Int},
}

func (b *builder) buildQuery() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type: b.userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.reg.Auth.Me(p.Context, auth.IdentityFromContext(p.Context))
				},
			},
			"users": &graphql.Field{
				Type: graphql.NewList(b.userType),
				Args: paginationArgs,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					users, _, err := b.reg.Users.List(p.Context, auth.IdentityFromContext(p.Context),
						intArg(p, "limit", 0), intArg(p, "offset", 0))
					if err != nil {
						return nil, err
					}
					return users, nil
				},
			},
			"user": &graphql.Field{
				Type: b.userType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.reg.Users.Get(p.Context, stringArg(p, "id"))
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewList(b.productType),
				Args: paginationArgs,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					products, _, err := b.reg.Products.List(p.Context,
						intArg(p, "limit", 0), intArg(p, "offset", 0))
					if err != nil {
						return nil, err
					}
					return products, nil
				},
			},
			"product": &graphql.Field{
				Type: b.productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.reg.Products.Get(p.Context, stringArg(p, "id"))
				},
			},
			"feedbacks": &graphql.Field{
				Type: graphql.NewList(b.feedbackType),
				Args: graphql.FieldConfigArgument{
					"productId": &graphql.ArgumentConfig{Type: graphql.ID},
					"userId":    &graphql.ArgumentConfig{Type: graphql.ID},
					"limit":     &graphql.ArgumentConfig{Type: graphql.Int},
					"offset":    &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if productID := optStringArg(p, "productId"); productID != nil {
						return b.reg.Feedback.ListByProduct(p.Context, *productID)
					}
					if userID := optStringArg(p, "userId"); userID != nil {
						return b.reg.Feedback.ListByUser(p.Context, *userID)
					}
					return b.reg.Feedback.List(p.Context, intArg(p, "limit", 0), intArg(p, "offset", 0))
				},
			},
			"auditLogs": &graphql.Field{
				Type: graphql.NewList(b.auditLogType),
				Args: paginationArgs,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					entries, _, err := b.reg.Audit.List(p.Context, auth.IdentityFromContext(p.Context),
						intArg(p, "limit", 0), intArg(p, "offset", 0))
					if err != nil {
						return nil, err
					}
					return entries, nil
				},
			},
		},
	})
}

func (b *builder) buildMutation() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type: b.userType,
				Args: graphql.FieldConfigArgument{
					"name":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.reg.Auth.Register(p.Context, &dto.RegisterRequest{
						Name:     stringArg(p, "name"),
						Email:    stringArg(p, "email"),
						Password: stringArg(p, "password"),
					})
				},
			},
			"verifyEmail": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"token": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if err := b.reg.Auth.VerifyEmail(p.Context, stringArg(p, "token")); err != nil {
						return nil, err
					}
					return true, nil
				},
			},
			"login": &graphql.Field{
				Type: b.authPayloadType,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.reg.Auth.Login(p.Context, &dto.LoginRequest{
						Email:    stringArg(p, "email"),
						Password: stringArg(p, "password"),
					})
				},
			},
			"requestPasswordReset": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"email": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if err := b.reg.Auth.RequestPasswordReset(p.Context, stringArg(p, "email")); err != nil {
						return nil, err
					}
					return true, nil
				},
			},
			"resetPassword": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"token":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"newPassword": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					err := b.reg.Auth.ResetPassword(p.Context, &dto.ResetPasswordRequest{
						Token:       stringArg(p, "token"),
						NewPassword: stringArg(p, "newPassword"),
					})
					if err != nil {
						return nil, err
					}
					return true, nil
				},
			},
			"addProduct": &graphql.Field{
				Type: b.productType,
				Args: graphql.FieldConfigArgument{
					"name":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					req := &dto.AddProductRequest{Name: stringArg(p, "name")}
					if desc := optStringArg(p, "description"); desc != nil {
						req.Description = *desc
					}
					return b.reg.Products.Add(p.Context, auth.IdentityFromContext(p.Context), req)
				},
			},
			"updateProduct": &graphql.Field{
				Type: b.productType,
				Args: graphql.FieldConfigArgument{
					"id":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"name":        &graphql.ArgumentConfig{Type: graphql.String},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.reg.Products.Update(p.Context, auth.IdentityFromContext(p.Context),
						stringArg(p, "id"), &dto.UpdateProductRequest{
							Name:        optStringArg(p, "name"),
							Description: optStringArg(p, "description"),
						})
				},
			},
			"deleteProduct": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if err := b.reg.Products.Delete(p.Context, auth.IdentityFromContext(p.Context), stringArg(p, "id")); err != nil {
						return nil, err
					}
					return true, nil
				},
			},
			"addFeedback": &graphql.Field{
				Type: b.feedbackType,
				Args: graphql.FieldConfigArgument{
					"productId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"rating":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"comment":   &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					req := &dto.AddFeedbackRequest{
						ProductID: stringArg(p, "productId"),
						Rating:    intArg(p, "rating", 0),
					}
					if comment := optStringArg(p, "comment"); comment != nil {
						req.Comment = *comment
					}
					return b.reg.Feedback.Add(p.Context, auth.IdentityFromContext(p.Context), req)
				},
			},
			"updateFeedback": &graphql.Field{
				Type: b.feedbackType,
				Args: graphql.FieldConfigArgument{
					"id":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"rating":  &graphql.ArgumentConfig{Type: graphql.Int},
					"comment": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.reg.Feedback.Update(p.Context, auth.IdentityFromContext(p.Context),
						stringArg(p, "id"), &dto.UpdateFeedbackRequest{
							Rating:  optIntArg(p, "rating"),
							Comment: optStringArg(p, "comment"),
						})
				},
			},
			"deleteFeedback": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if err := b.reg.Feedback.Delete(p.Context, auth.IdentityFromContext(p.Context), stringArg(p, "id")); err != nil {
						return nil, err
					}
					return true, nil
				},
			},
			"updateUser": &graphql.Field{
				Type: b.userType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"name":  &graphql.ArgumentConfig{Type: graphql.String},
					"email": &graphql.ArgumentConfig{Type: graphql.String},
					"role":  &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.reg.Users.Update(p.Context, auth.IdentityFromContext(p.Context),
						stringArg(p, "id"), &dto.UpdateUserRequest{
							Name:  optStringArg(p, "name"),
							Email: optStringArg(p, "email"),
							Role:  optStringArg(p, "role"),
						})
				},
			},
			"deleteUser": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if err := b.reg.Users.Delete(p.Context, auth.IdentityFromContext(p.Context), stringArg(p, "id")); err != nil {
						return nil, err
					}
					return true, nil
				},
			},
		},
	})
}
