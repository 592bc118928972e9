package graph

import (
	"feedback_backend/internal/models"
	"feedback_backend/internal/services"

	"github.com/graphql-go/graphql"
)

// builder holds the object types while the schema is assembled. Nested
// fields resolve through the same service layer as the top-level operations.
type builder struct {
	reg *services.Registry

	userType        *graphql.Object
	productType     *graphql.Object
	feedbackType    *graphql.Object
	auditLogType    *graphql.Object
	authPayloadType *graphql.Object
}

func userSource(p graphql.ResolveParams) *models.User {
	switch v := p.Source.(type) {
	case *models.User:
		return v
	case models.User:
		return &v
	}
	return nil
}

func feedbackSource(p graphql.ResolveParams) *models.Feedback {
	switch v := p.Source.(type) {
	case *models.Feedback:
		return v
	case models.Feedback:
		return &v
	}
	return nil
}

func productSource(p graphql.ResolveParams) *models.Product {
	switch v := p.Source.(type) {
	case *models.Product:
		return v
	case models.Product:
		return &v
	}
	return nil
}

func (b *builder) buildTypes() {
	// id and createdAt live on the embedded base model; the default
	// resolver only sees top-level struct fields, so they resolve
	// explicitly.
	b.userType = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if u := userSource(p); u != nil {
						return u.ID, nil
					}
					return nil, nil
				},
			},
			"name":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"role":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"isVerified": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"createdAt": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if u := userSource(p); u != nil {
						return u.CreatedAt, nil
					}
					return nil, nil
				},
			},
		},
	})

	b.productType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if product := productSource(p); product != nil {
						return product.ID, nil
					}
					return nil, nil
				},
			},
			"name":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description":   &graphql.Field{Type: graphql.String},
			"averageRating": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"createdAt": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if product := productSource(p); product != nil {
						return product.CreatedAt, nil
					}
					return nil, nil
				},
			},
		},
	})

	b.feedbackType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Feedback",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if fb := feedbackSource(p); fb != nil {
						return fb.ID, nil
					}
					return nil, nil
				},
			},
			"rating":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"comment":   &graphql.Field{Type: graphql.String},
			"productId": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"userId":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"createdAt": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if fb := feedbackSource(p); fb != nil {
						return fb.CreatedAt, nil
					}
					return nil, nil
				},
			},
		},
	})

	b.auditLogType = graphql.NewObject(graphql.ObjectConfig{
		Name: "AuditLog",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"actorId":   &graphql.Field{Type: graphql.ID},
			"action":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"detail":    &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	b.authPayloadType = graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"user":  &graphql.Field{Type: b.userType},
		},
	})

	// relation fields added after construction to break the type cycle

	b.feedbackType.AddFieldConfig("user", &graphql.Field{
		Type: b.userType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			fb := feedbackSource(p)
			if fb == nil {
				return nil, nil
			}
			return b.reg.Users.Get(p.Context, fb.UserID)
		},
	})

	b.feedbackType.AddFieldConfig("product", &graphql.Field{
		Type: b.productType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			fb := feedbackSource(p)
			if fb == nil {
				return nil, nil
			}
			return b.reg.Products.Get(p.Context, fb.ProductID)
		},
	})

	b.productType.AddFieldConfig("feedbacks", &graphql.Field{
		Type: graphql.NewList(b.feedbackType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			product := productSource(p)
			if product == nil {
				return nil, nil
			}
			return b.reg.Feedback.ListByProduct(p.Context, product.ID)
		},
	})

	b.userType.AddFieldConfig("feedbacks", &graphql.Field{
		Type: graphql.NewList(b.feedbackType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user := userSource(p)
			if user == nil {
				return nil, nil
			}
			return b.reg.Feedback.ListByUser(p.Context, user.ID)
		},
	})
}
