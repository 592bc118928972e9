package auth

import "feedback_backend/pkg/apperrors"

// Predicate is an authorization rule evaluated against the caller identity
// before a guarded operation runs.
type Predicate int

const (
	// Public requires nothing.
	Public Predicate = iota
	// Authenticated requires a resolved caller identity.
	Authenticated
	// NonAdmin requires an authenticated caller whose role is not admin.
	// Feedback submission is a user-only action: admins rate nothing.
	NonAdmin
	// AdminOnly requires an authenticated admin.
	AdminOnly
	// OwnerOrAdmin requires the caller to own the resource or be an admin.
	OwnerOrAdmin
)

// Action names every guarded operation.
type Action string

const (
	ActionListUsers      Action = "listUsers"
	ActionUpdateUser     Action = "updateUser"
	ActionDeleteUser     Action = "deleteUser"
	ActionAddProduct     Action = "addProduct"
	ActionUpdateProduct  Action = "updateProduct"
	ActionDeleteProduct  Action = "deleteProduct"
	ActionAddFeedback    Action = "addFeedback"
	ActionUpdateFeedback Action = "updateFeedback"
	ActionDeleteFeedback Action = "deleteFeedback"
	ActionListAuditLogs  Action = "listAuditLogs"
	ActionViewSelf       Action = "viewSelf"
)

// policy is the single place mapping each operation to its predicate.
// Resolvers never compare roles themselves.
var policy = map[Action]Predicate{
	ActionListUsers:      AdminOnly,
	ActionUpdateUser:     AdminOnly,
	ActionDeleteUser:     AdminOnly,
	ActionAddProduct:     AdminOnly,
	ActionUpdateProduct:  AdminOnly,
	ActionDeleteProduct:  AdminOnly,
	ActionAddFeedback:    NonAdmin,
	ActionUpdateFeedback: OwnerOrAdmin,
	ActionDeleteFeedback: OwnerOrAdmin,
	ActionListAuditLogs:  AdminOnly,
	ActionViewSelf:       Authenticated,
}

// Require evaluates the predicate registered for action. ownerID is only
// consulted for OwnerOrAdmin and names the resource owner. It must run
// before any persistence write of the guarded operation.
func Require(id *Identity, action Action, ownerID string) error {
	pred, ok := policy[action]
	if !ok {
		return apperrors.NewForbiddenError("Unknown action")
	}
	return Check(pred, id, ownerID)
}

// Check evaluates a predicate directly.
func Check(pred Predicate, id *Identity, ownerID string) error {
	switch pred {
	case Public:
		return nil
	case Authenticated:
		if id == nil {
			return apperrors.NewUnauthorizedError("Authentication required")
		}
		return nil
	case NonAdmin:
		if id == nil {
			return apperrors.NewUnauthorizedError("Authentication required")
		}
		if id.IsAdmin() {
			return apperrors.NewForbiddenError("Admins cannot perform this action")
		}
		return nil
	case AdminOnly:
		if id == nil {
			return apperrors.NewUnauthorizedError("Authentication required")
		}
		if !id.IsAdmin() {
			return apperrors.NewForbiddenError("Admin access required")
		}
		return nil
	case OwnerOrAdmin:
		if id == nil {
			return apperrors.NewUnauthorizedError("Authentication required")
		}
		if id.UserID != ownerID && !id.IsAdmin() {
			return apperrors.NewForbiddenError("Not the resource owner")
		}
		return nil
	default:
		return apperrors.NewForbiddenError("Unknown predicate")
	}
}
