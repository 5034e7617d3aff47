package lifecycle

import (
	"strings"

	"github.com/google/uuid"
	"github.com/kmaina/stockroom-api/internal/domain/enum"
	"github.com/kmaina/stockroom-api/pkg/apperror"
)

// Kind distinguishes the two order families, which share one lifecycle but
// differ in who may approve and edit them.
type Kind int

const (
	KindPurchase Kind = iota
	KindSales
)

// Event is a lifecycle action requested against an order.
type Event int

const (
	EventSubmit Event = iota
	EventApprove
	EventReturn
)

func (e Event) String() string {
	switch e {
	case EventSubmit:
		return "submit"
	case EventApprove:
		return "approve"
	case EventReturn:
		return "return"
	default:
		return "unknown"
	}
}

// Actor is the authenticated user attempting an action.
type Actor struct {
	ID    uuid.UUID
	Roles []enum.Role
}

// HasRole reports whether the actor holds any of the given roles.
func (a Actor) HasRole(roles ...enum.Role) bool {
	for _, have := range a.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// editorRoles returns the roles allowed to create, edit and submit orders of
// the given kind.
func editorRoles(kind Kind) []enum.Role {
	if kind == KindPurchase {
		return []enum.Role{enum.RoleAdmin, enum.RoleStockOfficer}
	}
	return []enum.Role{enum.RoleAdmin, enum.RoleManager, enum.RoleSalesOfficer}
}

// approverRoles returns the roles allowed to approve or return submitted
// orders of the given kind.
func approverRoles(kind Kind) []enum.Role {
	if kind == KindPurchase {
		return []enum.Role{enum.RoleAdmin}
	}
	return []enum.Role{enum.RoleAdmin, enum.RoleManager}
}

// Transition validates a lifecycle event against the current status and the
// actor's roles, and returns the resulting status. Approve and return require
// a non-blank comment; submit accepts an optional one. The status is never
// changed here, the caller persists the result together with a history entry.
func Transition(kind Kind, current enum.OrderStatus, event Event, actor Actor, comment string) (enum.OrderStatus, error) {
	switch event {
	case EventSubmit:
		if !actor.HasRole(editorRoles(kind)...) {
			return current, apperror.NewForbiddenError("you do not have permission to submit this order")
		}
		if current != enum.OrderStatusCreated && current != enum.OrderStatusReturned {
			return current, apperror.NewConflictError("order cannot be submitted from status " + current.String())
		}
		return enum.OrderStatusSubmitted, nil

	case EventApprove:
		if !actor.HasRole(approverRoles(kind)...) {
			return current, apperror.NewForbiddenError("you do not have permission to approve this order")
		}
		if current != enum.OrderStatusSubmitted {
			return current, apperror.NewConflictError("order cannot be approved from status " + current.String())
		}
		if strings.TrimSpace(comment) == "" {
			return current, apperror.NewBadRequestError("a comment is required to approve an order")
		}
		return enum.OrderStatusApproved, nil

	case EventReturn:
		if !actor.HasRole(approverRoles(kind)...) {
			return current, apperror.NewForbiddenError("you do not have permission to return this order")
		}
		if current != enum.OrderStatusSubmitted {
			return current, apperror.NewConflictError("order cannot be returned from status " + current.String())
		}
		if strings.TrimSpace(comment) == "" {
			return current, apperror.NewBadRequestError("a comment is required to return an order")
		}
		return enum.OrderStatusReturned, nil

	default:
		return current, apperror.NewBadRequestError("unknown lifecycle event")
	}
}

// CanEdit reports whether the actor may mutate the order's line items or
// header fields at its current status. Orders are editable while CREATED or
// RETURNED; submission locks them until a reviewer returns them.
func CanEdit(kind Kind, current enum.OrderStatus, actor Actor) error {
	if !actor.HasRole(editorRoles(kind)...) {
		return apperror.NewForbiddenError("you do not have permission to edit this order")
	}
	if current != enum.OrderStatusCreated && current != enum.OrderStatusReturned {
		return apperror.NewConflictError("order in status " + current.String() + " cannot be edited")
	}
	return nil
}

// CanApprove reports whether the actor holds an approver role for the kind,
// independent of the order's current status.
func CanApprove(kind Kind, actor Actor) bool {
	return actor.HasRole(approverRoles(kind)...)
}
