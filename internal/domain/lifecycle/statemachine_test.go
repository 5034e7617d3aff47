package lifecycle

import (
	"testing"

	"github.com/google/uuid"
	"github.com/kmaina/stockroom-api/internal/domain/enum"
	"github.com/kmaina/stockroom-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actorWith(roles ...enum.Role) Actor {
	return Actor{ID: uuid.New(), Roles: roles}
}

func TestTransition_SubmitFromCreated(t *testing.T) {
	actor := actorWith(enum.RoleStockOfficer)

	next, err := Transition(KindPurchase, enum.OrderStatusCreated, EventSubmit, actor, "")
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusSubmitted, next)
}

func TestTransition_ResubmitAfterReturn(t *testing.T) {
	actor := actorWith(enum.RoleSalesOfficer)

	next, err := Transition(KindSales, enum.OrderStatusReturned, EventSubmit, actor, "fixed quantities")
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusSubmitted, next)
}

func TestTransition_SubmitFromSubmittedRejected(t *testing.T) {
	actor := actorWith(enum.RoleAdmin)

	next, err := Transition(KindPurchase, enum.OrderStatusSubmitted, EventSubmit, actor, "")
	require.Error(t, err)
	assert.Equal(t, enum.OrderStatusSubmitted, next)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, 409, appErr.Code)
}

func TestTransition_ApproveRequiresSubmitted(t *testing.T) {
	actor := actorWith(enum.RoleAdmin)

	for _, status := range []enum.OrderStatus{
		enum.OrderStatusCreated,
		enum.OrderStatusApproved,
		enum.OrderStatusReturned,
	} {
		_, err := Transition(KindPurchase, status, EventApprove, actor, "looks good")
		require.Error(t, err, "approve from %s should fail", status)

		appErr := apperror.GetAppError(err)
		assert.Equal(t, 409, appErr.Code)
	}
}

func TestTransition_ApproveAndReturnRequireComment(t *testing.T) {
	actor := actorWith(enum.RoleAdmin)

	for _, comment := range []string{"", "   ", "\t\n"} {
		_, err := Transition(KindPurchase, enum.OrderStatusSubmitted, EventApprove, actor, comment)
		require.Error(t, err)
		appErr := apperror.GetAppError(err)
		assert.Equal(t, 400, appErr.Code)

		_, err = Transition(KindPurchase, enum.OrderStatusSubmitted, EventReturn, actor, comment)
		require.Error(t, err)
		appErr = apperror.GetAppError(err)
		assert.Equal(t, 400, appErr.Code)
	}

	next, err := Transition(KindPurchase, enum.OrderStatusSubmitted, EventApprove, actor, "verified against delivery note")
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusApproved, next)

	next, err = Transition(KindPurchase, enum.OrderStatusSubmitted, EventReturn, actor, "price mismatch on line 2")
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusReturned, next)
}

func TestTransition_PurchaseApproverIsAdminOnly(t *testing.T) {
	manager := actorWith(enum.RoleManager)

	_, err := Transition(KindPurchase, enum.OrderStatusSubmitted, EventApprove, manager, "ok")
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 403, appErr.Code)

	admin := actorWith(enum.RoleAdmin)
	next, err := Transition(KindPurchase, enum.OrderStatusSubmitted, EventApprove, admin, "ok")
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusApproved, next)
}

func TestTransition_SalesApproverIncludesManager(t *testing.T) {
	manager := actorWith(enum.RoleManager)

	next, err := Transition(KindSales, enum.OrderStatusSubmitted, EventApprove, manager, "ok")
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusApproved, next)

	salesOfficer := actorWith(enum.RoleSalesOfficer)
	_, err = Transition(KindSales, enum.OrderStatusSubmitted, EventApprove, salesOfficer, "ok")
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 403, appErr.Code)
}

func TestTransition_SubmitRoleByKind(t *testing.T) {
	stockOfficer := actorWith(enum.RoleStockOfficer)

	_, err := Transition(KindSales, enum.OrderStatusCreated, EventSubmit, stockOfficer, "")
	require.Error(t, err)

	salesOfficer := actorWith(enum.RoleSalesOfficer)
	_, err = Transition(KindPurchase, enum.OrderStatusCreated, EventSubmit, salesOfficer, "")
	require.Error(t, err)
}

func TestCanEdit(t *testing.T) {
	editor := actorWith(enum.RoleStockOfficer)

	assert.NoError(t, CanEdit(KindPurchase, enum.OrderStatusCreated, editor))
	assert.NoError(t, CanEdit(KindPurchase, enum.OrderStatusReturned, editor))

	err := CanEdit(KindPurchase, enum.OrderStatusSubmitted, editor)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 409, appErr.Code)

	err = CanEdit(KindPurchase, enum.OrderStatusApproved, editor)
	require.Error(t, err)

	viewer := actorWith(enum.RoleSalesOfficer)
	err = CanEdit(KindPurchase, enum.OrderStatusCreated, viewer)
	require.Error(t, err)
	appErr = apperror.GetAppError(err)
	assert.Equal(t, 403, appErr.Code)
}

func TestCanApprove(t *testing.T) {
	assert.True(t, CanApprove(KindPurchase, actorWith(enum.RoleAdmin)))
	assert.False(t, CanApprove(KindPurchase, actorWith(enum.RoleManager)))
	assert.True(t, CanApprove(KindSales, actorWith(enum.RoleManager)))
	assert.False(t, CanApprove(KindSales, actorWith(enum.RoleStockOfficer)))
}
