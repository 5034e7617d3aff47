package lifecycle

import (
	"testing"

	"github.com/google/uuid"
	"github.com/kmaina/stockroom-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDuplicate_None(t *testing.T) {
	lines := []LineRef{
		{ProductTypeID: uuid.New(), ProductName: "Cement 50kg"},
		{ProductTypeID: uuid.New(), ProductName: "Steel Rod 12mm"},
	}

	assert.Nil(t, FindDuplicate(lines))
	assert.Nil(t, FindDuplicate(nil))
}

func TestFindDuplicate_ReportsBothIndexes(t *testing.T) {
	dupID := uuid.New()
	lines := []LineRef{
		{ProductTypeID: uuid.New(), ProductName: "Cement 50kg"},
		{ProductTypeID: dupID, ProductName: "Steel Rod 12mm"},
		{ProductTypeID: uuid.New(), ProductName: "Sand Bag"},
		{ProductTypeID: dupID, ProductName: "Steel Rod 12mm"},
	}

	dup := FindDuplicate(lines)
	require.NotNil(t, dup)
	assert.Equal(t, dupID, dup.ProductTypeID)
	assert.Equal(t, "Steel Rod 12mm", dup.ProductName)
	assert.Equal(t, 1, dup.ExistingIndex)
	assert.Equal(t, 3, dup.NewIndex)
}

func TestFindDuplicate_FirstPairWins(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	lines := []LineRef{
		{ProductTypeID: a, ProductName: "A"},
		{ProductTypeID: a, ProductName: "A"},
		{ProductTypeID: b, ProductName: "B"},
		{ProductTypeID: b, ProductName: "B"},
	}

	dup := FindDuplicate(lines)
	require.NotNil(t, dup)
	assert.Equal(t, a, dup.ProductTypeID)
	assert.Equal(t, 0, dup.ExistingIndex)
	assert.Equal(t, 1, dup.NewIndex)
}

func TestCheckLines_ConflictError(t *testing.T) {
	dupID := uuid.New()
	lines := []LineRef{
		{ProductTypeID: dupID, ProductName: "Cement 50kg"},
		{ProductTypeID: dupID, ProductName: "Cement 50kg"},
	}

	err := CheckLines(lines)
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, 409, appErr.Code)
	assert.Contains(t, appErr.Message, "Cement 50kg")
	require.NotEmpty(t, appErr.Errors)
}

func TestCheckLines_OK(t *testing.T) {
	lines := []LineRef{
		{ProductTypeID: uuid.New(), ProductName: "Cement 50kg"},
		{ProductTypeID: uuid.New(), ProductName: "Sand Bag"},
	}

	assert.NoError(t, CheckLines(lines))
}
