package record

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBatch(t *testing.T) {
	t.Run("all succeeded", func(t *testing.T) {
		recs, err := NormalizeBatch("create crop_c", BatchResponse{
			Success: true,
			Results: []BatchResult{
				{Success: true, Data: Record{"Id": 1}},
				{Success: true, Data: Record{"Id": 2}},
			},
		})
		require.NoError(t, err)
		assert.Len(t, recs, 2)
	})

	t.Run("overall failure", func(t *testing.T) {
		_, err := NormalizeBatch("create crop_c", BatchResponse{Success: false, Message: "Invalid public key"})
		assert.ErrorIs(t, err, ErrRequestFailed)
		assert.ErrorContains(t, err, "Invalid public key")
	})

	t.Run("one of three failed", func(t *testing.T) {
		_, err := NormalizeBatch("update crop_c", BatchResponse{
			Success: true,
			Results: []BatchResult{
				{Success: true, Data: Record{"Id": 1}},
				{Success: false, Message: "area_c: value must be positive"},
				{Success: true, Data: Record{"Id": 3}},
			},
		})
		require.ErrorIs(t, err, ErrPartialFailure)
		var pf *PartialFailureError
		require.True(t, errors.As(err, &pf))
		assert.Equal(t, 1, pf.Failed)
		assert.Equal(t, 3, pf.Total)
		assert.Equal(t, "area_c: value must be positive", pf.Reason)
	})

	t.Run("single not found", func(t *testing.T) {
		_, err := NormalizeBatch("delete crop_c 9", BatchResponse{
			Success: true,
			Results: []BatchResult{{Success: false, Message: "Record with Id 9 not found"}},
		})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrPartialFailure)
	})
}

func TestNormalizeWrite(t *testing.T) {
	rec, err := NormalizeWrite("create", BatchResponse{Success: true, Results: []BatchResult{{Success: true, Data: Record{"Id": 4}}}})
	require.NoError(t, err)
	assert.Equal(t, int64(4), rec.ID())

	_, err = NormalizeWrite("create", BatchResponse{Success: true})
	assert.ErrorIs(t, err, ErrRequestFailed)
}

func TestNormalizeDelete(t *testing.T) {
	ok, err := NormalizeDelete("delete", BatchResponse{Success: true, Results: []BatchResult{{Success: true}}})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = NormalizeDelete("delete", BatchResponse{Success: true, Results: []BatchResult{{Success: false, Message: "does not exist"}}})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, ok)
}

func TestIsNotFoundMessage(t *testing.T) {
	assert.True(t, IsNotFoundMessage("Record Not Found"))
	assert.True(t, IsNotFoundMessage("record 4 does not exist"))
	assert.False(t, IsNotFoundMessage("No record created"))
}
