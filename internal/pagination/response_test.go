package pagination

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{5, 0, 0},
		{-3, 10, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestNewResponse(t *testing.T) {
	res := NewResponse([]string{"a"}, 21, 2, 10)

	assert.Equal(t, []string{"a"}, res.Data)
	assert.Equal(t, 3, res.Pagination.TotalPages)
	require.NotNil(t, res.Pagination.HasNext)
	require.NotNil(t, res.Pagination.HasPrev)
	assert.True(t, *res.Pagination.HasNext)
	assert.True(t, *res.Pagination.HasPrev)

	empty := NewResponse[string](nil, 0, 1, 10)
	assert.NotNil(t, empty.Data)
	assert.False(t, empty.Pagination.Next())
	assert.False(t, empty.Pagination.Prev())
}

func TestResponseJSON(t *testing.T) {
	t.Run("flags omitted when unknown", func(t *testing.T) {
		var res Response[int]
		require.NoError(t, json.Unmarshal([]byte(`{"data":[1,2],"pagination":{"total":5,"totalPages":3,"page":1}}`), &res))
		assert.Nil(t, res.Pagination.HasNext)
		assert.True(t, res.Pagination.Next())
		assert.False(t, res.Pagination.Prev())
	})

	t.Run("server encodes flags", func(t *testing.T) {
		b, err := json.Marshal(NewResponse([]int{1}, 1, 1, 10))
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":[1],"pagination":{"total":1,"totalPages":1,"page":1,"hasNext":false,"hasPrev":false}}`, string(b))
	})
}
