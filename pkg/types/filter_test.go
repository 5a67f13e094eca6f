package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQueryNormalize(t *testing.T) {
	q := ListQuery{}
	q.Normalize()
	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, DefaultPageSize, q.PageSize)

	q = ListQuery{Page: 3, PageSize: 25}
	q.Normalize()
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 25, q.PageSize)
}

func TestListQueryValidate(t *testing.T) {
	tests := []struct {
		name      string
		query     ListQuery
		wantField string
	}{
		{
			name:  "defaults are valid",
			query: ListQuery{Page: 1, PageSize: 10},
		},
		{
			name:      "zero page",
			query:     ListQuery{Page: 0, PageSize: 10},
			wantField: "page",
		},
		{
			name:      "negative page",
			query:     ListQuery{Page: -1, PageSize: 10},
			wantField: "page",
		},
		{
			name:      "zero page size",
			query:     ListQuery{Page: 1, PageSize: 0},
			wantField: "page_size",
		},
		{
			name:      "page size over the cap",
			query:     ListQuery{Page: 1, PageSize: MaxPageSize + 1},
			wantField: "page_size",
		},
		{
			name:  "recognized sort field",
			query: ListQuery{Page: 1, PageSize: 10, SortBy: SortByDueDate},
		},
		{
			name:      "unknown sort field",
			query:     ListQuery{Page: 1, PageSize: 10, SortBy: "owner_id"},
			wantField: "sort_by",
		},
		{
			name:      "unknown status filter",
			query:     ListQuery{Page: 1, PageSize: 10, Status: "paused"},
			wantField: "status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestListQuerySkip(t *testing.T) {
	q := ListQuery{Page: 1, PageSize: 10}
	assert.Equal(t, 0, q.Skip())

	q = ListQuery{Page: 4, PageSize: 25}
	assert.Equal(t, 75, q.Skip())
}
