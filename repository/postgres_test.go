package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		itemsPerPage int
		limit        int
		offset       int
	}{
		{"first page", 1, 10, 10, 0},
		{"third page", 3, 20, 20, 40},
		{"zero page clamps to first", 0, 10, 10, 0},
		{"negative page clamps to first", -5, 10, 10, 0},
		{"zero page size falls back to default", 2, 0, 10, 10},
		{"negative page size falls back to default", 1, -1, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := Page(tt.page, tt.itemsPerPage)
			assert.Equal(t, tt.limit, limit)
			assert.Equal(t, tt.offset, offset)
		})
	}
}
