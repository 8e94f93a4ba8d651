// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/learnpath/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	cases := []struct {
		query string
		page  int
		limit int
	}{
		{"", 1, pagination.DefaultLimit},
		{"page=3&page-size=10", 3, 10},
		{"page=2&limit=15", 2, 15},
		{"page-size=5&limit=15", 1, 5},
		{"page=-1&page-size=1000", 1, pagination.DefaultLimit},
		{"page=x&page-size=y", 1, pagination.DefaultLimit},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			params := pagination.FromRequest(httptest.NewRequest("GET", "/?"+tc.query, nil))
			assert.Equal(t, tc.page, params.Page)
			assert.Equal(t, tc.limit, params.Limit)
		})
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, pagination.Params{Page: 3, Limit: 20}.Offset())
}

func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 10, 31)
	assert.Equal(t, 4, meta.TotalPages)
	assert.Equal(t, 31, meta.Total)

	assert.Zero(t, pagination.NewMeta(1, 0, 5).TotalPages)
}
