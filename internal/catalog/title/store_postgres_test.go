// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRow hands scanTitle a fixed result row. A nil value stands for SQL
// NULL in the nullable columns.
type fakeRow struct {
	values []any
}

func (row fakeRow) Scan(dest ...any) error {
	if len(dest) != len(row.values) {
		return fmt.Errorf("expected %d destinations, got %d", len(row.values), len(dest))
	}
	for i, target := range dest {
		switch d := target.(type) {
		case *int64:
			*d = row.values[i].(int64)
		case *string:
			*d = row.values[i].(string)
		case *int:
			*d = row.values[i].(int)
		case **string:
			if v, ok := row.values[i].(string); ok {
				*d = &v
			} else {
				*d = nil
			}
		case **float64:
			if v, ok := row.values[i].(float64); ok {
				*d = &v
			} else {
				*d = nil
			}
		default:
			return fmt.Errorf("unexpected destination type %T", target)
		}
	}
	return nil
}

// columns: id, name, year, description, rating, category name, category slug
func rowFor(rating any, categoryName, categorySlug any) fakeRow {
	return fakeRow{values: []any{
		int64(1), "Dune", 1965, nil, rating, categoryName, categorySlug,
	}}
}

func TestScanTitle_UnreviewedRatingIsNull(t *testing.T) {
	title, err := scanTitle(rowFor(nil, nil, nil))
	require.NoError(t, err)

	assert.Nil(t, title.Rating)
	assert.Nil(t, title.Category)

	data, err := json.Marshal(title)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rating":null`)
	assert.Contains(t, string(data), `"category":null`)
}

func TestScanTitle_RatingCarriesMeanScore(t *testing.T) {
	// 7.5 is what avg(score)::float8 yields for scores 7 and 8.
	title, err := scanTitle(rowFor(7.5, "Books", "books"))
	require.NoError(t, err)

	require.NotNil(t, title.Rating)
	assert.Equal(t, 7.5, *title.Rating)
	require.NotNil(t, title.Category)
	assert.Equal(t, "books", title.Category.Slug)

	data, err := json.Marshal(title)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rating":7.5`)
}
