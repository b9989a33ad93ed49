// internal/services/review_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReviewAggregate(t *testing.T) {
	mean, count := ReviewAggregate([]int{5, 4, 4})
	assert.Equal(t, 4.33, mean)
	assert.Equal(t, int64(3), count)

	mean, count = ReviewAggregate([]int{3})
	assert.Equal(t, 3.0, mean)
	assert.Equal(t, int64(1), count)

	mean, count = ReviewAggregate([]int{1, 2})
	assert.Equal(t, 1.5, mean)
	assert.Equal(t, int64(2), count)
}

func TestReviewAggregateEmpty(t *testing.T) {
	mean, count := ReviewAggregate(nil)
	assert.Equal(t, 0.0, mean)
	assert.Equal(t, int64(0), count)

	mean, count = ReviewAggregate([]int{})
	assert.Equal(t, 0.0, mean)
	assert.Equal(t, int64(0), count)
}
