// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/dexview/pkg/slice"
)

/*
TestMap transforms every element in order.
*/
func TestMap(t *testing.T) {
	assert.Equal(t, []string{"FIRE", "WATER"}, slice.Map([]string{"fire", "water"}, strings.ToUpper))
	assert.Equal(t, []int{}, slice.Map([]string{}, func(string) int { return 0 }))
	assert.Nil(t, slice.Map[string, int](nil, func(string) int { return 0 }))
}

/*
TestFilter keeps matching elements and preserves nil.
*/
func TestFilter(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }

	assert.Equal(t, []int{2, 4}, slice.Filter([]int{1, 2, 3, 4}, even))
	assert.Empty(t, slice.Filter([]int{1, 3}, even))
	assert.Nil(t, slice.Filter[int](nil, even))
}
