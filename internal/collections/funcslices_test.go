// Unless explicitly stated otherwise all files in this repository are licensed under the Apache-2 License.

package collections_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/treescrub/treescrub/internal/collections"
)

func TestMap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    []string
		mapFunc  func(string) string
		expected []string
	}{
		{
			name:     "upper cases every element",
			input:    []string{"bob", "alice"},
			mapFunc:  strings.ToUpper,
			expected: []string{"BOB", "ALICE"},
		},
		{
			name:     "empty input yields empty output",
			input:    []string{},
			mapFunc:  strings.ToUpper,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := collections.Map(tt.input, tt.mapFunc)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFilterMap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    []int
		mapFunc  func(int) (string, bool)
		expected []string
	}{
		{
			name:  "filter even numbers and convert to string",
			input: []int{1, 2, 3, 4, 5, 6},
			mapFunc: func(i int) (string, bool) {
				if i%2 == 0 {
					return fmt.Sprintf("even-%d", i), true
				}
				return "", false
			},
			expected: []string{"even-2", "even-4", "even-6"},
		},
		{
			name:  "no elements match",
			input: []int{1, 2, 3},
			mapFunc: func(i int) (string, bool) {
				return "", false
			},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := collections.FilterMap(tt.input, tt.mapFunc)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    []int
		filter   func(int) bool
		expected []int
	}{
		{
			name:  "filter even numbers",
			input: []int{1, 2, 3, 4, 5, 6},
			filter: func(i int) bool {
				return i%2 == 0
			},
			expected: []int{2, 4, 6},
		},
		{
			name:  "no elements match",
			input: []int{1, 2, 3},
			filter: func(i int) bool {
				return false
			},
			expected: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := collections.Filter(tt.input, tt.filter)
			assert.Equal(t, tt.expected, result)
		})
	}
}
