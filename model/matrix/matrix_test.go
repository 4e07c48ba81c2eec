package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateDeterminism(t *testing.T) {
	a := Generate(10, 20, 99)
	b := Generate(10, 20, 99)
	assert.Equal(t, a, b)

	c := Generate(10, 20, 100)
	assert.NotEqual(t, a, c)
}

func TestCloneIsIndependent(t *testing.T) {
	m := Generate(3, 3, 1)
	clone := m.Clone()
	clone[0][0] = -1
	assert.NotEqual(t, m[0][0], clone[0][0])
}

func TestSamePermutation(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     []int
		expected bool
	}{
		{"identical", []int{1, 2, 3}, []int{1, 2, 3}, true},
		{"reordered", []int{1, 2, 3}, []int{3, 1, 2}, true},
		{"duplicates preserved", []int{5, 5, 3}, []int{3, 5, 5}, true},
		{"duplicate dropped", []int{5, 5, 3}, []int{5, 3, 3}, false},
		{"length mismatch", []int{1}, []int{1, 1}, false},
		{"empty", []int{}, []int{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SamePermutation(tc.a, tc.b))
		})
	}
}

func TestValidate(t *testing.T) {
	original := Matrix{{3, 1, 2}, {7}}
	assert.NoError(t, Validate(original, Matrix{{3, 2, 1}, {7}}))
	assert.Error(t, Validate(original, Matrix{{1, 2, 3}, {7}}))
	assert.Error(t, Validate(original, Matrix{{3, 2, 1}, nil}))
	assert.Error(t, Validate(original, Matrix{{3, 2, 1}}))
	assert.Error(t, Validate(original, Matrix{{3, 2, 2}, {7}}))
}
