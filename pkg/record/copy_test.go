package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type node struct {
	Name string
	Next *node
	note []string
}

func TestDeepCopy(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{name: "nil", in: nil},
		{name: "scalar", in: 42},
		{name: "string", in: "x"},
		{name: "nil slice", in: []int(nil)},
		{name: "nil map", in: map[string]int(nil)},
		{name: "array", in: [2][]int{{1}, {2}}},
		{name: "struct", in: node{Name: "a", Next: &node{Name: "b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.in, deepCopy(tt.in))
		})
	}
}

func TestDeepCopyDetachesPointers(t *testing.T) {
	orig := &node{Name: "a", Next: &node{Name: "b"}}

	cp := deepCopy(orig).(*node)
	cp.Next.Name = "changed"

	assert.Equal(t, "b", orig.Next.Name)
	assert.NotSame(t, orig.Next, cp.Next)
}

func TestDeepCopyCycle(t *testing.T) {
	orig := &node{Name: "loop"}
	orig.Next = orig

	cp := deepCopy(orig).(*node)

	assert.Same(t, cp, cp.Next)
	assert.NotSame(t, orig, cp)
}

func TestDeepCopyKeepsUnexportedFields(t *testing.T) {
	orig := node{Name: "a", note: []string{"n"}}

	cp := deepCopy(orig).(node)

	assert.Equal(t, []string{"n"}, cp.note)
}
