package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionOrder_MoveBefore(t *testing.T) {
	a, b, c := SectionKey("a"), SectionKey("b"), SectionKey("c")

	order := SectionOrder{a, b, c}
	assert.True(t, order.MoveBefore(a, b))
	assert.Equal(t, SectionOrder{b, a, c}, order)

	order = SectionOrder{a, b, c}
	assert.True(t, order.MoveBefore(c, a))
	assert.Equal(t, SectionOrder{c, a, b}, order)
}

func TestSectionOrder_MoveBefore_NoOp(t *testing.T) {
	a, b, c := SectionKey("a"), SectionKey("b"), SectionKey("c")

	order := SectionOrder{a, b, c}
	assert.False(t, order.MoveBefore(a, a))
	assert.Equal(t, SectionOrder{a, b, c}, order)

	assert.False(t, order.MoveBefore(SectionKey("missing"), b))
	assert.Equal(t, SectionOrder{a, b, c}, order)

	assert.False(t, order.MoveBefore(b, SectionKey("missing")))
	assert.Equal(t, SectionOrder{a, b, c}, order)
}

func TestSectionOrder_Normalize(t *testing.T) {
	order := SectionOrder{SectionMyLibrary, SectionKey("bogus"), SectionMyLibrary}
	order.Normalize()
	assert.Equal(t, SectionOrder{SectionMyLibrary, SectionReadingStatus}, order)

	var empty SectionOrder
	empty.Normalize()
	assert.Equal(t, DefaultSectionOrder(), empty)
}
