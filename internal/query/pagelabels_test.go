package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageLabels_MiddleWindow(t *testing.T) {
	got := PageLabels(5, 20)
	assert.Equal(t, []string{"1", "...", "4", "5", "6", "...", "20"}, got)
}

func TestPageLabels_FewPagesNoEllipsis(t *testing.T) {
	for current := 1; current <= 4; current++ {
		got := PageLabels(current, 4)
		assert.Equal(t, []string{"1", "2", "3", "4"}, got, "currentPage=%d", current)
	}
}

func TestPageLabels_NearStart(t *testing.T) {
	got := PageLabels(1, 20)
	assert.Equal(t, []string{"1", "2", "...", "20"}, got)
}

func TestPageLabels_NearEnd(t *testing.T) {
	got := PageLabels(20, 20)
	assert.Equal(t, []string{"1", "...", "19", "20"}, got)
}

func TestPageLabels_SinglePage(t *testing.T) {
	assert.Equal(t, []string{"1"}, PageLabels(1, 1))
	assert.Empty(t, PageLabels(1, 0))
}
