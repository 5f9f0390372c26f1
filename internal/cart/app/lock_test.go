package app

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripe(t *testing.T) {
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		id := fmt.Sprintf("user-%d", i)
		s := stripe(id)
		assert.GreaterOrEqual(t, s, 0)
		assert.Less(t, s, lockStripes)
		assert.Equal(t, s, stripe(id), "stable for %s", id)
		seen[s] = true
	}
	assert.LessOrEqual(t, len(seen), lockStripes)
	assert.Greater(t, len(seen), 1)
}
