package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlacklistAddContains(t *testing.T) {
	b := NewBlacklist()

	assert.False(t, b.Contains("tok"))
	b.Add("tok")
	assert.True(t, b.Contains("tok"))
	assert.False(t, b.Contains("other"))
}

func TestBlacklistConcurrentAccess(t *testing.T) {
	b := NewBlacklist()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			b.Add(fmt.Sprintf("token-%d", n))
		}(i)
		go func(n int) {
			defer wg.Done()
			b.Contains(fmt.Sprintf("token-%d", n))
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		assert.True(t, b.Contains(fmt.Sprintf("token-%d", i)))
	}
}
