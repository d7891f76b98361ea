package goroutine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orris-inc/subconv/internal/shared/logger"
)

func TestSafeGo_RunsFn(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	ran := false

	SafeGo(logger.NewLogger(), "test", func() {
		defer wg.Done()
		ran = true
	})

	wg.Wait()
	require.True(t, ran)
}

func TestSafeGo_RecoversPanic(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)

	require.NotPanics(t, func() {
		SafeGo(logger.NewLogger(), "test-panic", func() {
			defer wg.Done()
			panic("boom")
		})
		wg.Wait()
	})
}
