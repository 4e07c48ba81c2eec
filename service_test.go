package rowflux

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"

	"github.com/rowflux/rowflux/service/bench"
)

func TestServiceRun(t *testing.T) {
	config := DefaultConfig()
	config.Bench = bench.Config{
		Sizes:   []int{6},
		Columns: 4,
		Workers: []int{1, 2},
		Repeats: 1,
		Seed:    3,
	}
	config.Output.URL = "mem://localhost/rowflux-e2e"

	var mu sync.Mutex
	var progress []bench.Progress
	service, err := New(
		WithConfig(config),
		WithProgressListener(func(p bench.Progress) {
			mu.Lock()
			progress = append(progress, p)
			mu.Unlock()
		}),
	)
	require.NoError(t, err)

	ctx := context.Background()
	suite, err := service.Runtime().Run(ctx)
	require.NoError(t, err)
	require.NotNil(t, suite)
	assert.Equal(t, 2, len(suite.Cells))

	fs := afs.New()
	for _, name := range []string{"times_6.csv", "sysinfo.txt", "report.html"} {
		exists, err := fs.Exists(ctx, config.Output.URL+"/"+name)
		require.NoError(t, err)
		assert.True(t, exists, name)
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, len(progress))
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	config := DefaultConfig()
	config.Bench.Repeats = 0
	_, err := New(WithConfig(config))
	assert.Error(t, err)

	config = DefaultConfig()
	config.Output.URL = ""
	_, err = New(WithConfig(config))
	assert.Error(t, err)
}
