package dispatcher

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowflux/rowflux/model/matrix"
)

func TestDispatch(t *testing.T) {
	testCases := []struct {
		name     string
		input    matrix.Matrix
		workers  int
		expected matrix.Matrix
	}{
		{
			name:     "two rows two workers",
			input:    matrix.Matrix{{5, 3, 5, 1}, {2}},
			workers:  2,
			expected: matrix.Matrix{{5, 5, 3, 1}, {2}},
		},
		{
			name:     "single worker",
			input:    matrix.Matrix{{9, 8, 7}, {6, 5, 4}, {3, 2, 1}},
			workers:  1,
			expected: matrix.Matrix{{9, 8, 7}, {6, 5, 4}, {3, 2, 1}},
		},
		{
			name:     "over-provisioned pool",
			input:    matrix.Matrix{{9, 8, 7}, {6, 5, 4}, {3, 2, 1}},
			workers:  5,
			expected: matrix.Matrix{{9, 8, 7}, {6, 5, 4}, {3, 2, 1}},
		},
		{
			name:     "one empty row",
			input:    matrix.Matrix{{}},
			workers:  1,
			expected: matrix.Matrix{{}},
		},
		{
			name:     "mixed row lengths",
			input:    matrix.Matrix{{1, 9, 1}, {}, {4}, {2, 2}},
			workers:  3,
			expected: matrix.Matrix{{9, 1, 1}, {}, {4}, {2, 2}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service := New()
			result, err := service.Dispatch(context.Background(), tc.input, tc.workers)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestDispatchValidation(t *testing.T) {
	service := New()
	ctx := context.Background()

	_, err := service.Dispatch(ctx, matrix.Matrix{{1}}, 0)
	assert.ErrorIs(t, err, ErrWorkerCount)

	_, err = service.Dispatch(ctx, matrix.Matrix{{1}}, -3)
	assert.ErrorIs(t, err, ErrWorkerCount)

	_, err = service.Dispatch(ctx, matrix.Matrix{}, 2)
	assert.ErrorIs(t, err, ErrEmptyMatrix)
}

func TestDispatchCompleteness(t *testing.T) {
	m := matrix.Generate(37, 19, 7)
	for _, workers := range []int{1, 2, 4, 8, 100} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			service := New()
			result, err := service.Dispatch(context.Background(), m.Clone(), workers)
			require.NoError(t, err)
			require.Equal(t, m.Rows(), result.Rows())
			assert.NoError(t, matrix.Validate(m, result))
		})
	}
}

func TestDispatchWorkConservation(t *testing.T) {
	var stats Stats
	service := New(WithStatsListener(func(s Stats) { stats = s }))

	m := matrix.Generate(23, 11, 3)
	_, err := service.Dispatch(context.Background(), m.Clone(), 4)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Workers)
	assert.Equal(t, m.Rows(), stats.Completions)

	total := 0
	for _, n := range stats.Assignments {
		assert.Greater(t, n, 0, "every spawned worker pulls at least one row")
		total += n
	}
	assert.Equal(t, m.Rows(), total)
	assert.Equal(t, stats.Workers, stats.Retired)
}

func TestDispatchPoolClamp(t *testing.T) {
	var stats Stats
	service := New(WithStatsListener(func(s Stats) { stats = s }))

	m := matrix.Generate(3, 5, 11)
	_, err := service.Dispatch(context.Background(), m.Clone(), 16)
	require.NoError(t, err)

	// no worker is spawned without at least one row to pull
	assert.Equal(t, 3, stats.Workers)
	assert.Equal(t, []int{1, 1, 1}, stats.Assignments)
	assert.Equal(t, 3, stats.Retired)
}

func TestDispatchResultIndependentOfWorkerCount(t *testing.T) {
	m := matrix.Generate(50, 40, 21)
	service := New()

	baseline, err := service.Dispatch(context.Background(), m.Clone(), 1)
	require.NoError(t, err)

	for _, workers := range []int{2, 3, 7, 50, 64} {
		result, err := service.Dispatch(context.Background(), m.Clone(), workers)
		require.NoError(t, err)
		assert.Equal(t, baseline, result, "workers=%d must not change the result", workers)
	}

	rerun, err := service.Dispatch(context.Background(), m.Clone(), 1)
	require.NoError(t, err)
	assert.Equal(t, baseline, rerun)
}

func TestDispatchTaskFailure(t *testing.T) {
	var stats Stats
	service := New(
		WithStatsListener(func(s Stats) { stats = s }),
		WithTask(func(_ context.Context, row []int) ([]int, error) {
			if len(row) > 0 && row[0] == 13 {
				return nil, fmt.Errorf("unlucky row")
			}
			return row, nil
		}),
	)

	m := matrix.Matrix{{1, 2}, {13, 0}, {3, 4}, {5, 6}}
	result, err := service.Dispatch(context.Background(), m, 2)
	assert.Error(t, err)
	assert.ErrorContains(t, err, "unlucky row")
	assert.Nil(t, result, "no partial result on failure")

	// the pool still joined cleanly
	assert.Equal(t, stats.Workers, stats.Retired)
}

func TestDispatchCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var stats Stats
	started := make(chan struct{}, 64)
	service := New(
		WithStatsListener(func(s Stats) { stats = s }),
		WithTask(func(taskCtx context.Context, row []int) ([]int, error) {
			started <- struct{}{}
			<-taskCtx.Done()
			return nil, taskCtx.Err()
		}),
	)

	go func() {
		<-started
		cancel()
	}()

	m := matrix.Generate(8, 4, 5)
	result, err := service.Dispatch(ctx, m, 2)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, stats.Workers, stats.Retired, "cancellation still drains the join barrier")
}

func TestDispatchEmptyRowsOnly(t *testing.T) {
	service := New()
	result, err := service.Dispatch(context.Background(), matrix.Matrix{{}, {}, {}}, 2)
	require.NoError(t, err)
	assert.Equal(t, matrix.Matrix{{}, {}, {}}, result)
}
