package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testPayload struct {
	Row    int
	Values []int
}

func TestQueue(t *testing.T) {
	config := DefaultConfig()
	config.RedeliveryDelay = 10 * time.Millisecond
	queue := NewQueue[testPayload](config)

	ctx := context.Background()
	payload := testPayload{Row: 3, Values: []int{5, 1, 4}}

	err := queue.Publish(ctx, &payload)
	assert.NoError(t, err)
	assert.Equal(t, 1, queue.Size())

	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, message)
	assert.Equal(t, 0, queue.Size())

	data := message.T()
	assert.Equal(t, payload.Row, data.Row)
	assert.Equal(t, payload.Values, data.Values)

	err = message.Ack()
	assert.NoError(t, err)

	// Double settle should error
	err = message.Ack()
	assert.Error(t, err)
}

func TestQueueRedelivery(t *testing.T) {
	config := DefaultConfig()
	config.MaxRedeliveries = 1
	config.RedeliveryDelay = 10 * time.Millisecond
	queue := NewQueue[testPayload](config)

	ctx := context.Background()
	payload := testPayload{Row: 0, Values: []int{1}}
	assert.NoError(t, queue.Publish(ctx, &payload))

	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NoError(t, message.Nack(fmt.Errorf("transient")))

	// Redelivered once
	time.Sleep(30 * time.Millisecond)
	message, err = queue.Consume(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 0, message.T().Row)

	// Second nack exceeds the redelivery budget
	assert.NoError(t, message.Nack(fmt.Errorf("transient")))
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 0, queue.Size())
}

func TestQueueConsumeCancellation(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	message, err := queue.Consume(ctx)
	assert.Nil(t, message)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestQueueConcurrency(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())
	ctx := context.Background()

	const count = 50
	var wg sync.WaitGroup
	wg.Add(count)
	for i := 0; i < count; i++ {
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, queue.Publish(ctx, &testPayload{Row: i}))
		}(i)
	}
	wg.Wait()

	seen := make(map[int]bool)
	for i := 0; i < count; i++ {
		message, err := queue.Consume(ctx)
		assert.NoError(t, err)
		seen[message.T().Row] = true
		assert.NoError(t, message.Ack())
	}
	assert.Equal(t, count, len(seen))
}
