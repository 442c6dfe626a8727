package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NoBrokersIsNoop(t *testing.T) {
	p := New(nil)
	_, ok := p.(Noop)
	require.True(t, ok)
	assert.NoError(t, p.Publish(context.Background(), TopicUserEvents, "k", UserEvent{Type: UserSignedUp}))
	assert.NoError(t, p.Close())
}

func TestNew_WithBrokers(t *testing.T) {
	p := New([]string{"localhost:9092"})
	kp, ok := p.(*KafkaPublisher)
	require.True(t, ok)
	assert.Equal(t, "localhost:9092", kp.writer.Addr.String())
	assert.NoError(t, kp.Close())
}

func TestKafkaPublisher_MarshalError(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9092"})
	t.Cleanup(func() { _ = p.Close() })

	err := p.Publish(context.Background(), TopicOrderEvents, "k", make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json.Marshal")
}

func TestKafkaPublisher_DoesNotWaitForBrokers(t *testing.T) {
	p := NewKafkaPublisher([]string{"127.0.0.1:1"})
	require.True(t, p.writer.Async)

	start := time.Now()
	err := p.Publish(context.Background(), TopicUserEvents, "u1", UserEvent{Type: UserLoggedIn, UserID: "u1"})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
}
