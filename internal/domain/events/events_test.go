package events

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolExecutedEvent_RoundTrip(t *testing.T) {
	received := make(chan ToolExecutedEventData, 1)
	unsubscribe := SubscribeToToolExecuted(func(data ToolExecutedEventData) {
		received <- data
	})
	defer unsubscribe()

	PublishToolExecuted("http_client", time.Second, errors.New("boom"))

	select {
	case data := <-received:
		assert.Equal(t, "http_client", data.ToolName)
		assert.Equal(t, time.Second, data.Duration)
		require.Error(t, data.Err)
		assert.Equal(t, "boom", data.Err.Error())
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestToolConfiguredEvent_RoundTrip(t *testing.T) {
	received := make(chan ToolConfiguredEventData, 1)
	unsubscribe := SubscribeToToolConfigured(func(data ToolConfiguredEventData) {
		received <- data
	})
	defer unsubscribe()

	PublishToolConfigured("email_sender", nil)

	select {
	case data := <-received:
		assert.Equal(t, "email_sender", data.ToolName)
		assert.NoError(t, data.Err)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestEventTypesAreDistinct(t *testing.T) {
	assert.NotEqual(t, ToolsListedEventData{}.Type(), ToolExecutedEventData{}.Type())
	assert.NotEqual(t, ToolExecutedEventData{}.Type(), ToolConfiguredEventData{}.Type())
}
