package services

import (
	"context"
	"testing"

	"firebase.google.com/go/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessenger struct {
	sent      []*messaging.Message
	multicast []*messaging.MulticastMessage
	topics    map[string][]string
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{topics: make(map[string][]string)}
}

func (f *fakeMessenger) Send(_ context.Context, m *messaging.Message) (string, error) {
	f.sent = append(f.sent, m)
	return "message-id", nil
}

func (f *fakeMessenger) SendMulticast(_ context.Context, m *messaging.MulticastMessage) (*messaging.BatchResponse, error) {
	f.multicast = append(f.multicast, m)
	return &messaging.BatchResponse{SuccessCount: len(m.Tokens)}, nil
}

func (f *fakeMessenger) SubscribeToTopic(_ context.Context, tokens []string, topic string) (*messaging.TopicManagementResponse, error) {
	f.topics[topic] = append(f.topics[topic], tokens...)
	return &messaging.TopicManagementResponse{SuccessCount: len(tokens)}, nil
}

func (f *fakeMessenger) UnsubscribeFromTopic(_ context.Context, tokens []string, topic string) (*messaging.TopicManagementResponse, error) {
	return &messaging.TopicManagementResponse{SuccessCount: len(tokens)}, nil
}

type staticTokens []string

func (s staticTokens) ListTokens(context.Context) ([]string, error) { return s, nil }

func TestSendAllFansOutToEveryToken(t *testing.T) {
	client := newFakeMessenger()
	n := NewNotifier(client, staticTokens{"t1", "t2", "t3"})

	resp, err := n.SendAll(context.Background(), "hello", "world")
	require.NoError(t, err)
	assert.Equal(t, 3, resp.SuccessCount)

	require.Len(t, client.multicast, 1)
	assert.Equal(t, []string{"t1", "t2", "t3"}, client.multicast[0].Tokens)
	assert.Equal(t, "hello", client.multicast[0].Notification.Title)
}

func TestSendAllWithoutTokensFails(t *testing.T) {
	n := NewNotifier(newFakeMessenger(), staticTokens{})

	_, err := n.SendAll(context.Background(), "hello", "world")
	assert.EqualError(t, err, "no tokens found")
}

func TestSendToTokenAndTopic(t *testing.T) {
	client := newFakeMessenger()
	n := NewNotifier(client, staticTokens{})

	_, err := n.SendToToken(context.Background(), "t1", "a", "b")
	require.NoError(t, err)
	_, err = n.SendToTopic(context.Background(), "news", "a", "b")
	require.NoError(t, err)

	require.Len(t, client.sent, 2)
	assert.Equal(t, "t1", client.sent[0].Token)
	assert.Equal(t, "news", client.sent[1].Topic)
}

func TestSubscribeRegistersTokenOnTopic(t *testing.T) {
	client := newFakeMessenger()
	n := NewNotifier(client, staticTokens{})

	resp, err := n.Subscribe(context.Background(), "t1", "news")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.SuccessCount)
	assert.Equal(t, []string{"t1"}, client.topics["news"])
}
