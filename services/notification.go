package services

import (
	"context"
	"errors"
	"fmt"

	"firebase.google.com/go/messaging"
)

// Messenger is the subset of the FCM client the notification service needs.
type Messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
	SendMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
	SubscribeToTopic(ctx context.Context, tokens []string, topic string) (*messaging.TopicManagementResponse, error)
	UnsubscribeFromTopic(ctx context.Context, tokens []string, topic string) (*messaging.TopicManagementResponse, error)
}

type DeviceTokenLister interface {
	ListTokens(ctx context.Context) ([]string, error)
}

// Notifier fans push notifications out through FCM.
type Notifier struct {
	client Messenger
	tokens DeviceTokenLister
}

func NewNotifier(client Messenger, tokens DeviceTokenLister) *Notifier {
	return &Notifier{client: client, tokens: tokens}
}

// SendAll pushes one notification to every registered device token.
func (n *Notifier) SendAll(ctx context.Context, title, body string) (*messaging.BatchResponse, error) {
	tokens, err := n.tokens.ListTokens(ctx)
	if err != nil {
		return nil, fmt.Errorf("list device tokens: %w", err)
	}
	if len(tokens) == 0 {
		return nil, errors.New("no tokens found")
	}

	return n.client.SendMulticast(ctx, &messaging.MulticastMessage{
		Notification: &messaging.Notification{Title: title, Body: body},
		Tokens:       tokens,
	})
}

func (n *Notifier) SendToToken(ctx context.Context, token, title, body string) (string, error) {
	return n.client.Send(ctx, &messaging.Message{
		Notification: &messaging.Notification{Title: title, Body: body},
		Token:        token,
	})
}

func (n *Notifier) SendToTopic(ctx context.Context, topic, title, body string) (string, error) {
	return n.client.Send(ctx, &messaging.Message{
		Notification: &messaging.Notification{Title: title, Body: body},
		Topic:        topic,
	})
}

func (n *Notifier) Subscribe(ctx context.Context, token, topic string) (*messaging.TopicManagementResponse, error) {
	return n.client.SubscribeToTopic(ctx, []string{token}, topic)
}

func (n *Notifier) Unsubscribe(ctx context.Context, token, topic string) (*messaging.TopicManagementResponse, error) {
	return n.client.UnsubscribeFromTopic(ctx, []string{token}, topic)
}
