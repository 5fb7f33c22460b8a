package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/qdrive/internal/logging"
	"github.com/dmitrijs2005/qdrive/internal/server/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange, key string
	msg           amqp.Publishing
}

type fakeChannel struct {
	declared   []string
	declareErr error
	publishErr error
	closeErr   error
	sent       []published
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	if f.declareErr != nil {
		return f.declareErr
	}
	f.declared = append(f.declared, name+":"+kind)
	return nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return f.closeErr
}

type fakeCloser struct{ closed bool }

func (c *fakeCloser) Close() error { c.closed = true; return nil }

func sampleEvent() RideRequested {
	return NewRideRequested(&models.Ride{
		ID:          "r-1",
		PassengerID: "u-1",
		Status:      models.RideStatusRequested,
		Pickup:      models.Coordinates{Latitude: 1, Longitude: 2},
		Destination: models.Coordinates{Latitude: 3, Longitude: 4},
		RequestTime: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})
}

func TestNewRabbitPublisher_DeclaresTopicExchange(t *testing.T) {
	ch := &fakeChannel{}
	_, err := NewRabbitPublisher(ch, DefaultExchange, logging.Nop{})
	require.NoError(t, err)
	assert.Equal(t, []string{"qdrive.rides:topic"}, ch.declared)
}

func TestNewRabbitPublisher_DeclareError(t *testing.T) {
	ch := &fakeChannel{declareErr: errors.New("nope")}
	_, err := NewRabbitPublisher(ch, DefaultExchange, logging.Nop{})
	assert.ErrorContains(t, err, "failed to declare exchange")
}

func TestPublishRideRequested(t *testing.T) {
	ch := &fakeChannel{}
	p, err := NewRabbitPublisher(ch, DefaultExchange, logging.Nop{})
	require.NoError(t, err)

	require.NoError(t, p.PublishRideRequested(context.Background(), sampleEvent()))
	require.Len(t, ch.sent, 1)

	got := ch.sent[0]
	assert.Equal(t, DefaultExchange, got.exchange)
	assert.Equal(t, RoutingRideRequested, got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, "r-1", got.msg.MessageId)

	var body RideRequested
	require.NoError(t, json.Unmarshal(got.msg.Body, &body))
	assert.Equal(t, sampleEvent(), body)
}

func TestPublishRideRequested_Error(t *testing.T) {
	ch := &fakeChannel{publishErr: errors.New("channel closed")}
	p, err := NewRabbitPublisher(ch, DefaultExchange, logging.Nop{})
	require.NoError(t, err)

	err = p.PublishRideRequested(context.Background(), sampleEvent())
	assert.ErrorContains(t, err, "channel closed")
}

func TestClose_ClosesChannelAndConnection(t *testing.T) {
	ch := &fakeChannel{}
	conn := &fakeCloser{}
	p, err := NewRabbitPublisher(ch, DefaultExchange, logging.Nop{})
	require.NoError(t, err)
	p.conn = conn

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
	assert.True(t, conn.closed)
}

func TestClose_ChannelError(t *testing.T) {
	ch := &fakeChannel{closeErr: errors.New("x")}
	p, err := NewRabbitPublisher(ch, DefaultExchange, logging.Nop{})
	require.NoError(t, err)
	assert.Error(t, p.Close())
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.PublishRideRequested(context.Background(), sampleEvent()))
	assert.NoError(t, p.Close())
}
