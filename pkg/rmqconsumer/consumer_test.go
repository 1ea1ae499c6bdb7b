package rmqconsumer

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"contacts-api/config"
	"contacts-api/internal/domain/contact"
	"contacts-api/internal/infrastructure/mq"
)

func Test_delivery_Table(t *testing.T) {
	c := &contact.Contact{ID: 12, OwnerID: 3, Birthday: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)}

	cases := []struct {
		name       string
		routingKey string
		wantAction string
	}{
		{"created", mq.ContactCreated, "ContactCreated"},
		{"updated", mq.ContactUpdated, "ContactUpdated"},
		{"deleted", mq.ContactDeleted, "ContactDeleted"},
		{"unknown -> empty", "contact.archived", ""},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.InfoLevel)
			cons := New(config.MQ{}, zap.New(core), nil)

			body, err := json.Marshal(mq.NewContactEvent(tt.routingKey, c, time.Now()))
			require.NoError(t, err)

			require.NoError(t, cons.delivery(amqp091.Delivery{RoutingKey: tt.routingKey, Body: body}))

			entries := logs.FilterMessage("contact event").All()
			require.Len(t, entries, 1)
			fields := entries[0].ContextMap()
			assert.Equal(t, tt.wantAction, fields["action"])
			assert.Equal(t, int64(3), fields["owner_id"])
			assert.Equal(t, int64(12), fields["contact_id"])
		})
	}
}

func Test_delivery_BadBody(t *testing.T) {
	cons := New(config.MQ{}, zap.NewNop(), nil)
	err := cons.delivery(amqp091.Delivery{RoutingKey: mq.ContactCreated, Body: []byte("{")})
	require.Error(t, err)
}

func TestConnect_InvalidDSN(t *testing.T) {
	c := New(config.MQ{}, zap.NewNop(), nil)

	err := c.Connect("amqp://bad:://dsn")
	require.Error(t, err)
	require.Nil(t, c.chConsume)
	require.Nil(t, c.conn)
}

func TestInit_NotConnected(t *testing.T) {
	c := New(config.MQ{}, zap.NewNop(), nil)
	require.Error(t, c.Init())
}
