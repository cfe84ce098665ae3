// Package kafka registers a Kafka connection provider. The connection text
// is a comma-separated broker list; opening establishes a sarama client
// against the cluster.
package kafka

import (
	"context"
	"strings"

	"github.com/IBM/sarama"

	"github.com/ajitpratap0/connshare/pkg/errors"
	"github.com/ajitpratap0/connshare/pkg/provider"
)

func init() {
	_ = provider.Register("kafka", func() provider.Handle {
		return &kafkaHandle{}
	})
}

type kafkaHandle struct {
	brokers string
	client  sarama.Client
}

func (h *kafkaHandle) SetConnectionText(text string) {
	h.brokers = text
}

func (h *kafkaHandle) Open(_ context.Context) error {
	cfg := sarama.NewConfig()
	cfg.ClientID = "connshare"

	client, err := sarama.NewClient(strings.Split(h.brokers, ","), cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConnection, "kafka client creation failed")
	}

	h.client = client
	return nil
}

func (h *kafkaHandle) Close() error {
	if h.client == nil {
		return nil
	}
	err := h.client.Close()
	h.client = nil
	return err
}
