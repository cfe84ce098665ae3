// Package mongodb registers the MongoDB connection provider. The connection
// text is a standard mongodb:// URI.
package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ajitpratap0/connshare/pkg/errors"
	"github.com/ajitpratap0/connshare/pkg/provider"
)

func init() {
	_ = provider.Register("mongodb", func() provider.Handle {
		return &mongoHandle{}
	})
}

type mongoHandle struct {
	uri    string
	client *mongo.Client
}

func (h *mongoHandle) SetConnectionText(text string) {
	h.uri = text
}

func (h *mongoHandle) Open(ctx context.Context) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(h.uri))
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConnection, "mongodb connect failed")
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return errors.Wrap(err, errors.ErrorTypeConnection, "mongodb ping failed")
	}

	h.client = client
	return nil
}

func (h *mongoHandle) Close() error {
	if h.client == nil {
		return nil
	}
	err := h.client.Disconnect(context.Background())
	h.client = nil
	return err
}
