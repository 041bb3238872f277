package mongodatabase

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDBConn a collection handle plus the client that owns it
type MongoDBConn struct {
	Collection *mongo.Collection
	Client     *mongo.Client
}

// New connect and return a handle on the named collection
func (config *DBConfig) New(ctx context.Context, collectionName string) (*MongoDBConn, error) {
	clientOptions := options.Client().ApplyURI(config.Host).
		SetRetryReads(true).
		SetRetryWrites(true).
		SetConnectTimeout(30 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, errors.Wrap(err, "unable to connect to mongo")
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "unable to ping mongo")
	}

	collection := client.Database(config.DBName).Collection(collectionName)
	return &MongoDBConn{Collection: collection, Client: client}, nil
}

// Close DB
func Close(ctx context.Context, c *mongo.Client) error {
	return c.Disconnect(ctx)
}
