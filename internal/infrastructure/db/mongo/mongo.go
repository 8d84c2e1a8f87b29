package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gradelab/code-grading-api/internal/infrastructure/config"
)

// connectTimeout bounds the initial dial and ping only; credential lookups
// after startup run on their request contexts.
const connectTimeout = 10 * time.Second

// Connect dials the credential database, verifies it with a ping, and returns
// the client together with the database holding the users collection. Startup
// is the only caller: a failure here means the API cannot authenticate anyone,
// so there is no retry.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
