package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// MongoConfig holds the MongoDB connection settings.
type MongoConfig struct {
	URI                    string        `env:"URI"                      envDefault:"mongodb://localhost:27017"`
	Database               string        `env:"DATABASE"                 envDefault:"rain-fitness"`
	ConnectTimeout         time.Duration `env:"CONNECT_TIMEOUT"          envDefault:"30s"`
	ServerSelectionTimeout time.Duration `env:"SERVER_SELECTION_TIMEOUT" envDefault:"30s"`
	OperationTimeout       time.Duration `env:"OPERATION_TIMEOUT"        envDefault:"75s"`
	HeartbeatInterval      time.Duration `env:"HEARTBEAT_INTERVAL"       envDefault:"10s"`
	MaxPoolSize            uint64        `env:"MAX_POOL_SIZE"            envDefault:"10"`
	MinPoolSize            uint64        `env:"MIN_POOL_SIZE"            envDefault:"1"`
}

// NewMongoClient connects to MongoDB and verifies the connection with a ping.
// Untyped embedded documents decode as bson.M so they render as JSON objects.
// The caller owns the returned client and must Disconnect it on shutdown.
func NewMongoClient(ctx context.Context, cfg MongoConfig) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetTimeout(cfg.OperationTimeout).
		SetHeartbeatInterval(cfg.HeartbeatInterval).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, nil
}
