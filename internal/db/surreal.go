package db

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	"github.com/surrealdb/surrealdb.go/surrealcbor"

	"github.com/odemir/studentbook/internal/config"
	"github.com/odemir/studentbook/internal/pkg/helpers"
)

// SurrealDB holds the record store connection. Student records and their
// grades live here; relational data (users, sessions) stays in Postgres.
type SurrealDB struct {
	DB      *surrealdb.DB
	Timeout time.Duration
}

// NewSurrealDB connects to the SurrealDB record store.
//
// The connection is configured with the surrealcbor codec rather than the
// default marshaler. SurrealDB speaks CBOR internally, and without the codec
// time.Time values and record IDs do not round-trip correctly.
func NewSurrealDB(cfg *config.Config) (*SurrealDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	u, err := url.Parse(cfg.Store.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse record store endpoint: %w", err)
	}

	conf := connection.NewConfig(u)

	codec := surrealcbor.New()
	conf.Marshaler = codec
	conf.Unmarshaler = codec

	conn := gorillaws.New(conf)

	sdb, err := surrealdb.FromConnection(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to record store: %w", err)
	}

	if cfg.Store.Username != "" && cfg.Store.Password != "" {
		if _, err := sdb.SignIn(ctx, map[string]any{
			"user": cfg.Store.Username,
			"pass": cfg.Store.Password,
		}); err != nil {
			return nil, fmt.Errorf("failed to authenticate with record store: %w", err)
		}
	}

	if err := sdb.Use(ctx, cfg.Store.Namespace, cfg.Store.Database); err != nil {
		return nil, fmt.Errorf("failed to select record store namespace/database: %w", err)
	}

	return &SurrealDB{
		DB:      sdb,
		Timeout: helpers.ParseDuration(cfg.Store.Timeout, 10*time.Second),
	}, nil
}

// Close closes the record store connection
func (s *SurrealDB) Close() error {
	return s.DB.Close(context.Background())
}
