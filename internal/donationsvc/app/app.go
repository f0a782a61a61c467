// Package app opens the backing stores selected by configuration. Both the
// HTTP service and donationctl go through it.
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	config "github.com/satsangkankpul/donation-services/configs"
	"github.com/satsangkankpul/donation-services/internal/db"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/service"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/session"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/store"
	log "github.com/sirupsen/logrus"
)

type Stores struct {
	Donations service.DonationStore
	Admins    service.AdminStore
	close     func()
}

func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.DatabaseDriver {
	case "mongo":
		database, err := db.ConnectToDB(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		log.Printf("mongo connection established successfully (%s)", database.Name())

		donations := store.NewDonationStore(database)
		admins := store.NewAdminStore(database)
		if err := donations.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		if err := admins.EnsureIndexes(ctx); err != nil {
			return nil, err
		}

		return &Stores{
			Donations: donations,
			Admins:    admins,
			close: func() {
				if err := database.Client().Disconnect(context.Background()); err != nil {
					log.Errorf("mongo disconnect: %v", err)
				}
			},
		}, nil

	case "postgres":
		pool, err := db.ConnectPostgres(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		log.Printf("pg connection established successfully")

		if err := db.Migrate(pool); err != nil {
			pool.Close()
			return nil, err
		}

		return &Stores{
			Donations: store.NewPgDonationStore(pool),
			Admins:    store.NewPgAdminStore(pool),
			close:     pool.Close,
		}, nil

	case "memory":
		mem := store.NewMemoryStore()
		return &Stores{Donations: mem, Admins: mem}, nil
	}

	return nil, fmt.Errorf("unknown DATABASE_DRIVER %q", cfg.DatabaseDriver)
}

// OpenSessionStore uses Redis when REDIS_ADDR is set so sessions survive
// restarts and are shared across instances; otherwise sessions live in memory.
func OpenSessionStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	if cfg.RedisAddr == "" {
		return session.NewMemoryStore(), func() {}, nil
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{cfg.RedisAddr},
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
	}
	log.Printf("redis session store connected at %s", cfg.RedisAddr)

	return session.NewRedisStore(client), func() { client.Close() }, nil
}
