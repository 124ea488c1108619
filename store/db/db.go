package db

import (
	"github.com/pkg/errors"

	"github.com/lehuyanh/trogiang/internal/profile"
	"github.com/lehuyanh/trogiang/store"
	"github.com/lehuyanh/trogiang/store/db/postgres"
	"github.com/lehuyanh/trogiang/store/db/sqlite"
)

// NewDBDriver creates a new db driver based on the profile.
//
// SQLite is the default for single-teacher installations; PostgreSQL is
// supported for multi-teacher deployments.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	case "postgres":
		driver, err = postgres.NewDB(profile)
	default:
		return nil, errors.New("unknown db driver: only 'sqlite' and 'postgres' are supported")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
