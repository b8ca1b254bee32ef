// adminctl provisions portal users out of band: initial admin setup and
// password resets. It writes the same bcrypt hashes the server verifies.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/ecoleweb/portail/internal/auth"
	"github.com/ecoleweb/portail/internal/db"
)

func main() {
	// adminctl only needs the DB; no session secret required here.
	drv := envOr("DB_DRIVER", "sqlite")
	dsn := os.Getenv("DB_DSN")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(drv), dsn)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	cli := &commandLine{users: auth.NewSQLUserStore(dbh)}
	if err := cli.run(os.Args); err != nil {
		if errors.Is(err, errHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
