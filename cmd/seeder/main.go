// Seeder populates a variant database with synthetic games and reports for
// local development. It understands both schema shapes:
//
//	go run ./cmd/seeder -driver pgx -dsn $NHL10_DATABASE_URL -shape single
//	go run ./cmd/seeder -driver mysql -dsn $NHLLEGACY_DATABASE_URL -shape split
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	driver  = flag.String("driver", "pgx", "database driver (pgx or mysql)")
	dsn     = flag.String("dsn", "", "database connection string")
	shape   = flag.String("shape", "single", "schema shape (single or split)")
	games   = flag.Int("games", 20, "number of games to create")
	perGame = flag.Int("reports", 2, "reports per game")
)

var gamertags = []string{
	"IceBreaker", "TopShelf88", "SlapshotSam", "GoalieGuru",
	"DangleKing", "PuckWizard", "BlueLiner", "OneTimer",
}

var teams = []string{"Red Wings", "Maple Leafs", "Canadiens", "Bruins", "Rangers", "Penguins"}

func main() {
	flag.Parse()
	if *dsn == "" {
		log.Fatal("missing -dsn")
	}

	db, err := sql.Open(*driver, *dsn)
	if err != nil {
		log.Fatalf("open: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("ping: %v", err)
	}

	switch *shape {
	case "single":
		err = seedSingle(ctx, db)
	case "split":
		err = seedSplit(ctx, db)
	default:
		log.Fatalf("unknown shape %q", *shape)
	}
	if err != nil {
		log.Fatalf("seed: %v", err)
	}

	fmt.Printf("seeded %d games (%s shape)\n", *games, *shape)
}

// ph returns the placeholder for position n in the configured dialect.
func ph(n int) string {
	if *driver == "mysql" {
		return "?"
	}
	return fmt.Sprintf("$%d", n)
}

func phList(count int) string {
	parts := make([]string, count)
	for i := range parts {
		parts[i] = ph(i + 1)
	}
	return strings.Join(parts, ", ")
}

func boolType() string {
	if *driver == "mysql" {
		return "TINYINT(1)"
	}
	return "BOOLEAN"
}

func seedSingle(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS games (
			game_id BIGINT PRIMARY KEY,
			created_at TIMESTAMP NOT NULL,
			fnsh ` + boolType() + `,
			gtyp VARCHAR(32),
			venue VARCHAR(64)
		)`,
		`CREATE TABLE IF NOT EXISTS reports (
			game_id BIGINT NOT NULL,
			user_id BIGINT NOT NULL,
			gamertag VARCHAR(64),
			team_name VARCHAR(64),
			team ` + boolType() + `,
			score INT,
			shots INT,
			hits INT,
			fpsavg INT,
			lateavgnet INT,
			created_at TIMESTAMP NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}

	for g := 1; g <= *games; g++ {
		created := time.Now().UTC().AddDate(0, 0, -rand.Intn(40))
		_, err := db.ExecContext(ctx,
			"INSERT INTO games (game_id, created_at, fnsh, gtyp, venue) VALUES ("+phList(5)+")",
			g, created, g%5 != 0, "versus", "Arena "+teams[g%len(teams)])
		if err != nil {
			return err
		}
		for p := 0; p < *perGame; p++ {
			tag := gamertags[(g+p)%len(gamertags)]
			_, err := db.ExecContext(ctx,
				`INSERT INTO reports (game_id, user_id, gamertag, team_name, team, score, shots, hits, fpsavg, lateavgnet, created_at)
				 VALUES (`+phList(11)+`)`,
				g, 1000+(g+p)%len(gamertags), tag, teams[(g+p)%len(teams)], p == 0,
				rand.Intn(7), 10+rand.Intn(30), rand.Intn(20), 40+rand.Intn(30), 20+rand.Intn(120), created)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func seedSplit(ctx context.Context, db *sql.DB) error {
	reportTable := func(name string) string {
		return `CREATE TABLE IF NOT EXISTS ` + name + ` (
			game_id BIGINT NOT NULL,
			user_id BIGINT NOT NULL,
			gtag VARCHAR(64),
			tnam VARCHAR(64),
			home ` + boolType() + `,
			scor INT,
			shts INT,
			hits INT,
			fpsavg INT,
			lateavgnet INT,
			created_at TIMESTAMP NOT NULL
		)`
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS games (
			game_id BIGINT PRIMARY KEY,
			created_at TIMESTAMP NOT NULL,
			fnsh ` + boolType() + `,
			gtyp VARCHAR(32),
			venue VARCHAR(64)
		)`,
		reportTable("reports_vs"),
		reportTable("reports_so"),
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}

	for g := 1; g <= *games; g++ {
		created := time.Now().UTC().AddDate(0, 0, -rand.Intn(40))
		_, err := db.ExecContext(ctx,
			"INSERT INTO games (game_id, created_at, fnsh, gtyp, venue) VALUES ("+phList(5)+")",
			g, created, g%5 != 0, "versus", "Arena "+teams[g%len(teams)])
		if err != nil {
			return err
		}

		// A game's reports land in exactly one of the two sub-mode tables.
		table := "reports_vs"
		if g%3 == 0 {
			table = "reports_so"
		}
		for p := 0; p < *perGame; p++ {
			tag := gamertags[(g+p)%len(gamertags)]
			_, err := db.ExecContext(ctx,
				`INSERT INTO `+table+` (game_id, user_id, gtag, tnam, home, scor, shts, hits, fpsavg, lateavgnet, created_at)
				 VALUES (`+phList(11)+`)`,
				g, 1000+(g+p)%len(gamertags), tag, teams[(g+p)%len(teams)], p == 0,
				rand.Intn(7), 10+rand.Intn(30), rand.Intn(20), 40+rand.Intn(30), 20+rand.Intn(120), created)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
