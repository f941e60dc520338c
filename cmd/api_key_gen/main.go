package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"openfleet/fleetkeeper/internal/db"
)

// Provisions an API key for an existing user and prints it once.
func main() {
	userID := flag.String("user", "", "user id the key belongs to")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: api_key_gen -user <user-id>")
		os.Exit(2)
	}

	conn, err := sql.Open("postgres", db.DSNFromEnv())
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer conn.Close()

	key := uuid.NewString()
	if _, err := conn.Exec(`INSERT INTO api_keys (id, user_id, status) VALUES ($1, $2, true)`, key, *userID); err != nil {
		log.Fatalf("insert api key: %v", err)
	}

	fmt.Println("New API Key:", key)
}
