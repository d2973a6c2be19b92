package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/lib/pq"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last applied migration")
	dir := flag.String("dir", "migrations", "Migrations directory")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		log.Fatalf("failed to create migrations table: %v", err)
	}

	if *rollback {
		rollbackLast(db, *dir)
		return
	}

	applyAll(db, *dir)
}

func applyAll(db *sql.DB, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatalf("failed to read migrations directory: %v", err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".sql") && !strings.HasSuffix(name, "_rollback.sql") {
			files = append(files, name)
		}
	}
	sort.Strings(files)

	for _, file := range files {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM migrations WHERE name = $1", file).Scan(&count); err != nil {
			log.Fatalf("failed to check migration status: %v", err)
		}
		if count > 0 {
			fmt.Printf("Migration already applied: %s\n", file)
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			log.Fatalf("failed to read migration %s: %v", file, err)
		}

		tx, err := db.Begin()
		if err != nil {
			log.Fatalf("failed to start transaction: %v", err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			log.Fatalf("failed to execute migration %s: %v", file, err)
		}
		if _, err := tx.Exec("INSERT INTO migrations (name) VALUES ($1)", file); err != nil {
			tx.Rollback()
			log.Fatalf("failed to record migration %s: %v", file, err)
		}
		if err := tx.Commit(); err != nil {
			log.Fatalf("failed to commit migration %s: %v", file, err)
		}

		fmt.Printf("Applied migration: %s\n", file)
	}
}

func rollbackLast(db *sql.DB, dir string) {
	var name string
	err := db.QueryRow("SELECT name FROM migrations ORDER BY applied_at DESC, id DESC LIMIT 1").Scan(&name)
	if err == sql.ErrNoRows {
		log.Fatal("No migrations to rollback")
	}
	if err != nil {
		log.Fatalf("failed to get last migration: %v", err)
	}

	rollbackFile := strings.TrimSuffix(name, ".sql") + "_rollback.sql"
	content, err := os.ReadFile(filepath.Join(dir, rollbackFile))
	if err != nil {
		log.Fatalf("failed to read rollback file %s: %v", rollbackFile, err)
	}

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("failed to start transaction: %v", err)
	}
	if _, err := tx.Exec(string(content)); err != nil {
		tx.Rollback()
		log.Fatalf("failed to execute rollback %s: %v", rollbackFile, err)
	}
	if _, err := tx.Exec("DELETE FROM migrations WHERE name = $1", name); err != nil {
		tx.Rollback()
		log.Fatalf("failed to remove migration record: %v", err)
	}
	if err := tx.Commit(); err != nil {
		log.Fatalf("failed to commit rollback: %v", err)
	}

	fmt.Printf("Rolled back migration: %s\n", name)
}
