package db

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// Seed inserts demo data into the bookpress database: an admin account,
// a small catalogue and a subscriber base to dispatch against. Every
// insert is ON CONFLICT DO NOTHING so the seeder is safe to rerun.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, `INSERT INTO users (email, password_hash, name, role)
VALUES ($1, $2, $3, 'admin') ON CONFLICT (email) DO NOTHING`,
		"admin@bookpress.local", string(adminHash), "Admin")
	if err != nil {
		return err
	}

	books := []struct {
		title, author string
		priceCents    int64
	}{
		{"The Distributed Kitchen", "M. Ortega", 2499},
		{"Letters from a Lighthouse", "H. Aalto", 1899},
		{"A Field Guide to Rivers", "S. Brennan", 3250},
		{"Night Trains", "J. Kovac", 1599},
		{"The Paper Garden", "L. Moreau", 2750},
	}
	for _, b := range books {
		_, err = db.Exec(ctx, `INSERT INTO books (title, author, description, price_cents, stock)
VALUES ($1, $2, $3, $4, $5) ON CONFLICT DO NOTHING`,
			b.title, b.author, fmt.Sprintf("%s, by %s.", b.title, b.author), b.priceCents, 20+r.Intn(80))
		if err != nil {
			return err
		}
	}

	_, err = db.Exec(ctx, `INSERT INTO blogs (title, slug, content, status)
VALUES ($1, $2, $3, 'published') ON CONFLICT (slug) DO NOTHING`,
		"Welcome to Bookpress", "welcome-to-bookpress",
		"<p>News from the press, straight to your inbox.</p>")
	if err != nil {
		return err
	}

	segments := []string{"fiction", "nonfiction", "poetry"}
	for i := 0; i < 250; i++ {
		attrs, _ := json.Marshal(map[string]string{"segment": segments[r.Intn(len(segments))]})
		_, err = db.Exec(ctx, `INSERT INTO subscribers (email, is_active, is_verified, attributes)
VALUES ($1, TRUE, $2, $3) ON CONFLICT DO NOTHING`,
			fmt.Sprintf("reader%d@example.com", i+1), r.Intn(10) > 1, attrs)
		if err != nil {
			return err
		}
	}

	_, err = db.Exec(ctx, `INSERT INTO newsletters (subject, content, status)
VALUES ($1, $2, 'draft') ON CONFLICT DO NOTHING`,
		"Spring Catalogue", "<h1>New arrivals</h1><p>Five new titles this month.</p>")
	return err
}
