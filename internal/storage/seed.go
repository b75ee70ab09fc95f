package storage

import (
	"fmt"
	"time"
)

// SeedDemoBusinesses inserts a set of verified sample businesses for local
// development. Fixed IDs keep the insert idempotent across restarts.
func (db *DB) SeedDemoBusinesses() error {
	now := time.Now().UTC()

	demos := []struct {
		id      string
		name    string
		desc    string
		revenue string
		rating  string
		score   int
		video   string
	}{
		{"7f1b2f60-0001-4a6e-9c1d-000000000001", "EcoTech Solutions", "Sustainable technology for modern homes", "15000", "A", 92, "https://example.com/video1"},
		{"7f1b2f60-0002-4a6e-9c1d-000000000002", "Urban Farming Co", "Vertical farming solutions for cities", "8500", "B", 85, "https://example.com/video2"},
		{"7f1b2f60-0003-4a6e-9c1d-000000000003", "Digital Health Plus", "AI-powered health monitoring", "25000", "A", 95, "https://example.com/video3"},
		{"7f1b2f60-0004-4a6e-9c1d-000000000004", "Green Energy Storage", "Battery solutions for renewable energy", "12000", "B", 78, "https://example.com/video4"},
		{"7f1b2f60-0005-4a6e-9c1d-000000000005", "Smart Logistics Hub", "Last-mile delivery optimization", "6000", "C", 72, "https://example.com/video5"},
	}

	for _, d := range demos {
		_, err := db.Exec(`
			INSERT OR IGNORE INTO businesses
				(id, name, description, llc_verified, bank_verified, monthly_revenue,
				 risk_rating, risk_score, video_url, verification_status, created_at, updated_at)
			VALUES (?, ?, ?, 1, 1, ?, ?, ?, ?, 'verified', ?, ?)`,
			d.id, d.name, d.desc, d.revenue, d.rating, d.score, d.video, now, now,
		)
		if err != nil {
			return fmt.Errorf("failed to seed business %s: %w", d.name, err)
		}
	}
	return nil
}
