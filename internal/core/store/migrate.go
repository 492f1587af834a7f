package store

import (
	"context"
	"errors"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		legal_name TEXT,
		colloquial_name TEXT,
		parent_company TEXT,
		overall_score REAL NOT NULL,
		is_valid INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_companies_name ON companies(name);`,
	`CREATE TABLE IF NOT EXISTS domains (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		company_id TEXT NOT NULL REFERENCES companies(id),
		domain_name TEXT NOT NULL,
		is_active INTEGER NOT NULL DEFAULT 0,
		ip_address TEXT,
		asn TEXT,
		netblock TEXT
	);`,
	`CREATE INDEX IF NOT EXISTS idx_domains_company ON domains(company_id);`,
	`CREATE TABLE IF NOT EXISTS brands (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		company_id TEXT NOT NULL REFERENCES companies(id),
		brand_name TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS subsidiaries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		company_id TEXT NOT NULL REFERENCES companies(id),
		subsidiary_name TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS acquisitions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		company_id TEXT NOT NULL REFERENCES companies(id),
		acquired_company TEXT NOT NULL,
		acquisition_type TEXT
	);`,
	`CREATE TABLE IF NOT EXISTS search_terms (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		company_id TEXT NOT NULL REFERENCES companies(id),
		term TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS validation_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		company_id TEXT NOT NULL REFERENCES companies(id),
		validation_type TEXT NOT NULL,
		status TEXT NOT NULL,
		score INTEGER NOT NULL,
		recommendations TEXT
	);`,
}

// Migrate ensures the required database tables exist.
func (s *Store) Migrate(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	for _, stmt := range schemaStatements {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store migration failed: %w", err)
		}
	}
	return nil
}
