package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/orglens/orglens/internal/core"
)

// CompanySummary is a stored hierarchy listing row.
type CompanySummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	OverallScore float64   `json:"overall_score"`
	IsValid      bool      `json:"is_valid"`
	CreatedAt    time.Time `json:"created_at"`
}

// ErrNotFound is returned when no stored hierarchy matches a lookup.
var ErrNotFound = errors.New("company not found")

// SaveResult maps a validated result onto the relational schema: one company
// row plus child rows for domains, brands, subsidiaries, acquisitions,
// search terms, and validation findings. Returns the new company ID.
func (s *Store) SaveResult(ctx context.Context, result *core.ValidatedResult) (string, error) {
	if s == nil || s.DB == nil {
		return "", errors.New("store is not initialized")
	}
	if result == nil || result.Hierarchy == nil {
		return "", errors.New("validated result with hierarchy is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	hierarchy := result.Hierarchy
	companyID := uuid.New().String()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx,
		`INSERT INTO companies (id, name, legal_name, colloquial_name, parent_company, overall_score, is_valid, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		companyID,
		hierarchy.Company.Name,
		hierarchy.Company.LegalName,
		hierarchy.Company.ColloquialName,
		hierarchy.Company.ParentCompany,
		result.OverallScore,
		boolToInt(result.IsValid),
		time.Now().UTC().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("insert company: %w", err)
	}

	for _, info := range hierarchy.DigitalAssets.Domains {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO domains (company_id, domain_name, is_active, ip_address, asn, netblock)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			companyID, info.Domain, boolToInt(info.Active), info.IPAddress, info.ASN, info.Netblock,
		)
		if err != nil {
			return "", fmt.Errorf("insert domain: %w", err)
		}
	}

	for _, brand := range hierarchy.Brands {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO brands (company_id, brand_name) VALUES (?, ?)`, companyID, brand); err != nil {
			return "", fmt.Errorf("insert brand: %w", err)
		}
	}

	for _, subsidiary := range hierarchy.Subsidiaries {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO subsidiaries (company_id, subsidiary_name) VALUES (?, ?)`, companyID, subsidiary); err != nil {
			return "", fmt.Errorf("insert subsidiary: %w", err)
		}
	}

	for _, acquisition := range hierarchy.Acquisitions {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO acquisitions (company_id, acquired_company, acquisition_type) VALUES (?, ?, ?)`,
			companyID, acquisition.AcquiredCompany, acquisition.AcquisitionType); err != nil {
			return "", fmt.Errorf("insert acquisition: %w", err)
		}
	}

	for _, term := range hierarchy.SearchTerms {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO search_terms (company_id, term) VALUES (?, ?)`, companyID, term); err != nil {
			return "", fmt.Errorf("insert search term: %w", err)
		}
	}

	for _, finding := range result.Findings {
		recommendations, err := json.Marshal(finding.Recommendations)
		if err != nil {
			return "", fmt.Errorf("encode recommendations: %w", err)
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO validation_results (company_id, validation_type, status, score, recommendations)
			 VALUES (?, ?, ?, ?, ?)`,
			companyID, string(finding.Type), string(finding.Status), finding.Score, string(recommendations)); err != nil {
			return "", fmt.Errorf("insert validation result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit save: %w", err)
	}
	return companyID, nil
}

// GetHierarchy reconstructs the most recently stored hierarchy for a company
// name.
func (s *Store) GetHierarchy(ctx context.Context, name string) (*core.Hierarchy, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	row := s.DB.QueryRowContext(ctx,
		`SELECT id, name, legal_name, colloquial_name, parent_company, overall_score
		 FROM companies WHERE name = ? ORDER BY created_at DESC LIMIT 1`, name)

	var (
		companyID string
		hierarchy core.Hierarchy
	)
	err := row.Scan(
		&companyID,
		&hierarchy.Company.Name,
		&hierarchy.Company.LegalName,
		&hierarchy.Company.ColloquialName,
		&hierarchy.Company.ParentCompany,
		&hierarchy.Validation.OverallScore,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load company: %w", err)
	}

	hierarchy.Subsidiaries = []string{}
	hierarchy.Brands = []string{}
	hierarchy.Acquisitions = []core.Acquisition{}
	hierarchy.SearchTerms = []string{}
	hierarchy.DigitalAssets = core.DigitalAssets{
		Domains:   []core.DomainInfo{},
		ASNs:      []string{},
		Netblocks: []string{},
	}

	if err := s.loadDomains(ctx, companyID, &hierarchy); err != nil {
		return nil, err
	}
	if err := s.loadStrings(ctx, companyID, `SELECT brand_name FROM brands WHERE company_id = ?`, &hierarchy.Brands); err != nil {
		return nil, err
	}
	if err := s.loadStrings(ctx, companyID, `SELECT subsidiary_name FROM subsidiaries WHERE company_id = ?`, &hierarchy.Subsidiaries); err != nil {
		return nil, err
	}
	if err := s.loadStrings(ctx, companyID, `SELECT term FROM search_terms WHERE company_id = ?`, &hierarchy.SearchTerms); err != nil {
		return nil, err
	}
	if err := s.loadAcquisitions(ctx, companyID, &hierarchy); err != nil {
		return nil, err
	}
	if err := s.loadFindings(ctx, companyID, &hierarchy); err != nil {
		return nil, err
	}

	return &hierarchy, nil
}

// ListCompanies returns summaries of every stored hierarchy, newest first.
func (s *Store) ListCompanies(ctx context.Context) ([]CompanySummary, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, name, overall_score, is_valid, created_at FROM companies ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close() // nolint:errcheck // best-effort cleanup

	summaries := make([]CompanySummary, 0)
	for rows.Next() {
		var (
			summary   CompanySummary
			isValid   int
			createdAt int64
		)
		if err := rows.Scan(&summary.ID, &summary.Name, &summary.OverallScore, &isValid, &createdAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		summary.IsValid = isValid != 0
		summary.CreatedAt = time.Unix(createdAt, 0).UTC()
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return summaries, nil
}

func (s *Store) loadDomains(ctx context.Context, companyID string, hierarchy *core.Hierarchy) error {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT domain_name, is_active, ip_address, asn, netblock FROM domains WHERE company_id = ? ORDER BY id`, companyID)
	if err != nil {
		return fmt.Errorf("load domains: %w", err)
	}
	defer rows.Close() // nolint:errcheck // best-effort cleanup

	for rows.Next() {
		var (
			info     core.DomainInfo
			isActive int
			ip       sql.NullString
			asn      sql.NullString
			netblock sql.NullString
		)
		if err := rows.Scan(&info.Domain, &isActive, &ip, &asn, &netblock); err != nil {
			return fmt.Errorf("scan domain: %w", err)
		}
		info.Active = isActive != 0
		info.IPAddress = ip.String
		info.ASN = asn.String
		info.Netblock = netblock.String

		hierarchy.DigitalAssets.Domains = append(hierarchy.DigitalAssets.Domains, info)
		if info.ASN != "" && !containsString(hierarchy.DigitalAssets.ASNs, info.ASN) {
			hierarchy.DigitalAssets.ASNs = append(hierarchy.DigitalAssets.ASNs, info.ASN)
		}
		if info.Netblock != "" && !containsString(hierarchy.DigitalAssets.Netblocks, info.Netblock) {
			hierarchy.DigitalAssets.Netblocks = append(hierarchy.DigitalAssets.Netblocks, info.Netblock)
		}
	}
	return rows.Err()
}

func (s *Store) loadStrings(ctx context.Context, companyID, query string, into *[]string) error {
	rows, err := s.DB.QueryContext(ctx, query+` ORDER BY id`, companyID)
	if err != nil {
		return fmt.Errorf("load rows: %w", err)
	}
	defer rows.Close() // nolint:errcheck // best-effort cleanup

	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}
		*into = append(*into, value)
	}
	return rows.Err()
}

func (s *Store) loadAcquisitions(ctx context.Context, companyID string, hierarchy *core.Hierarchy) error {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT acquired_company, acquisition_type FROM acquisitions WHERE company_id = ? ORDER BY id`, companyID)
	if err != nil {
		return fmt.Errorf("load acquisitions: %w", err)
	}
	defer rows.Close() // nolint:errcheck // best-effort cleanup

	for rows.Next() {
		var (
			acquisition core.Acquisition
			acqType     sql.NullString
		)
		if err := rows.Scan(&acquisition.AcquiredCompany, &acqType); err != nil {
			return fmt.Errorf("scan acquisition: %w", err)
		}
		acquisition.AcquisitionType = acqType.String
		hierarchy.Acquisitions = append(hierarchy.Acquisitions, acquisition)
	}
	return rows.Err()
}

func (s *Store) loadFindings(ctx context.Context, companyID string, hierarchy *core.Hierarchy) error {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT validation_type, status, score FROM validation_results WHERE company_id = ? ORDER BY id`, companyID)
	if err != nil {
		return fmt.Errorf("load validation results: %w", err)
	}
	defer rows.Close() // nolint:errcheck // best-effort cleanup

	for rows.Next() {
		var summary core.FindingSummary
		if err := rows.Scan(&summary.Type, &summary.Status, &summary.Score); err != nil {
			return fmt.Errorf("scan validation result: %w", err)
		}
		hierarchy.Validation.Results = append(hierarchy.Validation.Results, summary)
	}
	return rows.Err()
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
