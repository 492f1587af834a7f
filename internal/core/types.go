package core

// Stage names used as confidence score keys by the preparation pipeline.
const (
	StageDataEntry         = "data_entry"
	StageDomainAssociation = "domain_association"
	StageDANSCheck         = "dans_check"
	StageEnumeration       = "enumeration"
)

// ValidationType identifies a validation pipeline stage.
type ValidationType string

const (
	ValidationTypeSource ValidationType = "source"
	ValidationTypeFinal  ValidationType = "validation"
)

// ValidationStatus is the outcome of a single validation stage.
type ValidationStatus string

const (
	StatusPassed  ValidationStatus = "passed"
	StatusWarning ValidationStatus = "warning"
	StatusFailed  ValidationStatus = "failed"
)

// Acquisition records a company acquired by the organization.
type Acquisition struct {
	AcquiredCompany string `json:"acquired_company"`
	AcquisitionType string `json:"acquisition_type,omitempty"`
}

// CompanyRecord is the raw organization profile handed to the preparation
// pipeline. It is produced by an external collector and never mutated here.
type CompanyRecord struct {
	Name           string        `json:"name"`
	LegalName      string        `json:"legal_name,omitempty"`
	ColloquialName string        `json:"colloquial_name,omitempty"`
	ParentCompany  string        `json:"parent_company,omitempty"`
	Domains        []string      `json:"domains,omitempty"`
	Brands         []string      `json:"brands,omitempty"`
	Subsidiaries   []string      `json:"subsidiaries,omitempty"`
	Acquisitions   []Acquisition `json:"acquisitions,omitempty"`
}

// DomainInfo describes one associated domain and the coarse network
// identifiers derived from its resolved address. The ASN and netblock values
// are placeholders derived by a NetworkIdentityResolver, not registry data.
type DomainInfo struct {
	Domain    string `json:"domain"`
	Active    bool   `json:"is_active"`
	IPAddress string `json:"ip_address,omitempty"`
	ASN       string `json:"asn,omitempty"`
	Netblock  string `json:"netblock,omitempty"`
}

// EnrichedRecord is the preparation pipeline's working state. It is created
// from a CompanyRecord, mutated in place across the four stages, and handed
// to the validation pipeline once stage four completes.
type EnrichedRecord struct {
	Name           string
	LegalName      string
	ColloquialName string
	ParentCompany  string
	Subsidiaries   []string
	Brands         []string
	Acquisitions   []Acquisition

	// SearchTerms only grows during preparation; it is never pruned.
	SearchTerms map[string]struct{}

	// Domains holds one entry per domain name, first occurrence wins.
	Domains   []DomainInfo
	ASNs      []string
	Netblocks []string

	// ConfidenceScores maps stage name to an advisory score in [0,1].
	ConfidenceScores map[string]float64
}

// NewEnrichedRecord copies a raw record into fresh preparation state.
func NewEnrichedRecord(record CompanyRecord) *EnrichedRecord {
	enriched := &EnrichedRecord{
		Name:             record.Name,
		LegalName:        record.LegalName,
		ColloquialName:   record.ColloquialName,
		ParentCompany:    record.ParentCompany,
		Subsidiaries:     append([]string(nil), record.Subsidiaries...),
		Brands:           append([]string(nil), record.Brands...),
		Acquisitions:     append([]Acquisition(nil), record.Acquisitions...),
		SearchTerms:      make(map[string]struct{}),
		Domains:          make([]DomainInfo, 0, len(record.Domains)),
		ASNs:             []string{},
		Netblocks:        []string{},
		ConfidenceScores: make(map[string]float64),
	}
	for _, domain := range record.Domains {
		enriched.Domains = append(enriched.Domains, DomainInfo{Domain: domain})
	}
	return enriched
}

// AddTerm records a search term. Terms are stored lower-cased.
func (r *EnrichedRecord) AddTerm(term string) {
	if r == nil || r.SearchTerms == nil || term == "" {
		return
	}
	r.SearchTerms[term] = struct{}{}
}

// HasDomain reports whether a domain name is already associated.
func (r *EnrichedRecord) HasDomain(name string) bool {
	if r == nil {
		return false
	}
	for _, info := range r.Domains {
		if info.Domain == name {
			return true
		}
	}
	return false
}

// ValidationFinding is the immutable output of one validation stage.
type ValidationFinding struct {
	Type            ValidationType   `json:"type"`
	Status          ValidationStatus `json:"status"`
	Score           int              `json:"score"`
	Details         map[string]any   `json:"details,omitempty"`
	Recommendations []string         `json:"recommendations,omitempty"`
}

// ValidatedResult is the terminal artifact of the validation pipeline. The
// hierarchy document is materialized even when the result is invalid so
// callers can inspect why a record was rejected.
type ValidatedResult struct {
	Record       *EnrichedRecord     `json:"-"`
	Findings     []ValidationFinding `json:"validation_results"`
	OverallScore float64             `json:"overall_score"`
	IsValid      bool                `json:"is_valid"`
	Hierarchy    *Hierarchy          `json:"final_hierarchy"`
}

// Hierarchy is the final hierarchy document handed to persistence and
// reporting collaborators.
type Hierarchy struct {
	Company       HierarchyCompany  `json:"company"`
	Subsidiaries  []string          `json:"subsidiaries"`
	Brands        []string          `json:"brands"`
	Acquisitions  []Acquisition     `json:"acquisitions"`
	DigitalAssets DigitalAssets     `json:"digital_assets"`
	SearchTerms   []string          `json:"search_terms"`
	Validation    ValidationSummary `json:"validation_summary"`
}

// HierarchyCompany holds the canonical company names.
type HierarchyCompany struct {
	Name           string `json:"name"`
	LegalName      string `json:"legal_name,omitempty"`
	ColloquialName string `json:"colloquial_name,omitempty"`
	ParentCompany  string `json:"parent_company,omitempty"`
}

// DigitalAssets groups the network-facing assets of a hierarchy.
type DigitalAssets struct {
	Domains   []DomainInfo `json:"domains"`
	ASNs      []string     `json:"asns"`
	Netblocks []string     `json:"netblocks"`
}

// ValidationSummary condenses the findings for the hierarchy document.
type ValidationSummary struct {
	OverallScore float64          `json:"overall_score"`
	Results      []FindingSummary `json:"validation_results"`
}

// FindingSummary is the per-stage slice of a ValidationSummary.
type FindingSummary struct {
	Type   ValidationType   `json:"type"`
	Status ValidationStatus `json:"status"`
	Score  int              `json:"score"`
}
