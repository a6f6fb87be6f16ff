package elephantlog

import "context"

// Output column names in contract order.
const (
	ColumnDate           = "Date"
	ColumnState          = "State"
	ColumnDistrict       = "District"
	ColumnBlock          = "Block"
	ColumnVillage        = "Village"
	ColumnElephants      = "No. of Elephants"
	ColumnIncidentType   = "Type of Incident"
	ColumnHumanDeaths    = "Human Deaths"
	ColumnElephantDeaths = "Elephant Deaths"
	ColumnDamage         = "Damage"
	ColumnSource         = "Source"
	ColumnURL            = "URL"
)

// Columns returns the output column order.
func Columns() []string {
	return []string{
		ColumnDate, ColumnState, ColumnDistrict, ColumnBlock, ColumnVillage,
		ColumnElephants, ColumnIncidentType, ColumnHumanDeaths, ColumnElephantDeaths,
		ColumnDamage, ColumnSource, ColumnURL,
	}
}

// RecordExtractor turns one article into an outcome.
// Rule-based and AI-backed strategies both implement it so they can be
// swapped or compared without touching the orchestrator.
type RecordExtractor interface {
	// Extract returns Accepted, RejectedDate, RejectedState, or ParseFailed.
	// A returned error is treated by callers as ParseFailed.
	Extract(ctx context.Context, article *Article) (*Outcome, error)
}

// RawRecord is an unvalidated record as returned by an AI collaborator.
// Nil fields were null or missing in the response.
type RawRecord struct {
	Date           *string
	State          *string
	District       *string
	Block          *string
	Village        *string
	ElephantCount  *int
	IncidentType   *string
	HumanDeaths    *int
	ElephantDeaths *int
	Damage         *string
	Source         *string
	URL            *string
}

// FieldExtractor asks an AI model for the record fields of an article.
type FieldExtractor interface {
	// ExtractFields makes a single model call.
	// Malformed responses are EPARSE errors.
	ExtractFields(ctx context.Context, article *Article) (*RawRecord, error)
}

// RecordWriter persists accepted records.
type RecordWriter interface {
	// WriteRecord persists one record. Implementations make the record
	// durable before returning so an interrupted run keeps earlier rows.
	WriteRecord(ctx context.Context, rec *IncidentRecord) error

	// Close flushes and releases the underlying resource.
	Close() error
}
