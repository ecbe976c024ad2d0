package workflow

import (
	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
)

// Status summarises an ingestion run.
type Status string

const (
	StatusSuccess Status = "success"
	StatusPartial Status = "partial"
	StatusFailed  Status = "failed"
	StatusEmpty   Status = "empty"
)

// RecordFailure describes one record that was not ingested.
type RecordFailure struct {
	// Index is the record's position in the input.
	Index int    `json:"index"`
	ID    any    `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

// IngestReport is the outcome of Ingest. Upserted and Failed always add up
// to Total.
type IngestReport struct {
	Collection string          `json:"collection"`
	Mode       vectordb.Mode   `json:"mode"`
	Created    bool            `json:"created"`
	Total      int             `json:"total"`
	Upserted   int             `json:"success"`
	Failed     int             `json:"failed"`
	Status     Status          `json:"status"`
	Failures   []RecordFailure `json:"failures"`
}

func statusOf(total, upserted int) Status {
	switch {
	case total == 0:
		return StatusEmpty
	case upserted == total:
		return StatusSuccess
	case upserted == 0:
		return StatusFailed
	}
	return StatusPartial
}

// ScoredRecord is one search hit: the point id, its score and the stored
// record fields.
type ScoredRecord struct {
	ID     vectordb.PointID `json:"id"`
	Score  float32          `json:"score"`
	Record map[string]any   `json:"record"`
}

// SearchResponse is the outcome of Search. FallbackOccurred is true when a
// sparse search was answered with dense vectors because the collection has
// no sparse slot; UsedMode then differs from RequestedMode.
type SearchResponse struct {
	Collection       string         `json:"collection"`
	Query            string         `json:"query"`
	RequestedMode    vectordb.Mode  `json:"requestedMode"`
	UsedMode         vectordb.Mode  `json:"usedMode"`
	FallbackOccurred bool           `json:"fallbackOccurred"`
	Results          []ScoredRecord `json:"results"`
}

// CollectionInfo is one entry of Describe. Error is set instead of
// Collection when that collection could not be read.
type CollectionInfo struct {
	Name       string               `json:"name"`
	Collection *vectordb.Collection `json:"details,omitempty"`
	Capability *vectordb.Capability `json:"capability,omitempty"`
	Error      string               `json:"error,omitempty"`
	ErrorKind  string               `json:"errorKind,omitempty"`
}
