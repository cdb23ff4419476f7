package deployment

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/feral-file/ff-collection-ledger/internal/adapter"
	"github.com/feral-file/ff-collection-ledger/internal/domain"
)

// Parameters are the construction parameters of a deployed collection
type Parameters struct {
	Name               string         `json:"name"`
	Symbol             string         `json:"symbol"`
	BaseURI            string         `json:"base_uri"`
	ContractURI        string         `json:"contract_uri,omitempty"`
	MaxSupply          uint64         `json:"max_supply"`
	MaxBatchSize       uint64         `json:"max_batch_size"`
	RoyaltyBasisPoints uint64         `json:"royalty_basis_points"`
	RoyaltyReceiver    domain.Address `json:"royalty_receiver"`
}

// Record describes one collection deployment
type Record struct {
	Network      string         `json:"network"`
	CollectionID string         `json:"collection_id"`
	Admin        domain.Address `json:"admin"`
	Timestamp    time.Time      `json:"timestamp"`
	Parameters   Parameters     `json:"parameters"`
}

// Writer persists deployment records under a directory, one timestamped file per
// deployment plus a <network>-latest.json copy
type Writer interface {
	// Save writes the record and returns the timestamped and latest paths
	Save(record *Record) (string, string, error)
	// Latest reads the latest record of a network
	Latest(network string) (*Record, error)
}

type writer struct {
	dir  string
	fs   adapter.FileSystem
	json adapter.JSON
}

// NewWriter creates a deployment writer rooted at dir
func NewWriter(dir string, fs adapter.FileSystem, json adapter.JSON) Writer {
	return &writer{
		dir:  dir,
		fs:   fs,
		json: json,
	}
}

func (w *writer) Save(record *Record) (string, string, error) {
	if record.Network == "" {
		return "", "", fmt.Errorf("deployment record has no network")
	}
	if record.CollectionID == "" {
		return "", "", fmt.Errorf("deployment record has no collection id")
	}

	data, err := w.json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("failed to encode deployment record: %w", err)
	}

	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create deployments directory: %w", err)
	}

	ts := strconv.FormatInt(record.Timestamp.UnixMilli(), 10)
	path := filepath.Join(w.dir, fmt.Sprintf("%s-%s.json", record.Network, ts))
	if err := w.fs.WriteFile(path, data, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write deployment record: %w", err)
	}

	latest := w.latestPath(record.Network)
	if err := w.fs.WriteFile(latest, data, 0o644); err != nil {
		return path, "", fmt.Errorf("failed to write latest deployment record: %w", err)
	}

	return path, latest, nil
}

func (w *writer) Latest(network string) (*Record, error) {
	data, err := w.fs.ReadFile(w.latestPath(network))
	if err != nil {
		return nil, fmt.Errorf("failed to read latest deployment of %s: %w", network, err)
	}

	var record Record
	if err := w.json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse deployment record: %w", err)
	}

	return &record, nil
}

func (w *writer) latestPath(network string) string {
	return filepath.Join(w.dir, network+"-latest.json")
}
