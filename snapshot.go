package allocation

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"gopkg.in/yaml.v3"
)

// Format is a snapshot file format.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatOf guesses the format of a snapshot file from its extension. It
// defaults to JSON.
func FormatOf(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// Snapshot is the human-readable description of an allocation table.
//
// Percentages (fee, expected return, risk, ratio) are in percentage units,
// correlations are coefficients.
type Snapshot struct {
	Fee          Percent               `json:"fee,omitempty" yaml:"fee,omitempty"`
	Total        *float64              `json:"total,omitempty" yaml:"total,omitempty"`
	Assets       []SnapshotAsset       `json:"assets" yaml:"assets"`
	Correlations []SnapshotCorrelation `json:"correlations,omitempty" yaml:"correlations,omitempty"`
}

// SnapshotAsset is a row of the allocation table.
type SnapshotAsset struct {
	Name           string   `json:"name" yaml:"name"`
	ExpectedReturn Percent  `json:"expected_return,omitempty" yaml:"expected_return,omitempty"`
	Risk           Percent  `json:"risk,omitempty" yaml:"risk,omitempty"`
	Investment     float64  `json:"investment,omitempty" yaml:"investment,omitempty"`
	Ratio          *Percent `json:"ratio,omitempty" yaml:"ratio,omitempty"`
}

// SnapshotCorrelation is a cell of the correlation table.
type SnapshotCorrelation struct {
	A     string  `json:"a" yaml:"a"`
	B     string  `json:"b" yaml:"b"`
	Value float64 `json:"value" yaml:"value"`
}

// DecodeSnapshot reads a snapshot in the given format.
func DecodeSnapshot(r io.Reader, format Format) (*Snapshot, error) {
	var snap Snapshot
	switch format {
	case YAML:
		if err := yaml.NewDecoder(r).Decode(&snap); err != nil && err != io.EOF {
			return nil, fmt.Errorf("format error in yaml snapshot: %w", err)
		}
	case JSON:
		if err := json.NewDecoder(r).Decode(&snap); err != nil {
			return nil, fmt.Errorf("format error in json snapshot: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q", format)
	}
	return &snap, nil
}

// SelectSnapshot reads a JSON document and decodes the snapshot found at the
// JSONPath 'path', like "$.portfolios[0]".
func SelectSnapshot(r io.Reader, path string) (*Snapshot, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("format error in json document: %w", err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error selecting %q: %w", path, err)
	}
	// jsonpath returns a list for wildcard or filter paths, keep the first
	// match.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		if _, isObject := jlist[0].(map[string]any); isObject {
			jval = jlist[0]
		}
	}
	if _, ok := jval.(map[string]any); !ok {
		return nil, fmt.Errorf("error selecting %q: not a snapshot object", path)
	}
	raw, err := json.Marshal(jval)
	if err != nil {
		return nil, fmt.Errorf("error selecting %q: %w", path, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("format error in snapshot at %q: %w", path, err)
	}
	return &snap, nil
}

// Encode writes the snapshot in the given format.
func (snap *Snapshot) Encode(w io.Writer, format Format) error {
	switch format {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	default:
		return fmt.Errorf("unsupported snapshot format %q", format)
	}
}

// Session replays the snapshot into a new session, through the same edits a
// user would type, so that every validation rule applies.
//
// If any asset has a ratio, ratios are applied after the amounts, then the
// total if any.
func (snap *Snapshot) Session(opts ...Option) (*Session, error) {
	s := NewSession(nil, opts...)
	if err := s.SetFeePercent(snap.Fee); err != nil {
		return nil, fmt.Errorf("invalid fee: %w", err)
	}
	ratios := make(map[string]Percent)
	for _, a := range snap.Assets {
		if err := s.AppendAsset(a.Name); err != nil {
			return nil, fmt.Errorf("invalid asset %q: %w", a.Name, err)
		}
		if err := s.SetExpectedReturn(a.Name, a.ExpectedReturn); err != nil {
			return nil, fmt.Errorf("invalid expected return for %q: %w", a.Name, err)
		}
		if err := s.SetRisk(a.Name, a.Risk); err != nil {
			return nil, fmt.Errorf("invalid risk for %q: %w", a.Name, err)
		}
		if err := s.SetInvestment(a.Name, a.Investment); err != nil {
			return nil, fmt.Errorf("invalid investment for %q: %w", a.Name, err)
		}
		if a.Ratio != nil {
			ratios[a.Name] = *a.Ratio
		}
	}
	for _, c := range snap.Correlations {
		if err := s.SetCorrelation(c.A, c.B, c.Value); err != nil {
			return nil, fmt.Errorf("invalid correlation between %q and %q: %w", c.A, c.B, err)
		}
	}
	if len(ratios) > 0 {
		if err := s.SetRatios(ratios); err != nil {
			return nil, fmt.Errorf("invalid ratios: %w", err)
		}
	}
	if snap.Total != nil {
		if err := s.SetAnchor(*snap.Total); err != nil {
			return nil, fmt.Errorf("invalid total: %w", err)
		}
	}
	return s, nil
}

// SnapshotOf describes the current state of a store.
//
// Only non zero correlations are listed, in table order.
func SnapshotOf(s *Store) *Snapshot {
	snap := &Snapshot{
		Fee:    FromFraction(s.fee),
		Assets: make([]SnapshotAsset, len(s.assets)),
	}
	for i, a := range s.assets {
		snap.Assets[i] = SnapshotAsset{
			Name:           a.name,
			ExpectedReturn: a.expectedReturn,
			Risk:           a.risk,
			Investment:     s.investment[i],
		}
		for j := 0; j < i; j++ {
			if v := s.corr.at(j, i); v != 0 {
				snap.Correlations = append(snap.Correlations, SnapshotCorrelation{
					A:     s.assets[j].name,
					B:     a.name,
					Value: v,
				})
			}
		}
	}
	return snap
}
