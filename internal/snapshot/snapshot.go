package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// SchemaVersion is the current snapshot schema version.
const SchemaVersion = "cursive.snapshot/v1"

// TypeLayout is one nominal type's digested layout.
type TypeLayout struct {
	Name  string `yaml:"name"`
	Size  int64  `yaml:"size"`
	Align int64  `yaml:"align"`
}

// Snapshot is the full digested artifact: every type layout the build
// computed, the runtime symbol catalogue, and a digest covering both so a
// later run can detect any drift.
type Snapshot struct {
	Schema        string       `yaml:"schema"`
	SchemaVersion string       `yaml:"schema_version"`
	Digest        string       `yaml:"digest"`
	Types         []TypeLayout `yaml:"types"`
	RuntimeSymbols map[string]string `yaml:"runtime_symbols"`
}

// Build constructs a Snapshot from a set of digested type layouts and the
// runtime symbol catalogue, computing its digest. types and symbols are
// sorted by name first so the digest (and the serialised artifact) is
// stable across runs regardless of map/slice iteration order upstream.
func Build(types []TypeLayout, symbols map[string]string) *Snapshot {
	sorted := append([]TypeLayout(nil), types...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	s := &Snapshot{
		Schema:         SchemaVersion,
		SchemaVersion:  "1.0.0",
		Types:          sorted,
		RuntimeSymbols: symbols,
	}
	s.Digest = s.computeDigest()
	return s
}

func (s *Snapshot) computeDigest() string {
	names := make([]string, 0, len(s.RuntimeSymbols))
	for k := range s.RuntimeSymbols {
		names = append(names, k)
	}
	sort.Strings(names)

	h := sha256.New()
	for _, t := range s.Types {
		fmt.Fprintf(h, "type:%s:%d:%d\n", t.Name, t.Size, t.Align)
	}
	for _, name := range names {
		fmt.Fprintf(h, "sym:%s:%s\n", name, s.RuntimeSymbols[name])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Save writes the snapshot as YAML to path.
func (s *Snapshot) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a Snapshot from path and validates its schema/digest.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the schema tag and recomputes the digest, rejecting any
// snapshot whose recorded digest no longer matches its own contents (a
// snapshot hand-edited without updating Digest).
func (s *Snapshot) Validate() error {
	if s.Schema != SchemaVersion {
		return fmt.Errorf("unsupported snapshot schema: %s (expected %s)", s.Schema, SchemaVersion)
	}
	want := s.computeDigest()
	if s.Digest != want {
		return fmt.Errorf("snapshot digest mismatch: recorded %s, computed %s", s.Digest, want)
	}
	return nil
}

// Diff compares s against other, returning the type names and runtime
// symbol keys whose recorded value changed (added, removed, or
// modified), the precise output a regression test reports on mismatch.
func (s *Snapshot) Diff(other *Snapshot) []string {
	var diffs []string

	byName := map[string]TypeLayout{}
	for _, t := range other.Types {
		byName[t.Name] = t
	}
	seen := map[string]bool{}
	for _, t := range s.Types {
		seen[t.Name] = true
		prev, ok := byName[t.Name]
		if !ok {
			diffs = append(diffs, fmt.Sprintf("type %s: added", t.Name))
			continue
		}
		if prev != t {
			diffs = append(diffs, fmt.Sprintf("type %s: size/align changed %d/%d -> %d/%d", t.Name, prev.Size, prev.Align, t.Size, t.Align))
		}
	}
	for name := range byName {
		if !seen[name] {
			diffs = append(diffs, fmt.Sprintf("type %s: removed", name))
		}
	}

	for name, sym := range s.RuntimeSymbols {
		prev, ok := other.RuntimeSymbols[name]
		if !ok {
			diffs = append(diffs, fmt.Sprintf("symbol %s: added", name))
		} else if prev != sym {
			diffs = append(diffs, fmt.Sprintf("symbol %s: changed %s -> %s", name, prev, sym))
		}
	}
	for name := range other.RuntimeSymbols {
		if _, ok := s.RuntimeSymbols[name]; !ok {
			diffs = append(diffs, fmt.Sprintf("symbol %s: removed", name))
		}
	}

	sort.Strings(diffs)
	return diffs
}
