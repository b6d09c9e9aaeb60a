package snapshot

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDigestIsStableRegardlessOfInputOrder(t *testing.T) {
	a := Build([]TypeLayout{{Name: "B", Size: 8, Align: 8}, {Name: "A", Size: 4, Align: 4}}, map[string]string{"x": "y"})
	b := Build([]TypeLayout{{Name: "A", Size: 4, Align: 4}, {Name: "B", Size: 8, Align: 8}}, map[string]string{"x": "y"})
	assert.Equal(t, a.Digest, b.Digest)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := Build([]TypeLayout{{Name: "Point", Size: 16, Align: 8}}, map[string]string{"panic": "sym_panic"})
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s.Digest, loaded.Digest)
	assert.Equal(t, s.Types, loaded.Types)
}

func TestValidateRejectsTamperedDigest(t *testing.T) {
	s := Build(nil, map[string]string{"a": "b"})
	s.Digest = "not-a-real-digest"
	assert.Error(t, s.Validate())
}

func TestDiffReportsAddedChangedRemoved(t *testing.T) {
	before := Build(
		[]TypeLayout{{Name: "Point", Size: 16, Align: 8}, {Name: "Old", Size: 1, Align: 1}},
		map[string]string{"panic": "sym_panic"},
	)
	after := Build(
		[]TypeLayout{{Name: "Point", Size: 24, Align: 8}, {Name: "New", Size: 2, Align: 2}},
		map[string]string{"panic": "sym_panic_v2"},
	)
	diffs := after.Diff(before)
	assert.Contains(t, diffs, "type New: added")
	assert.Contains(t, diffs, "type Old: removed")
	found := false
	for _, d := range diffs {
		if d == "type Point: size/align changed 16/8 -> 24/8" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCoreRuntimeSnapshotValidates(t *testing.T) {
	s := CoreRuntimeSnapshot()
	assert.NoError(t, s.Validate())
}
