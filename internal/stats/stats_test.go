package stats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupEntries(t *testing.T) {
	s := New()
	g := s.Group("lowering")
	require.NoError(t, g.WriteEntry("nodes", 12))
	require.NoError(t, g.WriteEntry("backend", "ref"))
	require.NoError(t, g.WriteEntry("ratio", 0.5))

	assert.True(t, g.HasEntry("nodes"))
	assert.False(t, g.HasEntry("missing"))
	assert.Equal(t, 12, g.ReadInt("nodes", -1))
	assert.Equal(t, -1, g.ReadInt("missing", -1))
	assert.Equal(t, "ref", g.ReadString("backend", ""))
	assert.Equal(t, 0.5, g.ReadFloat("ratio", 0))
	assert.Equal(t, []string{"backend", "nodes", "ratio"}, g.Entries())
}

func TestNestedGroups(t *testing.T) {
	s := New()
	conv := s.Group("calibration").Group("conv0")
	require.NoError(t, conv.WriteEntry("scale", 0.02))

	assert.True(t, s.HasGroup("calibration"))
	assert.False(t, s.HasGroup("conv0"))
	assert.Equal(t, 0.02, s.Group("calibration").Group("conv0").ReadFloat("scale", 0))

	s.DeleteGroup("calibration")
	assert.False(t, s.HasGroup("calibration"))
}

func TestCounters(t *testing.T) {
	s := New()
	require.True(t, s.AddCounter("num-lowered", "nodes lowered"))
	assert.False(t, s.AddCounter("num-lowered", "again"), "registering twice must fail")

	assert.True(t, s.IncCounter("num-lowered", 3))
	assert.True(t, s.IncCounter("num-lowered", 2))
	assert.Equal(t, 5, s.Counter("num-lowered"))
	assert.Equal(t, "nodes lowered", s.CounterDesc("num-lowered"))

	assert.True(t, s.ResetCounter("num-lowered", 0))
	assert.Equal(t, 0, s.Counter("num-lowered"))

	assert.False(t, s.IncCounter("unknown", 1))
	assert.False(t, s.ResetCounter("unknown", 0))
	assert.Equal(t, 0, s.Counter("unknown"))
	assert.Equal(t, "no description", s.CounterDesc("unknown"))

	require.True(t, s.AddCounter("num-passes", ""))
	assert.Equal(t, "no description", s.CounterDesc("num-passes"))
	assert.Equal(t, []string{"num-lowered", "num-passes"}, s.Counters())
}

func TestSyncRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")

	s, err := Open(path, ReadWrite)
	require.NoError(t, err, "missing file must open as an empty read-write store")
	require.True(t, s.AddCounter("num-lowered", "nodes lowered"))
	require.True(t, s.IncCounter("num-lowered", 7))
	require.NoError(t, s.Group("config").WriteEntry("target", "ref"))
	require.NoError(t, s.Sync())

	loaded, err := Open(path, ReadOnly)
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Counter("num-lowered"))
	assert.Equal(t, "ref", loaded.Group("config").ReadString("target", ""))
	assert.ElementsMatch(t, []string{"config", "counters", "counters_desc"}, loaded.Groups())
}

func TestOpenReadOnlyMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.json"), ReadOnly)
	require.Error(t, err)
}

func TestReadOnlySyncIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"counters":{"n":1}}`), 0o644))

	s, err := Open(path, ReadOnly)
	require.NoError(t, err)
	require.NoError(t, s.Group("counters").WriteEntry("n", 99))
	require.NoError(t, s.Sync())

	reloaded, err := Open(path, ReadOnly)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Counter("n"), "read-only stores must never write back")
}

func TestRead(t *testing.T) {
	s, err := Read([]byte(`{"calibration":{"conv0":{"scale":0.25,"zero_point":128}}}`))
	require.NoError(t, err)
	assert.Equal(t, ReadOnly, s.Mode())

	conv := s.Group("calibration").Group("conv0")
	assert.Equal(t, 0.25, conv.ReadFloat("scale", 0))
	assert.Equal(t, 128, conv.ReadInt("zero_point", 0))

	_, err = Read([]byte(`{not json`))
	require.Error(t, err)
}
