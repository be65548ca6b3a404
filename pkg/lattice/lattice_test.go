package lattice

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func chain(t *testing.T) *Structure {
	t.Helper()
	lat, err := Orthorhombic(3, 20, 20)
	require.NoError(t, err)
	s, err := NewStructure(lat,
		[]string{"Zn", "Zn", "Zn"},
		[]Vec3{{0, 0, 0}, {1.0 / 3, 0, 0}, {2.0 / 3, 0, 0}},
	)
	require.NoError(t, err)
	return s
}

func TestFromParameters_Orthogonal(t *testing.T) {
	lat, err := FromParameters(3, 4, 5, 90, 90, 90)
	require.NoError(t, err)

	abc := lat.Abc()
	assert.InDelta(t, 3, abc[0], eps)
	assert.InDelta(t, 4, abc[1], eps)
	assert.InDelta(t, 5, abc[2], eps)
	assert.InDelta(t, 60, lat.Volume(), eps)

	angles := lat.Angles()
	for _, a := range angles {
		assert.InDelta(t, 90, a, 1e-6)
	}
}

func TestFromParameters_Hexagonal(t *testing.T) {
	lat, err := FromParameters(2, 2, 5, 90, 90, 120)
	require.NoError(t, err)

	angles := lat.Angles()
	assert.InDelta(t, 120, angles[2], 1e-6)
	// plane spacing along a for a hexagonal cell is a*sin(60)
	assert.InDelta(t, 2*math.Sin(math.Pi/3), lat.PlaneSpacing(0), 1e-9)
}

func TestNewLattice_Singular(t *testing.T) {
	_, err := NewLattice([3]Vec3{{1, 0, 0}, {2, 0, 0}, {0, 0, 1}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSingularLattice))

	_, err = FromParameters(1, 1, 1, 90, 90, 0)
	assert.True(t, errors.Is(err, ErrSingularLattice))
}

func TestFracCartRoundTrip(t *testing.T) {
	lat, err := FromParameters(3.1, 4.2, 5.3, 80, 95, 110)
	require.NoError(t, err)

	frac := Vec3{0.12, -0.4, 0.93}
	back := lat.CartToFrac(lat.FracToCart(frac))
	for k := range frac {
		assert.InDelta(t, frac[k], back[k], eps)
	}
}

func TestTranslateSites(t *testing.T) {
	s := chain(t)
	s.TranslateSites(Vec3{-0.5, 0, 0}, true)

	// site 0 moves to -0.5 and wraps to 2.5
	assert.InDelta(t, 2.5/3, s.Sites[0].Frac[0], eps)
	assert.InDelta(t, 2.5, s.Sites[0].Cart[0], eps)
	assert.InDelta(t, 0.5, s.Sites[1].Cart[0], eps)

	unwrapped := chain(t)
	unwrapped.TranslateSites(Vec3{-0.5, 0, 0}, false)
	assert.InDelta(t, -0.5, unwrapped.Sites[0].Cart[0], eps)
}

func TestWrapUnit_SnapsNearOne(t *testing.T) {
	w := WrapUnit(Vec3{1 - 1e-12, -0.25, 2.5})
	assert.Equal(t, 0.0, w[0])
	assert.InDelta(t, 0.75, w[1], eps)
	assert.InDelta(t, 0.5, w[2], eps)
}

func TestInterleavedTiler_Ordering(t *testing.T) {
	s := chain(t)
	tiled, err := InterleavedTiler{}.Tile(s, 0, 3)
	require.NoError(t, err)
	require.Equal(t, 9, tiled.Len())

	assert.InDelta(t, 9, tiled.Lattice.Abc()[0], eps)
	assert.InDelta(t, 20, tiled.Lattice.Abc()[1], eps)

	// images of site i sit at 3i, 3i+1, 3i+2 with offsets 0, a, 2a
	want := []float64{0, 3, 6, 1, 4, 7, 2, 5, 8}
	for i, x := range want {
		assert.InDelta(t, x, tiled.Sites[i].Cart[0], eps, "site %d", i)
		assert.InDelta(t, x/9, tiled.Sites[i].Frac[0], eps, "site %d", i)
	}
}

func TestInterleavedTiler_BadAxis(t *testing.T) {
	_, err := InterleavedTiler{}.Tile(chain(t), 3, 3)
	assert.True(t, errors.Is(err, ErrInvalidAxis))
}

func TestNeighbors_Periodic(t *testing.T) {
	s := chain(t)

	// site 0 sees site 1 directly and site 2 through the periodic boundary
	got := s.Neighbors(0, 1.5)
	require.Len(t, got, 2)
	assert.ElementsMatch(t, []int{1, 2}, NeighborIndices(got))
	for _, n := range got {
		assert.InDelta(t, 1.0, n.Distance, eps)
	}
	// ties are ordered by index
	assert.Equal(t, []int{1, 2}, NeighborIndices(got))
	assert.Equal(t, [3]int{-1, 0, 0}, got[1].Image)
}

func TestNeighbors_ExcludesSelfAndOutOfRange(t *testing.T) {
	s := chain(t)
	assert.Empty(t, s.Neighbors(0, 0.9))
	// cutoff beyond the cell length still reports each index once
	got := s.Neighbors(0, 7)
	assert.Equal(t, []int{1, 2}, NeighborIndices(got))
}

func TestNeighborsOfPoint(t *testing.T) {
	s := chain(t)
	got := s.NeighborsOfPoint(Vec3{0.4, 0, 0}, 0.7)
	assert.Equal(t, []int{0, 1}, NeighborIndices(got))
}

func TestDecode(t *testing.T) {
	doc := []byte(`
lattice: {a: 3, b: 20, c: 20}
sites:
  - {species: Zn, frac: [0, 0, 0]}
  - {species: Zn, cart: [1.5, 0, 0]}
`)
	s, err := Decode(doc)
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())
	assert.InDelta(t, 0.5, s.Site(1).Frac[0], eps)
	assert.Equal(t, "Zn", s.Site(0).Species)
}

func TestDecode_Invalid(t *testing.T) {
	tests := map[string]string{
		"no coordinates": "lattice: {a: 1, b: 1, c: 1}\nsites:\n  - {species: X}\n",
		"both forms":     "lattice: {a: 1, b: 1, c: 1}\nsites:\n  - {species: X, frac: [0,0,0], cart: [0,0,0]}\n",
		"bad matrix":     "lattice: {matrix: [[1,0,0]]}\nsites: []\n",
		"not yaml":       "lattice: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(doc))
			assert.True(t, errors.Is(err, ErrInvalidDocument), "got %v", err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cell.yaml")
	doc := "lattice:\n  matrix: [[3,0,0],[0,20,0],[0,0,20]]\nsites:\n  - {species: Zn, frac: [0.5, 0.5, 0.5]}\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, s.Site(0).Cart[0], eps)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
