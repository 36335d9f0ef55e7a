package allocator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultLambdas = Lambdas{SRR: 0.5, Health: 0.3, Log: 0.2}

var equalWeights = Weights{W1: 0.2, W2: 0.2, W3: 0.2, W4: 0.2, W5: 0.2}

func newTestProblem(t *testing.T, registry []ZoneInfo, flood map[string]float64, pool Personnel) *Problem {
	t.Helper()

	p, err := NewProblem(Input{
		Registry:     registry,
		Availability: map[string]Personnel{"hq": pool},
		FloodLevels:  flood,
		Weights:      equalWeights,
		Lambdas:      defaultLambdas,
	})
	require.NoError(t, err)
	return p
}

func TestDemand(t *testing.T) {
	p := newTestProblem(t,
		[]ZoneInfo{{Name: "A", Population: 1000, Risk: 2}},
		map[string]float64{"A": 2.0},
		Personnel{SRR: 10, Health: 10, Log: 10},
	)

	demand := p.Demand()
	require.Contains(t, demand, "A")

	// round(0.5 × 2 × 2.0 × log1p(1000)) = round(13.82)
	assert.Equal(t, 14, demand["A"].SRR)
	assert.Equal(t, 8, demand["A"].Health)
	assert.Equal(t, 6, demand["A"].Log)
}

func TestDemandZeroPopulation(t *testing.T) {
	p := newTestProblem(t,
		[]ZoneInfo{{Name: "empty", Population: 0, Risk: 3}},
		map[string]float64{"empty": 4.0},
		Personnel{SRR: 5, Health: 5, Log: 5},
	)

	assert.Equal(t, Personnel{}, p.Demand()["empty"])
}

func TestTargetZones(t *testing.T) {
	t.Run("below threshold is excluded", func(t *testing.T) {
		p := newTestProblem(t,
			[]ZoneInfo{{Name: "dry", Population: 50000, Risk: 3}},
			map[string]float64{"dry": 0.4},
			Personnel{SRR: 100, Health: 100, Log: 100},
		)

		assert.Equal(t, 0, p.NumTargetZones())
		assert.Equal(t, 0, p.Dim())
	})

	t.Run("keeps registry order", func(t *testing.T) {
		p := newTestProblem(t,
			[]ZoneInfo{
				{Name: "c", Population: 10, Risk: 1},
				{Name: "a", Population: 10, Risk: 1},
				{Name: "b", Population: 10, Risk: 1},
				{Name: "d", Population: 10, Risk: 1},
			},
			map[string]float64{"c": 1, "a": 0.5, "b": 0.49, "d": 3},
			Personnel{SRR: 1, Health: 1, Log: 1},
		)

		zones := p.TargetZones()
		require.Len(t, zones, 3)
		assert.Equal(t, "c", zones[0].Name)
		assert.Equal(t, "a", zones[1].Name)
		assert.Equal(t, "d", zones[2].Name)
		assert.Equal(t, 9, p.Dim())
	})

	t.Run("pool sums every source", func(t *testing.T) {
		p, err := NewProblem(Input{
			Registry: []ZoneInfo{{Name: "a", Population: 10, Risk: 1}},
			Availability: map[string]Personnel{
				"a":   {SRR: 1, Health: 2, Log: 3},
				"far": {SRR: 10, Health: 20, Log: 30},
			},
			FloodLevels: map[string]float64{"a": 1},
		})
		require.NoError(t, err)

		assert.Equal(t, Personnel{SRR: 11, Health: 22, Log: 33}, p.Pool())
	})
}

func TestNewProblemRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		input Input
	}{
		{
			name:  "negative population",
			input: Input{Registry: []ZoneInfo{{Name: "a", Population: -1, Risk: 1}}},
		},
		{
			name:  "zero risk",
			input: Input{Registry: []ZoneInfo{{Name: "a", Population: 1, Risk: 0}}},
		},
		{
			name: "negative flood level",
			input: Input{
				Registry:    []ZoneInfo{{Name: "a", Population: 1, Risk: 1}},
				FloodLevels: map[string]float64{"a": -2},
			},
		},
		{
			name: "infinite flood level",
			input: Input{
				Registry:    []ZoneInfo{{Name: "a", Population: 1, Risk: 1}},
				FloodLevels: map[string]float64{"a": math.Inf(1)},
			},
		},
		{
			name: "NaN flood level",
			input: Input{
				Registry:    []ZoneInfo{{Name: "a", Population: 1, Risk: 1}},
				FloodLevels: map[string]float64{"a": math.NaN()},
			},
		},
		{
			name: "demand out of range",
			input: Input{
				Registry:    []ZoneInfo{{Name: "a", Population: 1000000, Risk: 3}},
				FloodLevels: map[string]float64{"a": 1e12},
				Lambdas:     defaultLambdas,
			},
		},
		{
			name: "infinite weight",
			input: Input{
				Registry: []ZoneInfo{{Name: "a", Population: 1, Risk: 1}},
				Weights:  Weights{W1: 0.2, W4: math.Inf(1)},
			},
		},
		{
			name: "NaN lambda",
			input: Input{
				Registry: []ZoneInfo{{Name: "a", Population: 1, Risk: 1}},
				Lambdas:  Lambdas{SRR: math.NaN()},
			},
		},
		{
			name: "duplicate zone",
			input: Input{Registry: []ZoneInfo{
				{Name: "a", Population: 1, Risk: 1},
				{Name: "a", Population: 2, Risk: 1},
			}},
		},
		{
			name: "negative availability",
			input: Input{
				Registry:     []ZoneInfo{{Name: "a", Population: 1, Risk: 1}},
				Availability: map[string]Personnel{"a": {Health: -3}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProblem(tt.input)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func twoZoneProblem(t *testing.T, pool Personnel) *Problem {
	t.Helper()

	return newTestProblem(t,
		[]ZoneInfo{
			{Name: "north", Population: 5000, Risk: 2},
			{Name: "south", Population: 5000, Risk: 2},
		},
		map[string]float64{"north": 1.5, "south": 1.5},
		pool,
	)
}

func TestDecode(t *testing.T) {
	p := twoZoneProblem(t, Personnel{SRR: 10, Health: 10, Log: 10})

	vec := []float64{1.9, 2.2, 0.7, 3, 0, 5.999}
	want := Allocation{
		"north": {SRR: 1, Health: 2, Log: 0},
		"south": {SRR: 3, Health: 0, Log: 5},
	}

	assert.Equal(t, want, p.Decode(vec))
	assert.Equal(t, p.Decode(vec), p.Decode(vec))
	assert.Equal(t, []float64{1.9, 2.2, 0.7, 3, 0, 5.999}, vec, "decode must not modify the vector")
}

func TestDecodeWrongLengthPanics(t *testing.T) {
	p := twoZoneProblem(t, Personnel{SRR: 10, Health: 10, Log: 10})

	assert.Panics(t, func() { p.Decode([]float64{1, 2, 3}) })
}

func TestEnforce(t *testing.T) {
	t.Run("scales category over its pool", func(t *testing.T) {
		p := twoZoneProblem(t, Personnel{SRR: 10, Health: 10, Log: 10})

		vec := []float64{8, 1, 1, 8, 1, 1}
		got := p.Enforce(vec)

		assert.Equal(t, []float64{5, 1, 1, 5, 1, 1}, got)
		assert.Equal(t, &vec[0], &got[0], "enforce works in place")
	})

	t.Run("leaves category within pool untouched", func(t *testing.T) {
		p := twoZoneProblem(t, Personnel{SRR: 10, Health: 10, Log: 10})

		vec := []float64{2.5, 0, 0, 3.5, 0, 0}
		p.Enforce(vec)

		assert.Equal(t, []float64{2.5, 0, 0, 3.5, 0, 0}, vec)
	})

	t.Run("zero pool empties the category", func(t *testing.T) {
		p := twoZoneProblem(t, Personnel{SRR: 0, Health: 10, Log: 10})

		vec := []float64{4, 1, 1, 7, 1, 1}
		p.Enforce(vec)

		assert.Equal(t, []float64{0, 1, 1, 0, 1, 1}, vec)
	})

	t.Run("rounding never overshoots the pool", func(t *testing.T) {
		p := newTestProblem(t,
			[]ZoneInfo{
				{Name: "a", Population: 10, Risk: 1},
				{Name: "b", Population: 10, Risk: 1},
				{Name: "c", Population: 10, Risk: 1},
			},
			map[string]float64{"a": 1, "b": 1, "c": 1},
			Personnel{SRR: 2, Health: 2, Log: 2},
		)

		// 2/3 缩放后每个分量都会被四舍五入为 1
		vec := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1}
		p.Enforce(vec)

		for _, c := range Categories {
			sum := 0.0
			for i := 0; i < 3; i++ {
				sum += vec[i*NumCategories+int(c)]
			}
			assert.Equal(t, 2.0, sum, c.String())
		}
	})
}

func TestEnforceRespectsPoolForRandomVectors(t *testing.T) {
	registry := []ZoneInfo{
		{Name: "a", Population: 3000, Risk: 1},
		{Name: "b", Population: 800, Risk: 2},
		{Name: "c", Population: 12000, Risk: 3},
		{Name: "d", Population: 450, Risk: 2},
		{Name: "e", Population: 9000, Risk: 1},
	}
	flood := map[string]float64{"a": 1, "b": 2, "c": 0.5, "d": 3, "e": 0.9}
	pool := Personnel{SRR: 17, Health: 4, Log: 9}
	p := newTestProblem(t, registry, flood, pool)

	rng := rand.New(rand.NewSource(42))
	ws := p.newWorkspace()
	for n := 0; n < 500; n++ {
		vec := make([]float64, p.Dim())
		for k := range vec {
			vec[k] = math.Round(rng.Float64() * 40)
		}

		// 复用同一个 workspace 与每次新建的结果一致
		fresh := p.Enforce(cloneVector(vec))
		p.enforce(vec, ws)
		require.Equal(t, fresh, vec)

		allocation := p.Decode(vec)
		var sum Personnel
		for _, a := range allocation {
			for _, c := range Categories {
				assert.GreaterOrEqual(t, a.Get(c), 0)
				sum.Set(c, sum.Get(c)+a.Get(c))
			}
		}
		for _, c := range Categories {
			require.LessOrEqual(t, sum.Get(c), pool.Get(c), "category %s, vector %v", c, vec)
		}
	}
}
