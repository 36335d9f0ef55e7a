package allocator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoverage(t *testing.T) {
	p := twoZoneProblem(t, Personnel{SRR: 10, Health: 10, Log: 10})

	tests := []struct {
		name       string
		allocation Allocation
		want       float64
	}{
		{
			name: "every zone staffed",
			allocation: Allocation{
				"north": {Health: 1},
				"south": {Log: 3},
			},
			want: 1.0,
		},
		{
			name: "one zone staffed",
			allocation: Allocation{
				"north": {SRR: 4},
				"south": {},
			},
			want: 0.5,
		},
		{
			name:       "nothing allocated",
			allocation: Allocation{"north": {}, "south": {}},
			want:       0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Objectives(tt.allocation).Coverage)
		})
	}
}

func TestDemandSatisfactionWithoutDemand(t *testing.T) {
	// 人口为 0 时需求为 0，无论分配多少都视为完全满足
	p := newTestProblem(t,
		[]ZoneInfo{{Name: "ghost", Population: 0, Risk: 2}},
		map[string]float64{"ghost": 3},
		Personnel{SRR: 5, Health: 5, Log: 5},
	)

	assert.Equal(t, 1.0, p.Objectives(Allocation{"ghost": {}}).DemandSatisfaction)
	assert.Equal(t, 1.0, p.Objectives(Allocation{"ghost": {SRR: 5, Health: 1}}).DemandSatisfaction)
}

func TestDemandSatisfactionIsCapped(t *testing.T) {
	p := newTestProblem(t,
		[]ZoneInfo{{Name: "A", Population: 1000, Risk: 2}},
		map[string]float64{"A": 2.0},
		Personnel{SRR: 100, Health: 100, Log: 100},
	)

	// 需求为 (14, 8, 6)
	got := p.Objectives(Allocation{"A": {SRR: 7, Health: 80, Log: 0}}).DemandSatisfaction
	assert.InDelta(t, (0.5+1+0)/3, got, 1e-12)
}

func TestDistributionPrefersEvenSplit(t *testing.T) {
	p := twoZoneProblem(t, Personnel{SRR: 10, Health: 0, Log: 0})

	even := p.Objectives(Allocation{"north": {SRR: 5}, "south": {SRR: 5}})
	skewed := p.Objectives(Allocation{"north": {SRR: 10}, "south": {}})

	assert.Equal(t, 0.0, even.Distribution)
	assert.InDelta(t, 1.0, skewed.Distribution, 1e-6)
	assert.Less(t, even.Distribution, skewed.Distribution)
}

func TestObjectivesWithoutTargetZones(t *testing.T) {
	p := newTestProblem(t,
		[]ZoneInfo{{Name: "dry", Population: 100, Risk: 1}},
		map[string]float64{"dry": 0},
		Personnel{SRR: 3, Health: 3, Log: 3},
	)

	assert.Equal(t, Objectives{}, p.Objectives(Allocation{}))
	assert.Equal(t, 0.0, p.Fitness(Allocation{}))
}

func TestObjectivesWithEmptyPool(t *testing.T) {
	p := twoZoneProblem(t, Personnel{})

	o := p.Objectives(Allocation{"north": {SRR: 1}})
	assert.Equal(t, 0.0, o.Prioritization)
	assert.Equal(t, 0.0, o.Population)
}

func TestFitness(t *testing.T) {
	p := twoZoneProblem(t, Personnel{SRR: 6, Health: 2, Log: 2})
	allocation := Allocation{
		"north": {SRR: 3, Health: 1, Log: 1},
		"south": {SRR: 3, Health: 1, Log: 1},
	}

	o := p.Objectives(allocation)
	assert.Equal(t, 1.0, o.Coverage)
	assert.Equal(t, 0.0, o.Distribution)
	assert.InDelta(t, 10*math.Log1p(2)/10, o.Prioritization, 1e-12)
	assert.InDelta(t, 10*math.Log1p(5000)/10, o.Population, 1e-12)

	want := 0.2*o.Coverage + 0.2*o.Prioritization - 0.2*o.Distribution + 0.2*o.Population + 0.2*o.DemandSatisfaction
	assert.InDelta(t, want, p.Fitness(allocation), 1e-12)

	vec := []float64{3, 1, 1, 3, 1, 1}
	assert.InDelta(t, p.Fitness(allocation), p.evaluate(vec, p.newWorkspace()), 1e-12)
}

func TestScoreSubtractsDistribution(t *testing.T) {
	o := Objectives{Coverage: 1, Prioritization: 2, Distribution: 3, Population: 4, DemandSatisfaction: 5}
	w := Weights{W1: 1, W2: 1, W3: 1, W4: 1, W5: 1}

	assert.Equal(t, 1.0+2-3+4+5, o.Score(w))
}
