package allocator

import (
	"fmt"
	"math/rand"
)

// SwarmParameters 粒子群算法参数
type SwarmParameters struct {
	Particles   int     `json:"particles" yaml:"particles"`     // 粒子数量
	Iterations  int     `json:"iterations" yaml:"iterations"`   // 迭代次数
	Inertia     float64 `json:"inertia" yaml:"inertia"`         // 惯性权重 ω
	Cognitive   float64 `json:"cognitive" yaml:"cognitive"`     // 个体学习因子 c1
	Social      float64 `json:"social" yaml:"social"`           // 社会学习因子 c2
	LogInterval int     `json:"logInterval" yaml:"logInterval"` // 迭代日志间隔，0 表示默认值
}

func DefaultSwarmParameters() SwarmParameters {
	return SwarmParameters{
		Particles:   100,
		Iterations:  300,
		Inertia:     0.5,
		Cognitive:   1.5,
		Social:      1.5,
		LogInterval: DefaultLogInterval,
	}
}

type Swarm struct {
	parameters SwarmParameters
}

func NewSwarm(parameters SwarmParameters) (*Swarm, error) {
	if parameters.Particles <= 0 {
		return nil, fmt.Errorf("%w: 粒子数量必须为正数", ErrInvalidParameters)
	}
	if parameters.Iterations < 0 {
		return nil, fmt.Errorf("%w: 迭代次数不能为负数", ErrInvalidParameters)
	}
	if !finite(parameters.Inertia, parameters.Cognitive, parameters.Social) {
		return nil, fmt.Errorf("%w: 惯性权重和学习因子必须是有限值", ErrInvalidParameters)
	}

	return &Swarm{parameters: parameters}, nil
}

func (s *Swarm) Name() string {
	return "pso"
}

func (s *Swarm) Run(p *Problem, seed int64) *Outcome {
	if p.NumTargetZones() == 0 {
		return emptyOutcome()
	}

	rng := rand.New(rand.NewSource(seed))
	ws := p.newWorkspace()
	dim := p.Dim()
	interval := logInterval(s.parameters.LogInterval)

	// 生成初始种群
	pop := newPopulation(p, s.parameters.Particles, rng, ws)

	velocities := make([][]float64, s.parameters.Particles)
	pbestPos := make([][]float64, s.parameters.Particles)
	pbestFitness := make([]float64, s.parameters.Particles)
	for i := range pop.positions {
		velocities[i] = make([]float64, dim)
		pbestPos[i] = cloneVector(pop.positions[i])
		pbestFitness[i] = pop.fitness[i]
	}

	gbestIndex := pop.best()
	gbestPos := cloneVector(pbestPos[gbestIndex])
	gbestFitness := pbestFitness[gbestIndex]

	outcome := &Outcome{
		Initial: Snapshot{
			Allocation:   p.Decode(gbestPos),
			FitnessScore: gbestFitness,
		},
		IterationLog: []IterationRecord{},
	}

	for it := 0; it < s.parameters.Iterations; it++ {
		for j, pos := range pop.positions {
			r1, r2 := rng.Float64(), rng.Float64()
			s.move(pos, velocities[j], pbestPos[j], gbestPos, r1, r2)
			clampAndRound(pos)
			p.enforce(pos, ws)

			fitness := p.evaluate(pos, ws)
			pop.fitness[j] = fitness

			if fitness > pbestFitness[j] {
				pbestFitness[j] = fitness
				copy(pbestPos[j], pos)

				if fitness > gbestFitness {
					gbestFitness = fitness
					copy(gbestPos, pos)
				}
			}
		}

		if (it+1)%interval == 0 {
			outcome.IterationLog = append(outcome.IterationLog, IterationRecord{
				Iteration:    it + 1,
				FitnessScore: gbestFitness,
				Allocation:   p.Decode(gbestPos),
			})
		}
	}

	outcome.Final = Snapshot{
		Allocation:   p.Decode(gbestPos),
		FitnessScore: gbestFitness,
	}

	return outcome
}

// move v = ω·v + c1·r1·(pbest - x) + c2·r2·(gbest - x)，x = x + v
func (s *Swarm) move(pos, vel, pbest, gbest []float64, r1, r2 float64) {
	for k := range pos {
		cognitive := s.parameters.Cognitive * r1 * (pbest[k] - pos[k])
		social := s.parameters.Social * r2 * (gbest[k] - pos[k])
		vel[k] = s.parameters.Inertia*vel[k] + cognitive + social
		pos[k] += vel[k]
	}
}
