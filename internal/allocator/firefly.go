package allocator

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// FireflyParameters 萤火虫算法参数
type FireflyParameters struct {
	Fireflies   int     `json:"fireflies" yaml:"fireflies"`     // 萤火虫数量
	Iterations  int     `json:"iterations" yaml:"iterations"`   // 迭代次数
	Alpha       float64 `json:"alpha" yaml:"alpha"`             // 随机步长系数
	Beta0       float64 `json:"beta0" yaml:"beta0"`             // 距离为 0 时的吸引度
	Gamma       float64 `json:"gamma" yaml:"gamma"`             // 光吸收系数
	LogInterval int     `json:"logInterval" yaml:"logInterval"` // 迭代日志间隔，0 表示默认值
}

func DefaultFireflyParameters() FireflyParameters {
	return FireflyParameters{
		Fireflies:   100,
		Iterations:  300,
		Alpha:       0.5,
		Beta0:       1.0,
		Gamma:       0.01,
		LogInterval: DefaultLogInterval,
	}
}

type Firefly struct {
	parameters FireflyParameters
}

func NewFirefly(parameters FireflyParameters) (*Firefly, error) {
	if parameters.Fireflies <= 0 {
		return nil, fmt.Errorf("%w: 萤火虫数量必须为正数", ErrInvalidParameters)
	}
	if parameters.Iterations < 0 {
		return nil, fmt.Errorf("%w: 迭代次数不能为负数", ErrInvalidParameters)
	}
	if parameters.Gamma < 0 {
		return nil, fmt.Errorf("%w: 光吸收系数不能为负数", ErrInvalidParameters)
	}
	if !finite(parameters.Alpha, parameters.Beta0, parameters.Gamma) {
		return nil, fmt.Errorf("%w: 步长系数和吸引度必须是有限值", ErrInvalidParameters)
	}

	return &Firefly{parameters: parameters}, nil
}

func (f *Firefly) Name() string {
	return "fa"
}

func (f *Firefly) Run(p *Problem, seed int64) *Outcome {
	if p.NumTargetZones() == 0 {
		return emptyOutcome()
	}

	rng := rand.New(rand.NewSource(seed))
	ws := p.newWorkspace()
	dim := p.Dim()
	interval := logInterval(f.parameters.LogInterval)

	// 初始亮度即为适应度
	pop := newPopulation(p, f.parameters.Fireflies, rng, ws)
	fireflies := pop.positions
	light := pop.fitness

	bestIndex := pop.best()
	best := &incumbent{
		position: cloneVector(fireflies[bestIndex]),
		fitness:  light[bestIndex],
	}

	outcome := &Outcome{
		Initial: Snapshot{
			Allocation:   p.Decode(best.position),
			FitnessScore: best.fitness,
		},
		IterationLog: []IterationRecord{},
	}

	step := make([]float64, dim)

	for t := 0; t < f.parameters.Iterations; t++ {
		f.pass(p, fireflies, light, best, rng, ws, step)

		if (t+1)%interval == 0 || t+1 == f.parameters.Iterations {
			outcome.IterationLog = append(outcome.IterationLog, IterationRecord{
				Iteration:    t + 1,
				FitnessScore: best.fitness,
				Allocation:   p.Decode(best.position),
			})
		}
	}

	outcome.Final = Snapshot{
		Allocation:   p.Decode(best.position),
		FitnessScore: best.fitness,
	}

	return outcome
}

/**
 * 一轮两两比较
 * 1. 对每一对 (i, j)，若 j 比 i 亮，则 i 向 j 移动：x_i += β0·exp(-γ·r²)·(x_j - x_i) + α·(U(0,1) - 0.5)
 * 2. 移动后立即取整、修正约束并更新 light[i]
 * 3. 亮度数组在同一轮中边读边写，刚被照亮的萤火虫在本轮后续比较中就会吸引其他萤火虫
 */
func (f *Firefly) pass(p *Problem, fireflies [][]float64, light []float64, best *incumbent, rng *rand.Rand, ws *workspace, step []float64) {
	for i := range fireflies {
		for j := range fireflies {
			if light[j] <= light[i] {
				continue
			}

			r2 := squaredDistance(fireflies[i], fireflies[j])
			beta := f.parameters.Beta0 * math.Exp(-f.parameters.Gamma*r2)

			for k := range step {
				step[k] = f.parameters.Alpha * (rng.Float64() - 0.5)
			}

			xi, xj := fireflies[i], fireflies[j]
			for k := range xi {
				xi[k] += beta*(xj[k]-xi[k]) + step[k]
			}
			clampAndRound(xi)
			p.enforce(xi, ws)

			light[i] = p.evaluate(xi, ws)
			best.offer(xi, light[i])
		}
	}
}

func squaredDistance(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}
