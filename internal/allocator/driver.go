package allocator

import (
	"errors"
	"math"
	"math/rand"
)

var ErrInvalidParameters = errors.New("非法的算法参数")

// DefaultLogInterval 每隔多少次迭代记录一次最优解
const DefaultLogInterval = 50

// Driver 基于种群的搜索算法
//
// 同一个 Problem 可以交给不同的 Driver，Driver 之间只有更新规则不同
type Driver interface {
	Name() string
	Run(p *Problem, seed int64) *Outcome
}

// population 候选向量及其适应度
type population struct {
	positions [][]float64
	fitness   []float64
}

/**
 * 随机初始化种群
 * 1. 每个分量取 U(0,1) × (该类人员总数 + 1) 并取整
 * 2. 立即执行约束修正（两种算法在初始化时统一执行）
 * 3. 计算每个候选的适应度
 */
func newPopulation(p *Problem, size int, rng *rand.Rand, ws *workspace) *population {
	pop := &population{
		positions: make([][]float64, size),
		fitness:   make([]float64, size),
	}

	dim := p.Dim()
	for i := 0; i < size; i++ {
		vec := make([]float64, dim)
		for z := 0; z < len(p.zones); z++ {
			for _, c := range Categories {
				vec[z*NumCategories+int(c)] = math.RoundToEven(rng.Float64() * float64(p.pool.Get(c)+1))
			}
		}
		p.enforce(vec, ws)

		pop.positions[i] = vec
		pop.fitness[i] = p.evaluate(vec, ws)
	}

	return pop
}

// best 返回适应度最高的候选下标，相同时取靠前的
func (pop *population) best() int {
	bestIndex := 0
	for i := 1; i < len(pop.fitness); i++ {
		if pop.fitness[i] > pop.fitness[bestIndex] {
			bestIndex = i
		}
	}
	return bestIndex
}

func cloneVector(vec []float64) []float64 {
	c := make([]float64, len(vec))
	copy(c, vec)
	return c
}

func logInterval(interval int) int {
	if interval <= 0 {
		return DefaultLogInterval
	}
	return interval
}

// incumbent 搜索过程中见过的最优解
type incumbent struct {
	position []float64
	fitness  float64
}

func (b *incumbent) offer(pos []float64, fitness float64) {
	if fitness > b.fitness {
		b.fitness = fitness
		copy(b.position, pos)
	}
}
