package allocator

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// distributionEpsilon 防止分布惩罚项除零
const distributionEpsilon = 1e-6

// Objectives 适应度的五个子目标
type Objectives struct {
	Coverage           float64 `json:"coverage"`
	Prioritization     float64 `json:"prioritization"`
	Distribution       float64 `json:"distribution"`
	Population         float64 `json:"population"`
	DemandSatisfaction float64 `json:"demandSatisfaction"`
}

/**
 * 计算适应度
 * fitness = w1*coverage + w2*prioritization - w3*distribution + w4*population + w5*demandSatisfaction
 * 其中:
 * 		1. coverage 为分配到人员的区域占比
 * 		2. prioritization 为按 log1p(risk) 加权的分配量占总人数的比例
 * 		3. distribution 为各区域分配总量的变异系数，作为惩罚项
 * 		4. population 为按 log1p(population) 加权的分配量占总人数的比例
 * 		5. demandSatisfaction 为各 (区域, 类别) 需求满足率的平均值
 */
func (o Objectives) Score(w Weights) float64 {
	return w.W1*o.Coverage +
		w.W2*o.Prioritization -
		w.W3*o.Distribution +
		w.W4*o.Population +
		w.W5*o.DemandSatisfaction
}

// Objectives 计算分配方案的各子目标，分配方案中缺失的区域视为没有分配人员
func (p *Problem) Objectives(allocation Allocation) Objectives {
	ws := p.newWorkspace()
	for i, zone := range p.zones {
		ws.personnel[i] = allocation[zone.Name]
	}
	return p.objectives(ws.personnel, ws.totals)
}

func (p *Problem) Fitness(allocation Allocation) float64 {
	return p.Objectives(allocation).Score(p.weights)
}

// evaluate 直接对候选向量求适应度，省去构建 map 的开销
func (p *Problem) evaluate(vec []float64, ws *workspace) float64 {
	p.decodeOrdered(vec, ws.personnel)
	return p.objectives(ws.personnel, ws.totals).Score(p.weights)
}

// objectives totals 是长度为区域数的缓冲区，用于存放各区域的分配总量
func (p *Problem) objectives(allocation []Personnel, totals []float64) Objectives {
	n := len(p.zones)
	if n == 0 {
		return Objectives{}
	}

	var o Objectives

	covered := 0
	satisfaction := 0.0

	for i := range p.zones {
		totals[i] = float64(allocation[i].Total())
		if totals[i] > 0 {
			covered++
		}

		for _, c := range Categories {
			demand := p.demand[i].Get(c)
			if demand <= 0 {
				// 没有需求视为完全满足
				satisfaction += 1
				continue
			}
			satisfaction += math.Min(1, float64(allocation[i].Get(c))/float64(demand))
		}
	}

	o.Coverage = float64(covered) / float64(n)

	if p.poolTotal != 0 {
		o.Prioritization = floats.Dot(totals, p.riskWeights) / float64(p.poolTotal)
		o.Population = floats.Dot(totals, p.populationWeights) / float64(p.poolTotal)
	}

	mean, std := stat.PopMeanStdDev(totals, nil)
	if mean > 0 {
		o.Distribution = std / (mean + distributionEpsilon)
	}

	o.DemandSatisfaction = satisfaction / float64(n*NumCategories)

	return o
}
