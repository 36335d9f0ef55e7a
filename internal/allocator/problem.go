package allocator

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var ErrInvalidInput = errors.New("非法的输入")

// maxDemand 单个区域单类人员需求的上限，超过说明输入的水位或系数不合理
const maxDemand = 1_000_000

// Input 构建优化问题所需的全部输入
type Input struct {
	Registry     []ZoneInfo           // 区域登记表，顺序决定候选向量的布局
	Availability map[string]Personnel // 各来源（通常是各区域）上报的可用人员
	FloodLevels  map[string]float64   // 区域名 -> 水位
	Weights      Weights
	Lambdas      Lambdas
}

// Problem 两种搜索算法共用的分配问题模型
//
// 一次运行期间 Problem 不会被修改，因此可以被多个搜索同时读取
type Problem struct {
	zones             []Zone      // 参与优化的区域，顺序固定
	demand            []Personnel // 与 zones 一一对应
	riskWeights       []float64   // log1p(risk)
	populationWeights []float64   // log1p(population)
	pool              Personnel   // 每类人员的总可用数
	poolTotal         int         // 所有类别的总可用数
	weights           Weights
	lambdas           Lambdas
}

// workspace 一次搜索内反复使用的缓冲区，只能被一个 goroutine 使用
type workspace struct {
	personnel []Personnel
	totals    []float64
	column    []float64
	scaled    []float64
}

func (p *Problem) newWorkspace() *workspace {
	n := len(p.zones)
	return &workspace{
		personnel: make([]Personnel, n),
		totals:    make([]float64, n),
		column:    make([]float64, n),
		scaled:    make([]float64, n),
	}
}

func NewProblem(in Input) (*Problem, error) {
	p := &Problem{
		zones:   make([]Zone, 0),
		demand:  make([]Personnel, 0),
		weights: in.Weights,
		lambdas: in.Lambdas,
	}

	if !finite(in.Weights.W1, in.Weights.W2, in.Weights.W3, in.Weights.W4, in.Weights.W5) {
		return nil, fmt.Errorf("%w: 权重必须是有限值", ErrInvalidInput)
	}
	if !finite(in.Lambdas.SRR, in.Lambdas.Health, in.Lambdas.Log) {
		return nil, fmt.Errorf("%w: 需求系数必须是有限值", ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(in.Registry))
	for _, info := range in.Registry {
		if _, exists := seen[info.Name]; exists {
			return nil, fmt.Errorf("%w: 区域 %q 重复", ErrInvalidInput, info.Name)
		}
		seen[info.Name] = struct{}{}

		if info.Population < 0 {
			return nil, fmt.Errorf("%w: 区域 %q 的人口为负数", ErrInvalidInput, info.Name)
		}
		if info.Risk < 1 {
			return nil, fmt.Errorf("%w: 区域 %q 的风险等级必须不小于 1", ErrInvalidInput, info.Name)
		}

		flood := in.FloodLevels[info.Name]
		if flood < 0 || !finite(flood) {
			return nil, fmt.Errorf("%w: 区域 %q 的水位非法", ErrInvalidInput, info.Name)
		}

		zone := Zone{
			Name:       info.Name,
			Population: info.Population,
			Risk:       info.Risk,
			FloodLevel: flood,
		}
		if zone.Targeted() {
			p.zones = append(p.zones, zone)
		}
	}

	// 人员总数按所有来源累加，而不仅仅是受灾区域
	for source, available := range in.Availability {
		for _, c := range Categories {
			if available.Get(c) < 0 {
				return nil, fmt.Errorf("%w: %q 的 %s 人数为负数", ErrInvalidInput, source, c)
			}
			p.pool.Set(c, p.pool.Get(c)+available.Get(c))
		}
	}
	p.poolTotal = p.pool.Total()

	for _, zone := range p.zones {
		demand, err := computeDemand(zone, in.Lambdas)
		if err != nil {
			return nil, err
		}
		p.demand = append(p.demand, demand)
		p.riskWeights = append(p.riskWeights, math.Log1p(float64(zone.Risk)))
		p.populationWeights = append(p.populationWeights, math.Log1p(float64(zone.Population)))
	}

	return p, nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// computeDemand round(λ × risk × flood × log1p(population))
func computeDemand(zone Zone, lambdas Lambdas) (Personnel, error) {
	base := float64(zone.Risk) * zone.FloodLevel * math.Log1p(float64(zone.Population))

	var d Personnel
	for _, c := range Categories {
		v := math.RoundToEven(lambdas.Get(c) * base)
		if v < 0 || v > maxDemand {
			return Personnel{}, fmt.Errorf("%w: 区域 %q 的 %s 需求 %g 超出范围", ErrInvalidInput, zone.Name, c, v)
		}
		d.Set(c, int(v))
	}
	return d, nil
}

func (p *Problem) TargetZones() []Zone {
	zones := make([]Zone, len(p.zones))
	copy(zones, p.zones)
	return zones
}

func (p *Problem) NumTargetZones() int {
	return len(p.zones)
}

// Dim 候选向量的长度
func (p *Problem) Dim() int {
	return len(p.zones) * NumCategories
}

func (p *Problem) Pool() Personnel {
	return p.pool
}

func (p *Problem) Weights() Weights {
	return p.weights
}

// Demand 返回每个受灾区域的需求
func (p *Problem) Demand() map[string]Personnel {
	demand := make(map[string]Personnel, len(p.zones))
	for i, zone := range p.zones {
		demand[zone.Name] = p.demand[i]
	}
	return demand
}

func (p *Problem) checkDim(vec []float64) {
	if len(vec) != p.Dim() {
		panic(fmt.Sprintf("allocator: 候选向量长度为 %d，期望 %d", len(vec), p.Dim()))
	}
}

// Decode 按 (srr, health, log) 三元组的顺序把候选向量解码为分配方案，分量直接截断取整
func (p *Problem) Decode(vec []float64) Allocation {
	p.checkDim(vec)

	allocation := make(Allocation, len(p.zones))
	for i, zone := range p.zones {
		allocation[zone.Name] = decodeTriplet(vec[i*NumCategories:])
	}
	return allocation
}

func (p *Problem) decodeOrdered(vec []float64, dst []Personnel) {
	for i := range p.zones {
		dst[i] = decodeTriplet(vec[i*NumCategories:])
	}
}

func decodeTriplet(triplet []float64) Personnel {
	return Personnel{
		SRR:    int(triplet[SearchRescue]),
		Health: int(triplet[Health]),
		Log:    int(triplet[Logistics]),
	}
}

// Enforce 按比例缩放候选向量，使每类人员的分配总数不超过可用总数
//
// 向量会被原地修改，返回值与参数是同一个切片
func (p *Problem) Enforce(vec []float64) []float64 {
	p.checkDim(vec)
	return p.enforce(vec, p.newWorkspace())
}

func (p *Problem) enforce(vec []float64, ws *workspace) []float64 {
	n := len(p.zones)
	column, scaled := ws.column, ws.scaled

	for _, c := range Categories {
		for i := 0; i < n; i++ {
			column[i] = vec[i*NumCategories+int(c)]
		}
		total := floats.Sum(column)

		available := float64(p.pool.Get(c))
		if total <= available {
			continue
		}

		ratio := 0.0
		if total > 0 {
			ratio = available / total
		}
		floats.ScaleTo(scaled, ratio, column)

		for i := 0; i < n; i++ {
			column[i] = math.RoundToEven(scaled[i])
		}

		// 各分量四舍五入后总数仍可能超出，从被进位最多的分量开始逐个减一
		for sum := floats.Sum(column); sum > available; sum-- {
			worst := -1
			for i := 0; i < n; i++ {
				if column[i] < 1 {
					continue
				}
				if worst < 0 || column[i]-scaled[i] > column[worst]-scaled[worst] {
					worst = i
				}
			}
			if worst < 0 {
				break
			}
			column[worst]--
		}

		for i := 0; i < n; i++ {
			vec[i*NumCategories+int(c)] = column[i]
		}
	}

	return vec
}

// clampAndRound 取整并把负数截为 0
func clampAndRound(vec []float64) {
	for k := range vec {
		vec[k] = math.Max(0, math.RoundToEven(vec[k]))
	}
}
