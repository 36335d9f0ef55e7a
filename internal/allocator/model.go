package allocator

// Category 人员类别
type Category int

const (
	SearchRescue Category = iota // 搜救
	Health                       // 医疗
	Logistics                    // 后勤
)

// NumCategories 候选向量中每个区域占用的分量个数
const NumCategories = 3

var Categories = [NumCategories]Category{SearchRescue, Health, Logistics}

func (c Category) String() string {
	switch c {
	case SearchRescue:
		return "srr"
	case Health:
		return "health"
	case Logistics:
		return "log"
	default:
		return "unknown"
	}
}

// Personnel 三类人员的数量，同时用于可用人数、需求和分配结果
type Personnel struct {
	SRR    int `json:"srr" yaml:"srr"`
	Health int `json:"health" yaml:"health"`
	Log    int `json:"log" yaml:"log"`
}

func (p Personnel) Get(c Category) int {
	switch c {
	case SearchRescue:
		return p.SRR
	case Health:
		return p.Health
	case Logistics:
		return p.Log
	default:
		return 0
	}
}

func (p *Personnel) Set(c Category, v int) {
	switch c {
	case SearchRescue:
		p.SRR = v
	case Health:
		p.Health = v
	case Logistics:
		p.Log = v
	}
}

func (p Personnel) Total() int {
	return p.SRR + p.Health + p.Log
}

// ZoneInfo 区域登记表中的静态信息
type ZoneInfo struct {
	Name       string
	Population int
	Risk       int
}

// Zone 参与优化的区域（静态信息 + 本次的水位）
type Zone struct {
	Name       string  `json:"name"`
	Population int     `json:"population"`
	Risk       int     `json:"risk"`
	FloodLevel float64 `json:"floodLevel"`
}

// FloodThreshold 水位达到该值的区域才会被纳入优化
const FloodThreshold = 0.5

func (z Zone) Targeted() bool {
	return z.FloodLevel >= FloodThreshold
}

// Weights 五个子目标的权重
type Weights struct {
	W1 float64 `json:"w1" yaml:"w1"` // 覆盖率
	W2 float64 `json:"w2" yaml:"w2"` // 风险优先
	W3 float64 `json:"w3" yaml:"w3"` // 分布不均惩罚
	W4 float64 `json:"w4" yaml:"w4"` // 人口加权
	W5 float64 `json:"w5" yaml:"w5"` // 需求满足
}

// Lambdas 每类人员的需求系数
type Lambdas struct {
	SRR    float64 `json:"srr" yaml:"srr"`
	Health float64 `json:"health" yaml:"health"`
	Log    float64 `json:"log" yaml:"log"`
}

func (l Lambdas) Get(c Category) float64 {
	switch c {
	case SearchRescue:
		return l.SRR
	case Health:
		return l.Health
	case Logistics:
		return l.Log
	default:
		return 0
	}
}

// Allocation 区域名 -> 各类人员分配数量
type Allocation map[string]Personnel

// Snapshot 某一时刻的最优解
type Snapshot struct {
	Allocation   Allocation `json:"allocation"`
	FitnessScore float64    `json:"fitness_score"`
}

// IterationRecord 迭代日志中的一条记录
type IterationRecord struct {
	Iteration    int        `json:"iteration"`
	FitnessScore float64    `json:"fitness_score"`
	Allocation   Allocation `json:"allocation"`
}

// Outcome 一次搜索的完整输出
type Outcome struct {
	Initial      Snapshot          `json:"initial"`
	IterationLog []IterationRecord `json:"iterationLog"`
	Final        Snapshot          `json:"final"`
}

func emptyOutcome() *Outcome {
	return &Outcome{
		Initial:      Snapshot{Allocation: Allocation{}, FitnessScore: 0},
		IterationLog: []IterationRecord{},
		Final:        Snapshot{Allocation: Allocation{}, FitnessScore: 0},
	}
}
