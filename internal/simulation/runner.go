package simulation

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/allocator"
	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/config"
	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/domain"
	"golang.org/x/sync/errgroup"
)

var ErrUnknownZone = errors.New("未登记的区域")

// Defaults 请求中未指定参数时使用的默认值
type Defaults struct {
	Swarm   allocator.SwarmParameters
	Firefly allocator.FireflyParameters
	Weights allocator.Weights
	Lambdas allocator.Lambdas
	Limits  Limits
}

// Limits 合并请求参数后允许的种群规模和迭代次数上限，0 表示不限制
type Limits struct {
	MaxParticles  int
	MaxFireflies  int
	MaxIterations int
}

func exceeds(value, limit int) bool {
	return limit > 0 && value > limit
}

func (l Limits) checkSwarm(p allocator.SwarmParameters) error {
	if exceeds(p.Particles, l.MaxParticles) {
		return fmt.Errorf("%w: 粒子数量不能超过 %d", allocator.ErrInvalidParameters, l.MaxParticles)
	}
	if exceeds(p.Iterations, l.MaxIterations) {
		return fmt.Errorf("%w: 迭代次数不能超过 %d", allocator.ErrInvalidParameters, l.MaxIterations)
	}
	return nil
}

func (l Limits) checkFirefly(p allocator.FireflyParameters) error {
	if exceeds(p.Fireflies, l.MaxFireflies) {
		return fmt.Errorf("%w: 萤火虫数量不能超过 %d", allocator.ErrInvalidParameters, l.MaxFireflies)
	}
	if exceeds(p.Iterations, l.MaxIterations) {
		return fmt.Errorf("%w: 迭代次数不能超过 %d", allocator.ErrInvalidParameters, l.MaxIterations)
	}
	return nil
}

func DefaultsFromConfig(c *config.Simulation) Defaults {
	return Defaults{
		Swarm: allocator.SwarmParameters{
			Particles:   c.Swarm.Particles,
			Iterations:  c.Swarm.Iterations,
			Inertia:     c.Swarm.Inertia,
			Cognitive:   c.Swarm.Cognitive,
			Social:      c.Swarm.Social,
			LogInterval: c.LogInterval,
		},
		Firefly: allocator.FireflyParameters{
			Fireflies:   c.Firefly.Fireflies,
			Iterations:  c.Firefly.Iterations,
			Alpha:       c.Firefly.Alpha,
			Beta0:       c.Firefly.Beta0,
			Gamma:       c.Firefly.Gamma,
			LogInterval: c.LogInterval,
		},
		Weights: allocator.Weights{
			W1: c.Weights.W1,
			W2: c.Weights.W2,
			W3: c.Weights.W3,
			W4: c.Weights.W4,
			W5: c.Weights.W5,
		},
		Lambdas: allocator.Lambdas{
			SRR:    c.Lambdas.SRR,
			Health: c.Lambdas.Health,
			Log:    c.Lambdas.Log,
		},
		Limits: Limits{
			MaxParticles:  c.Limits.MaxParticles,
			MaxFireflies:  c.Limits.MaxFireflies,
			MaxIterations: c.Limits.MaxIterations,
		},
	}
}

type Runner struct {
	defaults Defaults
}

func NewRunner(defaults Defaults) *Runner {
	return &Runner{defaults: defaults}
}

// Drivers 根据请求构建需要运行的算法
//
// 请求中的参数逐项覆盖默认值，合并后的参数非法或超过上限时返回错误
func (r *Runner) Drivers(req *Request) ([]allocator.Driver, error) {
	algorithms := req.Algorithms
	if len(algorithms) == 0 {
		algorithms = []string{AlgorithmSwarm, AlgorithmFirefly}
	}

	drivers := make([]allocator.Driver, 0, len(algorithms))

	if slices.Contains(algorithms, AlgorithmSwarm) {
		parameters := req.Swarm.apply(r.defaults.Swarm)
		if err := r.defaults.Limits.checkSwarm(parameters); err != nil {
			return nil, err
		}
		swarm, err := allocator.NewSwarm(parameters)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, swarm)
	}

	if slices.Contains(algorithms, AlgorithmFirefly) {
		parameters := req.Firefly.apply(r.defaults.Firefly)
		if err := r.defaults.Limits.checkFirefly(parameters); err != nil {
			return nil, err
		}
		firefly, err := allocator.NewFirefly(parameters)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, firefly)
	}

	if len(drivers) == 0 {
		return nil, fmt.Errorf("%w: 没有可运行的算法", allocator.ErrInvalidParameters)
	}

	return drivers, nil
}

/**
 * 根据区域登记表和请求构建优化问题
 * 1. 区域的人口和风险等级来自登记表，水位来自请求
 * 2. 所有区域上报的人员都计入人员总数，即使该区域未受灾或未登记
 * 3. 受灾（水位达到阈值）但未登记的区域无法计算需求，直接拒绝
 */
func (r *Runner) Problem(registry []allocator.ZoneInfo, req *Request) (*allocator.Problem, error) {
	known := make(map[string]struct{}, len(registry))
	for _, zone := range registry {
		known[zone.Name] = struct{}{}
	}

	availability := make(map[string]allocator.Personnel, len(req.Barangays))
	floodLevels := make(map[string]float64, len(req.Barangays))

	for _, b := range req.Barangays {
		if _, exists := known[b.Name]; !exists && b.WaterLevel >= allocator.FloodThreshold {
			return nil, fmt.Errorf("%w: %s", ErrUnknownZone, b.Name)
		}

		p := availability[b.Name]
		p.SRR += b.Personnel.SRR
		p.Health += b.Personnel.Health
		p.Log += b.Personnel.Log
		availability[b.Name] = p

		floodLevels[b.Name] = b.WaterLevel
	}

	return allocator.NewProblem(allocator.Input{
		Registry:     registry,
		Availability: availability,
		FloodLevels:  floodLevels,
		Weights:      req.Weights.apply(r.defaults.Weights),
		Lambdas:      req.Lambdas.apply(r.defaults.Lambdas),
	})
}

// Run 构建问题并同时运行请求中的各个算法
func (r *Runner) Run(registry []allocator.ZoneInfo, req *Request, seed int64) (*Result, error) {
	drivers, err := r.Drivers(req)
	if err != nil {
		return nil, err
	}

	problem, err := r.Problem(registry, req)
	if err != nil {
		return nil, err
	}

	reports := make([]*Report, len(drivers))

	// 每个算法独占自己的种群，Problem 只读，可以并行运行
	var g errgroup.Group
	for i, driver := range drivers {
		i, driver := i, driver
		g.Go(func() error {
			start := time.Now()
			outcome := driver.Run(problem, seed)
			elapsed := time.Since(start)

			reports[i] = &Report{
				Algorithm:     driver.Name(),
				Initial:       outcome.Initial,
				IterationLog:  outcome.IterationLog,
				Final:         outcome.Final,
				Objectives:    problem.Objectives(outcome.Final.Allocation),
				ExecutionTime: elapsed.Seconds(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		TotalPersonnel:  problem.Pool(),
		TargetZoneCount: problem.NumTargetZones(),
		Demand:          problem.Demand(),
	}
	for _, report := range reports {
		switch report.Algorithm {
		case AlgorithmSwarm:
			result.Swarm = report
		case AlgorithmFirefly:
			result.Firefly = report
		}
	}

	return result, nil
}

// RegistryFromZones 把数据库中的区域转换为登记表，保持原有顺序
func RegistryFromZones(zones []*domain.Zone) []allocator.ZoneInfo {
	registry := make([]allocator.ZoneInfo, 0, len(zones))
	for _, z := range zones {
		registry = append(registry, allocator.ZoneInfo{
			Name:       z.Name,
			Population: z.Population,
			Risk:       z.Risk,
		})
	}
	return registry
}
