package simulation

import "github.com/sysu-ecnc-dev/flood-allocator/backend/internal/allocator"

// SwarmOverride 请求中指定的粒子群参数，未指定的字段沿用默认值
type SwarmOverride struct {
	Particles   *int     `json:"particles,omitempty" yaml:"particles,omitempty" validate:"omitempty,min=1,max=100000"`
	Iterations  *int     `json:"iterations,omitempty" yaml:"iterations,omitempty" validate:"omitempty,min=0,max=100000"`
	Inertia     *float64 `json:"inertia,omitempty" yaml:"inertia,omitempty" validate:"omitempty,min=0,max=100"`
	Cognitive   *float64 `json:"cognitive,omitempty" yaml:"cognitive,omitempty" validate:"omitempty,min=0,max=100"`
	Social      *float64 `json:"social,omitempty" yaml:"social,omitempty" validate:"omitempty,min=0,max=100"`
	LogInterval *int     `json:"logInterval,omitempty" yaml:"logInterval,omitempty" validate:"omitempty,min=1"`
}

func (o *SwarmOverride) apply(p allocator.SwarmParameters) allocator.SwarmParameters {
	if o == nil {
		return p
	}
	set(&p.Particles, o.Particles)
	set(&p.Iterations, o.Iterations)
	set(&p.Inertia, o.Inertia)
	set(&p.Cognitive, o.Cognitive)
	set(&p.Social, o.Social)
	set(&p.LogInterval, o.LogInterval)
	return p
}

// Values 返回已指定的实数参数
func (o *SwarmOverride) Values() []*float64 {
	if o == nil {
		return nil
	}
	return []*float64{o.Inertia, o.Cognitive, o.Social}
}

// FireflyOverride 请求中指定的萤火虫算法参数，未指定的字段沿用默认值
type FireflyOverride struct {
	Fireflies   *int     `json:"fireflies,omitempty" yaml:"fireflies,omitempty" validate:"omitempty,min=1,max=100000"`
	Iterations  *int     `json:"iterations,omitempty" yaml:"iterations,omitempty" validate:"omitempty,min=0,max=100000"`
	Alpha       *float64 `json:"alpha,omitempty" yaml:"alpha,omitempty" validate:"omitempty,min=0,max=100"`
	Beta0       *float64 `json:"beta0,omitempty" yaml:"beta0,omitempty" validate:"omitempty,min=0,max=100"`
	Gamma       *float64 `json:"gamma,omitempty" yaml:"gamma,omitempty" validate:"omitempty,min=0,max=100"`
	LogInterval *int     `json:"logInterval,omitempty" yaml:"logInterval,omitempty" validate:"omitempty,min=1"`
}

func (o *FireflyOverride) apply(p allocator.FireflyParameters) allocator.FireflyParameters {
	if o == nil {
		return p
	}
	set(&p.Fireflies, o.Fireflies)
	set(&p.Iterations, o.Iterations)
	set(&p.Alpha, o.Alpha)
	set(&p.Beta0, o.Beta0)
	set(&p.Gamma, o.Gamma)
	set(&p.LogInterval, o.LogInterval)
	return p
}

func (o *FireflyOverride) Values() []*float64 {
	if o == nil {
		return nil
	}
	return []*float64{o.Alpha, o.Beta0, o.Gamma}
}

// WeightsOverride 请求中指定的目标权重
type WeightsOverride struct {
	W1 *float64 `json:"w1,omitempty" yaml:"w1,omitempty" validate:"omitempty,min=0,max=100"`
	W2 *float64 `json:"w2,omitempty" yaml:"w2,omitempty" validate:"omitempty,min=0,max=100"`
	W3 *float64 `json:"w3,omitempty" yaml:"w3,omitempty" validate:"omitempty,min=0,max=100"`
	W4 *float64 `json:"w4,omitempty" yaml:"w4,omitempty" validate:"omitempty,min=0,max=100"`
	W5 *float64 `json:"w5,omitempty" yaml:"w5,omitempty" validate:"omitempty,min=0,max=100"`
}

func (o *WeightsOverride) apply(w allocator.Weights) allocator.Weights {
	if o == nil {
		return w
	}
	set(&w.W1, o.W1)
	set(&w.W2, o.W2)
	set(&w.W3, o.W3)
	set(&w.W4, o.W4)
	set(&w.W5, o.W5)
	return w
}

// Values 按 w1 到 w5 的顺序返回已指定的权重
func (o *WeightsOverride) Values() []*float64 {
	if o == nil {
		return nil
	}
	return []*float64{o.W1, o.W2, o.W3, o.W4, o.W5}
}

// LambdasOverride 请求中指定的需求系数
type LambdasOverride struct {
	SRR    *float64 `json:"srr,omitempty" yaml:"srr,omitempty" validate:"omitempty,min=0,max=100"`
	Health *float64 `json:"health,omitempty" yaml:"health,omitempty" validate:"omitempty,min=0,max=100"`
	Log    *float64 `json:"log,omitempty" yaml:"log,omitempty" validate:"omitempty,min=0,max=100"`
}

func (o *LambdasOverride) apply(l allocator.Lambdas) allocator.Lambdas {
	if o == nil {
		return l
	}
	set(&l.SRR, o.SRR)
	set(&l.Health, o.Health)
	set(&l.Log, o.Log)
	return l
}

func (o *LambdasOverride) Values() []*float64 {
	if o == nil {
		return nil
	}
	return []*float64{o.SRR, o.Health, o.Log}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
