package simulation

import (
	"time"

	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/allocator"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

const (
	AlgorithmSwarm   = "pso"
	AlgorithmFirefly = "fa"
)

type PersonnelInput struct {
	SRR    int `json:"srr" yaml:"srr" validate:"min=0"`
	Health int `json:"health" yaml:"health" validate:"min=0"`
	Log    int `json:"log" yaml:"log" validate:"min=0"`
}

// BarangayInput 前端地图上的一个区域：当前水位和该区域上报的可用人员
type BarangayInput struct {
	ID         string         `json:"id" yaml:"id"`
	Name       string         `json:"name" yaml:"name" validate:"required"`
	WaterLevel float64        `json:"waterLevel" yaml:"waterLevel" validate:"min=0"`
	Personnel  PersonnelInput `json:"personnel" yaml:"personnel"`
}

// Request 一次自动分配的请求，未指定的参数使用服务端默认值
type Request struct {
	Barangays   []BarangayInput  `json:"barangays" yaml:"barangays" validate:"required,min=1,dive"`
	Algorithms  []string         `json:"algorithms,omitempty" yaml:"algorithms,omitempty" validate:"omitempty,dive,oneof=pso fa"`
	Seed        *int64           `json:"seed,omitempty" yaml:"seed,omitempty"`
	Swarm       *SwarmOverride   `json:"swarm,omitempty" yaml:"swarm,omitempty"`
	Firefly     *FireflyOverride `json:"firefly,omitempty" yaml:"firefly,omitempty"`
	Weights     *WeightsOverride `json:"weights,omitempty" yaml:"weights,omitempty"`
	Lambdas     *LambdasOverride `json:"lambdas,omitempty" yaml:"lambdas,omitempty"`
	NotifyEmail string           `json:"notifyEmail,omitempty" yaml:"notifyEmail,omitempty" validate:"omitempty,email"`
}

// Report 单个算法的运行结果
type Report struct {
	Algorithm     string                      `json:"algorithm"`
	Initial       allocator.Snapshot          `json:"initial"`
	IterationLog  []allocator.IterationRecord `json:"iterationLog"`
	Final         allocator.Snapshot          `json:"final"`
	Objectives    allocator.Objectives        `json:"objectives"`
	ExecutionTime float64                     `json:"executionTime"` // 单位为秒
}

type Result struct {
	TotalPersonnel  allocator.Personnel            `json:"totalPersonnel"`
	TargetZoneCount int                            `json:"targetZoneCount"`
	Demand          map[string]allocator.Personnel `json:"demand"`
	Swarm           *Report                        `json:"swarm,omitempty"`
	Firefly         *Report                        `json:"firefly,omitempty"`
}

type Job struct {
	ID         string     `json:"id"`
	Status     Status     `json:"status"`
	Seed       int64      `json:"seed"`
	Request    Request    `json:"request"`
	Result     *Result    `json:"result,omitempty"`
	Error      string     `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	StartedAt  *time.Time `json:"startedAt,omitempty"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}
