package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/simulation"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenarioWithBuiltinRegistry(t *testing.T) {
	path := writeScenario(t, `
seed: 7
barangays:
  - id: "0"
    name: Addition Hills
    waterLevel: 2.5
    personnel: {srr: 10, health: 8, log: 5}
  - id: "26"
    name: Wack-Wack Greenhills
    waterLevel: 0.2
    personnel: {srr: 2, health: 2, log: 1}
swarm:
  particles: 20
  iterations: 30
`)

	s, err := loadScenario(path)
	require.NoError(t, err)

	require.NotNil(t, s.Seed)
	assert.EqualValues(t, 7, *s.Seed)
	assert.Len(t, s.Barangays, 2)
	assert.Equal(t, 8, s.Barangays[0].Personnel.Health)
	require.NotNil(t, s.Swarm)
	require.NotNil(t, s.Swarm.Particles)
	assert.Equal(t, 20, *s.Swarm.Particles)
	// 未写出的参数保持为空，运行时沿用默认值
	assert.Nil(t, s.Swarm.Inertia)
	assert.Nil(t, s.Firefly)

	registry := s.registry()
	assert.Len(t, registry, 27)
	assert.Equal(t, "Addition Hills", registry[0].Name)
}

func TestLoadScenarioWithOwnZones(t *testing.T) {
	path := writeScenario(t, `
zones:
  - {name: A, population: 1000, risk: 2}
barangays:
  - {id: "0", name: A, waterLevel: 1.0, personnel: {srr: 1, health: 1, log: 1}}
`)

	s, err := loadScenario(path)
	require.NoError(t, err)

	registry := s.registry()
	require.Len(t, registry, 1)
	assert.Equal(t, 2, registry[0].Risk)
}

func TestLoadScenarioRejectsEmpty(t *testing.T) {
	_, err := loadScenario(writeScenario(t, "seed: 1\n"))
	assert.Error(t, err)

	_, err = loadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRunRejectsInvalidScenario(t *testing.T) {
	path := writeScenario(t, `
barangays:
  - {id: "0", name: Addition Hills, waterLevel: 2.5, personnel: {srr: 10, health: 8, log: 5}}
weights:
  w4: .inf
`)

	previous := scenarioFile
	scenarioFile = path
	t.Cleanup(func() { scenarioFile = previous })

	err := runAllocate(runCmd, nil)
	assert.ErrorContains(t, err, "场景文件无效")
}

func TestAlgorithms(t *testing.T) {
	got, err := algorithms("swarm")
	require.NoError(t, err)
	assert.Equal(t, []string{simulation.AlgorithmSwarm}, got)

	got, err = algorithms("fa")
	require.NoError(t, err)
	assert.Equal(t, []string{simulation.AlgorithmFirefly}, got)

	got, err = algorithms("both")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = algorithms("ga")
	assert.Error(t, err)
}
