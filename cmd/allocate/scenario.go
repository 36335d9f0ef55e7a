package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/allocator"
	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/domain"
	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/seed"
	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/simulation"
	"gopkg.in/yaml.v3"
)

type zoneEntry struct {
	Name       string `yaml:"name"`
	Population int    `yaml:"population"`
	Risk       int    `yaml:"risk"`
}

// scenario 场景文件，zones 为空时使用内置的曼达卢永区域登记表
type scenario struct {
	Zones              []zoneEntry `yaml:"zones,omitempty"`
	simulation.Request `yaml:",inline"`
}

func loadScenario(path string) (*scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	s := &scenario{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("无法解析场景文件 %s: %w", path, err)
	}
	if len(s.Barangays) == 0 {
		return nil, errors.New("场景文件中没有区域")
	}

	return s, nil
}

func (s *scenario) registry() []allocator.ZoneInfo {
	if len(s.Zones) == 0 {
		return simulation.RegistryFromZones(seed.MandaluyongZones())
	}

	zones := make([]*domain.Zone, 0, len(s.Zones))
	for _, z := range s.Zones {
		zones = append(zones, &domain.Zone{Name: z.Name, Population: z.Population, Risk: z.Risk})
	}
	return simulation.RegistryFromZones(zones)
}
