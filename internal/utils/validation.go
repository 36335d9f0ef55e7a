package utils

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/domain"
	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/simulation"
)

func ValidateZone(zone *domain.Zone) error {
	if strings.TrimSpace(zone.Name) == "" {
		return errors.New("区域名称不能为空")
	}
	if zone.Population < 0 {
		return fmt.Errorf("区域 %s 的人口不能为负数", zone.Name)
	}
	if zone.Risk < 1 {
		return fmt.Errorf("区域 %s 的风险等级至少为 1", zone.Name)
	}
	return nil
}

// maxCoefficient 请求中权重、需求系数和算法系数的上限
const maxCoefficient = 100

// ValidateSimulationRequest 检查 validator 标签无法表达的约束
//
// 命令行读取的场景文件不经过 validator，因此数值范围在这里再检查一次
func ValidateSimulationRequest(req *simulation.Request) error {
	seen := make(map[string]bool, len(req.Barangays))
	for i, b := range req.Barangays {
		if seen[b.Name] {
			return fmt.Errorf("区域 %s 重复出现", b.Name)
		}
		seen[b.Name] = true

		if math.IsNaN(b.WaterLevel) || math.IsInf(b.WaterLevel, 0) {
			return fmt.Errorf("第 %d 个区域的水位无效", i+1)
		}
	}

	seenAlgorithms := make(map[string]bool, len(req.Algorithms))
	for _, algorithm := range req.Algorithms {
		if seenAlgorithms[algorithm] {
			return fmt.Errorf("算法 %s 重复出现", algorithm)
		}
		seenAlgorithms[algorithm] = true
	}

	if err := checkCoefficients("粒子群参数", req.Swarm.Values()); err != nil {
		return err
	}
	if err := checkCoefficients("萤火虫算法参数", req.Firefly.Values()); err != nil {
		return err
	}
	if err := checkCoefficients("目标权重", req.Weights.Values()); err != nil {
		return err
	}
	if err := checkCoefficients("需求系数", req.Lambdas.Values()); err != nil {
		return err
	}

	return nil
}

// checkCoefficients 已指定的值必须是 [0, maxCoefficient] 内的有限值
func checkCoefficients(name string, values []*float64) error {
	for _, v := range values {
		if v == nil {
			continue
		}
		if math.IsNaN(*v) || math.IsInf(*v, 0) {
			return fmt.Errorf("%s必须是有限值", name)
		}
		if *v < 0 || *v > maxCoefficient {
			return fmt.Errorf("%s必须在 0 到 %d 之间", name, maxCoefficient)
		}
	}
	return nil
}
