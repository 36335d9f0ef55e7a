package main

import (
	"math/rand"
	"os"

	"github.com/spf13/cobra"
	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/seed"
	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/utils"
	"gopkg.in/yaml.v3"
)

var (
	sampleSeed   int64
	maxPersonnel int
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "随机生成一个曼达卢永洪水场景并以 YAML 输出",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("seed") {
			sampleSeed = rand.Int63()
		}
		rng := rand.New(rand.NewSource(sampleSeed))

		req := utils.GenerateRandomScenario(rng, seed.MandaluyongZones(), maxPersonnel)
		req.Seed = &sampleSeed

		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()

		return enc.Encode(scenario{Request: req})
	},
}

func init() {
	sampleCmd.Flags().Int64Var(&sampleSeed, "seed", 0, "生成场景使用的随机种子")
	sampleCmd.Flags().IntVar(&maxPersonnel, "max-personnel", 15, "每个区域每类人员的最大数量")
}
