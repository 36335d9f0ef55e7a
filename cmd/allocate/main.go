package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "allocate",
	Short:         "在本地运行洪灾人员自动分配",
	Long:          "不依赖数据库和消息队列，直接读取场景文件运行粒子群和萤火虫算法，结果以 JSON 输出。",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	rootCmd.AddCommand(runCmd, sampleCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("命令执行失败", "error", err)
		os.Exit(1)
	}
}
