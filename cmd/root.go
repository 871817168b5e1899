package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"techlib/config"
)

// RootCmd 根命令，serve / migrate / seed 等子命令在各自的 init 里注册
var RootCmd = &cobra.Command{
	Use:   "techlib",
	Short: "技术视频库后端",
	Long: `技术视频库后端：维护外链视频合集和标签体系，
支持按标签共现做渐进式筛选，管理接口需要会话认证。`,
}

// Execute 命令入口，由 main.go 调用
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "命令执行失败: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

// initConfig 在任何子命令执行前加载配置和日志
func initConfig() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	if err := config.InitLogger(cfg.Log.Level); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
}
