package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"techlib/config"
	"techlib/services"
)

// cleanupSessionsCmd 手动清理过期会话
// 服务器自己也会每小时清一次，这个命令给运维脚本用
var cleanupSessionsCmd = &cobra.Command{
	Use:   "cleanup-sessions",
	Short: "清理过期管理员会话",
	Run: func(cmd *cobra.Command, args []string) {
		logger := config.GetLogger()

		if err := config.InitDatabase(config.AppConfig.Database.Path); err != nil {
			logger.Fatal("初始化数据库失败", zap.Error(err))
		}

		sessions := services.NewSessionService(
			config.GetDB(),
			config.AppConfig.Admin.Password,
			config.AppConfig.Session.TTLHours,
			logger,
		)
		count, err := sessions.CleanupExpired()
		if err != nil {
			logger.Fatal("清理失败", zap.Error(err))
		}
		logger.Info("清理完成", zap.Int64("deleted", count))
	},
}

func init() {
	RootCmd.AddCommand(cleanupSessionsCmd)
}
