package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"techlib/config"
)

// migrateCmd 建表/迁移表结构
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "创建或迁移数据库表结构",
	Run: func(cmd *cobra.Command, args []string) {
		logger := config.GetLogger()

		if err := config.InitDatabase(config.AppConfig.Database.Path); err != nil {
			logger.Fatal("数据库迁移失败", zap.Error(err))
		}

		logger.Info("数据库迁移完成", zap.String("path", config.AppConfig.Database.Path))
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
