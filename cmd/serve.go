package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"techlib/config"
	"techlib/server"
)

var servePort int

// serveCmd 启动HTTP服务器
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动HTTP服务器",
	Run: func(cmd *cobra.Command, args []string) {
		logger := config.GetLogger()

		if err := config.InitDatabase(config.AppConfig.Database.Path); err != nil {
			logger.Fatal("初始化数据库失败", zap.Error(err))
		}

		port := config.AppConfig.Server.Port
		if servePort > 0 {
			port = servePort
		}

		srv := server.NewServer(port)
		if err := srv.Start(); err != nil {
			logger.Fatal("服务器退出", zap.Error(err))
		}
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "监听端口（覆盖配置文件）")
	RootCmd.AddCommand(serveCmd)
}
