package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"techlib/config"
	"techlib/services"
)

// seedCmd 写入演示数据（分类、标签、带标签的视频）
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "写入演示数据",
	Run: func(cmd *cobra.Command, args []string) {
		logger := config.GetLogger()

		if err := config.InitDatabase(config.AppConfig.Database.Path); err != nil {
			logger.Fatal("初始化数据库失败", zap.Error(err))
		}
		db := config.GetDB()

		tagService := services.NewTagService(db, logger)
		categoryService := services.NewCategoryService(db, logger)
		videoService := services.NewVideoService(db, services.NewFacetService(db), nil, logger)

		categories := map[string][]string{
			"位置":   {"guard", "mount", "side control", "back control"},
			"降服技": {"armbar", "kimura", "triangle", "rear naked choke"},
			"扫技":   {"scissor sweep", "hip bump sweep"},
		}
		for name, tagNames := range categories {
			category, err := categoryService.CreateCategory(name)
			if err != nil {
				logger.Warn("创建分类失败（可能已存在）", zap.String("name", name), zap.Error(err))
				continue
			}
			for _, tagName := range tagNames {
				tag, err := tagService.CreateOrGetTag(tagName)
				if err != nil {
					logger.Warn("创建标签失败", zap.String("name", tagName), zap.Error(err))
					continue
				}
				if _, err := tagService.RecategorizeTag(tag.ID, &category.ID); err != nil {
					logger.Warn("归类标签失败", zap.String("name", tagName), zap.Error(err))
				}
			}
		}

		videos := []struct {
			title string
			url   string
			tags  []string
		}{
			{"Closed Guard Fundamentals", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", []string{"guard"}},
			{"Kimura from Closed Guard", "https://www.youtube.com/watch?v=Ks-_Mh1QhMc", []string{"guard", "kimura"}},
			{"Armbar Setup Details", "https://vimeo.com/76979871", []string{"guard", "kimura", "armbar"}},
			{"Scissor Sweep Mechanics", "https://youtu.be/9bZkp7q19f0", []string{"guard", "scissor sweep"}},
			{"Back Take to RNC", "https://www.youtube.com/watch?v=kXYiU_JCYtU", []string{"back control", "rear naked choke"}},
		}
		for _, v := range videos {
			if _, err := videoService.Create(v.title, v.url, v.tags); err != nil {
				logger.Warn("创建视频失败", zap.String("title", v.title), zap.Error(err))
			}
		}

		logger.Info("演示数据写入完成")
	},
}

func init() {
	RootCmd.AddCommand(seedCmd)
}
