package cmd

import (
	"context"

	"github.com/echoapp/echo-sync-service/pkg/fileurl"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	var config, file string

	var seedCommand = &cobra.Command{
		Use:   "seed -f seed.json [-c config_file]",
		Short: "Initialize the local store from a seed file // 使用种子文件初始化本地存储",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !fileurl.IsExist(file) {
				return errors.Errorf("seed file not found: %s", file)
			}
			config, err := resolveConfig(config)
			if err != nil {
				return err
			}

			_, a, err := loadApp(config, "", "")
			if err != nil {
				return err
			}
			defer a.Shutdown(context.Background())

			if err := a.InitStore(cmd.Context(), file); err != nil {
				return err
			}
			bootstrapLogger.Info("seed done", zap.String("file", file))
			return nil
		},
	}

	rootCmd.AddCommand(seedCommand)
	fs := seedCommand.Flags()
	fs.StringVarP(&config, "config", "c", "", "config file")
	fs.StringVarP(&file, "file", "f", "", "seed file")
	_ = seedCommand.MarkFlagRequired("file")
}
