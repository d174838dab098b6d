package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/echoapp/echo-sync-service/internal/domain"
	"github.com/echoapp/echo-sync-service/internal/dto"
	"github.com/echoapp/echo-sync-service/pkg/convert"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type syncFlags struct {
	config     string
	collection string
	ids        string
	all        bool
}

func init() {
	flags := new(syncFlags)

	var syncCommand = &cobra.Command{
		Use:   "sync [--collection memos --ids 1,2 | --all] [-c config_file]",
		Short: "Upload records or a full snapshot to the remote store // 上传记录或整库快照到远端",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !flags.all && flags.collection == "" {
				return errors.New("either --collection or --all is required")
			}
			config, err := resolveConfig(flags.config)
			if err != nil {
				return err
			}

			appConfig, a, err := loadApp(config, "", "")
			if err != nil {
				return err
			}
			defer a.Shutdown(context.Background())

			ctx := cmd.Context()
			if err := a.InitStore(ctx, appConfig.App.SeedFile); err != nil {
				return err
			}

			progress := func(p int) {
				fmt.Fprintf(cmd.OutOrStdout(), "\rprogress %3d%%", p)
			}

			var result *dto.SyncResultDTO
			if flags.all {
				result, err = a.SyncService.SyncAll(ctx, progress)
			} else {
				var c domain.Collection
				c, err = domain.ParseCollection(flags.collection)
				if err != nil {
					return err
				}
				var ids []int64
				ids, err = convert.StrTo(strings.TrimSpace(flags.ids)).Int64Slice()
				if err != nil {
					return errors.Wrap(err, "invalid --ids")
				}
				result, err = a.SyncService.SyncCollection(ctx, c, ids, progress)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			for _, p := range result.Paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %d/%d\n", result.Uploaded, result.Total)
			return nil
		},
	}

	rootCmd.AddCommand(syncCommand)
	fs := syncCommand.Flags()
	fs.StringVarP(&flags.config, "config", "c", "", "config file")
	fs.StringVar(&flags.collection, "collection", "", "collection name")
	fs.StringVar(&flags.ids, "ids", "", "comma separated record ids")
	fs.BoolVar(&flags.all, "all", false, "upload a full snapshot")
}
