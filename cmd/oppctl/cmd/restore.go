package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastopp/fastopp/internal/config"
	"github.com/fastopp/fastopp/internal/logger"
	"github.com/fastopp/fastopp/internal/storage"
)

func RestoreCmd() *cobra.Command {
	var dir, prefix string

	c := &cobra.Command{
		Use:   "restore",
		Short: "Download bucket objects under a prefix into the upload directory",
		Long: `Downloads every object under the given key prefix to the matching
path under the upload root, creating directories as needed. Existing
local files are overwritten with the remote copy.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

			if dir == "" {
				dir = cfg.UploadDir
			}

			sync, err := storage.NewBackupSync(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			count, errs := sync.Restore(cmd.Context(), prefix, dir)
			for _, e := range errs {
				fmt.Printf("error: %v\n", e)
			}
			fmt.Printf("restored %d files to %s (%d errors)\n", count, dir, len(errs))
			return nil
		},
	}

	c.Flags().StringVar(&dir, "dir", "", "local directory to restore into (default: UPLOAD_DIR)")
	c.Flags().StringVar(&prefix, "prefix", "sample_photos/", "bucket key prefix to restore")
	return c
}
