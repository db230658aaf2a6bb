package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastopp/fastopp/internal/config"
	"github.com/fastopp/fastopp/internal/logger"
	"github.com/fastopp/fastopp/internal/storage"
)

func BackupCmd() *cobra.Command {
	var dir string

	c := &cobra.Command{
		Use:   "backup",
		Short: "Upload every file under the upload directory to the bucket",
		Long: `Recursively copies local uploads into the configured S3-compatible
bucket, keyed by path relative to the upload root. Best-effort: a file
that cannot be copied is reported and the rest of the pass continues.`,
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

			count, errs := sync.Backup(cmd.Context(), dir)
			for _, e := range errs {
				fmt.Printf("error: %v\n", e)
			}
			fmt.Printf("backed up %d files from %s (%d errors)\n", count, dir, len(errs))
			return nil
		},
	}

	c.Flags().StringVar(&dir, "dir", "", "local directory to back up (default: UPLOAD_DIR)")
	return c
}
