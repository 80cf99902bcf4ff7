package main

import (
	"context"

	"chat-animation/config"
	"chat-animation/internal/backend"
	"chat-animation/internal/domain/animation"
	"chat-animation/internal/services"
	"chat-animation/pkg/logger"

	"github.com/spf13/cobra"
)

// session is what every subcommand works on, opened in PersistentPreRunE.
type session struct {
	cfg     *config.Config
	backend *backend.Backend
	manager *services.AnimationSettingsManager
	logger  *logger.Logger
}

type rootOptions struct {
	backend   string
	exportDir string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	s := &session{}

	root := &cobra.Command{
		Use:           "animctl",
		Short:         "Inspect and edit chat animation settings",
		Long:          `animctl reads and writes the per-type animation presets in the configured store and moves them in and out of export documents.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.open(cmd.Context(), opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			s.close()
		},
	}

	root.PersistentFlags().StringVar(&opts.backend, "backend", "", "store backend: redis, postgres or memory (default STORE_BACKEND)")
	root.PersistentFlags().StringVar(&opts.exportDir, "export-dir", "", "directory for export files (default EXPORT_DIR or ~/Documents)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		newShowCmd(s),
		newExportCmd(s),
		newImportCmd(s),
		newResetCmd(s),
		newTokenCmd(s),
	)
	return root
}

func (s *session) open(ctx context.Context, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s.cfg = config.LoadConfig()
	if opts.backend != "" {
		s.cfg.StoreBackend = opts.backend
	}
	if opts.exportDir != "" {
		s.cfg.ExportDir = opts.exportDir
	}

	s.logger = logger.NewNop()
	if opts.verbose {
		s.logger = logger.New(logger.DevelopmentMode)
	}
	logger.SetGlobalLogger(s.logger)

	b, err := backend.Open(ctx, s.cfg, nil)
	if err != nil {
		return err
	}
	s.backend = b
	s.manager = services.NewAnimationSettingsManager(ctx, b.Store, s.logger, services.WithExportDir(s.cfg.ExportDir))
	return nil
}

func (s *session) close() {
	if s.backend != nil {
		s.backend.Close()
	}
	if s.logger != nil {
		s.logger.Sync()
	}
}

// typeFlag parses repeated --type values; none means every type.
func typeFlag(values []string) ([]animation.Type, error) {
	types := make([]animation.Type, 0, len(values))
	for _, v := range values {
		t, err := animation.ParseType(v)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}
