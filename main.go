package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/yy933/twitter-api-2020/internal/config"
	"github.com/yy933/twitter-api-2020/internal/database"
	"github.com/yy933/twitter-api-2020/internal/router"
	"github.com/yy933/twitter-api-2020/internal/util"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:          "twitter-api",
		Short:        "Microblogging API server",
		SilenceUsage: true,
		// 不带子命令时直接启动服务
		RunE: func(cmd *cobra.Command, args []string) error { return serve() },
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "config file path")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			RunE:  func(cmd *cobra.Command, args []string) error { return serve() },
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Run database migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				_, _, err := setup()
				return err
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Insert demo accounts, tweets and follow edges",
			RunE:  func(cmd *cobra.Command, args []string) error { return seed(cmd) },
		},
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration, opens the database and runs migrations.
func setup() (*config.Config, *gorm.DB, error) {
	// load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if err := setupLog(cfg.Log); err != nil {
		return nil, nil, err
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("init database: %w", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, fmt.Errorf("migrate database: %w", err)
	}
	return cfg, db, nil
}

func serve() error {
	cfg, db, err := setup()
	if err != nil {
		return err
	}

	// setup router
	r := router.SetupRouter(cfg, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		return fmt.Errorf("run server: %w", err)
	}
	return nil
}

func seed(cmd *cobra.Command) error {
	cfg, db, err := setup()
	if err != nil {
		return err
	}

	hasher := util.NewBcryptHasher(cfg.Security.BcryptCost)
	err = database.Seed(cmd.Context(), db, hasher)
	if errors.Is(err, database.ErrAlreadySeeded) {
		log.Printf("seed skipped: %v", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	log.Printf("seed completed")
	return nil
}

// setupLog 同时输出到 stderr 和日志文件
func setupLog(cfg config.LogConfig) error {
	log.SetFlags(cfg.Flags())
	if cfg.File == "" {
		return nil
	}
	if err := ensureDir(filepath.Dir(cfg.File)); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))
	return nil
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
