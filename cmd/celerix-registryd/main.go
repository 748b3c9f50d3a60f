package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/celerix-dev/celerix-registry/internal/api"
	"github.com/celerix-dev/celerix-registry/internal/config"
	"github.com/celerix-dev/celerix-registry/internal/engine"
	"github.com/celerix-dev/celerix-registry/internal/logging"
	"github.com/celerix-dev/celerix-registry/internal/schema"
	"github.com/celerix-dev/celerix-registry/internal/service"
	"github.com/celerix-dev/celerix-registry/internal/vault"
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := &cli.App{
		Name:  "celerix-registryd",
		Usage: "Celerix employee registry daemon",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a TOML config file",
				EnvVars: []string{"CELERIX_CONFIG"},
			},
		},
		Action: func(c *cli.Context) error {
			return run(c.String("config"))
		},
		Commands: []*cli.Command{
			{
				Name:      "migrate",
				Usage:     "copy records from another data directory into the configured one",
				ArgsUsage: "<source-data-dir>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("Usage: celerix-registryd migrate <source-data-dir>", 2)
					}
					return migrate(c.String("config"), c.Args().First())
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(configPath string) error {
	fmt.Println("Starting Celerix Registry Daemon...")

	// 1. Configuration and logs
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	errLog, errCloser := logging.Open(cfg.Log.ErrorFile, cfg.Log.Debug)
	defer errCloser.Close()
	reqLog, reqCloser := logging.Open(cfg.Log.RequestFile, cfg.Log.Debug)
	defer reqCloser.Close()

	// 2. Schema
	doc, err := schema.Load(cfg.Schema.File)
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	entitySchema, ok := doc[cfg.Storage.Entity]
	if !ok {
		return fmt.Errorf("schema %s has no %q entry", cfg.Schema.File, cfg.Storage.Entity)
	}

	// 3. Persistence, cache and id allocator
	store, err := engine.NewFileStore(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("initialize persistence: %w", err)
	}
	svc, err := service.New(store, entitySchema, service.Options{
		Entity:           cfg.Storage.Entity,
		IDPrefix:         cfg.Storage.IDPrefix,
		UniqueAttr:       cfg.Storage.UniqueAttr,
		InternalErrorMsg: cfg.Messages.InternalError,
		Logger:           errLog,
	})
	if err != nil {
		return fmt.Errorf("load %s records: %w", cfg.Storage.Entity, err)
	}
	fmt.Printf("Engine started. Loaded %d %s records, last id %s.\n", svc.Count(), svc.Entity(), svc.LastID())

	// 4. HTTP API
	if !cfg.Log.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), api.RequestLogger(reqLog), api.Authenticate(), api.CORS())
	(&api.Handler{Service: svc}).Register(r)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: r}

	// 5. TLS
	if !cfg.Server.DisableTLS {
		fmt.Println("Generating self-signed certificate for internal TLS...")
		cert, err := vault.GenerateSelfSignedCert()
		if err != nil {
			return fmt.Errorf("generate TLS certificate: %w", err)
		}
		srv.TLSConfig = &tls.Config{Certificates: []tls.Certificate{cert}}
		fmt.Println("TLS encryption enabled.")
	} else {
		fmt.Println("TLS encryption disabled.")
	}

	// 6. Serve until a signal arrives
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		fmt.Printf("HTTP API listening on %s\n", cfg.Server.Addr)
		if srv.TLSConfig != nil {
			serveErr <- srv.ListenAndServeTLS("", "")
		} else {
			serveErr <- srv.ListenAndServe()
		}
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// 7. Graceful shutdown
	fmt.Println("\nShutdown signal received. Draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	fmt.Println("Shutdown complete. Exiting.")
	return nil
}

func migrate(configPath, srcDir string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	src, err := engine.NewFileStore(srcDir)
	if err != nil {
		return err
	}
	dst, err := engine.NewFileStore(cfg.Storage.DataDir)
	if err != nil {
		return err
	}

	copied, err := engine.Migrate(src, dst, cfg.Storage.Entity)
	if err != nil {
		return err
	}
	fmt.Printf("Copied %d %s records from %s to %s.\n", copied, cfg.Storage.Entity, srcDir, cfg.Storage.DataDir)
	return nil
}
