package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/SumanthCsy/Mens-Club-sub000/app/configs"
	"github.com/SumanthCsy/Mens-Club-sub000/app/db/seeders"
	"github.com/SumanthCsy/Mens-Club-sub000/app/models/migrations"
	"github.com/SumanthCsy/Mens-Club-sub000/app/repositories"
	"github.com/SumanthCsy/Mens-Club-sub000/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func RunCli() {
	env := configs.LoadEnv()
	logger, err := configs.InitLogger(env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewCommand(env).Run(ctx, os.Args); err != nil {
		zap.S().Errorf("RunCli: %v", err)
		stop()
		os.Exit(1)
	}
}

func NewCommand(env configs.ENV) *cli.Command {
	serveCmd := &cli.Command{
		Name:  "serve",
		Usage: "Run the storefront API server",
		Action: func(ctx context.Context, c *cli.Command) error {
			return Serve(ctx, env)
		},
	}

	return &cli.Command{
		Name:   "mensclub",
		Usage:  "Mens Club Keshavapatnam storefront backend",
		Action: serveCmd.Action,
		Commands: []*cli.Command{
			serveCmd,
			{
				Name:  "migrate",
				Usage: "Create or update the documents table (mysql driver)",
				Action: func(ctx context.Context, c *cli.Command) error {
					if env.StoreDriver != configs.DriverMySQL {
						zap.S().Infof("migrate: nothing to do for store driver %s", env.StoreDriver)
						return nil
					}
					db, err := configs.OpenConnection(ctx, env)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					zap.S().Info("migrate: migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Load the sample catalogue, coupons, settings and admin user",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "fake",
						Usage: "number of extra random products",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					store, err := configs.OpenStore(ctx, env)
					if err != nil {
						return err
					}
					defer func() { _ = store.Close(context.Background()) }()

					validate := validator.New()
					d := seeders.Deps{
						ProductRepo:  repositories.NewProductRepository(store),
						SettingsRepo: repositories.NewSettingsRepository(store),
						Coupons:      services.NewCouponService(repositories.NewCouponRepository(store)),
						Auth:         services.NewAuthService(repositories.NewUserRepository(store), validate),
					}
					opts := seeders.Options{
						FakeProducts:  int(c.Int("fake")),
						AdminName:     env.AdminName,
						AdminEmail:    env.AdminEmail,
						AdminPassword: env.AdminPassword,
					}
					if err := seeders.DBSeed(ctx, d, opts); err != nil {
						return err
					}
					zap.S().Info("seed: seeding complete")
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session authentication and encryption keys for .env",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Value: ".env.new_keys",
						Usage: "file the keys are written to",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					path := c.String("out")
					keys, err := configs.WriteSessionKeys(path)
					if err != nil {
						return err
					}
					fmt.Printf("APP_AUTH_KEY=%s\nAPP_ENC_KEY=%s\n", keys.AuthKey, keys.EncKey)
					zap.S().Infof("generate-keys: keys written to %s, copy them into .env", path)
					return nil
				},
			},
		},
	}
}
