package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Rakhulsr/go-ecommerce-api/app/configs"
	"github.com/Rakhulsr/go-ecommerce-api/app/db/seeders"
	"github.com/Rakhulsr/go-ecommerce-api/app/models/migrations"
	"github.com/Rakhulsr/go-ecommerce-api/app/repositories"
	"github.com/Rakhulsr/go-ecommerce-api/app/services"
	"github.com/urfave/cli/v3"
	"gorm.io/gorm"
)

func RunCli() {
	env := configs.LoadEnv()

	cmd := &cli.Command{
		Name:  "go-ecommerce-api",
		Usage: "E-commerce order API",
		Action: func(ctx context.Context, c *cli.Command) error {
			return Serve(ctx, env)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the HTTP API",
				Action: func(ctx context.Context, c *cli.Command) error {
					return Serve(ctx, env)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Println("migrate: migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Seed categories and fake products",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "products",
						Value: 5,
						Usage: "products to create per category",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := openMigrated(env)
					if err != nil {
						return err
					}
					if err := seeders.DBSeed(ctx, db, c.Int("products")); err != nil {
						return err
					}
					log.Println("seed: seeding complete")
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new token and session keys for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					return configs.GenerateAndPrintSessionKeys(os.Stdout)
				},
			},
			{
				Name:  "create-admin",
				Usage: "Create an admin account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := openMigrated(env)
					if err != nil {
						return err
					}
					auth := services.NewAuthService(repositories.NewUserRepository(db), nil, false)
					user, err := auth.CreateAdmin(ctx, c.String("email"), c.String("password"))
					if err != nil {
						return err
					}
					fmt.Printf("Admin %s created with id %s\n", user.Email, user.ID)
					return nil
				},
			},
			{
				Name:  "orders-report",
				Usage: "Print every order as a table",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					orders := services.NewOrderService(
						db,
						repositories.NewProductRepository(db),
						repositories.NewUserRepository(db),
						repositories.NewOrderRepository(db),
						repositories.NewOrderItemRepository(db),
						nil,
					)
					views, err := orders.AllOrders(ctx)
					if err != nil {
						return err
					}
					return WriteOrdersReport(os.Stdout, views)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func openMigrated(env configs.ENV) (*gorm.DB, error) {
	db, err := configs.OpenConnection(env)
	if err != nil {
		return nil, err
	}
	if err := migrations.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return db, nil
}
