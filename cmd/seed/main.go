package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/v2/bson"

	"hoagiehub/bootstrap"
	"hoagiehub/config"
	"hoagiehub/database"
	"hoagiehub/internal/auth"
	"hoagiehub/internal/repository"
	"hoagiehub/internal/services"
)

var (
	numUsers int
	perUser  int
	drop     bool
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the database with sample users and hoagies",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	rootCmd.Flags().IntVar(&numUsers, "users", 5, "number of users to create")
	rootCmd.Flags().IntVar(&perUser, "per-user", 5, "hoagies created for each user")
	rootCmd.Flags().BoolVar(&drop, "drop", true, "clear users, hoagies and comments first")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	if numUsers < 1 || perUser < 0 {
		return fmt.Errorf("--users must be positive and --per-user non-negative")
	}

	cfg := config.LoadConfig()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := database.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDB)

	if drop {
		for _, name := range []string{database.CollectionUsers, database.CollectionHoagies, database.CollectionComments} {
			if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
				return fmt.Errorf("clear %s: %w", name, err)
			}
		}
		slog.Info("data cleared")
	}
	if err := bootstrap.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	userSvc := services.NewUserService(userRepo, auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL))
	hoagieSvc := services.NewHoagieService(repository.NewHoagieRepository(db), userRepo, repository.NewCommentRepository(db))

	s := &seeder{Users: userSvc, Hoagies: hoagieSvc, Rand: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
	nu, nh, err := s.Run(ctx, numUsers, perUser)
	if err != nil {
		return err
	}
	slog.Info("seeding completed", "users", nu, "hoagies", nh)
	return nil
}
