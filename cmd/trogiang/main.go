package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lehuyanh/trogiang/internal/profile"
	"github.com/lehuyanh/trogiang/server"
	"github.com/lehuyanh/trogiang/server/ai"
	"github.com/lehuyanh/trogiang/store"
	"github.com/lehuyanh/trogiang/store/db"
)

const version = "0.1.0"

var (
	rootCmd = &cobra.Command{
		Use:   "trogiang",
		Short: "Trợ giảng AI cho giáo viên",
		Run: func(_ *cobra.Command, _ []string) {
			instanceProfile := &profile.Profile{
				Mode:       viper.GetString("mode"),
				Addr:       viper.GetString("addr"),
				Port:       viper.GetInt("port"),
				Data:       viper.GetString("data"),
				Driver:     viper.GetString("driver"),
				DSN:        viper.GetString("dsn"),
				LLMAPIKey:  viper.GetString("llm-api-key"),
				LLMBaseURL: viper.GetString("llm-base-url"),
				LLMModel:   viper.GetString("llm-model"),
				Version:    version,
			}
			if err := instanceProfile.Validate(); err != nil {
				slog.Error("invalid configuration", "error", err)
				os.Exit(1)
			}

			ctx, cancel := context.WithCancel(context.Background())
			dbDriver, err := db.NewDBDriver(instanceProfile)
			if err != nil {
				cancel()
				slog.Error("failed to create db driver", "error", err)
				os.Exit(1)
			}

			storeInstance := store.New(dbDriver, instanceProfile)
			if err := storeInstance.Migrate(ctx); err != nil {
				cancel()
				slog.Error("failed to migrate database", "error", err)
				os.Exit(1)
			}

			llm, err := ai.NewProvider(ai.NewConfigFromProfile(instanceProfile))
			if err != nil {
				cancel()
				slog.Error("failed to create llm provider", "error", err)
				os.Exit(1)
			}
			if !instanceProfile.IsAIEnabled() {
				slog.Warn("no llm api key configured, chat requests will fail")
			}

			s, err := server.NewServer(ctx, instanceProfile, storeInstance, llm)
			if err != nil {
				cancel()
				slog.Error("failed to create server", "error", err)
				os.Exit(1)
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			go func() {
				sig := <-sigCh
				slog.Info("received signal, shutting down", "signal", sig.String())
				s.Shutdown(ctx)
				cancel()
			}()

			printGreetings(instanceProfile)

			if err := s.Start(ctx); err != nil {
				slog.Error("failed to start server", "error", err)
				cancel()
			}

			<-ctx.Done()
		},
	}
)

func init() {
	viper.SetDefault("mode", "dev")
	viper.SetDefault("driver", "sqlite")
	viper.SetDefault("addr", "")
	viper.SetDefault("port", 8081)
	viper.SetDefault("data", "")

	rootCmd.PersistentFlags().String("mode", "dev", `mode of server, can be "prod" or "dev"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 8081, "port of server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", "database driver")
	rootCmd.PersistentFlags().String("dsn", "", "database source name (aka. DSN)")
	rootCmd.PersistentFlags().String("llm-api-key", "", "api key for the llm endpoint")
	rootCmd.PersistentFlags().String("llm-base-url", "", "base url of the llm endpoint")
	rootCmd.PersistentFlags().String("llm-model", "", "chat model name")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}

	viper.SetEnvPrefix("trogiang")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func printGreetings(p *profile.Profile) {
	fmt.Printf(`---
Server profile
version: %s
data: %s
dsn: %s
addr: %s
port: %d
mode: %s
driver: %s
---
`, p.Version, p.Data, p.DSN, p.Addr, p.Port, p.Mode, p.Driver)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("failed to run command", "error", err)
		os.Exit(1)
	}
}
