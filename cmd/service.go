package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/talenthub/internal/api"
	"github.com/abhisek/talenthub/internal/logger"
	"github.com/abhisek/talenthub/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the block catalogue, renderer and scorer over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := logger.New(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Server.Addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(server.Options{Version: version, Render: renderOptions(), Logger: log})
		return srv.ListenAndServe(ctx, addr)
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the generation service and the local journal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := logger.New(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		out := cmd.OutOrStdout()
		failed := 0
		check := func(name string, err error) {
			if err != nil {
				failed++
				fmt.Fprintf(out, "fail  %-10s %v\n", name, err)
				return
			}
			fmt.Fprintf(out, "ok    %s\n", name)
		}

		client := newClient(log)
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		fmt.Fprintf(out, "Service: %s\n", cfg.API.BaseURL)
		check("health", client.Health(ctx))

		info, err := client.ServiceInfo(ctx)
		if err == nil {
			fmt.Fprintf(out, "        %s %s\n", info.Message, info.Version)
			err = api.CheckCompatible(info.Version)
		}
		check("version", err)

		st, err := openStore(cmd)
		if err == nil {
			err = st.Close()
		}
		check("journal", err)

		if failed > 0 {
			return fmt.Errorf("%d check(s) failed", failed)
		}
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Exchange an identity-provider token for a service session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, _ := cmd.Flags().GetString("token")
		if token == "" {
			return fmt.Errorf("--token is required")
		}
		log, err := logger.New(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		resp, err := newClient(log).Login(cmd.Context(), api.LoginRequest{Token: token})
		if err != nil {
			log.Warn("login failed", zap.Error(err))
			return serviceError("login", err)
		}

		out := cmd.OutOrStdout()
		name := resp.User.DisplayName
		if name == "" {
			name = resp.User.Name
		}
		fmt.Fprintf(out, "Signed in as %s (%s)\n", name, resp.User.Email)
		fmt.Fprintf(out, "Points %d · streak %d\n\n", resp.User.TotalPoints, resp.User.CurrentStreak)
		fmt.Fprintf(out, "export TALENTHUB_API_TOKEN=%s\n", resp.AccessToken)
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default: server.addr from the config)")
	loginCmd.Flags().String("token", "", "Identity-provider token")
}
