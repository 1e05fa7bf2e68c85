package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"auroractl/internal/aurora"
	"auroractl/internal/config"
	"auroractl/internal/logging"
	"auroractl/internal/service"
	"auroractl/internal/session"
)

var version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "auroractl",
	Short:         "Aurora inverter telemetry client",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Poll the inverter and publish readings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		log := logging.New("auroractl", logging.ProfileRuntime)

		svc, err := service.New(cfg, log)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log.Info().Str("version", version).Msg("starting")
		err = svc.Run(ctx)
		if err == nil {
			log.Info().Msg("stopped")
		}
		return err
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Query device identity and state once",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		logging.New("auroractl", logging.ProfileRuntime)

		sess, err := session.Dial(cfg.SessionTransport(), cfg.Inverter.Address)
		if err != nil {
			return err
		}
		defer sess.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		part, err := sess.Call(ctx, aurora.PartNumberRequest{})
		if err != nil {
			return fmt.Errorf("part number: %w", err)
		}
		serial, err := sess.Call(ctx, aurora.SerialNumberRequest{})
		if err != nil {
			return fmt.Errorf("serial number: %w", err)
		}
		ver, err := sess.Call(ctx, aurora.VersionRequest{})
		if err != nil {
			return fmt.Errorf("version: %w", err)
		}
		made, err := sess.Call(ctx, aurora.ManufactureDateRequest{})
		if err != nil {
			return fmt.Errorf("manufacture date: %w", err)
		}
		state, err := sess.Call(ctx, aurora.StateRequest{})
		if err != nil {
			return fmt.Errorf("state: %w", err)
		}

		p := part.(aurora.PartNumberResponse)
		sn := serial.(aurora.SerialNumberResponse)
		v := ver.(aurora.VersionResponse)
		d := made.(aurora.ManufactureDateResponse)
		st := state.(aurora.StateResponse)

		fmt.Printf("part number:      %s\n", p)
		fmt.Printf("serial number:    %s\n", sn)
		fmt.Printf("version:          %c.%c.%c.%c\n", v.Par1, v.Par2, v.Par3, v.Par4)
		fmt.Printf("manufactured:     week %s of 20%s\n", d.Week[:], d.Year[:])
		fmt.Printf("global state:     %s\n", st.Global)
		fmt.Printf("inverter state:   %s\n", st.Inverter)
		fmt.Printf("dc/dc 1 state:    %s\n", st.DcDc1)
		fmt.Printf("dc/dc 2 state:    %s\n", st.DcDc2)
		fmt.Printf("alarm code:       %d\n", st.Alarm)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("auroractl %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "auroractl.toml", "configuration file path")
	rootCmd.AddCommand(runCmd, infoCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "auroractl: %v\n", err)
		os.Exit(1)
	}
}
