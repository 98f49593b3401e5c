package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/dex-wallet/cmd/chains"
	"github/chapool/dex-wallet/cmd/env"
	"github/chapool/dex-wallet/cmd/probe"
	"github/chapool/dex-wallet/cmd/server"
	"github/chapool/dex-wallet/cmd/session"
	"github/chapool/dex-wallet/internal/config"
	"github/chapool/dex-wallet/internal/util/command"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: config.GetFormattedBuildArgs(),
	Use:     "app",
	Short:   config.ModuleName,
	Long: fmt.Sprintf(`%v

A single session demo wallet: log in with mnemonic words or watch an address.
Configured through ENV (or a .env file), selected values can be overridden by flags.`, config.ModuleName),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := command.BindPersistentFlags(rootCmd); err != nil {
		log.Fatal().Err(err).Msg("Failed to bind flags")
	}

	// attach the subcommands
	rootCmd.AddCommand(
		chains.New(),
		env.New(),
		probe.New(),
		server.New(),
		session.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}
