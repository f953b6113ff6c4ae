package main

import (
	"encoding/json"
	"io"
	"os"

	libDiscord "github.com/gamenight-tools/discord-forms-gateway/internal/discord"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newClientFn builds the Client the register command talks to Discord
// through.
type newClientFn func() (libDiscord.Client, error)

// newRootCommand assembles the registrar's command tree.
func newRootCommand(logger *zap.Logger, newClient newClientFn) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "registrar",
		Short: "Manage the slash commands of the Discord Forms Gateway",
		Long: `Manage the slash commands that open the Discord Forms Gateway's
registration forms.

Available subcommands:
  print    - Print the slash command definitions as JSON
  register - Replace the application's slash commands with these definitions`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		newPrintCommand(),
		newRegisterCommand(logger, newClient),
	)
	return rootCmd
}

func newPrintCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the slash command definitions as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "" {
				return printCommands(cmd.OutOrStdout())
			}
			file, err := os.Create(output)
			if err != nil {
				return errors.Wrapf(err, "error creating %s", output)
			}
			defer file.Close()
			return printCommands(file)
		},
	}
	cmd.Flags().StringVarP(
		&output,
		"output",
		"o",
		"",
		"write the definitions to this file instead of stdout",
	)
	return cmd
}

func printCommands(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return errors.Wrap(
		encoder.Encode(libDiscord.Commands()),
		"error encoding command definitions",
	)
}

func newRegisterCommand(logger *zap.Logger, newClient newClientFn) *cobra.Command {
	var guildID string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Replace the application's slash commands",
		Long: `Replace the application's slash commands with the definitions this
gateway understands. Commands are registered globally unless a guild is
specified, in which case they are only visible in that guild but take effect
immediately.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			commands := libDiscord.Commands()
			logger.Info(
				"registering commands",
				zap.Int("count", len(commands)),
				zap.String("guildID", guildID),
			)
			registered, err := client.OverwriteCommands(
				cmd.Context(),
				guildID,
				commands,
			)
			if err != nil {
				return err
			}
			for _, command := range registered {
				logger.Info(
					"registered command",
					zap.String("name", "/"+command.Name),
					zap.String("id", command.ID),
				)
			}
			logger.Info("registration complete", zap.Int("count", len(registered)))
			return nil
		},
	}
	cmd.Flags().StringVarP(
		&guildID,
		"guild",
		"g",
		"",
		"register the commands in this guild only",
	)
	return cmd
}
