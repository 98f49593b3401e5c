package session

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/dex-wallet/internal/api"
	"github/chapool/dex-wallet/internal/util/command"
	"github/chapool/dex-wallet/internal/wallet/seed"
	"golang.org/x/term"
)

const (
	wordsFlag    = "words"
	generateFlag = "generate"
)

func newLogin() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with mnemonic words",
		Long: `Replaces the current session with one derived from the given mnemonic words.

Without --words the words are read from the terminal with hidden input.
With --generate a fresh mnemonic is created and printed once.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			words, err := cmd.Flags().GetString(wordsFlag)
			if err != nil {
				return err
			}

			generate, err := cmd.Flags().GetBool(generateFlag)
			if err != nil {
				return err
			}

			return runLogin(cmd, words, generate)
		},
	}

	cmd.Flags().String(wordsFlag, "", "space separated mnemonic words")
	cmd.Flags().Bool(generateFlag, false, "generate a new mnemonic instead of reading one")
	cmd.MarkFlagsMutuallyExclusive(wordsFlag, generateFlag)

	return cmd
}

func runLogin(cmd *cobra.Command, input string, generate bool) error {
	var (
		words []string
		err   error
	)

	switch {
	case generate:
		words, err = seed.NewWords(seed.DefaultEntropyBits)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Generated mnemonic, write it down:\n\n  %s\n\n", seed.Join(words))
	case len(strings.TrimSpace(input)) > 0:
		words = seed.Split(input)
	default:
		input, err = promptWords(cmd, "Enter mnemonic words: ")
		if err != nil {
			return err
		}
		words = seed.Split(input)
	}

	return command.WithServer(cmd.Context(), command.ConfigFromViper(), func(ctx context.Context, s *api.Server) error {
		if err := s.Session.Login(ctx, words); err != nil {
			return err
		}

		return printStatus(cmd, s.Session.Status())
	})
}

func promptWords(cmd *cobra.Command, prompt string) (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec // stdin descriptor fits int
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal, pass --words")
	}

	fmt.Fprint(cmd.ErrOrStderr(), prompt)

	// Read words from terminal (hides input)
	input, err := term.ReadPassword(fd)
	if err != nil {
		return "", errors.Wrap(err, "failed to read words from terminal")
	}

	fmt.Fprintln(cmd.ErrOrStderr())

	return string(input), nil
}
