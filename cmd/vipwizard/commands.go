package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/junglebet-games/viptransfer/internal/buildinfo"
	"github.com/junglebet-games/viptransfer/internal/shutdown"
	"github.com/junglebet-games/viptransfer/internal/terminal"
	"github.com/junglebet-games/viptransfer/internal/wizard"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "vipwizard",
		Short:        "JungleBet VIP transfer questionnaire in the terminal",
		Version:      buildinfo.ProjectVersion,
		SilenceUsage: true,
	}

	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newStepsCommand())

	return cmd
}

func newRunCommand() *cobra.Command {
	var (
		noColor          bool
		support          string
		attestationDelay time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Walk through the VIP transfer questionnaire",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, done := shutdown.New()
			defer done()

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprint(out, buildinfo.Graffiti)
			_, _ = fmt.Fprintf(out, buildinfo.GreetingCLI, buildinfo.ProjectName, buildinfo.ProjectVersion, buildinfo.SiteURL)

			colored := !noColor && (isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
			runner := terminal.New(cmd.InOrStdin(), out, terminal.Config{
				Colored:          colored,
				AttestationDelay: attestationDelay,
				SupportContact:   support,
			})

			if _, err := runner.Run(ctx); err != nil && !errors.Is(err, terminal.ErrQuit) {
				return fmt.Errorf("run questionnaire: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.Flags().StringVar(&support, "support", "@junglebet_support", "support contact shown on the final screens")
	cmd.Flags().DurationVar(&attestationDelay, "attestation-delay", wizard.DefaultAttestationDelay, "duration of the simulated Stake.com check")

	return cmd
}

func newStepsCommand() *cobra.Command {
	var (
		platform string
		bonus    bool
	)

	cmd := &cobra.Command{
		Use:   "steps",
		Short: "Print the questionnaire steps for a platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := wizard.PlatformNone
			if platform != "" {
				var err error
				if p, err = wizard.ParsePlatform(platform); err != nil {
					return err
				}
			}

			for i, step := range wizard.Sequence(p, bonus) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, step.Title())
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "transferring platform (Stake.com, BC.Game, Shuffle, Other)")
	cmd.Flags().BoolVar(&bonus, "bonus", false, "wagered over $1,000 in the last 7 days")

	return cmd
}
