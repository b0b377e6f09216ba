package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio-server/internal/seed"
	"github.com/Zachkp/portfolio-server/internal/store"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	File  string
	Force bool
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the services and portfolio collections",
		Long: `Fill the services and portfolio collections.

Without --file the built-in site content is used. Collections that already
hold records are left alone unless --force is given.

Example:
  portfolio-server seed --file content/seed.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "YAML seed file")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "seed collections even if they already have records")

	return cmd
}

func runSeed(cmd *cobra.Command, opts *SeedOptions) error {
	data := seed.Default()
	if opts.File != "" {
		var err error
		if data, err = seed.Load(opts.File); err != nil {
			return err
		}
	}

	s, err := store.Open(opts.Config.DataDir)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := seed.Apply(cmd.Context(), s, data, opts.Force, opts.Log)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d services and %d portfolio items\n", res.Services, res.Portfolio)
	for _, name := range res.Skipped {
		fmt.Fprintf(cmd.OutOrStdout(), "  skipped %s (already has records, use --force)\n", name)
	}
	return nil
}
