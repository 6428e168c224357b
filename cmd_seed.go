package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"pmfolio/web/internal/seed"
)

var seedOpts = seed.DefaultOptions()

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the configured store with demo profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.close()

		seedOpts.EmailDomain = a.cfg.UsernameEmailDomain
		sum, err := seed.NewFactory(a.store, seedOpts, a.log).Run(cmd.Context())
		if err != nil {
			return err
		}
		for _, u := range sum.Users {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", u.ID, u.Email)
		}
		a.log.WithFields(logrus.Fields{
			"users":           len(sum.Users),
			"projects":        sum.Projects,
			"recommendations": sum.Recommendations,
		}).Info("Seed complete")
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedOpts.Users, "users", seedOpts.Users, "number of users to create")
	seedCmd.Flags().IntVar(&seedOpts.ProjectsPerUser, "projects", seedOpts.ProjectsPerUser, "projects per user")
	seedCmd.Flags().IntVar(&seedOpts.RecommendationsPerUser, "recommendations", seedOpts.RecommendationsPerUser, "recommendations per user")
	seedCmd.Flags().Int64Var(&seedOpts.Seed, "seed", 0, "random seed for reproducible data (0 picks one)")
}
