package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackielii/routedom/internal/config"
	"github.com/jackielii/routedom/internal/site"
)

func routesCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := site.Routes(cfg.BasePath)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
}
