package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doleances-service/internal/domain"
)

var areasCmd = &cobra.Command{
	Use:   "areas <region|district|commune>",
	Short: "Print every area of one administrative level",
	Args:  cobra.ExactArgs(1),
	RunE:  runAreas,
}

func runAreas(cmd *cobra.Command, args []string) error {
	level, err := domain.ParseAdminLevel(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	areas, err := newClient().Areas(ctx, level)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, a := range areas {
		if parents := a.ParentNames(); len(parents) > 0 {
			fmt.Fprintf(out, "%s\t%s\t%s\n", a.Code, a.Name, joinParents(parents))
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", a.Code, a.Name)
	}
	return nil
}
