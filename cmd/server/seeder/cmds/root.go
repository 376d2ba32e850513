package cmds

import (
	"context"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("github.com/clubhub/club-api/cmd/seeder")

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Populate the database with randomized development fixtures",
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
