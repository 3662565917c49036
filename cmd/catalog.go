package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/flagquiz/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the flags a round is drawn from",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg, zap.NewNop())
		if err != nil {
			return err
		}
		if cat.Len() == 0 {
			return fmt.Errorf("no flags found for region %q", cfg.Region)
		}

		countries, _ := cmd.Flags().GetBool("countries")
		if countries {
			for _, name := range cat.Countries() {
				fmt.Println(name)
			}
			fmt.Printf("\n%d countries\n", len(cat.Countries()))
			return nil
		}

		fmt.Printf("%-32s  %-24s  %s\n", "ID", "Country", "Image")
		fmt.Println(strings.Repeat("─", 90))
		for _, id := range cat.IDs() {
			fmt.Printf("%-32s  %-24s  %s\n", id, catalog.CountryName(id), cat.ImagePath(id))
		}

		fmt.Printf("\n%d flags in %s", cat.Len(), cat.Region())
		if cat.Len() < 10 {
			fmt.Print(" (a round needs at least 10)")
		}
		fmt.Println()
		return nil
	},
}

func init() {
	catalogCmd.Flags().Bool("countries", false, "List distinct country names only")
}
