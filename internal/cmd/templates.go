package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/keefcreative/dwb-mcp-server-trello/internal/output"
	"github.com/keefcreative/dwb-mcp-server-trello/internal/templates"
)

var templatesFormat string

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available board templates",
	Long: `List the board templates available to create_board_from_template.
Embedded templates ship with the binary; files in the configured template
directory override them by name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		format, err := output.ParseFormat(templatesFormat)
		if err != nil {
			return err
		}

		registry, err := templates.LoadRegistry(cfg.Templates.Dir)
		if err != nil {
			return err
		}

		tpls := make([]*templates.Template, 0, len(registry))
		for _, tpl := range registry {
			tpls = append(tpls, tpl)
		}
		sort.Slice(tpls, func(i, j int) bool { return tpls[i].Name < tpls[j].Name })

		rendered, err := output.NewFormatter(format).FormatTemplates(tpls)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.Flags().StringVarP(&templatesFormat, "format", "f", "table", "output format (table, json, markdown)")
}
