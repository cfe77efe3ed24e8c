package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dori/daybook/internal/app"
	"github.com/dori/daybook/internal/model"
	"github.com/dori/daybook/internal/view"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// exportDoc is the document written by export
type exportDoc struct {
	Exported string       `json:"exported" yaml:"exported"`
	Today    string       `json:"today" yaml:"today"`
	Tasks    []model.Task `json:"tasks" yaml:"tasks"`
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every task as YAML or JSON",
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			tasks := a.Store.All()
			if tabName, _ := cmd.Flags().GetString("tab"); tabName != "" {
				tab, ok := view.ParseTab(tabName)
				if !ok {
					return fmt.Errorf("unknown tab %q", tabName)
				}
				tasks = view.Bucket(tasks, tab, a.Today())
			}

			doc := exportDoc{
				Exported: a.Engine.Now().UTC().Format("2006-01-02T15:04:05Z"),
				Today:    model.FormatDate(a.Today()),
				Tasks:    tasks,
			}

			out := cmd.OutOrStdout()
			if path, _ := cmd.Flags().GetString("output"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", path, err)
				}
				defer f.Close()
				out = f
			}

			format, _ := cmd.Flags().GetString("format")
			switch format {
			case "yaml", "yml":
				return writeYAML(out, doc)
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			default:
				return fmt.Errorf("unknown format %q (use yaml or json)", format)
			}
		}),
	}
	cmd.Flags().StringP("format", "f", "yaml", "Output format (yaml, json)")
	cmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().StringP("tab", "t", "", "Only the tasks in this tab")
	return cmd
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
