package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/daybook/internal/app"
	"github.com/dori/daybook/internal/config"
	"github.com/dori/daybook/internal/ui"
	"github.com/dori/daybook/internal/ui/theme"
	"github.com/dori/daybook/internal/view"
	"github.com/spf13/cobra"
)

var Version = "0.1.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daybook",
		Short: "daybook - a daily task tracker for the terminal",
		Long: `daybook tracks tasks by day. Tasks scheduled for today, later, or left
pending or incomplete each get a tab; overdue tasks are marked not completed
when daybook starts.

Run without a subcommand to open the terminal UI.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	cmd.PersistentFlags().String("config", "", "Config file (default "+config.DefaultPath()+")")
	cmd.Flags().String("tab", "", "Starting tab (today, pending, upcoming, finished, incomplete, stats)")
	cmd.Flags().String("theme", "", "Theme name (nord, dracula, gruvbox, catppuccin)")

	cmd.AddCommand(addCmd())
	cmd.AddCommand(checklistCmd())
	cmd.AddCommand(uploadCmd())
	cmd.AddCommand(listCmd())
	cmd.AddCommand(doneCmd())
	cmd.AddCommand(reasonCmd("pending", "Mark a task pending with a reason"))
	cmd.AddCommand(reasonCmd("incomplete", "Mark a task not completed with a reason"))
	cmd.AddCommand(moveCmd())
	cmd.AddCommand(checkCmd())
	cmd.AddCommand(deleteCmd())
	cmd.AddCommand(exportCmd())
	cmd.AddCommand(statsCmd())
	cmd.AddCommand(configCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig reads the file named by --config, or the default location
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// openApp loads config and opens the data directory for one command
func openApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	a, err := app.New(cfg)
	if errors.Is(err, app.ErrLocked) {
		return nil, fmt.Errorf("%w (close the running daybook first)", err)
	}
	return a, err
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	themeName, _ := cmd.Flags().GetString("theme")
	if themeName == "" {
		themeName = cfg.UI.Theme
	}
	if themeName != "" {
		t, ok := theme.ByName(themeName)
		if !ok {
			return fmt.Errorf("unknown theme %q", themeName)
		}
		theme.SetTheme(t)
	}

	tabName, _ := cmd.Flags().GetString("tab")
	if tabName == "" {
		tabName = cfg.UI.StartTab
	}
	tab := view.TabToday
	if tabName != "" {
		var ok bool
		if tab, ok = view.ParseTab(tabName); !ok {
			return fmt.Errorf("unknown tab %q", tabName)
		}
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	p := tea.NewProgram(
		ui.NewRootModel(application, tab),
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "daybook v%s\n", Version)
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = config.DefaultPath()
			}
			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
