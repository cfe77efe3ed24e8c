package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dori/daybook/internal/app"
	"github.com/dori/daybook/internal/lifecycle"
	"github.com/dori/daybook/internal/model"
	"github.com/dori/daybook/internal/quickadd"
	"github.com/dori/daybook/internal/schedule"
	"github.com/dori/daybook/internal/view"
	"github.com/spf13/cobra"
)

// withApp runs fn against an open App and closes it afterwards
func withApp(fn func(cmd *cobra.Command, a *app.App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd, a, args)
	}
}

// resolveTask finds a task by id or unique id prefix
func resolveTask(a *app.App, ref string) (model.Task, error) {
	if t, ok := a.Store.Get(ref); ok {
		return t, nil
	}
	var found []model.Task
	for _, t := range a.Store.All() {
		if strings.HasPrefix(t.ID, ref) {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 0:
		return model.Task{}, fmt.Errorf("no task matches %q", ref)
	case 1:
		return found[0], nil
	default:
		return model.Task{}, fmt.Errorf("%q matches %d tasks", ref, len(found))
	}
}

// report prints the engine's latest message for an accepted operation
func report(w io.Writer, a *app.App, ok bool, rejected string) error {
	if !ok {
		return fmt.Errorf("%s", rejected)
	}
	if toast, found := a.Toasts.Latest(); found {
		fmt.Fprintln(w, toast.Message)
	}
	return nil
}

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <task>",
		Short: "Quick add a task",
		Long: `Quick add a task. Words prefixed with @ set the category, ! the
priority and on: or due: the date.

  daybook add "Review PR @Work !high on:tomorrow"`,
		Args: cobra.MinimumNArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			draft := quickadd.Parse(strings.Join(args, " "), a.Today())
			task, ok := a.Engine.Create(draft)
			if !ok {
				return fmt.Errorf("a task needs a title")
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created: %s (%s)\n", task.Title, shortID(task.ID))
			fmt.Fprintf(out, "Date: %s [%s]\n", model.FormatDate(task.Date), task.Status)
			if task.Priority != model.PriorityMedium {
				fmt.Fprintf(out, "Priority: %s\n", task.Priority)
			}
			if task.Category != "" {
				fmt.Fprintf(out, "Category: %s\n", task.Category)
			}
			return nil
		}),
	}
}

func checklistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist <item>...",
		Short: "Create a checklist task, one item per argument",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			task, ok := a.Engine.CreateChecklist(title, args)
			if !ok {
				return fmt.Errorf("a checklist needs at least one item")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created: %s (%s) with %d item(s)\n", task.Title, shortID(task.ID), len(task.Checklist))
			return nil
		}),
	}
	cmd.Flags().String("title", "", "Checklist title (default \""+lifecycle.ChecklistTitle+"\")")
	return cmd
}

func uploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Create tasks from a schedule file",
		Long: `Create one task per non-empty line of a text schedule. Lines like
"Day 3 - Long run" land on the third day from the start; other lines use
their position.`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			text, err := schedule.ReadText(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			policy := schedule.BeginToday()
			if start, _ := cmd.Flags().GetString("start"); start != "" {
				d, ok := quickadd.ParseDate(start, a.Today())
				if !ok {
					return fmt.Errorf("unrecognised start date %q", start)
				}
				policy = schedule.StartOn(d)
			}

			sched, tasks, ok := a.Engine.Upload(text, policy)
			if !ok {
				return fmt.Errorf("%s has no schedule lines", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d task(s) over %d day(s) starting %s\n",
				len(tasks), sched.Days(), model.FormatDate(sched.Start))
			return nil
		}),
	}
	cmd.Flags().String("start", "", "Start date (default today)")
	return cmd
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tasks in a tab",
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			state, err := stateFromFlags(cmd)
			if err != nil {
				return err
			}
			tasks := view.Derive(a.Store.All(), state, a.Today())
			if len(tasks) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No tasks in %s\n", state.Tab)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), taskTable(tasks))
			return nil
		}),
	}
	cmd.Flags().StringP("tab", "t", "today", "Tab (today, pending, upcoming, finished, incomplete, stats for all)")
	cmd.Flags().StringP("search", "s", "", "Search title, category and notes")
	cmd.Flags().StringP("priority", "p", "", "Only this priority (low, medium, high)")
	cmd.Flags().StringP("category", "c", "", "Only this category")
	cmd.Flags().String("sort", "date", "Sort by date or priority")
	cmd.Flags().Bool("desc", false, "Reverse the sort")
	return cmd
}

func stateFromFlags(cmd *cobra.Command) (view.State, error) {
	var s view.State

	tabName, _ := cmd.Flags().GetString("tab")
	tab, ok := view.ParseTab(tabName)
	if !ok {
		return s, fmt.Errorf("unknown tab %q", tabName)
	}
	s.Tab = tab

	s.Query.Search, _ = cmd.Flags().GetString("search")
	s.Query.Category, _ = cmd.Flags().GetString("category")
	if p, _ := cmd.Flags().GetString("priority"); p != "" {
		priority, ok := quickadd.ParsePriority(p)
		if !ok {
			return s, fmt.Errorf("unknown priority %q", p)
		}
		s.Query.Priority = priority
	}
	sortName, _ := cmd.Flags().GetString("sort")
	if s.Query.SortBy, ok = view.ParseSortKey(sortName); !ok {
		return s, fmt.Errorf("unknown sort %q", sortName)
	}
	s.Query.Desc, _ = cmd.Flags().GetBool("desc")
	return s, nil
}

func taskTable(tasks []model.Task) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		title := t.Title
		if t.IsChecklist {
			title += fmt.Sprintf(" [%d/%d]", t.CheckedCount(), len(t.Checklist))
		}
		if t.Reason != "" {
			title += " (" + t.Reason + ")"
		}
		rows = append(rows, []string{
			shortID(t.ID), title, model.FormatDate(t.Date), string(t.Status), string(t.Priority), t.Category,
		})
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "DATE", "STATUS", "PRIORITY", "CATEGORY").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task complete",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			task, err := resolveTask(a, args[0])
			if err != nil {
				return err
			}
			if task.IsChecklist {
				return fmt.Errorf("checklist tasks finish when every item is checked")
			}
			return report(cmd.OutOrStdout(), a, a.Engine.MarkComplete(task.ID), "task is already finished")
		}),
	}
}

// reasonCmd builds the pending and incomplete commands
func reasonCmd(status, short string) *cobra.Command {
	return &cobra.Command{
		Use:   status + " <id> [reason]",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			task, err := resolveTask(a, args[0])
			if err != nil {
				return err
			}
			if task.IsChecklist {
				return fmt.Errorf("checklist tasks have no %s state", status)
			}
			reason := strings.Join(args[1:], " ")
			var ok bool
			if status == "pending" {
				ok = a.Engine.MarkPending(task.ID, reason)
			} else {
				ok = a.Engine.MarkIncomplete(task.ID, reason)
			}
			return report(cmd.OutOrStdout(), a, ok, "task could not be updated")
		}),
	}
}

func moveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <tab>",
		Short: "Move a task to a tab (today, pending, upcoming, finished, incomplete)",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			task, err := resolveTask(a, args[0])
			if err != nil {
				return err
			}
			tab, ok := view.ParseTab(args[1])
			if !ok {
				return fmt.Errorf("unknown tab %q", args[1])
			}
			status, ok := tab.DropStatus()
			if !ok {
				return fmt.Errorf("tasks cannot be moved to %s", tab)
			}
			return report(cmd.OutOrStdout(), a, a.Engine.Move(task.ID, status), "checklist tasks cannot be moved")
		}),
	}
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <id> <item>",
		Short: "Check (or with --uncheck, uncheck) a checklist item, numbered from 1",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			task, err := resolveTask(a, args[0])
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 || n > len(task.Checklist) {
				return fmt.Errorf("item must be between 1 and %d", len(task.Checklist))
			}
			uncheck, _ := cmd.Flags().GetBool("uncheck")
			return report(cmd.OutOrStdout(), a, a.Engine.ToggleChecklistItem(task.ID, n-1, !uncheck), "not a checklist task")
		}),
	}
	cmd.Flags().Bool("uncheck", false, "Uncheck the item instead")
	return cmd
}

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			task, err := resolveTask(a, args[0])
			if err != nil {
				return err
			}

			confirm := lifecycle.Confirmed
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				confirm = promptConfirm(cmd.InOrStdin(), cmd.OutOrStdout())
			}
			if !a.Engine.Delete(task.ID, confirm) {
				fmt.Fprintln(cmd.OutOrStdout(), "Kept")
				return nil
			}
			return report(cmd.OutOrStdout(), a, true, "")
		}),
	}
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation")
	return cmd
}

// promptConfirm asks on out and reads a y/n answer from in
func promptConfirm(in io.Reader, out io.Writer) lifecycle.Confirmer {
	return lifecycle.ConfirmFunc(func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		answer, _ := bufio.NewReader(in).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	})
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task counts",
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			s := view.Summarize(a.Store.All(), a.Today())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total:       %d\n", s.Total)
			for _, tab := range view.Tabs() {
				if tab == view.TabStats {
					continue
				}
				fmt.Fprintf(out, "%-12s %d\n", tab.String()+":", s.PerTab[tab])
			}
			fmt.Fprintf(out, "Completion:  %d%%\n", s.CompletionRate())
			return nil
		}),
	}
}
