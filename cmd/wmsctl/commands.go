package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fastygo/warehouse-console/api/transport"
	"github.com/fastygo/warehouse-console/internal/httpclient"
	"github.com/fastygo/warehouse-console/usecase"
)

// listActions maps list resources to their fetch actions.
var listActions = map[string]string{
	"purchase":     "purchase/fetch",
	"inventory":    "inventory/fetch",
	"transactions": "inventory/transactions",
	"outbound":     "outbound/fetch",
	"audit":        "outbound/audit",
	"confirmation": "confirmation/fetch",
	"tasks":        "workflow/todo",
}

var getActions = map[string]string{
	"purchase":  "purchase/get",
	"inventory": "inventory/get",
	"outbound":  "outbound/get",
	"audit":     "outbound/audit-record",
}

func names(m map[string]string) string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return strings.Join(out, ", ")
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func loginCmd(g *globals) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("WMS_PASSWORD")
			}
			if password == "-" || password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			sess, err := g.console.Auth.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			g.console.Navigator.Push("/")
			user, _ := sess.Profile()
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"logged_in": sess.LoggedIn(),
				"user":      user,
			})
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password; \"-\" or empty reads one line from stdin")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func logoutCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.console.Auth.Logout(cmd.Context())
		},
	}
}

func whoamiCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			who, err := g.console.Auth.Whoami()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), who)
		},
	}
}

func profileCmd(g *globals) *cobra.Command {
	var req transport.ProfileUpdateRequest
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Reload the profile, or update it when flags are given",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if req.Email == "" && req.FullName == "" && req.Password == "" {
				user, err := g.console.Auth.RefreshProfile(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), user)
			}
			user, err := g.console.Auth.UpdateProfile(ctx, req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), user)
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "New email")
	cmd.Flags().StringVar(&req.FullName, "full-name", "", "New full name")
	cmd.Flags().StringVar(&req.Password, "password", "", "New password")
	return cmd
}

func listCmd(g *globals) *cobra.Command {
	var page, size int
	var filterPairs []string
	cmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "Fetch one page of a resource (" + names(listActions) + ")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, ok := listActions[args[0]]
			if !ok {
				return fmt.Errorf("unknown resource %q, want one of %s", args[0], names(listActions))
			}
			filters, err := parseFilters(filterPairs)
			if err != nil {
				return err
			}
			payload, err := marshalPayload(usecase.Query[transport.Filters]{Page: page, Size: size, Filters: filters})
			if err != nil {
				return err
			}
			out, err := g.console.Dispatcher.Dispatch(cmd.Context(), action, payload)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&size, "size", 0, "Page size (resource default when 0)")
	cmd.Flags().StringArrayVarP(&filterPairs, "filter", "f", nil, "Filter as key=value, repeatable")
	return cmd
}

func getCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "get <resource> <id>",
		Short: "Fetch one record (" + names(getActions) + ")",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, ok := getActions[args[0]]
			if !ok {
				return fmt.Errorf("unknown resource %q, want one of %s", args[0], names(getActions))
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			payload, err := marshalPayload(usecase.IDPayload{ID: id})
			if err != nil {
				return err
			}
			out, err := g.console.Dispatcher.Dispatch(cmd.Context(), action, payload)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

func importCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "import <purchase|outbound> <file>",
		Short: "Upload a spreadsheet of orders",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()
			form := httpclient.Form{Files: []httpclient.File{{Name: filepath.Base(args[1]), Content: f}}}

			var summary interface{}
			switch args[0] {
			case "purchase":
				summary, err = g.console.Purchase.Import(cmd.Context(), form)
			case "outbound":
				summary, err = g.console.Outbound.Import(cmd.Context(), form)
			default:
				return fmt.Errorf("unknown import target %q", args[0])
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), summary)
		},
	}
}

func outboundCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{Use: "outbound", Short: "Outbound order operations"}

	cmd.AddCommand(&cobra.Command{
		Use:   "complete <id>",
		Short: "Mark an outbound order as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return g.console.Outbound.Complete(cmd.Context(), id)
		},
	})

	var reason string
	del := &cobra.Command{
		Use:   "delete <id> [id...]",
		Short: "Delete outbound orders, keeping an audit record",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int, 0, len(args))
			for _, arg := range args {
				id, err := parseID(arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			if len(ids) == 1 {
				return g.console.Outbound.Delete(cmd.Context(), ids[0], reason)
			}
			return g.console.Outbound.BatchDelete(cmd.Context(), ids, reason)
		},
	}
	del.Flags().StringVar(&reason, "reason", "", "Deletion reason")
	_ = del.MarkFlagRequired("reason")
	cmd.AddCommand(del)
	return cmd
}

func confirmationCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{Use: "confirmation", Short: "Receipt confirmation operations"}

	cmd.AddCommand(&cobra.Command{
		Use:   "generate <order-no>",
		Short: "Generate the confirmation for a purchase order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := g.console.Confirmation.Generate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "print <id>",
		Short: "Record that a confirmation was printed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return g.console.Confirmation.Print(cmd.Context(), id)
		},
	})

	var outPath string
	pdf := &cobra.Command{
		Use:   "pdf <id>",
		Short: "Download the printable confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			body, err := g.console.Confirmation.PDF(cmd.Context(), id)
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = fmt.Sprintf("confirmation-%d.pdf", id)
			}
			if err := os.WriteFile(outPath, body, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", outPath, len(body))
			return nil
		},
	}
	pdf.Flags().StringVarP(&outPath, "out", "o", "", "Output file")
	cmd.AddCommand(pdf)
	return cmd
}

func notificationsCmd(g *globals) *cobra.Command {
	var unread bool
	var kind string
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "List notifications with the unread count",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := transport.NotificationFilter{Type: kind}
			if unread {
				f := false
				filter.IsRead = &f
			}
			state, err := g.console.Notification.Fetch(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), state)
		},
	}
	cmd.Flags().BoolVar(&unread, "unread", false, "Only unread notifications")
	cmd.Flags().StringVar(&kind, "type", "", "Notification type")

	cmd.AddCommand(&cobra.Command{
		Use:   "read [id]",
		Short: "Mark one notification, or all without an id, as read",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return g.console.Notification.MarkAllRead(cmd.Context())
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return g.console.Notification.MarkRead(cmd.Context(), id)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return g.console.Notification.Delete(cmd.Context(), id)
		},
	})
	return cmd
}

func dashboardCmd(g *globals) *cobra.Command {
	var timeRange string
	cmd := &cobra.Command{
		Use:       "dashboard <leadership|operation>",
		Short:     "Show a report dashboard",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"leadership", "operation"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				out interface{}
				err error
			)
			switch args[0] {
			case "leadership":
				out, err = g.console.Report.Leadership(cmd.Context(), timeRange)
			case "operation":
				out, err = g.console.Report.Operation(cmd.Context())
			default:
				return fmt.Errorf("unknown dashboard %q", args[0])
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&timeRange, "range", "MONTH", "Time range: WEEK, MONTH, QUARTER or YEAR")
	return cmd
}

func tasksCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{Use: "task", Short: "Workflow task operations"}

	var req transport.CompleteTaskRequest
	var reject bool
	complete := &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Approve or reject a workflow task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Approved = !reject
			return g.console.Workflow.Complete(cmd.Context(), args[0], req)
		},
	}
	complete.Flags().BoolVar(&reject, "reject", false, "Reject instead of approve")
	complete.Flags().StringVar(&req.Comment, "comment", "", "Comment")
	cmd.AddCommand(complete)

	var start transport.StartWorkflowRequest
	startCmd := &cobra.Command{
		Use:   "start <business-key>",
		Short: "Start a workflow for a business key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start.BusinessKey = args[0]
			out, err := g.console.Workflow.Start(cmd.Context(), start)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	startCmd.Flags().StringVar(&start.WorkflowType, "type", "purchase_order", "Workflow type")
	cmd.AddCommand(startCmd)
	return cmd
}

func navCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "nav <location>",
		Short: "Check whether the current session may open a view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decision := g.console.Navigator.Push(args[0])
			location, title := g.console.Navigator.Location()
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"decision": decision,
				"location": location,
				"title":    title,
			})
		},
	}
}

func watchCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep notifications and the operation dashboard fresh until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := g.console.SignalContext(cmd.Context())
			defer cancel()

			if err := g.console.Poller.RunAll(ctx); err != nil {
				g.logger.Warn("initial refresh failed", zap.Error(err))
			}
			g.console.StartBackground(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "watching, %d unread notifications\n", g.console.Notification.Unread())
			<-ctx.Done()
			fmt.Fprintf(cmd.OutOrStdout(), "stopped, %d unread notifications\n", g.console.Notification.Unread())
			return nil
		},
	}
}

func dispatchCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch <action> [json-payload]",
		Short: "Run any container action by name",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return printJSON(cmd.OutOrStdout(), g.console.Dispatcher.Actions())
			}
			var payload []byte
			if len(args) == 2 {
				payload = []byte(args[1])
			}
			out, err := g.console.Dispatcher.Dispatch(cmd.Context(), args[0], payload)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

func stateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "state [getter]",
		Short: "Read cached container state by getter name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return printJSON(cmd.OutOrStdout(), g.console.Dispatcher.Getters())
			}
			out, err := g.console.Dispatcher.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}
