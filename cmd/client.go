package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"laundry-service/internal/data/entity"
	"laundry-service/internal/dto/request"
	"laundry-service/pkg/client"
	"laundry-service/pkg/utils"

	"github.com/spf13/cobra"
)

// clientApp is the state shared by every client subcommand.
type clientApp struct {
	api          *client.Client
	session      *client.Session
	auth         *client.Auth
	orders       *client.OrderStore
	pollInterval time.Duration
}

var (
	cli         *clientApp
	baseURLFlag string
	sessionFlag string
)

var errNotLoggedIn = errors.New("not logged in: run `laundry client login` first")

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Use the laundry service as a customer or admin",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config, err := utils.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		path := firstNonEmpty(sessionFlag, config.Client.StatePath)
		if path == "" {
			if path, err = client.DefaultSessionPath(); err != nil {
				return err
			}
		}

		session, err := client.OpenSession(path)
		if err != nil {
			return err
		}

		api := client.New(firstNonEmpty(baseURLFlag, config.Client.BaseURL), config.Client.Timeout, session)
		cli = &clientApp{
			api:          api,
			session:      session,
			auth:         client.NewAuth(api, session),
			orders:       client.NewOrderStore(api),
			pollInterval: config.Client.PollInterval,
		}
		return nil
	},
}

func init() {
	clientCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "API base URL (default CLIENT_BASE_URL)")
	clientCmd.PersistentFlags().StringVar(&sessionFlag, "session", "", "session file (default CLIENT_STATE_PATH or the user config dir)")

	clientCmd.AddCommand(registerCmd, loginCmd, adminLoginCmd, logoutCmd, whoamiCmd)
	clientCmd.AddCommand(placeOrderCmd, ordersCmd, orderCmd)
	clientCmd.AddCommand(adminCmd)

	adminCmd.AddCommand(adminOrdersCmd, adminStartCmd, adminCompleteCmd, adminStatsCmd)
	adminCmd.AddCommand(adminNotificationsCmd, adminReadCmd, adminReadAllCmd, adminWatchCmd)

	registerCmd.Flags().StringVar(&registerFlags.name, "name", "", "full name")
	registerCmd.Flags().StringVar(&registerFlags.email, "email", "", "email address")
	registerCmd.Flags().StringVar(&registerFlags.phone, "phone", "", "phone number")
	registerCmd.Flags().StringVar(&registerFlags.password, "password", "", "password (6 to 100 characters)")

	for _, c := range []*cobra.Command{loginCmd, adminLoginCmd} {
		c.Flags().StringVar(&loginFlags.email, "email", "", "email address")
		c.Flags().StringVar(&loginFlags.password, "password", "", "password")
		_ = c.MarkFlagRequired("email")
		_ = c.MarkFlagRequired("password")
	}

	placeOrderCmd.Flags().StringVar(&orderFlags.service, "service", string(entity.ServiceNormalWash),
		"normal-wash, heavy-wash, delicate-wash or express-wash")
	placeOrderCmd.Flags().IntVar(&orderFlags.quantity, "quantity", 1, "number of items")
	placeOrderCmd.Flags().StringVar(&orderFlags.notes, "notes", "", "instructions for the laundry")

	adminOrdersCmd.Flags().StringVar(&adminOrdersStatus, "status", "", "only orders in this status (Pending, Washing, Completed)")

	adminNotificationsCmd.Flags().BoolVar(&notificationFlags.unreadOnly, "unread", false, "only unread notifications")
	adminNotificationsCmd.Flags().IntVar(&notificationFlags.limit, "limit", 0, "page size (default 50, max 200)")
	adminNotificationsCmd.Flags().IntVar(&notificationFlags.offset, "offset", 0, "rows to skip")
}

func (a *clientApp) requireLogin() error {
	if !a.session.IsAuthenticated() {
		return errNotLoggedIn
	}
	return nil
}

func (a *clientApp) requireAdmin() error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if !a.session.IsAdmin() {
		return client.ErrNotAdmin
	}
	return nil
}

// explain turns a 401 into a prompt to log in again; the session was already
// cleared by the client.
func explain(err error) error {
	if client.IsUnauthorized(err) {
		return fmt.Errorf("%w (log in again with `laundry client login`)", err)
	}
	return err
}

func printIdentity(w io.Writer, identity client.Identity) {
	fmt.Fprintf(w, "Logged in as %s <%s> (%s)\n", identity.User.Name, identity.User.Email, identity.Role)
}

var registerFlags struct {
	name, email, phone, password string
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a customer account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		identity, err := cli.auth.Register(cmd.Context(),
			registerFlags.name, registerFlags.email, registerFlags.phone, registerFlags.password)
		if err != nil {
			return describeAPIError(err)
		}
		printIdentity(cmd.OutOrStdout(), identity)
		return nil
	},
}

var loginFlags struct {
	email, password string
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and remember the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		identity, err := cli.auth.Login(cmd.Context(), loginFlags.email, loginFlags.password)
		if err != nil {
			return describeAPIError(err)
		}
		printIdentity(cmd.OutOrStdout(), identity)
		return nil
	},
}

var adminLoginCmd = &cobra.Command{
	Use:   "admin-login",
	Short: "Log in with an admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		identity, err := cli.auth.AdminLogin(cmd.Context(), loginFlags.email, loginFlags.password)
		if err != nil {
			return describeAPIError(err)
		}
		printIdentity(cmd.OutOrStdout(), identity)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.auth.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the stored identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		identity, ok := cli.session.Identity()
		if !ok {
			return errNotLoggedIn
		}
		printIdentity(cmd.OutOrStdout(), identity)
		return nil
	},
}

var orderFlags struct {
	service  string
	quantity int
	notes    string
}

var placeOrderCmd = &cobra.Command{
	Use:   "place-order",
	Short: "Place a laundry order",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.requireLogin(); err != nil {
			return err
		}

		req := request.CreateOrderRequest{
			ServiceType: orderFlags.service,
			Quantity:    orderFlags.quantity,
		}
		if orderFlags.notes != "" {
			req.Notes = &orderFlags.notes
		}

		order, err := cli.orders.Create(cmd.Context(), req)
		if err != nil {
			return describeAPIError(err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Order placed.")
		return client.RenderOrder(cmd.OutOrStdout(), order)
	},
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List your orders, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.requireLogin(); err != nil {
			return err
		}

		orders, err := cli.orders.FetchMine(cmd.Context())
		if err != nil {
			return explain(err)
		}
		return client.RenderOrders(cmd.OutOrStdout(), orders, false)
	},
}

var orderCmd = &cobra.Command{
	Use:   "order <id>",
	Short: "Show one of your orders",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.requireLogin(); err != nil {
			return err
		}

		order, err := cli.orders.FetchOne(cmd.Context(), args[0])
		if err != nil {
			return explain(err)
		}
		return client.RenderOrder(cmd.OutOrStdout(), order)
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage orders and notifications (admin only)",
}

var adminOrdersStatus string

var adminOrdersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List every order",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.requireAdmin(); err != nil {
			return err
		}

		orders, err := cli.orders.FetchAll(cmd.Context(), adminOrdersStatus)
		if err != nil {
			return describeAPIError(err)
		}
		return client.RenderOrders(cmd.OutOrStdout(), orders, true)
	},
}

var adminStartCmd = &cobra.Command{
	Use:   "start <id>",
	Short: "Start washing a pending order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return advanceOrder(cmd, args[0], entity.OrderStatusPending)
	},
}

var adminCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a washing order complete",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return advanceOrder(cmd, args[0], entity.OrderStatusWashing)
	},
}

// advanceOrder applies the admin action available from the given status and
// prints the refreshed stats.
func advanceOrder(cmd *cobra.Command, id string, from entity.OrderStatus) error {
	if err := cli.requireAdmin(); err != nil {
		return err
	}

	action, _ := client.AdminAction(from)
	order, err := cli.orders.UpdateStatus(cmd.Context(), id, string(action.Next))
	if err != nil && order == nil {
		return describeAPIError(err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Order %s: %s -> %s\n", order.ID, action.Label, order.Status)
	if err != nil {
		return explain(err)
	}
	if stats := cli.orders.Stats(); stats != nil {
		return client.RenderStats(out, stats)
	}
	return nil
}

var adminStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show order counts by status",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.requireAdmin(); err != nil {
			return err
		}

		stats, err := cli.orders.FetchStats(cmd.Context())
		if err != nil {
			return describeAPIError(err)
		}
		return client.RenderStats(cmd.OutOrStdout(), stats)
	},
}

var notificationFlags struct {
	unreadOnly    bool
	limit, offset int
}

var adminNotificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "List your notifications, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.requireAdmin(); err != nil {
			return err
		}

		page, err := cli.api.Notifications(cmd.Context(), request.NotificationListRequest{
			UnreadOnly: notificationFlags.unreadOnly,
			Limit:      notificationFlags.limit,
			Offset:     notificationFlags.offset,
		})
		if err != nil {
			return describeAPIError(err)
		}
		return client.RenderNotifications(cmd.OutOrStdout(), page)
	},
}

var adminReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark one notification read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.requireAdmin(); err != nil {
			return err
		}

		n, err := cli.api.MarkNotificationRead(cmd.Context(), args[0])
		if err != nil {
			return describeAPIError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Notification %s marked read.\n", n.ID)
		return nil
	},
}

var adminReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark all notifications read",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.requireAdmin(); err != nil {
			return err
		}

		updated, err := cli.api.MarkAllNotificationsRead(cmd.Context())
		if err != nil {
			return describeAPIError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d notification(s) marked read.\n", updated)
		return nil
	},
}

var adminWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the unread notification count until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.requireAdmin(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		poller := client.NewUnreadPoller(cli.api, cli.session, cli.pollInterval)
		poller.OnCount = func(unread int64) {
			fmt.Fprintf(out, "%s  unread: %d\n", time.Now().Format("15:04:05"), unread)
		}
		poller.OnError = func(err error) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s  %v\n", time.Now().Format("15:04:05"), explain(err))
		}

		err := poller.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if err == nil && !cli.session.IsAuthenticated() {
			return errNotLoggedIn
		}
		return err
	},
}

// describeAPIError adds the field messages of a validation failure.
func describeAPIError(err error) error {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || len(apiErr.Errors) == 0 {
		return explain(err)
	}

	msg := apiErr.Message
	for field, reason := range apiErr.Errors {
		msg += fmt.Sprintf("\n  %s: %s", field, reason)
	}
	return errors.New(msg)
}
