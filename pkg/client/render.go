package client

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"laundry-service/internal/data/entity"
	"laundry-service/internal/dto/response"
)

// Action is what an admin can do next with an order.
type Action struct {
	Label string
	Next  entity.OrderStatus
}

// AdminAction maps the current status to the next step. Completed orders are
// terminal and have none.
func AdminAction(status entity.OrderStatus) (Action, bool) {
	next, ok := status.Next()
	if !ok {
		return Action{}, false
	}
	return Action{Label: actionLabels[next], Next: next}, true
}

var actionLabels = map[entity.OrderStatus]string{
	entity.OrderStatusWashing:   "start washing",
	entity.OrderStatusCompleted: "mark complete",
}

func actionLabel(status entity.OrderStatus) string {
	if action, ok := AdminAction(status); ok {
		return action.Label
	}
	if status == entity.OrderStatusCompleted {
		return "completed"
	}
	return "-"
}

func money(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}

// RenderOrders prints a table of orders. Admin views add the customer and
// the available action.
func RenderOrders(w io.Writer, orders []response.OrderResponse, admin bool) error {
	if len(orders) == 0 {
		_, err := fmt.Fprintln(w, "No orders yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if admin {
		fmt.Fprintln(tw, "ID\tCUSTOMER\tSERVICE\tQTY\tTOTAL\tSTATUS\tACTION\tPLACED")
	} else {
		fmt.Fprintln(tw, "ID\tSERVICE\tQTY\tTOTAL\tSTATUS\tPLACED")
	}

	for _, o := range orders {
		placed := o.CreatedAt.Local().Format("2006-01-02 15:04")
		if admin {
			fmt.Fprintf(tw, "%s\t%s <%s>\t%s\t%d\t%s\t%s\t%s\t%s\n",
				o.ID, o.UserName, o.UserEmail, o.ServiceType, o.Quantity,
				money(o.TotalPrice), o.Status, actionLabel(o.Status), placed)
		} else {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
				o.ID, o.ServiceType, o.Quantity, money(o.TotalPrice), o.Status, placed)
		}
	}
	return tw.Flush()
}

func RenderOrder(w io.Writer, o *response.OrderResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Order\t%s\n", o.ID)
	fmt.Fprintf(tw, "Service\t%s\n", o.ServiceType)
	fmt.Fprintf(tw, "Quantity\t%d\n", o.Quantity)
	fmt.Fprintf(tw, "Price per item\t%s\n", money(o.PricePerItem))
	fmt.Fprintf(tw, "Total\t%s\n", money(o.TotalPrice))
	fmt.Fprintf(tw, "Status\t%s\n", o.Status)
	if o.Notes != nil && *o.Notes != "" {
		fmt.Fprintf(tw, "Notes\t%s\n", *o.Notes)
	}
	fmt.Fprintf(tw, "Placed\t%s\n", o.CreatedAt.Local().Format("2006-01-02 15:04"))
	return tw.Flush()
}

func RenderStats(w io.Writer, s *response.StatsResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total\t%d\n", s.Total)
	fmt.Fprintf(tw, "Pending\t%d\n", s.Pending)
	fmt.Fprintf(tw, "Washing\t%d\n", s.Washing)
	fmt.Fprintf(tw, "Completed\t%d\n", s.Completed)
	return tw.Flush()
}

func RenderNotifications(w io.Writer, page *response.NotificationListResponse) error {
	if len(page.Notifications) == 0 {
		_, err := fmt.Fprintln(w, "No notifications.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, " \tID\tTITLE\tMESSAGE\tRECEIVED")
	for _, n := range page.Notifications {
		marker := "*"
		if n.IsRead {
			marker = " "
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			marker, n.ID, n.Title, n.Message, n.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	shown := int64(page.Offset + len(page.Notifications))
	_, err := fmt.Fprintf(w, "Showing %d-%d of %d\n", page.Offset+1, shown, page.Count)
	return err
}
