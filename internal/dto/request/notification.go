package request

// NotificationListRequest carries the raw paging query. The service clamps
// Limit and Offset.
type NotificationListRequest struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}
