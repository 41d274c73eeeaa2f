package domain

// Notification is a message addressed to the current operator.
type Notification struct {
	ID               int    `json:"id"`
	Title            string `json:"title"`
	Content          string `json:"content"`
	NotificationType string `json:"notification_type"`
	Level            string `json:"level,omitempty"`
	BusinessKey      string `json:"business_key,omitempty"`
	BusinessType     string `json:"business_type,omitempty"`
	SenderID         *int   `json:"sender_id,omitempty"`
	SendTime         string `json:"send_time,omitempty"`
	IsRead           bool   `json:"is_read"`
}

// NotificationList is the notifications endpoint payload; it is not a records page.
type NotificationList struct {
	Notifications []Notification `json:"notifications"`
	Unread        int            `json:"unread"`
	Total         int            `json:"total"`
}
