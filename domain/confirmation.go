package domain

// Confirmation is a delivery confirmation generated for a purchase order.
type Confirmation struct {
	ID                   int    `json:"id"`
	ConfirmationNo       string `json:"confirmation_no"`
	OrderID              int    `json:"order_id"`
	OrderNo              string `json:"order_no,omitempty"`
	Status               string `json:"status,omitempty"`
	KeeperID             *int   `json:"keeper_id,omitempty"`
	InspectorID          *int   `json:"inspector_id,omitempty"`
	KeeperConfirmTime    string `json:"keeper_confirm_time,omitempty"`
	InspectorConfirmTime string `json:"inspector_confirm_time,omitempty"`
	PrintTime            string `json:"print_time,omitempty"`
	CreateTime           string `json:"create_time,omitempty"`
	UpdateTime           string `json:"update_time,omitempty"`
}
