package transport

// Filters is an untyped filter set for endpoints whose filters the console passes through.
type Filters map[string]interface{}

func (f Filters) Map() map[string]interface{} { return f }

// PurchaseFilter narrows /purchase/list. Nil or empty fields are not sent.
type PurchaseFilter struct {
	OrderNo      string `json:"order_no,omitempty"`
	PlanNumber   string `json:"plan_number,omitempty"`
	SupplierName string `json:"supplier_name,omitempty"`
	UserUnit     string `json:"user_unit,omitempty"`
	Category     string `json:"category,omitempty"`
	Status       string `json:"status,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
}

func (f PurchaseFilter) Map() map[string]interface{} {
	return map[string]interface{}{
		"order_no":      f.OrderNo,
		"plan_number":   f.PlanNumber,
		"supplier_name": f.SupplierName,
		"user_unit":     f.UserUnit,
		"category":      f.Category,
		"status":        f.Status,
		"start_date":    f.StartDate,
		"end_date":      f.EndDate,
	}
}

// OutboundFilter narrows /outbound/list.
type OutboundFilter struct {
	MaterialVoucher string `json:"material_voucher,omitempty"`
	MaterialCode    string `json:"material_code,omitempty"`
	Department      string `json:"department,omitempty"`
	UserUnit        string `json:"user_unit,omitempty"`
	Status          string `json:"status,omitempty"`
	StartDate       string `json:"start_date,omitempty"`
	EndDate         string `json:"end_date,omitempty"`
}

func (f OutboundFilter) Map() map[string]interface{} {
	return map[string]interface{}{
		"material_voucher": f.MaterialVoucher,
		"material_code":    f.MaterialCode,
		"department":       f.Department,
		"user_unit":        f.UserUnit,
		"status":           f.Status,
		"start_date":       f.StartDate,
		"end_date":         f.EndDate,
	}
}

// InventoryFilter narrows /inventory/list.
type InventoryFilter struct {
	MaterialCode string `json:"material_code,omitempty"`
	Category     string `json:"category,omitempty"`
	Location     string `json:"location,omitempty"`
}

func (f InventoryFilter) Map() map[string]interface{} {
	return map[string]interface{}{
		"material_code": f.MaterialCode,
		"category":      f.Category,
		"location":      f.Location,
	}
}

// NotificationFilter narrows /notifications.
type NotificationFilter struct {
	IsRead *bool  `json:"is_read,omitempty"`
	Type   string `json:"notification_type,omitempty"`
}

func (f NotificationFilter) Map() map[string]interface{} {
	return map[string]interface{}{
		"is_read":           f.IsRead,
		"notification_type": f.Type,
	}
}

// BatchDeleteRequest removes several outbound orders; the audit reason travels as a query
// parameter.
type BatchDeleteRequest struct {
	IDs []int `json:"ids"`
}

// GenerateConfirmationRequest creates a confirmation for a purchase order.
type GenerateConfirmationRequest struct {
	OrderNo string `json:"order_no"`
}

// StartWorkflowRequest starts the procurement workflow for a business key.
type StartWorkflowRequest struct {
	BusinessKey  string                 `json:"businessKey"`
	WorkflowType string                 `json:"workflowType,omitempty"`
	Variables    map[string]interface{} `json:"variables,omitempty"`
}

// CompleteTaskRequest closes a todo task with an approval decision.
type CompleteTaskRequest struct {
	Approved  bool                   `json:"approved"`
	Comment   string                 `json:"comment,omitempty"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// NotificationCreateRequest sends a notification to one operator.
type NotificationCreateRequest struct {
	Title            string `json:"title"`
	Content          string `json:"content"`
	NotificationType string `json:"notification_type"`
	Level            string `json:"level,omitempty"`
	ReceiverID       int    `json:"receiver_id"`
	BusinessKey      string `json:"business_key,omitempty"`
	BusinessType     string `json:"business_type,omitempty"`
}

// ProfileUpdateRequest changes the operator's own profile.
type ProfileUpdateRequest struct {
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Password string `json:"password,omitempty"`
}
