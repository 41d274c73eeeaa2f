package domain

// OrderInfo summarises the purchase order a workflow task belongs to.
type OrderInfo struct {
	OrderNo      string `json:"orderNo,omitempty"`
	SupplierName string `json:"supplierName,omitempty"`
	Category     string `json:"category,omitempty"`
	UserUnit     string `json:"userUnit,omitempty"`
}

// WorkflowTask is a pending task in the operator's todo list.
type WorkflowTask struct {
	ID                 int       `json:"id"`
	TaskID             string    `json:"taskId"`
	TaskName           string    `json:"taskName"`
	WorkflowInstanceID int       `json:"workflowInstanceId"`
	BusinessKey        string    `json:"businessKey"`
	CreateTime         string    `json:"createTime,omitempty"`
	DueDate            string    `json:"dueDate,omitempty"`
	Priority           string    `json:"priority,omitempty"`
	OrderInfo          OrderInfo `json:"orderInfo"`
}
