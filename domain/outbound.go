package domain

// OutboundItem is one material line of an outbound order.
type OutboundItem struct {
	ID                   int      `json:"id"`
	OutboundID           int      `json:"outbound_id"`
	MaterialCode         string   `json:"material_code"`
	MaterialDescription  string   `json:"material_description"`
	Unit                 string   `json:"unit"`
	ActualQuantity       float64  `json:"actual_quantity"`
	OutboundPrice        *float64 `json:"outbound_price,omitempty"`
	MaterialCategoryCode string   `json:"material_category_code,omitempty"`
	ProjectCode          string   `json:"project_code,omitempty"`
	RequestedQuantity    *float64 `json:"requested_quantity,omitempty"`
	OutboundAmount       *float64 `json:"outbound_amount,omitempty"`
	PurchaseOrderNo      string   `json:"purchase_order_no,omitempty"`
	Remark               string   `json:"remark,omitempty"`
}

// OutboundOrder mirrors the backend outbound (material issue) record.
type OutboundOrder struct {
	ID                int            `json:"id"`
	MaterialVoucher   string         `json:"material_voucher"`
	VoucherDate       string         `json:"voucher_date,omitempty"`
	Department        string         `json:"department,omitempty"`
	UserUnit          string         `json:"user_unit,omitempty"`
	DocumentType      string         `json:"document_type,omitempty"`
	TotalAmount       float64        `json:"total_amount"`
	IssueDate         string         `json:"issue_date,omitempty"`
	SalesAmount       float64        `json:"sales_amount"`
	TransferOrder     string         `json:"transfer_order,omitempty"`
	ManagementFeeRate *float64       `json:"management_fee_rate,omitempty"`
	MaterialCategory  string         `json:"material_category,omitempty"`
	Status            string         `json:"status,omitempty"`
	OperatorID        *int           `json:"operator_id,omitempty"`
	Items             []OutboundItem `json:"items"`
}

// AuditRecord is the trace left behind when an outbound order is deleted.
type AuditRecord struct {
	ID               int     `json:"id"`
	OriginalID       int     `json:"original_id"`
	MaterialVoucher  string  `json:"material_voucher"`
	VoucherDate      string  `json:"voucher_date,omitempty"`
	Department       string  `json:"department,omitempty"`
	UserUnit         string  `json:"user_unit,omitempty"`
	DocumentType     string  `json:"document_type,omitempty"`
	TotalAmount      float64 `json:"total_amount"`
	MaterialCategory string  `json:"material_category,omitempty"`
	Status           string  `json:"status,omitempty"`
	DeleteTime       string  `json:"delete_time,omitempty"`
	DeleteReason     string  `json:"delete_reason,omitempty"`
	Operator         string  `json:"operator,omitempty"`
	ItemsCount       int     `json:"items_count"`
}
