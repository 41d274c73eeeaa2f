package domain

// PurchaseOrderItem is one line of a purchase order.
type PurchaseOrderItem struct {
	ID                    int      `json:"id"`
	OrderID               int      `json:"order_id"`
	LineItemNumber        string   `json:"line_item_number,omitempty"`
	MaterialCode          string   `json:"material_code"`
	MaterialDescription   string   `json:"material_description,omitempty"`
	Unit                  string   `json:"unit,omitempty"`
	RequestedQuantity     *int     `json:"requested_quantity,omitempty"`
	ContractPrice         *float64 `json:"contract_price,omitempty"`
	ContractAmount        *float64 `json:"contract_amount,omitempty"`
	PurchaseOrderQuantity *int     `json:"purchase_order_quantity,omitempty"`
}

// PurchaseOrder mirrors the backend purchase order record.
type PurchaseOrder struct {
	ID                int                 `json:"id"`
	OrderNo           string              `json:"order_no"`
	PlanNumber        string              `json:"plan_number,omitempty"`
	UserUnit          string              `json:"user_unit,omitempty"`
	Category          string              `json:"category,omitempty"`
	OrderDate         string              `json:"order_date,omitempty"`
	SupplierName      string              `json:"supplier_name,omitempty"`
	SupplierCode      string              `json:"supplier_code,omitempty"`
	MaterialGroup     string              `json:"material_group,omitempty"`
	FirstLevelProduct string              `json:"first_level_product,omitempty"`
	Factory           string              `json:"factory,omitempty"`
	DeliveryType      string              `json:"delivery_type,omitempty"`
	TotalAmount       float64             `json:"total_amount"`
	Status            string              `json:"status,omitempty"`
	Items             []PurchaseOrderItem `json:"items,omitempty"`
}
