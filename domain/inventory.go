package domain

// Inventory is the stock level of one material at one location.
type Inventory struct {
	ID                  int      `json:"id"`
	MaterialCode        string   `json:"material_code"`
	MaterialDescription string   `json:"material_description,omitempty"`
	Category            string   `json:"category,omitempty"`
	Unit                string   `json:"unit,omitempty"`
	Quantity            float64  `json:"quantity"`
	Location            string   `json:"location,omitempty"`
	UnitPrice           *float64 `json:"unit_price,omitempty"`
	TotalValue          *float64 `json:"total_value,omitempty"`
}

// InventoryTransaction records one stock movement.
type InventoryTransaction struct {
	ID              int     `json:"id"`
	InventoryID     int     `json:"inventory_id"`
	TransactionType string  `json:"transaction_type"`
	Quantity        float64 `json:"quantity"`
	ReferenceNo     string  `json:"reference_no,omitempty"`
	ReferenceType   string  `json:"reference_type,omitempty"`
	Remark          string  `json:"remark,omitempty"`
	OperatorID      int     `json:"operator_id"`
	TransactionTime string  `json:"transaction_time,omitempty"`
}
