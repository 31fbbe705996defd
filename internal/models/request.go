package models

type SendCodeRequest struct {
	Phone string `json:"phone"`
}

type LoginRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateOrderRequest struct {
	IsInitial   bool   `json:"isInitial"`
	Quantity    int    `json:"quantity"`
	CompanyName string `json:"companyName"`
	CreditCode  string `json:"creditCode"`
	BankName    string `json:"bankName"`
	BankAccount string `json:"bankAccount"`
	AuthName    string `json:"authName"`
	AuthPhone   string `json:"authPhone"`
	AuthIdcard  string `json:"authIdcard"`
	// Optional; anything other than draft/submitted is coerced to draft.
	Status string `json:"status"`
}

// UpdateOrderRequest carries partial updates: only non-nil fields are applied.
type UpdateOrderRequest struct {
	IsInitial   *bool   `json:"isInitial"`
	Quantity    *int    `json:"quantity"`
	CompanyName *string `json:"companyName"`
	CreditCode  *string `json:"creditCode"`
	BankName    *string `json:"bankName"`
	BankAccount *string `json:"bankAccount"`
	AuthName    *string `json:"authName"`
	AuthPhone   *string `json:"authPhone"`
	AuthIdcard  *string `json:"authIdcard"`
}

// AdminUpdateOrderRequest carries the admin-only fields. Partial semantics,
// same as UpdateOrderRequest.
type AdminUpdateOrderRequest struct {
	PayStatus      *string `json:"payStatus"`
	DeliveryStatus *string `json:"deliveryStatus"`
	Remark         *string `json:"remark"`
}
