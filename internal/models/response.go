package models

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SendCodeResponse struct {
	Message string `json:"message"`
	// Code is surfaced in development builds only; production delivery goes
	// through the SMS gateway.
	Code string `json:"code,omitempty"`
}

type UserInfo struct {
	ID    uint   `json:"id"`
	Phone string `json:"phone"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

type AdminInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type AdminLoginResponse struct {
	Token string    `json:"token"`
	Admin AdminInfo `json:"admin"`
}

type UploadResponse struct {
	URL   string `json:"url"`
	Image Image  `json:"image"`
}

// OrderSummary is the slim projection shown in the admin users listing.
type OrderSummary struct {
	ID             uint    `json:"id"`
	OrderNo        *string `json:"orderNo"`
	Status         string  `json:"status"`
	PayStatus      string  `json:"payStatus"`
	DeliveryStatus string  `json:"deliveryStatus"`
}

type AdminUserResponse struct {
	ID        uint           `json:"id"`
	Phone     string         `json:"phone"`
	CreatedAt time.Time      `json:"createdAt"`
	Orders    []OrderSummary `json:"orders"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
