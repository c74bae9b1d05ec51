package model

type PaymentPrepareRequest struct {
	CourseID   int     `json:"course_id"`
	Method     string  `json:"method"`
	CouponCode *string `json:"coupon_code"`
}

type CustomerInfo struct {
	CustomerID  string `json:"customerId"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
}

// PaymentPrepareResponse 后端准备好的支付参数，原样交给支付提供方
type PaymentPrepareResponse struct {
	StoreID        string       `json:"storeId"`
	ChannelGroupID string       `json:"channelGroupId"`
	PaymentID      string       `json:"paymentId"`
	OrderName      string       `json:"orderName"`
	TotalAmount    float64      `json:"totalAmount"`
	DiscountAmount float64      `json:"discountAmount"`
	Currency       string       `json:"currency"`
	PayMethod      string       `json:"payMethod"`
	Customer       CustomerInfo `json:"customer"`
}

type ProviderResponse struct {
	Code        string `json:"code"`
	Message     string `json:"message,omitempty"`
	ImpUID      string `json:"imp_uid"`
	MerchantUID string `json:"merchant_uid"`
}

type PaymentConfirmRequest struct {
	ImpUID      string  `json:"imp_uid"`
	MerchantUID string  `json:"merchant_uid"`
	CourseID    int     `json:"course_id"`
	Amount      float64 `json:"amount"`
	Method      string  `json:"method"`
}

type PaymentConfirmResponse struct {
	ID       int     `json:"id"`
	CourseID int     `json:"course_id"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
}
