package service

import (
	"context"
	"edu_portal/internal/model"
	"edu_portal/internal/repository"
	"edu_portal/internal/util"
	"edu_portal/pkg/apiclient"
	"fmt"
	"net/http"
	"strings"
)

// PaymentProvider 外部支付提供方，只暴露发起支付这一项能力
type PaymentProvider interface {
	RequestPayment(ctx context.Context, payment *model.PaymentPrepareResponse) (*model.ProviderResponse, error)
}

// HTTPPaymentProvider 把后端准备好的支付参数转发给配置的提供方地址
type HTTPPaymentProvider struct {
	Client *apiclient.Client
	Secret string
}

func NewHTTPPaymentProvider(client *apiclient.Client, secret string) *HTTPPaymentProvider {
	return &HTTPPaymentProvider{Client: client, Secret: secret}
}

func (p *HTTPPaymentProvider) RequestPayment(ctx context.Context, payment *model.PaymentPrepareResponse) (*model.ProviderResponse, error) {
	if p.Client.BaseURL() == "" {
		return nil, util.ValidationError("결제 서비스가 설정되지 않았습니다.")
	}

	var resp model.ProviderResponse
	if err := p.Client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "",
		Route:  "payment-provider",
		Token:  p.Secret,
		JSON:   payment,
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type CheckoutForm struct {
	CourseID   string `form:"course_id" binding:"required,numeric"`
	CouponCode string `form:"coupon_code"`
}

func (CheckoutForm) FieldMessages() map[string]string {
	return map[string]string{"CourseID": "코스를 선택해주세요."}
}

// CouponForm 字段与 CheckoutForm 相同，但必须填写优惠码
type CouponForm struct {
	CourseID   string `form:"course_id" binding:"required,numeric"`
	CouponCode string `form:"coupon_code" binding:"required"`
}

func (CouponForm) FieldMessages() map[string]string {
	return map[string]string{
		"CourseID":   "코스를 선택해주세요.",
		"CouponCode": "쿠폰 코드를 입력해주세요.",
	}
}

type CheckoutResult struct {
	Payment *model.PaymentPrepareResponse
	Receipt *model.PaymentConfirmResponse
}

type PaymentService struct {
	PaymentRepo *repository.PaymentRepository
	CourseRepo  *repository.CourseRepository
	Provider    PaymentProvider
}

func NewPaymentService(paymentRepo *repository.PaymentRepository, courseRepo *repository.CourseRepository, provider PaymentProvider) *PaymentService {
	return &PaymentService{
		PaymentRepo: paymentRepo,
		CourseRepo:  courseRepo,
		Provider:    provider,
	}
}

func (s *PaymentService) Courses(ctx context.Context, token string) ([]model.Course, error) {
	courses, err := s.CourseRepo.List(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// ApplyCoupon 只做一次准备请求，用来展示折扣金额
func (s *PaymentService) ApplyCoupon(ctx context.Context, token string, form CouponForm) (*model.PaymentPrepareResponse, error) {
	if err := ValidateForm(form, "쿠폰 정보를 올바르게 입력해주세요."); err != nil {
		return nil, err
	}
	courseID, err := util.ParseID(form.CourseID)
	if err != nil {
		return nil, err
	}
	code := strings.TrimSpace(form.CouponCode)
	return s.prepare(ctx, token, courseID, &code)
}

// Checkout 准备 -> 提供方支付 -> 后端确认。提供方未返回成功码时不确认
func (s *PaymentService) Checkout(ctx context.Context, token string, form CheckoutForm) (*CheckoutResult, error) {
	if err := ValidateForm(form, "결제 정보를 올바르게 입력해주세요."); err != nil {
		return nil, err
	}
	courseID, err := util.ParseID(form.CourseID)
	if err != nil {
		return nil, err
	}

	var coupon *string
	if code := strings.TrimSpace(form.CouponCode); code != "" {
		coupon = &code
	}

	payment, err := s.prepare(ctx, token, courseID, coupon)
	if err != nil {
		return nil, err
	}

	resp, err := s.Provider.RequestPayment(ctx, payment)
	if err != nil {
		return &CheckoutResult{Payment: payment}, fmt.Errorf("request payment: %w", err)
	}
	if resp.Code != util.PaymentSuccessCode {
		return &CheckoutResult{Payment: payment}, &util.APIError{Kind: util.ErrServer, Detail: "결제 실패"}
	}

	receipt, err := s.PaymentRepo.Confirm(ctx, token, &model.PaymentConfirmRequest{
		ImpUID:      resp.ImpUID,
		MerchantUID: resp.MerchantUID,
		CourseID:    courseID,
		Amount:      payment.TotalAmount,
		Method:      payment.PayMethod,
	})
	if err != nil {
		return &CheckoutResult{Payment: payment}, fmt.Errorf("confirm payment: %w", err)
	}
	return &CheckoutResult{Payment: payment, Receipt: receipt}, nil
}

func (s *PaymentService) prepare(ctx context.Context, token string, courseID int, coupon *string) (*model.PaymentPrepareResponse, error) {
	payment, err := s.PaymentRepo.Prepare(ctx, token, &model.PaymentPrepareRequest{
		CourseID:   courseID,
		Method:     util.PaymentMethodCard,
		CouponCode: coupon,
	})
	if err != nil {
		return nil, fmt.Errorf("prepare payment: %w", err)
	}
	if payment.TotalAmount <= 0 {
		return nil, util.ValidationError("유효하지 않은 결제 금액입니다.")
	}
	return payment, nil
}
