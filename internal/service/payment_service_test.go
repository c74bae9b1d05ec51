package service

import (
	"context"
	"edu_portal/internal/model"
	"edu_portal/internal/repository"
	"edu_portal/internal/util"
	"edu_portal/pkg/apiclient"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeProvider struct {
	resp  *model.ProviderResponse
	err   error
	calls int
}

func (p *fakeProvider) RequestPayment(ctx context.Context, payment *model.PaymentPrepareResponse) (*model.ProviderResponse, error) {
	p.calls++
	return p.resp, p.err
}

type paymentBackend struct {
	prepared  []model.PaymentPrepareRequest
	confirmed []model.PaymentConfirmRequest
	total     float64
}

func (b *paymentBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/payments/prepare":
		var req model.PaymentPrepareRequest
		json.NewDecoder(r.Body).Decode(&req)
		b.prepared = append(b.prepared, req)
		discount := 0.0
		if req.CouponCode != nil {
			discount = 1000
		}
		json.NewEncoder(w).Encode(model.PaymentPrepareResponse{
			PaymentID:      "pay-1",
			OrderName:      "Go 입문",
			TotalAmount:    b.total - discount,
			DiscountAmount: discount,
			PayMethod:      "CARD",
		})
	case "/payments/confirm":
		var req model.PaymentConfirmRequest
		json.NewDecoder(r.Body).Decode(&req)
		b.confirmed = append(b.confirmed, req)
		json.NewEncoder(w).Encode(model.PaymentConfirmResponse{ID: 1, CourseID: req.CourseID, Amount: req.Amount, Status: "PAID"})
	default:
		http.NotFound(w, r)
	}
}

func newPaymentService(t *testing.T, backend *paymentBackend, provider PaymentProvider) *PaymentService {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	client := apiclient.New(srv.URL, 2*time.Second)
	return NewPaymentService(repository.NewPaymentRepository(client), repository.NewCourseRepository(client), provider)
}

func TestCheckoutConfirmsOnSuccess(t *testing.T) {
	backend := &paymentBackend{total: 10000}
	provider := &fakeProvider{resp: &model.ProviderResponse{Code: util.PaymentSuccessCode, ImpUID: "imp_1", MerchantUID: "m_1"}}
	s := newPaymentService(t, backend, provider)

	result, err := s.Checkout(context.Background(), "tok", CheckoutForm{CourseID: "3", CouponCode: " WELCOME "})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if result.Receipt == nil || result.Receipt.Status != "PAID" {
		t.Fatalf("result = %+v", result)
	}

	if len(backend.prepared) != 1 || backend.prepared[0].CouponCode == nil || *backend.prepared[0].CouponCode != "WELCOME" {
		t.Fatalf("prepared = %+v", backend.prepared)
	}
	if len(backend.confirmed) != 1 {
		t.Fatalf("confirmed = %d, want 1", len(backend.confirmed))
	}
	c := backend.confirmed[0]
	if c.ImpUID != "imp_1" || c.MerchantUID != "m_1" || c.CourseID != 3 || c.Amount != 9000 {
		t.Fatalf("confirm request = %+v", c)
	}
}

func TestCheckoutSkipsConfirmOnProviderFailure(t *testing.T) {
	backend := &paymentBackend{total: 10000}
	provider := &fakeProvider{resp: &model.ProviderResponse{Code: "PAYMENT_CANCELLED"}}
	s := newPaymentService(t, backend, provider)

	result, err := s.Checkout(context.Background(), "tok", CheckoutForm{CourseID: "3"})
	if !errors.Is(err, util.ErrServer) {
		t.Fatalf("err = %v, want ErrServer", err)
	}
	if result == nil || result.Payment == nil || result.Receipt != nil {
		t.Fatalf("result = %+v", result)
	}
	if len(backend.confirmed) != 0 {
		t.Fatal("payment must not be confirmed after a failed provider call")
	}
	if backend.prepared[0].CouponCode != nil {
		t.Fatal("empty coupon should be sent as null")
	}
}

func TestCheckoutRejectsZeroAmount(t *testing.T) {
	backend := &paymentBackend{total: 0}
	provider := &fakeProvider{}
	s := newPaymentService(t, backend, provider)

	_, err := s.Checkout(context.Background(), "tok", CheckoutForm{CourseID: "3"})
	if !errors.Is(err, util.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if provider.calls != 0 {
		t.Fatal("provider must not be called for a zero amount")
	}
}

func TestCheckoutRequiresCourse(t *testing.T) {
	backend := &paymentBackend{total: 1000}
	s := newPaymentService(t, backend, &fakeProvider{})

	if _, err := s.Checkout(context.Background(), "tok", CheckoutForm{}); !errors.Is(err, util.ErrValidation) {
		t.Fatalf("err = %v", err)
	}
	if len(backend.prepared) != 0 {
		t.Fatal("no request expected without a course")
	}
}

func TestApplyCoupon(t *testing.T) {
	backend := &paymentBackend{total: 10000}
	s := newPaymentService(t, backend, &fakeProvider{})

	if _, err := s.ApplyCoupon(context.Background(), "tok", CouponForm{CourseID: "3"}); !errors.Is(err, util.ErrValidation) {
		t.Fatalf("missing coupon: err = %v", err)
	}

	payment, err := s.ApplyCoupon(context.Background(), "tok", CouponForm{CourseID: "3", CouponCode: "SALE"})
	if err != nil {
		t.Fatalf("apply coupon: %v", err)
	}
	if payment.DiscountAmount != 1000 || payment.TotalAmount != 9000 {
		t.Fatalf("payment = %+v", payment)
	}
}

func TestHTTPPaymentProviderNotConfigured(t *testing.T) {
	p := NewHTTPPaymentProvider(apiclient.New("", time.Second), "")
	if _, err := p.RequestPayment(context.Background(), &model.PaymentPrepareResponse{}); !errors.Is(err, util.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestHTTPPaymentProviderSendsPayment(t *testing.T) {
	var auth string
	var got model.PaymentPrepareResponse
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"code":"PAYMENT_SUCCESS","imp_uid":"imp","merchant_uid":"m"}`))
	}))
	defer srv.Close()

	p := NewHTTPPaymentProvider(apiclient.New(srv.URL, time.Second), "secret")
	resp, err := p.RequestPayment(context.Background(), &model.PaymentPrepareResponse{PaymentID: "pay-9", TotalAmount: 500})
	if err != nil {
		t.Fatalf("request payment: %v", err)
	}
	if resp.Code != util.PaymentSuccessCode || auth != "Bearer secret" || got.PaymentID != "pay-9" {
		t.Fatalf("resp = %+v auth = %q got = %+v", resp, auth, got)
	}
}
