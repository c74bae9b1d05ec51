package controller

import (
	"edu_portal/internal/model"
	"edu_portal/internal/service"
	"edu_portal/internal/util"
	"edu_portal/internal/view"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	*Pages
	PaymentService *service.PaymentService
}

func NewPaymentController(pages *Pages, paymentService *service.PaymentService) *PaymentController {
	return &PaymentController{
		Pages:          pages,
		PaymentService: paymentService,
	}
}

func (c *PaymentController) Checkout(ctx *gin.Context) {
	c.render(ctx, view.CheckoutView{Form: service.CheckoutForm{CourseID: ctx.Query("course_id")}}, "", nil)
}

func (c *PaymentController) ApplyCoupon(ctx *gin.Context) {
	var form service.CouponForm
	err := bindForm(ctx, &form, "쿠폰 정보를 올바르게 입력해주세요.")
	var payment *model.PaymentPrepareResponse
	if err == nil {
		payment, err = c.PaymentService.ApplyCoupon(ctx.Request.Context(), util.GetToken(ctx), form)
	}
	if err != nil {
		c.render(ctx, view.CheckoutView{Form: service.CheckoutForm(form)}, "쿠폰 적용에 실패했습니다", err)
		return
	}

	data := view.CheckoutView{Form: service.CheckoutForm(form), Payment: payment}
	c.render(ctx, data, fmt.Sprintf("쿠폰이 적용되었습니다. 할인 금액: %.0f원", payment.DiscountAmount), nil)
}

func (c *PaymentController) Pay(ctx *gin.Context) {
	var form service.CheckoutForm
	var result *service.CheckoutResult
	err := bindForm(ctx, &form, "결제 정보를 올바르게 입력해주세요.")
	if err == nil {
		result, err = c.PaymentService.Checkout(ctx.Request.Context(), util.GetToken(ctx), form)
	}
	data := view.CheckoutView{Form: form}
	if result != nil {
		data.Payment = result.Payment
		data.Receipt = result.Receipt
	}
	if err != nil {
		c.render(ctx, data, "결제에 실패했습니다", err)
		return
	}
	c.render(ctx, data, "결제가 성공적으로 완료되었습니다.", nil)
}

// render 成功时 message 为提示文本，失败时为操作名称
func (c *PaymentController) render(ctx *gin.Context, data view.CheckoutView, message string, err error) {
	courses, listErr := c.PaymentService.Courses(ctx.Request.Context(), util.GetToken(ctx))
	data.Courses = courses
	if data.Courses == nil {
		data.Courses = []model.Course{}
	}

	page := c.Page(ctx, "결제", data)
	status := http.StatusOK
	switch {
	case err != nil:
		status = c.Fail(ctx, page, message, err)
	case listErr != nil:
		status = c.Fail(ctx, page, "코스 정보를 불러오는데 실패했습니다", listErr)
	case message != "":
		page.Info(message)
	}
	c.Render(ctx, status, "checkout", page)
}
