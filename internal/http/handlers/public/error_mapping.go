package public

import (
	"errors"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/http/response"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/payment/paystack"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError binds a business error to its API response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "quantity must be positive"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "product not available"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, msg: "insufficient stock"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "product not available"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, msg: "insufficient stock"},
	{target: service.ErrInvoiceExhausted, code: response.CodeInternal, msg: "invoice numbers exhausted for today"},
}

var paymentInitiateErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrOrderNotPayable, code: response.CodeBadRequest, msg: "order is not payable"},
	{target: service.ErrDuplicatePayment, code: response.CodeConflict, msg: "order already paid"},
	{target: paystack.ErrConfigInvalid, code: response.CodeInternal, msg: "payment gateway not configured"},
	{target: paystack.ErrNetwork, code: response.CodeInternal, msg: "payment gateway unreachable"},
	{target: paystack.ErrGatewayRejected, code: response.CodeBadRequest, msg: "payment gateway rejected the request"},
	{target: paystack.ErrResponseInvalid, code: response.CodeInternal, msg: "payment gateway response invalid"},
}

var paymentConfirmErrorRules = []mappedHandlerError{
	{target: service.ErrIntentNotFound, code: response.CodeNotFound, msg: "payment reference not found"},
	{target: service.ErrPaymentNotConfirmed, code: response.CodeBadRequest, msg: "payment not confirmed"},
	{target: service.ErrPaymentAmountMismatch, code: response.CodeBadRequest, msg: "payment amount mismatch"},
	{target: service.ErrPaymentCurrencyMismatch, code: response.CodeBadRequest, msg: "payment currency mismatch"},
	{target: paystack.ErrTransactionNotFound, code: response.CodeNotFound, msg: "payment reference not found"},
	{target: paystack.ErrNetwork, code: response.CodeInternal, msg: "payment gateway unreachable"},
	{target: paystack.ErrResponseInvalid, code: response.CodeInternal, msg: "payment gateway response invalid"},
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart operation failed")
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "checkout failed")
}

func respondPaymentInitiateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, paymentInitiateErrorRules, response.CodeInternal, "payment initiation failed")
}

func respondPaymentConfirmError(c *gin.Context, err error) {
	respondWithMappedError(c, err, paymentConfirmErrorRules, response.CodeInternal, "payment confirmation failed")
}
