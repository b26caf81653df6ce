package ninepay

import (
	"github.com/ninepay-go/ninepay/internal/shared/utils"
)

type reverseFields struct {
	RequestID string `json:"request_id" validate:"required,max=30"`
	OrderCode int64  `json:"order_code" validate:"required,gt=0"`
}

// ReverseCardPaymentRequest voids an authorization that has not been captured.
type ReverseCardPaymentRequest struct {
	issues

	requestID string
	orderCode int64
}

func NewReverseCardPaymentRequest(requestID string, orderCode int64) (*ReverseCardPaymentRequest, error) {
	if err := utils.ValidateStruct(reverseFields{RequestID: requestID, OrderCode: orderCode}); err != nil {
		return nil, err
	}
	return &ReverseCardPaymentRequest{requestID: requestID, orderCode: orderCode}, nil
}

func (r *ReverseCardPaymentRequest) Validate() error {
	return r.Err()
}

func (r *ReverseCardPaymentRequest) Payload() (*Payload, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return NewPayload().
		Set("request_id", r.requestID).
		Set("order_code", r.orderCode).
		Finalize(), nil
}
