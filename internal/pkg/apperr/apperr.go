package apperr

import (
	"errors"
	"fmt"
)

// ValidationError is returned for malformed or missing input. It is raised
// before any storage or provider call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Validation(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError is returned when a referenced entity does not resolve.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// AlreadyRefundedError is returned for refund requests against a deposit
// whose refundable remaining is already zero.
type AlreadyRefundedError struct {
	DepositID string
}

func (e *AlreadyRefundedError) Error() string {
	return fmt.Sprintf("deposit %s is already fully refunded", e.DepositID)
}

func AlreadyRefunded(depositID string) error {
	return &AlreadyRefundedError{DepositID: depositID}
}

// PaymentError wraps a rejection from the payment provider. Local state must
// be left unchanged whenever one of these is returned.
type PaymentError struct {
	Message string
	Code    string
}

func (e *PaymentError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("payment provider error (%s): %s", e.Code, e.Message)
	}
	return "payment provider error: " + e.Message
}

func Payment(code, message string) error {
	return &PaymentError{Code: code, Message: message}
}

// SignatureError is returned when a webhook payload fails authenticity
// verification. Nothing may be processed after one of these.
type SignatureError struct {
	Message string
}

func (e *SignatureError) Error() string { return e.Message }

func Signature(message string) error {
	return &SignatureError{Message: message}
}

// ConflictError is returned when a conditional update lost a race, e.g. two
// concurrent refunds competing for the same refundable balance.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func Conflict(format string, args ...interface{}) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsAlreadyRefunded(err error) bool {
	var target *AlreadyRefundedError
	return errors.As(err, &target)
}

func IsPayment(err error) bool {
	var target *PaymentError
	return errors.As(err, &target)
}

func IsSignature(err error) bool {
	var target *SignatureError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}
