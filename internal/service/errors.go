package service

import "errors"

// 业务错误定义
var (
	ErrNotFound         = errors.New("resource not found")
	ErrPromoterNotFound = errors.New("promoter not found")
	ErrEventNotFound    = errors.New("event not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrMalformedPayload = errors.New("malformed payload")
	ErrDataIntegrity    = errors.New("data integrity error")
)
