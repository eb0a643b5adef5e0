package id

import (
	"github.com/google/uuid"
)

// New 生成请求 ID
func New() string {
	return uuid.New().String()
}

// IsValid 校验外部传入的请求 ID，只接受 UUID
func IsValid(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
