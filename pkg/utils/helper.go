package utils

import (
	"fmt"
	"math/rand"
	"strconv"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ParseBoolPtr parses an optional query flag, returning nil when absent.
func ParseBoolPtr(value string) *bool {
	if value == "" {
		return nil
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}

	return &b
}

// GenerateVerifyCode creates a numeric one-time code of specified length
func GenerateVerifyCode(length int) string {
	if length <= 0 {
		length = 6
	}

	code := ""
	for i := 0; i < length; i++ {
		code += fmt.Sprintf("%d", rand.Intn(10))
	}

	return code
}
