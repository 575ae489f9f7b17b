package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateReference builds a provider reference of the form
// {PREFIX}-{epochMillis}-{4 random digits}.
func GenerateReference(prefix string) string {
	if prefix == "" {
		prefix = "PAY"
	}
	return fmt.Sprintf("%s-%d-%04d", prefix, time.Now().UnixMilli(), rand.Intn(10000))
}
