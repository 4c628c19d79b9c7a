package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
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

// GenerateOrderRef creates a human-readable order reference.
// Format: OPT-YYYY-XXXX (4 random hex chars, uppercase).
func GenerateOrderRef() string {
	buf := make([]byte, 2)
	rand.Read(buf)
	return fmt.Sprintf("OPT-%d-%s", time.Now().Year(), strings.ToUpper(hex.EncodeToString(buf)))
}
