package util

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// RedemptionCodePrefix marks codes issued by this platform so a scanner can
// reject foreign QR payloads cheaply.
const RedemptionCodePrefix = "cpq"

// GenerateRedemptionCode produces a globally unique QR code payload with
// format: cpq_<uuid-without-dashes>.
func GenerateRedemptionCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s_%s", RedemptionCodePrefix, raw)
}

// GenerateUID produces an identity uid for a new account.
func GenerateUID() string {
	return uuid.NewString()
}

// IsRedemptionCode reports whether a scanned payload looks like one of ours.
func IsRedemptionCode(code string) bool {
	return strings.HasPrefix(code, RedemptionCodePrefix+"_")
}
