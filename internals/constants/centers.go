package constants

import "strings"

// Center codes form the middle digit of a member id (YY C NNN).
// Codes 1..5 are resolved from the mentor's center; everything else
// falls into "other", and profiles without an approved mentor sit in
// the pending bucket.
const (
	DefaultOtherCenterCode = "6"
	PendingApprovalCode    = "7"
)

var centerCodeMap = map[string]string{
	"vrindavan bace":      "1",
	"mayapur bace":        "2",
	"giri govardhan bace": "3",
	"temple vta":          "4",
	"temple brahmachari":  "5",
}

// CenterCode resolves a center name to its single-digit bucket code.
func CenterCode(center string) string {
	key := strings.ToLower(strings.TrimSpace(center))
	if code, ok := centerCodeMap[key]; ok {
		return code
	}
	return DefaultOtherCenterCode
}
