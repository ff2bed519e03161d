// Package validation provides request validation for the optimization API.
package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/iwvelando/service-optimizer/pkg/constants"
	"github.com/iwvelando/service-optimizer/pkg/optimization"
)

// NormalizeTarget converts a target name to its canonical slug form:
// lowercase, with runs of non-alphanumeric characters collapsed into single
// hyphens and no leading or trailing hyphen.
func NormalizeTarget(target string) string {
	var builder strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(target)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			builder.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(builder.String(), "-")
}

// ValidAttribute reports whether the attribute is one of the fixed set.
func ValidAttribute(attribute string) bool {
	for _, a := range constants.Attributes() {
		if a == attribute {
			return true
		}
	}
	return false
}

// ValidateRequest checks the inbound request and returns a copy with the
// target normalized to slug form. The returned error describes the first
// violation found.
func ValidateRequest(req optimization.Request) (optimization.Request, error) {
	target := NormalizeTarget(req.Target)
	if target == "" {
		return req, fmt.Errorf("target name must not be empty")
	}
	if len(target) > constants.MaxTargetLength {
		return req, fmt.Errorf("target name must be at most %d characters, got %d",
			constants.MaxTargetLength, len(target))
	}

	if !ValidAttribute(req.Attribute) {
		return req, fmt.Errorf("attribute %q is not supported; expected one of %s",
			req.Attribute, strings.Join(constants.Attributes(), ", "))
	}

	if req.WindowDays < constants.MinWindowDays || req.WindowDays > constants.MaxWindowDays {
		return req, fmt.Errorf("window must be between %d and %d days, got %d",
			constants.MinWindowDays, constants.MaxWindowDays, req.WindowDays)
	}

	req.Target = target
	return req, nil
}
