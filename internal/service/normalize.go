package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/domain"
)

var iframeSrcPattern = regexp.MustCompile(`src="([^"]+)"`)

var iconReplacer = strings.NewReplacer(" ", "_", "-", "_")

// NormalizeMapsURL keeps only the src URL when value is an <iframe> embed snippet.
// Values without an embed tag are returned as given.
func NormalizeMapsURL(value string) string {
	if !strings.Contains(strings.ToLower(value), "<iframe") {
		return value
	}
	match := iframeSrcPattern.FindStringSubmatch(value)
	if match == nil {
		return value
	}
	return match[1]
}

// NormalizeIcon lowercases an icon name and turns spaces and hyphens into underscores.
func NormalizeIcon(value string) string {
	icon := iconReplacer.Replace(strings.ToLower(strings.TrimSpace(value)))
	if icon == "" {
		return domain.DefaultCategoryIcon
	}
	return icon
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}

func checkName(value *string, field string, max int, required bool, problems *[]string) {
	if value == nil {
		if required {
			*problems = append(*problems, field+" is required")
		}
		return
	}
	if *value == "" {
		*problems = append(*problems, field+" is required")
		return
	}
	if utf8.RuneCountInString(*value) > max {
		*problems = append(*problems, field+" is too long")
	}
}

func checkMaxLength(value *string, field string, max int, problems *[]string) {
	if value != nil && utf8.RuneCountInString(*value) > max {
		*problems = append(*problems, field+" is too long")
	}
}
