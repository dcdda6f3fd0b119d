package render

import (
	"fmt"
	"strings"
	"unicode"
)

// PascalCase converts snake_case or camelCase to PascalCase
// Examples: user_name → UserName, userName → UserName, api_client → APIClient
func PascalCase(s string) string {
	if s == "" {
		return ""
	}

	if strings.ContainsAny(s, "_-") {
		parts := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' })
		for i, part := range parts {
			parts[i] = capitalizeWord(part)
		}
		return strings.Join(parts, "")
	}

	return capitalizeWord(s)
}

// capitalizeWord capitalizes a word with special handling for acronyms
func capitalizeWord(s string) string {
	acronyms := map[string]string{
		"id":   "ID",
		"url":  "URL",
		"http": "HTTP",
		"api":  "API",
		"cli":  "CLI",
		"sql":  "SQL",
		"json": "JSON",
		"db":   "DB",
		"ui":   "UI",
	}

	if acronym, ok := acronyms[strings.ToLower(s)]; ok {
		return acronym
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// CamelCase converts snake_case or PascalCase to camelCase
// Examples: user_name → userName, UserName → userName
func CamelCase(s string) string {
	if s == "" {
		return ""
	}

	if strings.ContainsAny(s, "_-") {
		parts := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' })
		for i, part := range parts {
			if i == 0 {
				parts[i] = strings.ToLower(part)
				continue
			}
			runes := []rune(strings.ToLower(part))
			runes[0] = unicode.ToUpper(runes[0])
			parts[i] = string(runes)
		}
		return strings.Join(parts, "")
	}

	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// SnakeCase converts PascalCase or camelCase to snake_case
// Examples: UserName → user_name, userName → user_name, HTTPServer → http_server
func SnakeCase(s string) string {
	if s == "" {
		return ""
	}

	if strings.Contains(s, "_") {
		return strings.ToLower(s)
	}

	runes := []rune(s)
	var result strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			// Break before an uppercase letter that follows a lowercase one, or
			// that starts a new word after an acronym (HTTPServer → http_server).
			if i > 0 {
				prev := runes[i-1]
				if unicode.IsLower(prev) || unicode.IsDigit(prev) {
					result.WriteRune('_')
				} else if i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
					result.WriteRune('_')
				}
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// Quote wraps a string in double quotes
func Quote(s string) string {
	return fmt.Sprintf("%q", s)
}

// Title converts a string to title case (first letter of each word capitalized)
func Title(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// Default returns defaultVal when val is nil or an empty string
func Default(defaultVal, val any) any {
	if val == nil {
		return defaultVal
	}
	if s, ok := val.(string); ok && s == "" {
		return defaultVal
	}
	return val
}
