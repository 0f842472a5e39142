package utils

import (
	"path/filepath"
	"strings"
	"unicode"
)

// SanitizeFileName 清理上传文件名，只保留字母、数字、点、下划线和连字符，
// 其余字符替换为下划线，避免对象存储key中出现路径分隔符等危险字符
func SanitizeFileName(name string) string {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return "photo"
	}

	var b strings.Builder
	for _, r := range base {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	cleaned := strings.Trim(b.String(), "._")
	if cleaned == "" {
		return "photo"
	}
	return cleaned
}
