package service

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/medreminder/internal/recurrence"
	"github.com/microcosm-cc/bluemonday"
)

// ErrInvalidDate 在日期不是 YYYY-MM-DD 格式时返回
var ErrInvalidDate = errors.New("invalid date")

var plainTextPolicy = bluemonday.StrictPolicy()

// cleanText 去除 HTML 标签并裁剪空白，保存为纯文本
func cleanText(raw string) string {
	return strings.TrimSpace(html.UnescapeString(plainTextPolicy.Sanitize(raw)))
}

// normalizeDate 严格校验用户输入的日期；已存储数据的容错解析由 recurrence.ParseDate 负责
func normalizeDate(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	parsed, err := time.Parse(recurrence.DateLayout, trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return parsed.Format(recurrence.DateLayout), nil
}
