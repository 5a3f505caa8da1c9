package util

import (
	"strings"
	"unicode"

	"organising-events-app/internal/errors"
)

// NextName 返回字典序中紧跟在 name 之后的名称，用于构造前缀搜索的
// 半开区间 [name, next)。从末位开始找到第一个非 'z' 的字母加一，
// 后面的 'z' 全部进位为 'a'。整个名称都是 'z' 时没有后继，ok 为 false。
func NextName(name string) (next string, ok bool, err error) {
	if name == "" {
		return "", false, errors.New(errors.ErrBadRequest, "名称必须是非空字符串")
	}
	runes := []rune(strings.ToLower(name))
	for _, r := range runes {
		if r < 'a' || r > 'z' {
			return "", false, errors.Newf(errors.ErrBadRequest, "名称包含非法字符: %q", r)
		}
	}
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == 'z' {
			runes[i] = 'a'
			continue
		}
		runes[i]++
		return Capitalize(string(runes)), true, nil
	}
	// 全部为 'z'，没有后继名称
	return "", false, nil
}

// Capitalize 首字母大写，其余小写
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
