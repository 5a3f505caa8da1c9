package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNextName 测试前缀搜索区间上界的构造
func TestNextName(t *testing.T) {
	cases := []struct {
		name string
		next string
		ok   bool
	}{
		{"Name", "Namf", true},
		{"name", "Namf", true},
		{"Namz", "Nana", true},
		{"N", "O", true},
		{"azz", "Baa", true},
	}
	for _, c := range cases {
		next, ok, err := NextName(c.name)
		assert.NoError(t, err)
		assert.Equal(t, c.ok, ok)
		assert.Equal(t, c.next, next)
	}
}

// TestNextNameAllZ 测试全z名称没有后继
func TestNextNameAllZ(t *testing.T) {
	next, ok, err := NextName("Zzzz")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "", next)
}

// TestNextNameInvalid 测试空名称和非法字符，不论非法字符出现在哪个位置
func TestNextNameInvalid(t *testing.T) {
	_, _, err := NextName("")
	assert.Error(t, err)

	_, _, err = NextName("na me")
	assert.Error(t, err)

	_, _, err = NextName("nam3")
	assert.Error(t, err)

	_, _, err = NextName("näme")
	assert.Error(t, err)
}

// TestCapitalize 测试首字母大写
func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Matti", Capitalize("mATTI"))
	assert.Equal(t, "M", Capitalize("m"))
	assert.Equal(t, "", Capitalize(""))
}
