package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPageBounds 测试物化列表的分页区间计算
func TestPageBounds(t *testing.T) {
	// 第一页，还有下一页
	start, end, next, err := PageBounds(25, 10, 0)
	assert.NoError(t, err)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)
	assert.Equal(t, 1, next)

	// 最后一页不满，next 为 -1
	start, end, next, err = PageBounds(25, 10, 2)
	assert.NoError(t, err)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)
	assert.Equal(t, -1, next)

	// 刚好整除时最后一页也没有下一页
	_, end, next, err = PageBounds(20, 10, 1)
	assert.NoError(t, err)
	assert.Equal(t, 20, end)
	assert.Equal(t, -1, next)
}

// TestPageBoundsEmptyList 测试空列表的第一页是空页
func TestPageBoundsEmptyList(t *testing.T) {
	start, end, next, err := PageBounds(0, 10, 0)
	assert.NoError(t, err)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
	assert.Equal(t, -1, next)
}

// TestPageBoundsOutOfRange 测试越界页码报错
func TestPageBoundsOutOfRange(t *testing.T) {
	_, _, _, err := PageBounds(25, 10, 3)
	assert.Error(t, err)

	_, _, _, err = PageBounds(25, 10, -1)
	assert.Error(t, err)

	_, _, _, err = PageBounds(0, 10, 1)
	assert.Error(t, err)
}

// TestNextPageValue 测试 next_page 响应值的转换
func TestNextPageValue(t *testing.T) {
	assert.Equal(t, false, NextPageValue(-1))
	assert.Equal(t, 2, NextPageValue(2))

	assert.Equal(t, false, NextCursorValue(""))
	assert.Equal(t, "abc", NextCursorValue("abc"))
}
