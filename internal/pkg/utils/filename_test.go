package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"普通文件名保持不变", "IMG_2024.jpg", "IMG_2024.jpg"},
		{"空格替换为下划线", "baby first smile.png", "baby_first_smile.png"},
		{"中文字符保留", "宝宝百天照.jpg", "宝宝百天照.jpg"},
		{"路径部分被剥离", "../../etc/passwd", "passwd"},
		{"危险字符替换", "photo?*<>.jpg", "photo____.jpg"},
		{"首尾的点和下划线被去掉", "..hidden_", "hidden"},
		{"空文件名回退默认值", "", "photo"},
		{"全部是非法字符时回退默认值", "###", "photo"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SanitizeFileName(tc.input))
		})
	}
}
