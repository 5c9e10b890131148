package scenario

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Expand 将警报消息里的 ${path.to.value} 占位符替换为 data 中的值，
// data 为 JSON 反序列化出的 map/slice 结构。data 为空或路径不存在时
// 保留原占位符，保证消息永远可读。
func Expand(message string, data any) string {
	if data == nil {
		return message
	}
	return placeholderPattern.ReplaceAllStringFunc(message, func(match string) string {
		path := strings.TrimSpace(placeholderPattern.FindStringSubmatch(match)[1])
		if path == "" {
			return match
		}
		if val, ok := lookup(data, path); ok {
			return fmt.Sprint(val)
		}
		return match
	})
}

// lookup 沿点号路径下钻，段内允许 [n] 数组下标（如 plots[0].name）。
func lookup(data any, path string) (any, bool) {
	current := data
	for _, segment := range strings.Split(path, ".") {
		key := segment
		var indexes []int
		if i := strings.IndexByte(segment, '['); i != -1 {
			key = segment[:i]
			rest := segment[i:]
			for strings.HasPrefix(rest, "[") {
				end := strings.IndexByte(rest, ']')
				if end == -1 {
					return nil, false
				}
				idx, err := strconv.Atoi(rest[1:end])
				if err != nil {
					return nil, false
				}
				indexes = append(indexes, idx)
				rest = rest[end+1:]
			}
		}

		if key != "" {
			m, ok := current.(map[string]any)
			if !ok {
				return nil, false
			}
			if current, ok = m[key]; !ok {
				return nil, false
			}
		}
		for _, idx := range indexes {
			arr, ok := current.([]any)
			if !ok || idx < 0 || idx >= len(arr) {
				return nil, false
			}
			current = arr[idx]
		}
	}
	return current, true
}
