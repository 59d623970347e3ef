package discovery

import (
	"encoding/json"
	"fmt"
	"strings"
)

// 目标标签名约定。__port__ 决定抓取端口，可被 override 覆盖；
// __meta_netbox_* 供 Prometheus relabel 阶段消费。
const (
	LabelPort   = "__port__"
	LabelName   = "__meta_netbox_name"
	LabelPop    = "__meta_netbox_pop"
	LabelTarget = "__meta_netbox_target"
)

// ParseOverrides 解析 custom field 里的标签覆盖：
// 单个 JSON 对象按一元素列表处理，JSON 数组原样使用。
func ParseOverrides(raw string) ([]map[string]string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var list []map[string]string
		if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedOverride, err)
		}
		return list, nil
	}
	var single map[string]string
	if err := json.Unmarshal([]byte(trimmed), &single); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOverride, err)
	}
	return []map[string]string{single}, nil
}

// MergeLabels 把 override 叠加到 base 上，返回新 map，同名键以 override 为准。
// 始终产出新 map，避免多个 override 元素之间串改同一份基线。
func MergeLabels(base, override map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}
