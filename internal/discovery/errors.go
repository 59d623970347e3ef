package discovery

import "errors"

// 可恢复错误只作用于单个对象：跳过并记录日志，绝不中断整个批次。
var (
	// ErrAddressFormat 表示地址字符串不是合法的 CIDR 形式。
	ErrAddressFormat = errors.New("address is not in CIDR form")
	// ErrMalformedOverride 表示 custom field 内容无法按 JSON 解析。
	ErrMalformedOverride = errors.New("override field is not valid JSON")
)
