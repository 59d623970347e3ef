package netbox

// Status 表示 NetBox 对象的运行状态。
type Status struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// StatusActive 是 device/vm/circuit 共用的在役状态值。
// https://github.com/netbox-community/netbox/blob/master/netbox/dcim/choices.py
const StatusActive = "active"

// CustomFields 保存对象上的自定义字段，值类型由运营方决定。
type CustomFields map[string]any

// Text 返回指定字段的字符串值；字段缺失、为 null 或非字符串时返回空串。
// 字符串与否在这里一次性判定，后续流程不再做类型探测。
func (f CustomFields) Text(name string) string {
	if f == nil {
		return ""
	}
	v, ok := f[name]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// SiteRef 表示设备所属站点的引用。
type SiteRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// IPRef 表示一条带 CIDR 前缀的地址引用。
type IPRef struct {
	ID      int    `json:"id"`
	Address string `json:"address"`
}

// Device 是 dcim/devices 的只读视图。可选属性用指针表达，缺失即 nil。
type Device struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Status       Status       `json:"status"`
	Site         *SiteRef     `json:"site"`
	PrimaryIP    *IPRef       `json:"primary_ip"`
	CustomFields CustomFields `json:"custom_fields"`
}

// VirtualMachine 是 virtualization/virtual-machines 的只读视图。
type VirtualMachine struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Status       Status       `json:"status"`
	Site         *SiteRef     `json:"site"`
	PrimaryIP    *IPRef       `json:"primary_ip"`
	CustomFields CustomFields `json:"custom_fields"`
}

// TerminationRef 表示电路到某一端接线的引用。
type TerminationRef struct {
	ID int `json:"id"`
}

// Circuit 是 circuits/circuits 的只读视图。
type Circuit struct {
	ID           int             `json:"id"`
	CID          string          `json:"cid"`
	Status       Status          `json:"status"`
	TerminationA *TerminationRef `json:"termination_a"`
	TerminationZ *TerminationRef `json:"termination_z"`
	CustomFields CustomFields    `json:"custom_fields"`
}

// CableRef 表示接线端上挂接的线缆引用。
type CableRef struct {
	ID int `json:"id"`
}

// CircuitTermination 是 circuits/circuit-terminations 的只读视图。
type CircuitTermination struct {
	ID    int       `json:"id"`
	Cable *CableRef `json:"cable"`
}

// DeviceRef 表示线缆端点绑定的设备引用。
type DeviceRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CableEnd 表示线缆的一个端点：可能绑定设备与接口，也可能两者皆空。
type CableEnd struct {
	Device *DeviceRef `json:"device"`
	Name   string     `json:"name"`
}

// Cable 是 dcim/cables 的只读视图，A/B 两端各自可空。
type Cable struct {
	ID           int       `json:"id"`
	TerminationA *CableEnd `json:"termination_a"`
	TerminationB *CableEnd `json:"termination_b"`
}

// IPAddress 是 ipam/ip-addresses 的只读视图。
type IPAddress struct {
	ID      int    `json:"id"`
	Address string `json:"address"`
}

// listEnvelope 是 NetBox 列表接口的统一分页信封。
type listEnvelope[T any] struct {
	Count    int    `json:"count"`
	Next     string `json:"next"`
	Previous string `json:"previous"`
	Results  []T    `json:"results"`
}
