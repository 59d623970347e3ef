package discovery

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"netbox2prom/internal/netbox"
)

// Mode 表示发现模式。
type Mode string

const (
	ModeDevice  Mode = "device"
	ModeVM      Mode = "vm"
	ModeCircuit Mode = "circuit"
)

// ParseMode 校验模式取值。
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDevice, ModeVM, ModeCircuit:
		return Mode(s), nil
	}
	return "", fmt.Errorf("未知的发现模式 %q (可选 device|vm|circuit)", s)
}

// TargetGroup 是输出文档的基本单元：一组 host:port 抓取端点加一份标签集。
type TargetGroup struct {
	Targets []string          `json:"targets"`
	Labels  map[string]string `json:"labels"`
}

// Options 控制发现行为。
type Options struct {
	// Port 是默认抓取端口，可被 override 里的 __port__ 覆盖。
	Port int
	// CustomField 是携带标签覆盖的 NetBox custom field 名。
	CustomField string
}

// Engine 按模式遍历清单对象，解析抓取地址并装配目标组。
// 单个对象的任何转换失败只跳过该对象，整个批次继续。
type Engine struct {
	inv         netbox.Inventory
	paths       *PathResolver
	port        int
	customField string
	logger      *zap.Logger
}

// NewEngine 创建发现引擎。
func NewEngine(inv netbox.Inventory, opts Options, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	port := opts.Port
	if port <= 0 {
		port = 10000
	}
	field := opts.CustomField
	if field == "" {
		field = "prom_labels"
	}
	return &Engine{
		inv:         inv,
		paths:       NewPathResolver(inv, logger),
		port:        port,
		customField: field,
		logger:      logger,
	}
}

// Run 执行一次指定模式的发现，返回按清单遍历顺序排列的目标组。
// 初次列表拉取失败是致命错误，直接上抛。
func (e *Engine) Run(ctx context.Context, mode Mode) ([]TargetGroup, error) {
	switch mode {
	case ModeDevice:
		return e.DiscoverDevices(ctx)
	case ModeVM:
		return e.DiscoverVirtualMachines(ctx)
	case ModeCircuit:
		return e.DiscoverCircuits(ctx)
	}
	return nil, fmt.Errorf("未知的发现模式 %q", mode)
}

// scrapeSource 把 device 和 vm 归一成同一种待发现对象。
type scrapeSource struct {
	name     string
	fallback string
	site     string
	raw      string
	address  string
}

// DiscoverDevices 发现在役且带主 IP 的设备。
func (e *Engine) DiscoverDevices(ctx context.Context) ([]TargetGroup, error) {
	devices, err := e.inv.ListDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("拉取设备清单失败: %w", err)
	}

	groups := make([]TargetGroup, 0, len(devices))
	for i := range devices {
		dev := &devices[i]
		if dev.Status.Value != netbox.StatusActive || dev.PrimaryIP == nil {
			continue
		}
		src := scrapeSource{
			name:     dev.Name,
			fallback: fmt.Sprintf("device-%d", dev.ID),
			raw:      dev.CustomFields.Text(e.customField),
			address:  dev.PrimaryIP.Address,
		}
		if dev.Site != nil {
			src.site = dev.Site.Slug
		}
		groups = append(groups, e.targetsFrom(src)...)
	}
	return groups, nil
}

// DiscoverVirtualMachines 发现在役且带主 IP 的虚拟机。
func (e *Engine) DiscoverVirtualMachines(ctx context.Context) ([]TargetGroup, error) {
	vms, err := e.inv.ListVirtualMachines(ctx)
	if err != nil {
		return nil, fmt.Errorf("拉取虚拟机清单失败: %w", err)
	}

	groups := make([]TargetGroup, 0, len(vms))
	for i := range vms {
		vm := &vms[i]
		if vm.Status.Value != netbox.StatusActive || vm.PrimaryIP == nil {
			continue
		}
		src := scrapeSource{
			name:     vm.Name,
			fallback: fmt.Sprintf("vm-%d", vm.ID),
			raw:      vm.CustomFields.Text(e.customField),
			address:  vm.PrimaryIP.Address,
		}
		if vm.Site != nil {
			src.site = vm.Site.Slug
		}
		groups = append(groups, e.targetsFrom(src)...)
	}
	return groups, nil
}

// targetsFrom 对单个 device/vm 执行标签装配。custom field 缺失的对象静默排除。
func (e *Engine) targetsFrom(src scrapeSource) []TargetGroup {
	if src.raw == "" {
		return nil
	}

	name := src.name
	if name == "" {
		name = src.fallback
	}

	ip, err := BareIP(src.address)
	if err != nil {
		e.logger.Warn("解析抓取地址失败，跳过对象",
			zap.String("name", name), zap.Error(err))
		return nil
	}

	overrides, err := ParseOverrides(src.raw)
	if err != nil {
		e.logger.Warn("解析 custom field 失败，跳过对象",
			zap.String("name", name), zap.Error(err))
		return nil
	}

	baseline := map[string]string{
		LabelPort: strconv.Itoa(e.port),
		LabelName: name,
	}
	if src.site != "" {
		baseline[LabelPop] = src.site
	}

	return emit(baseline, overrides, ip)
}

// DiscoverCircuits 发现在役电路：A 端 IP 作为抓取主机，Z 端 IP 写入标签。
// 任一端解析不出 IP 的电路整体排除。
func (e *Engine) DiscoverCircuits(ctx context.Context) ([]TargetGroup, error) {
	circuits, err := e.inv.ListCircuits(ctx)
	if err != nil {
		return nil, fmt.Errorf("拉取电路清单失败: %w", err)
	}

	groups := make([]TargetGroup, 0, len(circuits))
	for i := range circuits {
		circuit := &circuits[i]
		if circuit.Status.Value != netbox.StatusActive {
			continue
		}
		raw := circuit.CustomFields.Text(e.customField)
		if raw == "" {
			continue
		}

		name := circuit.CID
		if name == "" {
			name = fmt.Sprintf("circuit-%d", circuit.ID)
		}

		ipa, err := e.paths.EndpointA(ctx, circuit.TerminationA)
		if err != nil {
			e.logger.Warn("解析电路 A 端失败，跳过电路",
				zap.String("circuit", name), zap.Error(err))
			continue
		}
		ipz, err := e.paths.EndpointZ(ctx, circuit.TerminationZ)
		if err != nil {
			e.logger.Warn("解析电路 Z 端失败，跳过电路",
				zap.String("circuit", name), zap.Error(err))
			continue
		}
		if ipa == "" || ipz == "" {
			e.logger.Warn("电路端点缺少 IP，跳过电路",
				zap.String("circuit", name),
				zap.String("endpoint_a", ipa), zap.String("endpoint_z", ipz))
			continue
		}

		overrides, err := ParseOverrides(raw)
		if err != nil {
			e.logger.Warn("解析 custom field 失败，跳过电路",
				zap.String("circuit", name), zap.Error(err))
			continue
		}

		baseline := map[string]string{
			LabelPort:   strconv.Itoa(e.port),
			LabelName:   name,
			LabelTarget: ipz,
		}
		groups = append(groups, emit(baseline, overrides, ipa)...)
	}
	return groups, nil
}

// emit 按 override 元素逐个产出目标组，抓取端口取合并后的 __port__。
func emit(baseline map[string]string, overrides []map[string]string, ip string) []TargetGroup {
	groups := make([]TargetGroup, 0, len(overrides))
	for _, override := range overrides {
		labels := MergeLabels(baseline, override)
		groups = append(groups, TargetGroup{
			Targets: []string{ip + ":" + labels[LabelPort]},
			Labels:  labels,
		})
	}
	return groups
}
