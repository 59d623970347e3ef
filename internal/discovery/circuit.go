package discovery

import (
	"context"

	"go.uber.org/zap"

	"netbox2prom/internal/netbox"
)

// PathResolver 负责把电路的接线端沿 termination → cable → device 解析成 IP。
// 拓扑数据残缺（缺线缆、缺设备绑定）一律解析为空结果，由调用方决定跳过。
type PathResolver struct {
	inv    netbox.Inventory
	logger *zap.Logger
}

// NewPathResolver 创建电路路径解析器。
func NewPathResolver(inv netbox.Inventory, logger *zap.Logger) *PathResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PathResolver{inv: inv, logger: logger}
}

// pickDeviceSide 在线缆两端中选出带设备绑定的一端：优先 A 端，其次 B 端。
// 两端都没有设备时返回 ok=false。
func pickDeviceSide(cable *netbox.Cable) (deviceID int, ifName string, ok bool) {
	if cable == nil {
		return 0, "", false
	}
	if cable.TerminationA != nil && cable.TerminationA.Device != nil {
		return cable.TerminationA.Device.ID, cable.TerminationA.Name, true
	}
	if cable.TerminationB != nil && cable.TerminationB.Device != nil {
		return cable.TerminationB.Device.ID, cable.TerminationB.Name, true
	}
	return 0, "", false
}

// EndpointA 解析 A 端 IP。返回的是所选设备的主管理 IP 而非接口 IP：
// 抓取流量走管理地址，接口地址不保证可达。
func (r *PathResolver) EndpointA(ctx context.Context, ref *netbox.TerminationRef) (string, error) {
	deviceID, _, ok, err := r.resolveSide(ctx, ref)
	if err != nil || !ok {
		return "", err
	}
	device, err := r.inv.GetDevice(ctx, deviceID)
	if err != nil {
		return "", err
	}
	if device.PrimaryIP == nil {
		return "", nil
	}
	return BareIP(device.PrimaryIP.Address)
}

// EndpointZ 解析 Z 端 IP：取所选设备上该接口的第一条 IP 地址记录。
// 同一接口存在多条记录时沿用“第一条生效”的既有行为。
func (r *PathResolver) EndpointZ(ctx context.Context, ref *netbox.TerminationRef) (string, error) {
	deviceID, ifName, ok, err := r.resolveSide(ctx, ref)
	if err != nil || !ok {
		return "", err
	}
	ips, err := r.inv.ListInterfaceIPs(ctx, deviceID, ifName)
	if err != nil {
		return "", err
	}
	if len(ips) == 0 {
		return "", nil
	}
	return BareIP(ips[0].Address)
}

// resolveSide 走 termination → cable → pickDeviceSide 这段公共路径。
func (r *PathResolver) resolveSide(ctx context.Context, ref *netbox.TerminationRef) (deviceID int, ifName string, ok bool, err error) {
	if ref == nil {
		return 0, "", false, nil
	}
	term, err := r.inv.GetCircuitTermination(ctx, ref.ID)
	if err != nil {
		return 0, "", false, err
	}
	if term.Cable == nil {
		return 0, "", false, nil
	}
	cable, err := r.inv.GetCable(ctx, term.Cable.ID)
	if err != nil {
		return 0, "", false, err
	}
	deviceID, ifName, ok = pickDeviceSide(cable)
	return deviceID, ifName, ok, nil
}
