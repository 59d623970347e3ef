package discovery

import (
	"fmt"
	"net"
	"strings"
)

// BareIP 去掉 CIDR 地址的前缀部分，只保留主机地址。
// NetBox 的地址字段总是带前缀长度，如 10.0.0.5/24。
func BareIP(address string) (string, error) {
	ip, _, err := net.ParseCIDR(strings.TrimSpace(address))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrAddressFormat, address)
	}
	return ip.String(), nil
}
