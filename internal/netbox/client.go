package netbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"netbox2prom/internal/util"
)

// Inventory 抽象 NetBox 数据源，发现流程只依赖这组只读操作。
type Inventory interface {
	ListDevices(ctx context.Context) ([]Device, error)
	ListVirtualMachines(ctx context.Context) ([]VirtualMachine, error)
	ListCircuits(ctx context.Context) ([]Circuit, error)
	GetDevice(ctx context.Context, id int) (*Device, error)
	GetCircuitTermination(ctx context.Context, id int) (*CircuitTermination, error)
	GetCable(ctx context.Context, id int) (*Cable, error)
	ListInterfaceIPs(ctx context.Context, deviceID int, ifName string) ([]IPAddress, error)
}

// StaticClient 用于测试或最小实现，直接返回内存中的清单。
type StaticClient struct {
	Devices         []Device
	VirtualMachines []VirtualMachine
	Circuits        []Circuit
	Terminations    map[int]*CircuitTermination
	Cables          map[int]*Cable
	DevicesByID     map[int]*Device
	InterfaceIPs    map[string][]IPAddress
}

// InterfaceKey 生成 InterfaceIPs 的查询键。
func InterfaceKey(deviceID int, ifName string) string {
	return strconv.Itoa(deviceID) + "/" + ifName
}

var errNotFound = errors.New("object not found")

func (c *StaticClient) ListDevices(context.Context) ([]Device, error) {
	return c.Devices, nil
}

func (c *StaticClient) ListVirtualMachines(context.Context) ([]VirtualMachine, error) {
	return c.VirtualMachines, nil
}

func (c *StaticClient) ListCircuits(context.Context) ([]Circuit, error) {
	return c.Circuits, nil
}

func (c *StaticClient) GetDevice(_ context.Context, id int) (*Device, error) {
	if d, ok := c.DevicesByID[id]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("device %d: %w", id, errNotFound)
}

func (c *StaticClient) GetCircuitTermination(_ context.Context, id int) (*CircuitTermination, error) {
	if t, ok := c.Terminations[id]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("termination %d: %w", id, errNotFound)
}

func (c *StaticClient) GetCable(_ context.Context, id int) (*Cable, error) {
	if cab, ok := c.Cables[id]; ok {
		return cab, nil
	}
	return nil, fmt.Errorf("cable %d: %w", id, errNotFound)
}

func (c *StaticClient) ListInterfaceIPs(_ context.Context, deviceID int, ifName string) ([]IPAddress, error) {
	return c.InterfaceIPs[InterfaceKey(deviceID, ifName)], nil
}

// HTTPConfig 配置 NetBox HTTP 客户端。
type HTTPConfig struct {
	BaseURL      string
	Token        string
	Timeout      time.Duration
	CustomClient *http.Client
	PageSize     int
	Retry        util.RetryConfig
}

// HTTPClient 实现 Inventory，通过 NetBox REST API 通信。
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	pageSize   int
	retry      util.RetryConfig
}

// NewHTTPClient 根据配置创建 NetBox HTTP 客户端。
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("netbox base url 不能为空")
	}
	client := cfg.CustomClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: client,
		pageSize:   pageSize,
		retry:      cfg.Retry,
	}, nil
}

// ListDevices 拉取在役且带主 IP 的设备。
func (c *HTTPClient) ListDevices(ctx context.Context) ([]Device, error) {
	query := url.Values{}
	query.Set("status", StatusActive)
	query.Set("has_primary_ip", "true")
	return listAll[Device](ctx, c, "/api/dcim/devices/", query)
}

// ListVirtualMachines 拉取在役且带主 IP 的虚拟机。
func (c *HTTPClient) ListVirtualMachines(ctx context.Context) ([]VirtualMachine, error) {
	query := url.Values{}
	query.Set("status", StatusActive)
	query.Set("has_primary_ip", "true")
	return listAll[VirtualMachine](ctx, c, "/api/virtualization/virtual-machines/", query)
}

// ListCircuits 拉取在役电路。
func (c *HTTPClient) ListCircuits(ctx context.Context) ([]Circuit, error) {
	query := url.Values{}
	query.Set("status", StatusActive)
	return listAll[Circuit](ctx, c, "/api/circuits/circuits/", query)
}

// GetDevice 按 id 重新拉取设备详情。
func (c *HTTPClient) GetDevice(ctx context.Context, id int) (*Device, error) {
	var dev Device
	if err := c.getJSON(ctx, fmt.Sprintf("/api/dcim/devices/%d/", id), &dev); err != nil {
		return nil, err
	}
	return &dev, nil
}

// GetCircuitTermination 按 id 拉取电路接线端。
func (c *HTTPClient) GetCircuitTermination(ctx context.Context, id int) (*CircuitTermination, error) {
	var term CircuitTermination
	if err := c.getJSON(ctx, fmt.Sprintf("/api/circuits/circuit-terminations/%d/", id), &term); err != nil {
		return nil, err
	}
	return &term, nil
}

// GetCable 按 id 拉取线缆。
func (c *HTTPClient) GetCable(ctx context.Context, id int) (*Cable, error) {
	var cab Cable
	if err := c.getJSON(ctx, fmt.Sprintf("/api/dcim/cables/%d/", id), &cab); err != nil {
		return nil, err
	}
	return &cab, nil
}

// ListInterfaceIPs 按设备与接口名过滤 IP 地址记录。
func (c *HTTPClient) ListInterfaceIPs(ctx context.Context, deviceID int, ifName string) ([]IPAddress, error) {
	query := url.Values{}
	query.Set("device_id", strconv.Itoa(deviceID))
	query.Set("interface", ifName)
	return listAll[IPAddress](ctx, c, "/api/ipam/ip-addresses/", query)
}

// listAll 沿分页信封的 next 链接逐页拉取，直到取完为止。
func listAll[T any](ctx context.Context, c *HTTPClient, path string, query url.Values) ([]T, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("limit", strconv.Itoa(c.pageSize))

	next := c.baseURL + path + "?" + query.Encode()
	var all []T
	for next != "" {
		var page listEnvelope[T]
		if err := c.getPage(ctx, next, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Results...)
		next = page.Next
	}
	return all, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	return c.getPage(ctx, c.baseURL+path, out)
}

// getPage 执行一次 GET，按配置重试后仍失败才报错。
func (c *HTTPClient) getPage(ctx context.Context, rawURL string, out any) error {
	attempts := c.retry.Attempts
	backoff := c.retry.Backoff
	if backoff <= 0 {
		backoff = time.Second
	}
	return util.Retry(ctx, attempts, backoff, func() error {
		return c.doGet(ctx, rawURL, out)
	})
}

func (c *HTTPClient) doGet(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("构建请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("请求 NetBox 失败: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("读取 NetBox 响应失败: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", rawURL, errNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("NetBox 返回状态码 %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("解析 NetBox 响应失败: %w", err)
	}
	return nil
}
