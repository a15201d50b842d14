// Package client 提供RoomEase服务的Go API客户端，供CLI和集成测试使用。
package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Response 服务端统一响应包装
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Room 房间视图
type Room struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Rent        int64    `json:"rent"`
	Status      string   `json:"status"`
	Occupied    bool     `json:"occupied"`
	TenantNames []string `json:"tenant_names"`
}

// Tenant 租户视图
type Tenant struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	PaymentStatus string `json:"payment_status"`
	RoomID        *uint  `json:"room_id"`
	RoomName      string `json:"room_name"`
	Rent          int64  `json:"rent"`
}

// RoomRequest 房间创建/更新请求
type RoomRequest struct {
	Name        string    `json:"name,omitempty"`
	Rent        *int64    `json:"rent,omitempty"`
	Status      string    `json:"status,omitempty"`
	TenantIDs   *[]uint   `json:"tenant_ids,omitempty"`
	TenantNames *[]string `json:"tenant_names,omitempty"`
}

// TenantRequest 租户创建/更新请求
type TenantRequest struct {
	Name          string  `json:"name,omitempty"`
	PaymentStatus string  `json:"payment_status,omitempty"`
	RoomID        *uint   `json:"room_id,omitempty"`
	RoomName      *string `json:"room_name,omitempty"`
}

// PaymentRequest 记录支付请求
type PaymentRequest struct {
	TenantID uint  `json:"tenant_id"`
	Amount   int64 `json:"amount"`
}

// listPayload 分页列表响应的data部分
type listPayload struct {
	Total int64           `json:"total"`
	Data  json.RawMessage `json:"data"`
}

// Client RoomEase API客户端
type Client struct {
	http *resty.Client
}

// New 创建一个新的API客户端
func New(baseURL string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient}
}

// do 发送请求并解包统一响应
func (c *Client) do(req *resty.Request, method, path string, out interface{}) error {
	var envelope Response
	resp, err := req.SetResult(&envelope).SetError(&envelope).Execute(method, path)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	if resp.IsError() || (envelope.Code != 0 && envelope.Code != 100000) {
		return fmt.Errorf("request %s %s: %s (code %d)", method, path, envelope.Message, envelope.Code)
	}
	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// ListRooms 获取房间列表
func (c *Client) ListRooms(page, pageSize int) ([]Room, int64, error) {
	var payload listPayload
	req := c.http.R().
		SetQueryParam("page", fmt.Sprintf("%d", page)).
		SetQueryParam("page_size", fmt.Sprintf("%d", pageSize))
	if err := c.do(req, resty.MethodGet, "/api/rooms", &payload); err != nil {
		return nil, 0, err
	}
	var rooms []Room
	if len(payload.Data) > 0 {
		if err := json.Unmarshal(payload.Data, &rooms); err != nil {
			return nil, 0, err
		}
	}
	return rooms, payload.Total, nil
}

// GetRoom 获取单个房间
func (c *Client) GetRoom(id uint) (*Room, error) {
	var room Room
	if err := c.do(c.http.R(), resty.MethodGet, fmt.Sprintf("/api/rooms/%d", id), &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// CreateRoom 创建房间
func (c *Client) CreateRoom(req RoomRequest) (*Room, error) {
	var room Room
	if err := c.do(c.http.R().SetBody(req), resty.MethodPost, "/api/rooms", &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// UpdateRoom 更新房间
func (c *Client) UpdateRoom(id uint, req RoomRequest) (*Room, error) {
	var room Room
	if err := c.do(c.http.R().SetBody(req), resty.MethodPatch, fmt.Sprintf("/api/rooms/%d", id), &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// DeleteRoom 删除房间
func (c *Client) DeleteRoom(id uint) error {
	return c.do(c.http.R(), resty.MethodDelete, fmt.Sprintf("/api/rooms/%d", id), nil)
}

// ListTenants 获取租户列表
func (c *Client) ListTenants(page, pageSize int) ([]Tenant, int64, error) {
	var payload listPayload
	req := c.http.R().
		SetQueryParam("page", fmt.Sprintf("%d", page)).
		SetQueryParam("page_size", fmt.Sprintf("%d", pageSize))
	if err := c.do(req, resty.MethodGet, "/api/tenants", &payload); err != nil {
		return nil, 0, err
	}
	var tenants []Tenant
	if len(payload.Data) > 0 {
		if err := json.Unmarshal(payload.Data, &tenants); err != nil {
			return nil, 0, err
		}
	}
	return tenants, payload.Total, nil
}

// CreateTenant 创建租户
func (c *Client) CreateTenant(req TenantRequest) (*Tenant, error) {
	var tenant Tenant
	if err := c.do(c.http.R().SetBody(req), resty.MethodPost, "/api/tenants", &tenant); err != nil {
		return nil, err
	}
	return &tenant, nil
}

// UpdateTenant 更新租户
func (c *Client) UpdateTenant(id uint, req TenantRequest) (*Tenant, error) {
	var tenant Tenant
	if err := c.do(c.http.R().SetBody(req), resty.MethodPatch, fmt.Sprintf("/api/tenants/%d", id), &tenant); err != nil {
		return nil, err
	}
	return &tenant, nil
}

// DeleteTenant 删除租户
func (c *Client) DeleteTenant(id uint) error {
	return c.do(c.http.R(), resty.MethodDelete, fmt.Sprintf("/api/tenants/%d", id), nil)
}

// RecordPayment 记录一笔支付
func (c *Client) RecordPayment(tenantID uint, amount int64) error {
	req := PaymentRequest{TenantID: tenantID, Amount: amount}
	return c.do(c.http.R().SetBody(req), resty.MethodPost, "/api/payments", nil)
}

// Reconcile 触发一次一致性对账，返回修正的房间数
func (c *Client) Reconcile() (int, error) {
	var result struct {
		Repaired int `json:"repaired"`
	}
	if err := c.do(c.http.R(), resty.MethodPost, "/api/reconcile", &result); err != nil {
		return 0, err
	}
	return result.Repaired, nil
}

// DownloadReport 下载入住报表（xlsx）
func (c *Client) DownloadReport() ([]byte, error) {
	resp, err := c.http.R().Get("/api/dashboard/export")
	if err != nil {
		return nil, fmt.Errorf("download report: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("download report: status %d", resp.StatusCode())
	}
	return resp.Body(), nil
}
