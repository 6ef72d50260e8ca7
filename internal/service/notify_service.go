package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Saikrishivgar/zoho-directory/internal/config"
)

// 错误定义
var (
	ErrWebhookNotConfigured = errors.New("cliq webhook is not configured")
)

// NotifyService Cliq频道通知,单次POST,不重试
type NotifyService struct {
	webhookURL string
	message    string
	httpClient *http.Client
}

// NewNotifyService 创建通知服务
func NewNotifyService(cfg config.CliqConfig) *NotifyService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &NotifyService{
		webhookURL: cfg.WebhookURL,
		message:    cfg.Message,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NotifyResult 上游响应原样透传
type NotifyResult struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

// SendCliq 向Cliq webhook发送固定文本消息
func (s *NotifyService) SendCliq(ctx context.Context) (*NotifyResult, error) {
	if s.webhookURL == "" {
		return nil, ErrWebhookNotConfigured
	}

	payload := map[string]string{
		"text": s.message,
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &NotifyResult{
		Status: resp.StatusCode,
		Body:   string(respBody),
	}, nil
}
