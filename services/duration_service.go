package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"techlib/utils"
)

// DurationFetcher 外部视频时长查询接口
// 返回格式化好的时长字符串（H:MM:SS 或 M:SS）
type DurationFetcher interface {
	Fetch(ctx context.Context, videoURL string) (string, error)
}

// HTTPDurationFetcher 通过HTTP接口查询时长
// 请求 GET {endpoint}?url={videoURL}，响应 {"duration": <秒数>}
type HTTPDurationFetcher struct {
	client   *http.Client
	endpoint string
}

// NewHTTPDurationFetcher 创建时长查询客户端
func NewHTTPDurationFetcher(endpoint string, timeout time.Duration) *HTTPDurationFetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPDurationFetcher{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
	}
}

// Fetch 查询视频时长
func (f *HTTPDurationFetcher) Fetch(ctx context.Context, videoURL string) (string, error) {
	requestURL := fmt.Sprintf("%s?url=%s", f.endpoint, url.QueryEscape(videoURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", fmt.Errorf("构造请求失败: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("接口返回状态码 %d", resp.StatusCode)
	}

	var result struct {
		Duration int `json:"duration"` // 秒
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("JSON解析失败: %w", err)
	}
	if result.Duration <= 0 {
		return "", fmt.Errorf("接口未返回有效时长")
	}

	return utils.FormatDuration(result.Duration), nil
}
