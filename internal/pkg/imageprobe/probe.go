package imageprobe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second

	maxImageBytes     = 10 << 20
	maxRedirects      = 3
	maxResponseHeader = 64 << 10
)

var (
	ErrTimeout        = errors.New("image load timed out")
	ErrNotImage       = errors.New("url does not point to an image")
	ErrUnsupportedURL = errors.New("image url must be http or https")
	ErrBlockedAddress = errors.New("image host resolves to a non-public address")
	ErrTooLarge       = errors.New("image exceeds size limit")
)

// 运营商级 NAT 段，net.IP.IsPrivate 不包含
var cgnat = &net.IPNet{IP: net.IPv4(100, 64, 0, 0), Mask: net.CIDRMask(10, 32)}

// Prober 检查图片地址能否在限定时间内加载，只连接公网地址
type Prober struct {
	client  *http.Client
	timeout time.Duration

	// 仅测试中放开回环地址
	allowPrivate bool
}

func New(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	p := &Prober{timeout: timeout}

	dialer := &net.Dialer{Timeout: timeout, Control: p.control}
	p.client = &http.Client{
		Transport: &http.Transport{
			Proxy:                  nil,
			DialContext:            dialer.DialContext,
			TLSHandshakeTimeout:    timeout,
			ResponseHeaderTimeout:  timeout,
			MaxResponseHeaderBytes: maxResponseHeader,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return checkURL(req.URL)
		},
	}
	return p
}

// Probe 图片请求与定时器竞争，先到者决定结果，后到者被丢弃
func (p *Prober) Probe(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid image url: %w", err)
	}
	if err := checkURL(u); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- p.fetch(ctx, u.String())
	}()

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
		return ErrTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Prober) fetch(ctx context.Context, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("invalid image url: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	// 只看响应头，不读取正文
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image request returned %d", resp.StatusCode)
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "image/") {
		return ErrNotImage
	}
	if resp.ContentLength > maxImageBytes {
		return ErrTooLarge
	}
	return nil
}

func checkURL(u *url.URL) error {
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrUnsupportedURL
	}
	if u.Hostname() == "" {
		return ErrUnsupportedURL
	}
	return nil
}

// control 在 DNS 解析之后、建立连接之前校验目标 IP，重定向同样经过这里
func (p *Prober) control(_, address string, _ syscall.RawConn) error {
	if p.allowPrivate {
		return nil
	}
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip := net.ParseIP(host)
	if ip == nil || !isPublic(ip) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, host)
	}
	return nil
}

func isPublic(ip net.IP) bool {
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() || ip.IsMulticast() {
		return false
	}
	return !cgnat.Contains(ip)
}
