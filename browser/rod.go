package browser

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/reelscout/reelscout/config"
	"github.com/reelscout/reelscout/models"
)

// RodEngine launches a Chromium instance controlled over CDP via rod.
type RodEngine struct{}

// NewRodEngine returns the production browser engine.
func NewRodEngine() *RodEngine {
	return &RodEngine{}
}

// Start launches the browser with the session's stealth configuration.
func (e *RodEngine) Start(cfg config.BrowserConfig) (Session, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	}
	if cfg.Proxy != "" {
		l = l.Proxy(cfg.Proxy)
	}

	// Low-memory flags for container environments.
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-gpu"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("disable-background-networking"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-sync"))
	l.Set(flags.Flag("mute-audio"))
	l.Set(flags.Flag("hide-scrollbars"))
	l.Set(flags.Flag("metrics-recording-only"))
	l.Set(flags.Flag("no-first-run"))

	if cfg.Stealth {
		l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
		l.Delete(flags.Flag("enable-automation"))
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeBrowser, "failed to launch browser", err)
	}
	slog.Info("browser launched", "controlURL", controlURL, "stealth", cfg.Stealth)

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, models.NewScrapeError(models.ErrCodeBrowser, "failed to connect to browser", err)
	}

	return &rodSession{browser: b, cfg: cfg}, nil
}

type rodSession struct {
	browser *rod.Browser
	cfg     config.BrowserConfig
}

func (s *rodSession) NewPage(ctx context.Context) (Page, error) {
	raw, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeBrowser, "failed to open page", err)
	}

	// Stealth JS must be installed before the first navigation or it never
	// takes effect for the target site.
	if s.cfg.Stealth {
		if _, evalErr := raw.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without stealth", "error", evalErr)
		}
	}

	if s.cfg.UserAgent != "" {
		if uaErr := raw.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent: s.cfg.UserAgent,
		}); uaErr != nil {
			slog.Warn("failed to set user agent", "error", uaErr)
		}
	}

	if s.cfg.ViewportWidth > 0 && s.cfg.ViewportHeight > 0 {
		if vpErr := raw.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             s.cfg.ViewportWidth,
			Height:            s.cfg.ViewportHeight,
			DeviceScaleFactor: 1,
		}); vpErr != nil {
			slog.Warn("failed to set viewport", "error", vpErr)
		}
	}

	return &rodPage{raw: raw, page: raw.Context(ctx)}, nil
}

func (s *rodSession) Close() error {
	return s.browser.Close()
}

type rodPage struct {
	// raw keeps the original page reference so Close works even after the
	// request context has expired.
	raw  *rod.Page
	page *rod.Page
}

func (p *rodPage) Navigate(url string, timeout time.Duration) error {
	bound := p.page.Timeout(timeout)
	if err := bound.Navigate(url); err != nil {
		return err
	}
	// Best effort: let client-side rendering settle before the caller
	// starts waiting on landmarks.
	if err := bound.WaitDOMStable(300*time.Millisecond, 0.1); err != nil {
		slog.Debug("DOM did not stabilise, proceeding with current state", "error", err)
	}
	return nil
}

func (p *rodPage) WaitElement(selector string, timeout time.Duration) error {
	_, err := p.page.Timeout(timeout).Element(selector)
	return err
}

func (p *rodPage) WaitFor(js string, interval, budget time.Duration) error {
	deadline := time.Now().Add(budget)
	for {
		res, err := p.Eval(js)
		if err == nil && isTruthy(res) {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrWaitBudget
		}
		select {
		case <-time.After(interval):
		case <-p.page.GetContext().Done():
			return p.page.GetContext().Err()
		}
	}
}

// isTruthy interprets a JS predicate result without assuming its type.
func isTruthy(v gson.JSON) bool {
	switch val := v.Val().(type) {
	case bool:
		return val
	case nil:
		return false
	case string:
		return val != ""
	case float64:
		return val != 0
	default:
		return true
	}
}

func (p *rodPage) Eval(js string) (gson.JSON, error) {
	res, err := p.page.Eval(js)
	if err != nil {
		return gson.New(nil), err
	}
	return res.Value, nil
}

func (p *rodPage) HTML() (string, error) {
	return p.page.HTML()
}

func (p *rodPage) DocumentTitle() (string, error) {
	res, err := p.Eval(`() => document.title`)
	if err != nil {
		return "", err
	}
	return res.Str(), nil
}

func (p *rodPage) ClickAt(x, y float64) error {
	if err := p.page.Mouse.MoveTo(proto.Point{X: x, Y: y}); err != nil {
		return err
	}
	return p.page.Mouse.Click(proto.InputMouseButtonLeft, 1)
}

func (p *rodPage) PressEscape() error {
	return p.page.Keyboard.Press(input.Escape)
}

func (p *rodPage) Close() error {
	return p.raw.Close()
}
