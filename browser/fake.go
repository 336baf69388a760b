package browser

import (
	"context"
	"time"

	"github.com/ysmood/gson"

	"github.com/reelscout/reelscout/config"
)

// FakeEngine is a scripted Engine for tests.
type FakeEngine struct {
	Session  *FakeSession
	StartErr error
}

func (e *FakeEngine) Start(cfg config.BrowserConfig) (Session, error) {
	if e.StartErr != nil {
		return nil, e.StartErr
	}
	if e.Session == nil {
		e.Session = &FakeSession{}
	}
	return e.Session, nil
}

// FakeSession hands out FakePages and records lifecycle calls.
type FakeSession struct {
	// NextPage, when set, is returned by the next NewPage call.
	NextPage *FakePage
	// NewPageErr, when set, fails NewPage.
	NewPageErr error

	Pages  []*FakePage
	Closed bool
}

func (s *FakeSession) NewPage(ctx context.Context) (Page, error) {
	if s.NewPageErr != nil {
		return nil, s.NewPageErr
	}
	p := s.NextPage
	if p == nil {
		p = &FakePage{}
	}
	s.Pages = append(s.Pages, p)
	return p, nil
}

func (s *FakeSession) Close() error {
	s.Closed = true
	return nil
}

// FakeClick records one ClickAt invocation.
type FakeClick struct {
	X, Y float64
}

// FakePage is a scripted Page. EvalFunc drives all JS evaluation so tests
// can model arbitrary page states; unset hooks behave as benign no-ops.
type FakePage struct {
	NavigateErr    error
	WaitElementErr error
	WaitForErr     error
	HTMLValue      string
	HTMLErr        error
	TitleValue     string

	// EvalFunc maps a JS source string to its result. When nil, Eval
	// returns JS null.
	EvalFunc func(js string) (gson.JSON, error)

	NavigatedURL  string
	WaitedFor     []string
	Waited        []string
	Clicks        []FakeClick
	EscapePresses int
	Closed        bool
}

func (p *FakePage) Navigate(url string, _ time.Duration) error {
	p.NavigatedURL = url
	return p.NavigateErr
}

func (p *FakePage) WaitElement(selector string, _ time.Duration) error {
	p.Waited = append(p.Waited, selector)
	return p.WaitElementErr
}

func (p *FakePage) WaitFor(js string, _, _ time.Duration) error {
	p.WaitedFor = append(p.WaitedFor, js)
	if p.WaitForErr != nil {
		return p.WaitForErr
	}
	// Honor the predicate when scripted, so selection tests can model a
	// dropdown that renders (predicate holds) or never appears.
	if p.EvalFunc != nil {
		res, err := p.EvalFunc(js)
		if err != nil || !isTruthy(res) {
			return ErrWaitBudget
		}
	}
	return nil
}

func (p *FakePage) Eval(js string) (gson.JSON, error) {
	if p.EvalFunc != nil {
		return p.EvalFunc(js)
	}
	return gson.New(nil), nil
}

func (p *FakePage) HTML() (string, error) {
	return p.HTMLValue, p.HTMLErr
}

func (p *FakePage) DocumentTitle() (string, error) {
	return p.TitleValue, nil
}

func (p *FakePage) ClickAt(x, y float64) error {
	p.Clicks = append(p.Clicks, FakeClick{X: x, Y: y})
	return nil
}

func (p *FakePage) PressEscape() error {
	p.EscapePresses++
	return nil
}

func (p *FakePage) Close() error {
	p.Closed = true
	return nil
}
