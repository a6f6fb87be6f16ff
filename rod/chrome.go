package rod

import (
	"sync"

	"github.com/fwojciec/elephantlog"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultRecycleAfter is the number of articles rendered before Chrome is
// restarted. Chrome's memory grows with every page and is never released.
const DefaultRecycleAfter = 50

// chrome is one headless Chrome process and its DevTools connection.
type chrome struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

func launchChrome() (*chrome, error) {
	l := launcher.New().
		Set("disable-dev-shm-usage").
		Set("disable-renderer-backgrounding").
		Set("disable-background-timer-throttling").
		Set("blink-settings", "imagesEnabled=false").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, elephantlog.Errorf(elephantlog.EFETCH, "launch chrome: %v", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, elephantlog.Errorf(elephantlog.EFETCH, "connect to chrome: %v", err)
	}
	return &chrome{browser: b, launcher: l}, nil
}

func (c *chrome) close() error {
	err := c.browser.Close()
	c.launcher.Kill()
	return err
}

// pool hands out the running chrome and swaps in a fresh process once the
// current one has rendered limit articles. A failed relaunch keeps the old
// process serving.
type pool struct {
	mu       sync.Mutex
	current  *chrome
	rendered int
	limit    int
}

func newPool(limit int) (*pool, error) {
	if limit < 1 {
		limit = DefaultRecycleAfter
	}
	c, err := launchChrome()
	if err != nil {
		return nil, err
	}
	return &pool{current: c, limit: limit}, nil
}

// acquire returns the browser for the next article. It returns nil once
// the pool is closed.
func (p *pool) acquire() *rod.Browser {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return nil
	}
	if p.rendered >= p.limit {
		if fresh, err := launchChrome(); err == nil {
			old := p.current
			p.current, p.rendered = fresh, 0
			_ = old.close()
		}
	}
	p.rendered++
	return p.current.browser
}

func (p *pool) close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return nil
	}
	err := p.current.close()
	p.current = nil
	return err
}

func (p *pool) pid() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return 0
	}
	return p.current.launcher.PID()
}
