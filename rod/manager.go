package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages a browser renders before it is
// replaced by a fresh one.
const DefaultMaxPages = 75

// BrowserManager owns a headless Chrome process and replaces it after
// MaxPages pages, since Chrome's resident memory keeps growing under load
// even when pages are closed.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	pages    int
	maxPages int
	closed   bool
}

// NewBrowserManager launches a browser that is recycled after maxPages
// pages. A maxPages below 1 uses DefaultMaxPages.
func NewBrowserManager(maxPages int) (*BrowserManager, error) {
	if maxPages < 1 {
		maxPages = DefaultMaxPages
	}
	bm := &BrowserManager{maxPages: maxPages}
	if err := bm.launch(); err != nil {
		return nil, err
	}
	return bm, nil
}

// Acquire returns the browser to render the next page on and counts the
// page. A browser that has reached its page budget is replaced first; if a
// replacement cannot be launched the old browser keeps serving.
func (bm *BrowserManager) Acquire() (*rod.Browser, error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil, errClosed
	}

	if bm.pages >= bm.maxPages {
		bm.recycle()
	}
	bm.pages++

	return bm.browser, nil
}

// Close shuts the browser down. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true

	return bm.shutdown(bm.browser, bm.launcher)
}

// LauncherPID returns the process ID of the current browser process, or 0
// after Close.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.closed || bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}

// launch starts a browser with flags that keep background tabs from being
// throttled. Must be called with mu held or before bm is shared.
func (bm *BrowserManager) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	bm.browser = browser
	bm.launcher = l
	bm.pages = 0
	return nil
}

// Must be called with mu held.
func (bm *BrowserManager) recycle() {
	oldBrowser, oldLauncher := bm.browser, bm.launcher
	if err := bm.launch(); err != nil {
		return
	}
	_ = bm.shutdown(oldBrowser, oldLauncher)
}

func (bm *BrowserManager) shutdown(browser *rod.Browser, l *launcher.Launcher) error {
	var err error
	if browser != nil {
		err = browser.Close()
	}
	if l != nil {
		l.Kill()
	}
	return err
}
