package config

import (
	"log"
	"os"
	"time"
)

// Watch polls the holder's file and reloads on mtime changes. It returns a
// stop function. Polling keeps the dependency surface flat; a failed reload
// is logged and the previous config stays active.
func (h *Holder) Watch(interval time.Duration) (stop func()) {
	if h.path == "" {
		return func() {}
	}
	stopCh := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var last time.Time
		if fi, err := os.Stat(h.path); err == nil {
			last = fi.ModTime()
		}
		for {
			select {
			case <-ticker.C:
				fi, err := os.Stat(h.path)
				if err != nil {
					continue
				}
				if mt := fi.ModTime(); mt.After(last) {
					last = mt
					if err := h.Reload(); err != nil {
						log.Printf("config reload failed, keeping previous: %v", err)
					} else {
						log.Printf("config reloaded from %s", h.path)
					}
				}
			case <-stopCh:
				return
			}
		}
	}()
	return func() { close(stopCh) }
}
