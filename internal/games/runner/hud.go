package runner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-runner/internal/ecs"
)

// Banner is a centred message shown over the world.
type Banner int

const (
	BannerStart Banner = iota
	BannerPaused
	BannerVictory
	BannerDefeat
)

func (b Banner) Text() string {
	switch b {
	case BannerStart:
		return "Press any key to start"
	case BannerPaused:
		return "Paused - press Esc to resume"
	case BannerVictory:
		return "You made it! Press any key to run again"
	case BannerDefeat:
		return "Game over. Press any key to run again"
	default:
		return ""
	}
}

// HUD is the text overlay. Tags refresh every tick; banners come and go
// with lifecycle events.
type HUD struct {
	Score   string
	Lives   string
	Clock   string
	banners map[Banner]bool
}

func newHUD() HUD {
	return HUD{banners: map[Banner]bool{BannerStart: true}}
}

func (h *HUD) show(b Banner) { h.banners[b] = true }
func (h *HUD) hide(b Banner) { delete(h.banners, b) }

// Showing reports whether banner b is up.
func (h *HUD) Showing(b Banner) bool { return h.banners[b] }

// Banners returns the visible banners in draw order.
func (h *HUD) Banners() []Banner {
	var out []Banner
	for _, b := range []Banner{BannerStart, BannerPaused, BannerVictory, BannerDefeat} {
		if h.banners[b] {
			out = append(out, b)
		}
	}
	return out
}

// updateHUD refreshes the score, lives and clock tags and drops banners
// that no longer apply.
func (s *Session) updateHUD() error {
	_, p, err := s.player()
	if err != nil {
		return err
	}
	s.hud.Score = "Score: " + strconv.Itoa(s.game.Score)
	s.hud.Lives = "Lives: " + strings.Repeat(string(PlayerGlyph), p.Lives)
	s.hud.Clock = fmt.Sprintf("%02d:00 %s", s.time.Hour, s.TimeOfDay())

	if s.game.State != WaitingToStart {
		s.hud.hide(BannerStart)
	}
	if !s.game.IsGameOver() {
		s.hud.hide(BannerVictory)
		s.hud.hide(BannerDefeat)
	}
	return nil
}

func (s *Session) onPauseChanged(ev ecs.Event) error {
	change, ok := ev.Payload.(PauseChange)
	if !ok {
		return fmt.Errorf("runner: pause payload %T", ev.Payload)
	}
	if change.Paused {
		s.hud.show(BannerPaused)
		s.log.Debug("paused")
	} else {
		s.hud.hide(BannerPaused)
		s.log.Debug("resumed")
	}
	return nil
}

// HUD returns the overlay state.
func (s *Session) HUD() *HUD { return &s.hud }
