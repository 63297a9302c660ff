package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lixenwraith/tile-chain/audio"
	"github.com/lixenwraith/tile-chain/board"
	"github.com/lixenwraith/tile-chain/config"
	"github.com/lixenwraith/tile-chain/core"
	"github.com/lixenwraith/tile-chain/engine"
	"github.com/lixenwraith/tile-chain/event"
	"github.com/lixenwraith/tile-chain/game"
	"github.com/lixenwraith/tile-chain/parameter"
	"github.com/lixenwraith/tile-chain/vmath"
)

const (
	hudRows       = 1
	bannerTimeout = 1500 * time.Millisecond
)

var typeColors = [board.TypeCount]tcell.Color{
	tcell.ColorRed,
	tcell.ColorYellow,
	tcell.ColorPurple,
	tcell.ColorGreen,
	tcell.ColorBlue,
	tcell.ColorOrange,
	tcell.ColorFuchsia,
}

type playOptions struct {
	*rootOptions
	Mute bool
}

func newPlayCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &playOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal with the mouse",
		Long: `Play in the terminal with the mouse.

Press on a tile and drag through tiles of the same flavor, release to clear.
Keys: p pause, r restart, m mute, q or Esc quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			return runPlay(cfg, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Mute, "mute", false, "start with sound off")

	return cmd
}

func runPlay(cfg *config.Config, opts *playOptions) error {
	p, err := newPlayer(cfg, opts.logger, opts.Mute)
	if err != nil {
		return err
	}
	defer p.cleanup()

	core.SetCrashHook(p.screen.Fini)
	defer core.SetCrashHook(nil)

	p.run()
	return nil
}

// hud collects listener callbacks the renderer needs between frames
type hud struct {
	event.NopListener
	chain     map[board.TileID]int
	banner    string
	bannerAt  time.Time
	extension int
}

func (h *hud) OnChainChanged(tiles []board.TileID) {
	clear(h.chain)
	for i, id := range tiles {
		h.chain[id] = i
	}
}

func (h *hud) OnComboReached(tier string, count int) {
	h.banner = fmt.Sprintf("%s! x%d", tier, count)
	h.bannerAt = time.Now()
}

func (h *hud) OnTimeExtensionGranted(seconds int) {
	h.extension += seconds
	h.banner = fmt.Sprintf("+%ds", seconds)
	h.bannerAt = time.Now()
}

// player is the terminal front-end driving one session
type player struct {
	screen tcell.Screen
	width  int
	height int

	clock   *engine.PausableClock
	sess    *game.Session
	hud     *hud
	audio   *audio.Player
	speaker bool
	log     zerolog.Logger
	printer *message.Printer

	pressed bool
}

func newPlayer(cfg *config.Config, logger zerolog.Logger, mute bool) (*player, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse(tcell.MouseDragEvents)
	screen.HideCursor()

	p := &player{
		screen:  screen,
		clock:   engine.NewPausableClock(nil),
		hud:     &hud{chain: make(map[board.TileID]int)},
		log:     logger.With().Str("system", "play").Logger(),
		printer: message.NewPrinter(language.English),
	}
	p.width, p.height = screen.Size()

	p.sess = game.NewSession(cfg, game.Options{Clock: p.clock, Logger: logger})
	p.sess.Register(event.NewListenerHandler(p.hud))
	p.initAudio(mute)

	p.sess.Start()
	return p, nil
}

// initAudio is non-fatal, the game runs silently without a device
func (p *player) initAudio(mute bool) {
	volume := parameter.AudioDefaultVolume
	if v, err := strconv.ParseFloat(getEnv("TILE_CHAIN_VOLUME", ""), 64); err == nil {
		volume = v
	}

	out, err := audio.InitSpeaker()
	if err != nil {
		p.log.Warn().Err(err).Msg("audio unavailable, continuing without sound")
		return
	}
	p.speaker = true
	p.audio = audio.NewPlayer(out, volume)
	p.audio.SetMuted(mute)
	p.sess.Register(p.audio)
}

// toBoard maps a terminal cell to the board position at its center
func (p *player) toBoard(x, y int) vmath.Vec2F {
	b := p.sess.Board()
	rows := max(p.height-hudRows, 1)
	return vmath.V2F(
		(float64(x)+0.5)*b.Width()/float64(max(p.width, 1)),
		(float64(y-hudRows)+0.5)*b.Height()/float64(rows),
	)
}

// toScreen maps a board position to its terminal cell
func (p *player) toScreen(pos vmath.Vec2F) (int, int) {
	b := p.sess.Board()
	rows := max(p.height-hudRows, 1)
	return int(pos.X * float64(p.width) / b.Width()), hudRows + int(pos.Y*float64(rows)/b.Height())
}

func (p *player) handleMouse(ev *tcell.EventMouse) {
	if p.clock.IsPaused() {
		return
	}
	x, y := ev.Position()
	pos := p.toBoard(x, y)

	down := ev.Buttons()&tcell.Button1 != 0
	switch {
	case down && !p.pressed:
		p.pressed = true
		p.sess.OnPress(pos)
	case down:
		p.sess.OnHold(pos)
	case p.pressed:
		p.pressed = false
		if b := p.sess.OnRelease(pos); b != nil {
			p.log.Debug().Str("batch", b.ID).Int("count", b.Count()).Msg("chain released")
		}
	}
}

// handleInput returns false when the player quits
func (p *player) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 'p':
			if p.clock.IsPaused() {
				p.clock.Resume()
			} else {
				p.clock.Pause()
			}
		case 'r':
			p.pressed = false
			p.hud.extension = 0
			p.sess.Start()
		case 'm':
			if p.audio != nil {
				p.audio.SetMuted(!p.audio.Muted())
			}
		}

	case *tcell.EventMouse:
		p.handleMouse(ev)

	case *tcell.EventResize:
		p.width, p.height = p.screen.Size()
		p.screen.Sync()
	}

	return true
}

func (p *player) tileStyle(t *board.Tile) tcell.Style {
	style := tcell.StyleDefault.Foreground(typeColors[t.Type])
	switch t.State {
	case board.StateSpawning:
		style = style.Dim(true)
	case board.StateClaimed:
		style = tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
	if t.Kind.Special() {
		style = style.Bold(true)
	}
	if _, ok := p.hud.chain[t.ID]; ok {
		style = style.Reverse(true)
	}
	return style
}

func (p *player) draw() {
	p.screen.Clear()

	for _, t := range p.sess.Board().Tiles() {
		x, y := p.toScreen(t.Pos)
		if x < 0 || x >= p.width || y < hudRows || y >= p.height {
			continue
		}
		p.screen.SetContent(x, y, t.Glyph(), nil, p.tileStyle(t))
	}

	p.drawHUD()
	p.screen.Show()
}

func (p *player) drawHUD() {
	remaining := p.sess.Timer.Remaining().Round(time.Second)
	line := p.printer.Sprintf(" score %d  time %v  tiles %d", p.sess.Score.Total(), remaining, p.sess.Board().LiveCount())

	switch {
	case p.sess.Expired():
		line += "  TIME UP, r to restart"
	case p.clock.IsPaused():
		line += "  PAUSED"
	}
	if p.audio != nil && p.audio.Muted() {
		line += "  [muted]"
	}
	if p.hud.banner != "" && time.Since(p.hud.bannerAt) < bannerTimeout {
		line += "  " + p.hud.banner
	}

	style := tcell.StyleDefault.Reverse(true)
	col := 0
	for _, r := range line {
		if col >= p.width {
			break
		}
		p.screen.SetContent(col, 0, r, nil, style)
		col++
	}
	for ; col < p.width; col++ {
		p.screen.SetContent(col, 0, ' ', nil, style)
	}
}

func (p *player) run() {
	tick := time.NewTicker(parameter.GameUpdateInterval)
	defer tick.Stop()
	frame := time.NewTicker(parameter.FrameUpdateInterval)
	defer frame.Stop()

	events := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	})

	for {
		select {
		case ev := <-events:
			if !p.handleInput(ev) {
				return
			}
			p.sess.Dispatch()

		case <-tick.C:
			p.sess.Tick()
			p.sess.Dispatch()

		case <-frame.C:
			p.draw()
		}
	}
}

func (p *player) cleanup() {
	p.sess.Stop()
	if p.speaker {
		audio.CloseSpeaker()
	}
	p.screen.Fini()
	if p.sess.ID != "" {
		fmt.Fprintf(os.Stdout, "%s\n", p.printer.Sprintf("final score %d", p.sess.Score.Total()))
	}
}
