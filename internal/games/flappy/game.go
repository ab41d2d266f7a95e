// Package flappy implements the Flappy Bird game.
// The bird is a rigid body in a Chipmunk physics world; pipes scroll from the
// right and the player scores one point for every pipe that leaves the
// playfield while the bird is alive.
package flappy

import (
	"fmt"
	"math/rand"

	"github.com/semboko/flappy/internal/assets"
	"github.com/semboko/flappy/internal/core"
	"github.com/semboko/flappy/internal/physics"
	"github.com/semboko/flappy/internal/registry"
)

// Playfield and pacing constants in playfield units.
const (
	PlayfieldWidth  = 480
	PlayfieldHeight = 640
	Gravity         = 1000.0 // Units/s^2, downward
	Speed           = 5      // Scroll and pipe movement per tick
	SpawnOffset     = -1000  // No pipes until the scroll passes this point
	SpawnInterval   = 400    // Scroll distance between pipes
	ScoreY          = 100
)

// BirdSpawn is where the bird starts, in physics space.
var BirdSpawn = core.Pt(200, 250)

// Phase is the game's position in its state machine.
type Phase int

const (
	PhaseIdle    Phase = iota // Waiting for the first jump
	PhaseRunning              // Bird is dynamic, pipes are scrolling
	PhaseOver                 // Bird hit something; next jump restarts
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Game implements the Flappy Bird controller.
type Game struct {
	world      *physics.World
	bird       *Bird
	background *Background
	pipes      []*Pipe
	sprites    pipeSprites

	score   int
	running bool
	over    bool
	scrollX int
	speed   int

	rng    *rand.Rand
	ticks  int
	config core.RuntimeConfig
}

// New creates a game in the idle phase.
// It fails when the sprite sheet cannot be loaded.
func New() (*Game, error) {
	sheet, err := assets.Load("flappy")
	if err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}

	world := physics.NewWorld(Gravity, physics.DefaultTimestep)
	bird, err := NewBird(world, BirdSpawn, sheet)
	if err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}
	background, err := NewBackground(sheet)
	if err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}
	sprites, err := loadPipeSprites(sheet)
	if err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}

	g := &Game{
		world:      world,
		bird:       bird,
		background: background,
		sprites:    sprites,
		rng:        rand.New(rand.NewSource(0)),
	}
	g.Restart()
	return g, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Reset reseeds the pipe generator and returns to the idle phase.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.config = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.ticks = 0
	g.Restart()
}

// Restart freezes the bird back at its spawn point and clears the run:
// score, scroll, speed and pipes. The game ends up idle.
func (g *Game) Restart() {
	g.Over()
	g.over = false
	g.score = 0
	g.scrollX = 0
	g.speed = Speed
	g.pipes = g.pipes[:0]
	g.bird.Respawn()
}

// Run starts the simulation: the bird becomes dynamic.
func (g *Game) Run() {
	g.running = true
	g.bird.Body().SetType(physics.Dynamic)
}

// Over ends the run and freezes the bird where it is.
func (g *Game) Over() {
	g.over = true
	g.running = false
	g.bird.Body().SetType(physics.Static)
}

// HandleSpace reacts to the jump key.
// After a game over the first press only restarts; the run begins with the
// next press.
func (g *Game) HandleSpace() {
	if g.over {
		g.Restart()
		return
	}
	if !g.running {
		g.Run()
	}
	g.bird.Jump()
}

// Step advances the game by one frame: input, collision check, physics step
// and, while running, the scroll/pipe logic.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.ticks++

	if in.Has(core.ActionJump) {
		g.HandleSpace()
	}

	if g.BirdCollides() {
		g.Over()
	}

	g.world.Step()

	if g.running {
		g.Advance()
	}

	return core.StepResult{State: g.State()}
}

// Advance runs one tick of scroll logic: move everything left, retire pipes
// that left the playfield (one point each) and spawn a new pipe every
// SpawnInterval of scroll once past SpawnOffset.
func (g *Game) Advance() {
	g.scrollX -= g.speed

	kept := g.pipes[:0]
	for _, p := range g.pipes {
		p.X -= g.speed
		if p.X < 0 {
			g.score++
			continue
		}
		kept = append(kept, p)
	}
	clear(g.pipes[len(kept):])
	g.pipes = kept

	if g.scrollX < SpawnOffset && g.scrollX%SpawnInterval == 0 {
		g.pipes = append(g.pipes, SpawnPipe(g.rng))
	}
}

// BirdCollides reports whether the bird overlaps any pipe. While running,
// flying entirely out through the top or sinking into the ground also
// counts.
func (g *Game) BirdCollides() bool {
	box := g.bird.Bounds(PlayfieldHeight)
	for _, p := range g.pipes {
		if p.Collides(box) {
			return true
		}
	}
	return g.running && (box.Bottom() < 0 || box.Bottom() > TerrainY)
}

// Render draws the background, bird, pipes and score.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	vp := core.NewViewport(PlayfieldWidth, PlayfieldHeight, dst.Width(), dst.Height())

	g.background.Render(dst, vp, g.scrollX)
	g.bird.Render(dst, vp)
	for _, p := range g.pipes {
		p.Render(dst, vp, g.sprites)
	}

	dst.DrawTextCentered(vp.Row(ScoreY), fmt.Sprintf("Score: %d", g.score), core.ColorBrightWhite)

	switch g.Phase() {
	case PhaseIdle:
		dst.DrawTextCentered(vp.Row(ScoreY)+2, "Press SPACE to flap", core.ColorWhite)
	case PhaseOver:
		dst.DrawTextCentered(vp.Row(ScoreY)+2, "GAME OVER", core.ColorOrange)
		dst.DrawTextCentered(vp.Row(ScoreY)+3, "SPACE to reset", core.ColorWhite)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Running:  g.running,
		GameOver: g.over,
	}
}

// Phase derives the state machine phase from the running/over flags.
func (g *Game) Phase() Phase {
	switch {
	case g.over:
		return PhaseOver
	case g.running:
		return PhaseRunning
	default:
		return PhaseIdle
	}
}

// Score returns the number of pipes passed in the current run.
func (g *Game) Score() int {
	return g.score
}

// ScrollX returns the scroll accumulator.
func (g *Game) ScrollX() int {
	return g.scrollX
}

// Pipes returns the pipes currently on the playfield, oldest first.
func (g *Game) Pipes() []*Pipe {
	return g.pipes
}

// Bird returns the player avatar.
func (g *Game) Bird() *Bird {
	return g.bird
}

// Ticks returns the number of frames stepped since the last Reset.
func (g *Game) Ticks() int {
	return g.ticks
}

func init() {
	registry.Register("flappy", "Flappy Bird", func() (registry.Game, error) {
		return New()
	})
}
