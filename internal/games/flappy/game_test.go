package flappy

import (
	"strings"
	"testing"

	"github.com/semboko/flappy/internal/core"
	"github.com/semboko/flappy/internal/physics"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	g.Reset(cfg)
	return g
}

func jump() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	return in
}

func TestGameInitialState(t *testing.T) {
	g := newTestGame(t, 1)

	if g.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", g.Phase())
	}
	if g.Score() != 0 || g.ScrollX() != 0 || len(g.Pipes()) != 0 {
		t.Errorf("score/scroll/pipes = %d/%d/%d, want zeros", g.Score(), g.ScrollX(), len(g.Pipes()))
	}
	if g.Bird().Body().Type() != physics.Static {
		t.Error("bird should be static while idle")
	}
	if got := g.Bird().Body().Position(); got != BirdSpawn {
		t.Errorf("bird at %+v, want %+v", got, BirdSpawn)
	}
}

func TestIdleStepDoesNothing(t *testing.T) {
	g := newTestGame(t, 1)

	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}

	if g.ScrollX() != 0 {
		t.Errorf("scroll = %d while idle, want 0", g.ScrollX())
	}
	if got := g.Bird().Body().Position(); got != BirdSpawn {
		t.Errorf("idle bird moved to %+v", got)
	}
}

func TestFirstJumpStartsRun(t *testing.T) {
	g := newTestGame(t, 1)

	res := g.Step(jump())

	if !res.State.Running || res.State.GameOver {
		t.Fatalf("state = %+v, want running", res.State)
	}
	if g.Bird().Body().Type() != physics.Dynamic {
		t.Error("bird should be dynamic once running")
	}
	if g.Bird().Body().Velocity().Y <= 0 {
		t.Errorf("bird vy = %v after jump, want upward", g.Bird().Body().Velocity().Y)
	}
	if g.Bird().Angle() != TiltAngle {
		t.Errorf("angle = %v while climbing, want %v", g.Bird().Angle(), TiltAngle)
	}
}

func TestScrollPerRunningTick(t *testing.T) {
	g := newTestGame(t, 1)

	g.Step(jump())
	for i := 0; i < 9; i++ {
		g.Step(core.NewInputFrame())
	}

	if g.Phase() != PhaseRunning {
		t.Fatalf("phase = %v, want running", g.Phase())
	}
	if g.ScrollX() != -10*Speed {
		t.Errorf("scroll = %d after 10 ticks, want %d", g.ScrollX(), -10*Speed)
	}
}

func TestAdvanceSpawnSchedule(t *testing.T) {
	g := newTestGame(t, 1)

	for i := 1; i <= 240; i++ {
		g.Advance()
		if i < 240 && len(g.Pipes()) != 0 {
			t.Fatalf("pipe spawned early at tick %d (scroll %d)", i, g.ScrollX())
		}
	}

	if g.ScrollX() != -1200 {
		t.Fatalf("scroll = %d, want -1200", g.ScrollX())
	}
	if len(g.Pipes()) != 1 {
		t.Fatalf("pipes = %d at scroll -1200, want 1", len(g.Pipes()))
	}
	if g.Pipes()[0].X != PipeSpawnX {
		t.Errorf("new pipe x = %d, want %d", g.Pipes()[0].X, PipeSpawnX)
	}

	for i := 0; i < SpawnInterval/Speed; i++ {
		g.Advance()
	}
	if len(g.Pipes()) != 2 {
		t.Errorf("pipes = %d after one more interval, want 2", len(g.Pipes()))
	}
}

func TestAdvanceScoresRetiredPipes(t *testing.T) {
	g := newTestGame(t, 1)
	g.pipes = append(g.pipes, NewPipe(3, 300), NewPipe(5, 300), NewPipe(200, 300))

	g.Advance()

	if g.Score() != 1 {
		t.Errorf("score = %d, want 1", g.Score())
	}
	if len(g.Pipes()) != 2 {
		t.Fatalf("pipes = %d, want 2", len(g.Pipes()))
	}
	if g.Pipes()[0].X != 0 || g.Pipes()[1].X != 195 {
		t.Errorf("pipe xs = %d, %d, want 0, 195", g.Pipes()[0].X, g.Pipes()[1].X)
	}

	g.Advance()
	if g.Score() != 2 {
		t.Errorf("score = %d, want 2", g.Score())
	}
}

func TestBirdCollidesWithPipe(t *testing.T) {
	g := newTestGame(t, 1)

	g.pipes = append(g.pipes, NewPipe(400, 300))
	if g.BirdCollides() {
		t.Error("pipe to the right should not collide")
	}

	g.pipes = append(g.pipes, NewPipe(200, 300))
	if !g.BirdCollides() {
		t.Error("bird at spawn overlaps the bottom half of a pipe at x=200")
	}
}

func TestCollisionEndsRun(t *testing.T) {
	g := newTestGame(t, 1)

	g.Step(jump())
	g.pipes = append(g.pipes, NewPipe(int(BirdSpawn.X), 100))
	g.Step(core.NewInputFrame())

	if g.Phase() != PhaseOver {
		t.Fatalf("phase = %v, want over", g.Phase())
	}
	if g.Bird().Body().Type() != physics.Static {
		t.Error("bird should freeze on game over")
	}

	scroll := g.ScrollX()
	pos := g.Bird().Body().Position()
	for i := 0; i < 20; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.ScrollX() != scroll {
		t.Errorf("scroll moved after game over: %d -> %d", scroll, g.ScrollX())
	}
	if g.Bird().Body().Position() != pos {
		t.Error("bird moved after game over")
	}
}

func TestFallingIntoGroundEndsRun(t *testing.T) {
	g := newTestGame(t, 1)

	g.Step(jump())
	for i := 0; i < 300 && g.Phase() == PhaseRunning; i++ {
		g.Step(core.NewInputFrame())
	}

	if g.Phase() != PhaseOver {
		t.Fatalf("phase = %v, want over after falling", g.Phase())
	}
	if g.Bird().Bounds(PlayfieldHeight).Bottom() <= TerrainY {
		t.Error("run ended before the bird reached the ground")
	}
}

func TestCeiling(t *testing.T) {
	tests := []struct {
		name     string
		screenY  float64 // Bird centre in screen space
		expected bool
	}{
		{"inside", 100, false},
		{"touching top edge", 10, false},
		{"half out", -10, false},
		{"entirely above", -30, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, 1)
			g.Step(jump())
			g.Bird().Body().SetPosition(core.Pt(BirdSpawn.X, PlayfieldHeight-tc.screenY))

			if got := g.BirdCollides(); got != tc.expected {
				t.Errorf("BirdCollides() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRestartNeedsTwoPresses(t *testing.T) {
	g := newTestGame(t, 1)

	g.Step(jump())
	for i := 0; i < 5; i++ {
		g.Advance()
	}
	g.pipes = append(g.pipes, NewPipe(300, 300))
	g.score = 3
	g.Over()

	g.Step(jump())
	if g.Phase() != PhaseIdle {
		t.Fatalf("phase = %v after first press, want idle", g.Phase())
	}
	if g.Score() != 0 || g.ScrollX() != 0 || len(g.Pipes()) != 0 {
		t.Errorf("restart left score/scroll/pipes = %d/%d/%d", g.Score(), g.ScrollX(), len(g.Pipes()))
	}
	if got := g.Bird().Body().Position(); got != BirdSpawn {
		t.Errorf("bird at %+v after restart, want spawn", got)
	}

	g.Step(jump())
	if g.Phase() != PhaseRunning {
		t.Errorf("phase = %v after second press, want running", g.Phase())
	}
}

func TestJumpIntoPipeDoesNotCarryForceIntoNextRun(t *testing.T) {
	fresh := newTestGame(t, 1)
	fresh.Step(jump())
	want := fresh.Bird().Body().Velocity()

	g := newTestGame(t, 1)
	g.Step(jump())
	g.pipes = append(g.pipes, NewPipe(int(BirdSpawn.X), 100))

	// Flap in the same frame as the crash: the jump force is applied to a
	// body that freezes before the world steps.
	g.Step(jump())
	if g.Phase() != PhaseOver {
		t.Fatalf("phase = %v, want over", g.Phase())
	}

	g.Step(jump())
	if f := g.Bird().Body().Force(); f != core.Pt(0, 0) {
		t.Errorf("force after restart = %+v, want none", f)
	}

	g.Step(jump())
	if g.Phase() != PhaseRunning {
		t.Fatalf("phase = %v, want running", g.Phase())
	}
	if got := g.Bird().Body().Velocity(); got != want {
		t.Errorf("first jump after restart gave velocity %+v, want %+v", got, want)
	}
}

func TestDeterministicPipes(t *testing.T) {
	a := newTestGame(t, 42)
	b := newTestGame(t, 42)

	for i := 0; i < 2000; i++ {
		a.Advance()
		b.Advance()
	}

	if len(a.Pipes()) == 0 || len(a.Pipes()) != len(b.Pipes()) {
		t.Fatalf("pipe counts %d vs %d", len(a.Pipes()), len(b.Pipes()))
	}
	for i := range a.Pipes() {
		if *a.Pipes()[i] != *b.Pipes()[i] {
			t.Errorf("pipe %d differs: %+v vs %+v", i, *a.Pipes()[i], *b.Pipes()[i])
		}
	}
	if a.Score() != b.Score() {
		t.Errorf("scores differ: %d vs %d", a.Score(), b.Score())
	}
}

func TestTileOffset(t *testing.T) {
	g := newTestGame(t, 1)
	bg := g.background

	tests := []struct {
		scroll int
		want   float64
	}{
		{0, -TerrainTileWidth},
		{-5, -5},
		{-480, -TerrainTileWidth},
		{-485, -5},
		{-1201, -241},
	}

	for _, tt := range tests {
		if got := bg.TileOffset(tt.scroll); got != tt.want {
			t.Errorf("TileOffset(%d) = %v, want %v", tt.scroll, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, 1)
	g.pipes = append(g.pipes, NewPipe(240, 320))

	screen := core.NewScreen(60, 40)
	g.Render(screen)

	vp := core.NewViewport(PlayfieldWidth, PlayfieldHeight, 60, 40)

	if !strings.Contains(screen.Row(vp.Row(ScoreY)), "Score: 0") {
		t.Errorf("score row = %q", screen.Row(vp.Row(ScoreY)))
	}

	ground := screen.GetCell(0, vp.Row(TerrainY))
	if ground.Rune == ' ' || ground.Color != core.ColorBrightGreen {
		t.Errorf("ground cell = %+v, want grass", ground)
	}

	if got := screen.Get(vp.Col(240), 0); got != g.sprites.body {
		t.Errorf("pipe cell = %q, want %q", got, g.sprites.body)
	}

	drawn := g.Bird().Drawn()
	if drawn.W == 0 || screen.GetCell(drawn.X+drawn.W/2, drawn.Y).Color != core.ColorBrightYellow {
		t.Errorf("bird not drawn at %+v", drawn)
	}
}
