package interp

import (
	"strings"
	"testing"

	"github.com/TheCYPER/TheVaultRunner/internal/world"
)

const wallFollower = `
LOOP 50:
  IF FRONT_CLEAR: MOVE ELSE: RIGHT ENDIF
ENDLOOP
`

const keyDoorSolver = `
LOOP 50:
  IF ON_KEY: PICK ENDIF
  IF AT_DOOR AND HAVE_KEY: OPEN ENDIF
  IF FRONT_CLEAR: MOVE ELSE: RIGHT ENDIF
ENDLOOP
`

// keyDoorIgnorer never picks the key, so the door stays shut.
const keyDoorIgnorer = `
LOOP 50:
  IF AT_DOOR AND HAVE_KEY: OPEN ENDIF
  IF FRONT_CLEAR: MOVE ELSE: RIGHT ENDIF
ENDLOOP
`

func newWorldBot(t *testing.T, rows []string, x, y int, dir world.Direction) *world.Bot {
	t.Helper()
	grid, err := world.ParseMap(rows)
	if err != nil {
		t.Fatalf("parse map: %v", err)
	}
	return world.NewBot(grid, x, y, dir)
}

func TestRunWallFollowerSolvesCorridor(t *testing.T) {
	bot := newWorldBot(t, world.SimpleCorridor(), 1, 1, world.East)
	res := New(bot).Run(wallFollower, "corridor.runner")
	if !res.Success {
		t.Fatalf("run failed: %+v", res)
	}
	if res.Diagnostic != "" {
		t.Errorf("diagnostic on success: %q", res.Diagnostic)
	}
	if res.Steps == 0 || res.Steps >= DefaultLimits().MaxSteps {
		t.Errorf("steps = %d, want within budget and nonzero", res.Steps)
	}
	if !bot.AtExit() {
		t.Error("bot not on exit tile after successful run")
	}
}

func TestRunWallFollowerSolvesCorridorTurn(t *testing.T) {
	bot := newWorldBot(t, world.CorridorWithTurn(), 4, 1, world.South)
	res := New(bot).Run(wallFollower, "turn.runner")
	if !res.Success {
		t.Fatalf("run failed: %+v", res)
	}
}

func TestRunStuckFacingWallFails(t *testing.T) {
	bot := newWorldBot(t, world.SimpleCorridor(), 1, 1, world.North)
	res := New(bot).Run("LOOP 50: MOVE ENDLOOP", "stuck.runner")
	if res.Success {
		t.Fatal("run succeeded while walled in")
	}
	if res.Diagnostic != "" {
		t.Errorf("non-success is not a fault, got diagnostic %q", res.Diagnostic)
	}
	if x, y := bot.Position(); x != 1 || y != 1 {
		t.Errorf("blocked bot moved to (%d,%d)", x, y)
	}
}

func TestRunKeyUnlocksDoor(t *testing.T) {
	bot := newWorldBot(t, world.RoomWithKeyAndDoor(), 1, 1, world.East)
	res := New(bot).Run(keyDoorSolver, "keydoor.runner")
	if !res.Success {
		t.Fatalf("run failed: %+v", res)
	}
	if !bot.HasKey() {
		t.Error("bot reached exit without the key")
	}
}

func TestRunWithoutKeyStaysLockedOut(t *testing.T) {
	bot := newWorldBot(t, world.RoomWithKeyAndDoor(), 1, 1, world.East)
	res := New(bot).Run(keyDoorIgnorer, "keydoor.runner")
	if res.Success {
		t.Fatal("run succeeded through a closed door")
	}
	if res.Diagnostic != "" {
		t.Errorf("unexpected diagnostic: %q", res.Diagnostic)
	}
}

func TestRunSurfacesParseFault(t *testing.T) {
	bot := newWorldBot(t, world.SimpleCorridor(), 1, 1, world.East)
	res := New(bot).Run("LOOP 51: MOVE ENDLOOP", "big.runner")
	if res.Success {
		t.Fatal("run succeeded with an unparseable program")
	}
	if !strings.Contains(res.Diagnostic, "loop limit exceeded") {
		t.Errorf("diagnostic = %q, want loop limit fault", res.Diagnostic)
	}
}

func TestRunSurfacesLexFault(t *testing.T) {
	bot := newWorldBot(t, world.SimpleCorridor(), 1, 1, world.East)
	res := New(bot).Run("MOVE @ MOVE", "bad.runner")
	if res.Success {
		t.Fatal("run succeeded with an untokenizable program")
	}
	if !strings.Contains(res.Diagnostic, "invalid token") {
		t.Errorf("diagnostic = %q, want invalid token fault", res.Diagnostic)
	}
}

func TestRunSurfacesStepLimit(t *testing.T) {
	bot := newWorldBot(t, world.SimpleCorridor(), 1, 1, world.East)
	res := New(bot).Run("LOOP 50: LOOP 50: LEFT ENDLOOP ENDLOOP", "spin.runner")
	if res.Success {
		t.Fatal("run succeeded while spinning in place")
	}
	if !strings.Contains(res.Diagnostic, "execution limit exceeded") {
		t.Errorf("diagnostic = %q, want step limit fault", res.Diagnostic)
	}
	if res.Steps != DefaultLimits().MaxSteps {
		t.Errorf("steps = %d, want %d", res.Steps, DefaultLimits().MaxSteps)
	}
}

func TestRunCustomLimits(t *testing.T) {
	bot := newWorldBot(t, world.SimpleCorridor(), 1, 1, world.East)
	interp := New(bot, WithExecLimits(Limits{MaxSteps: 3}))
	res := interp.Run("MOVE MOVE MOVE MOVE", "short.runner")
	if res.Success {
		t.Fatal("run succeeded past a 3-step budget")
	}
	if !strings.Contains(res.Diagnostic, "execution limit exceeded") {
		t.Errorf("diagnostic = %q, want step limit fault", res.Diagnostic)
	}
}

func TestSensorsAreReadOnly(t *testing.T) {
	bot := newWorldBot(t, world.RoomWithKeyAndDoor(), 1, 1, world.East)
	interp := New(bot)

	src := "IF FRONT_CLEAR AND NOT ON_KEY AND NOT AT_DOOR AND NOT AT_EXIT AND NOT HAVE_KEY: LEFT RIGHT ENDIF"
	first := interp.Run(src, "probe.runner")
	second := interp.Run(src, "probe.runner")
	if first != second {
		t.Errorf("repeated sensor-only run diverged: %+v vs %+v", first, second)
	}
	if x, y := bot.Position(); x != 1 || y != 1 {
		t.Errorf("sensor probing moved the bot to (%d,%d)", x, y)
	}
}

func TestTokenCount(t *testing.T) {
	bot := newWorldBot(t, world.SimpleCorridor(), 1, 1, world.East)
	interp := New(bot)

	if n := interp.TokenCount("MOVE LEFT RIGHT", "t.runner"); n != 3 {
		t.Errorf("token count = %d, want 3", n)
	}
	if n := interp.TokenCount("LOOP 3: MOVE ENDLOOP", "t.runner"); n != 5 {
		t.Errorf("token count = %d, want 5", n)
	}
	if n := interp.TokenCount("MOVE @", "t.runner"); n != 0 {
		t.Errorf("token count for bad source = %d, want 0", n)
	}
	if n := interp.TokenCount("", "t.runner"); n != 0 {
		t.Errorf("token count for empty source = %d, want 0", n)
	}
}
