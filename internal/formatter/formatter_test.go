package formatter

import (
	"testing"

	"github.com/TheCYPER/TheVaultRunner/internal/parser"
)

func format(t *testing.T, source string) string {
	t.Helper()
	prog, err := parser.ParseSource(source, "fmt.runner")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return Format(prog)
}

func TestFormatFlatActions(t *testing.T) {
	got := format(t, "move left  RIGHT pick open end")
	want := "MOVE\nLEFT\nRIGHT\nPICK\nOPEN\nEND\n"
	if got != want {
		t.Errorf("formatted:\n%q\nwant:\n%q", got, want)
	}
}

func TestFormatNestedBlocks(t *testing.T) {
	got := format(t, "LOOP 3: IF FRONT_CLEAR: MOVE ELSE: RIGHT ENDIF ENDLOOP")
	want := "LOOP 3:\n" +
		"  IF FRONT_CLEAR:\n" +
		"    MOVE\n" +
		"  ELSE:\n" +
		"    RIGHT\n" +
		"  ENDIF\n" +
		"ENDLOOP\n"
	if got != want {
		t.Errorf("formatted:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatConditions(t *testing.T) {
	got := format(t, "IF not front_clear and on_key or have_key: MOVE ENDIF")
	want := "IF NOT FRONT_CLEAR AND ON_KEY OR HAVE_KEY:\n  MOVE\nENDIF\n"
	if got != want {
		t.Errorf("formatted:\n%q\nwant:\n%q", got, want)
	}
}

// Formatting is canonical: formatting already-formatted source is a
// fixed point.
func TestFormatIdempotent(t *testing.T) {
	sources := []string{
		"LOOP 3: IF FRONT_CLEAR: MOVE ELSE: RIGHT ENDIF ENDLOOP",
		"IF AT_DOOR AND HAVE_KEY: OPEN ENDIF MOVE",
		"move move end",
	}
	for _, src := range sources {
		once := format(t, src)
		twice := format(t, once)
		if once != twice {
			t.Errorf("not idempotent for %q:\n%q\nvs\n%q", src, once, twice)
		}
	}
}
