package actionlog

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"
)

func TestNewLogHasOnlySentinel(t *testing.T) {
	l := New()
	if !l.Empty() || l.Len() != 0 {
		t.Fatalf("have len %d, want 0", l.Len())
	}
	for i, a := range l.All() {
		t.Fatalf("unexpected action %d: %v", i, a)
	}
	if _, ok := l.At(0); ok {
		t.Fatal("sentinel must not be addressable")
	}
}

func TestAppendAndIterate(t *testing.T) {
	actions := []Action{
		{Delay: 0.5, Type: MoveRight, X: 0, Y: 0},
		{Delay: 0, Type: Flag, X: 1, Y: 0},
		{Delay: 1.25, Type: Reveal, X: 1, Y: 1},
		{Delay: 2, Type: Quit, X: 1, Y: 1},
	}
	l := New()
	for _, a := range actions {
		if err := l.Append(a); err != nil {
			t.Fatal(err)
		}
	}

	// iteration is restartable
	for range 2 {
		var have []Action
		n := 0
		for i, a := range l.All() {
			n++
			if i != n {
				t.Fatalf("have index %d, want %d", i, n)
			}
			have = append(have, a)
		}
		if !reflect.DeepEqual(have, actions) {
			t.Fatalf("have %v, want %v", have, actions)
		}
	}

	if a, ok := l.At(3); !ok || a != actions[2] {
		t.Fatalf("have %v %t, want %v", a, ok, actions[2])
	}
	if have := l.Elapsed(); have != 3.75 {
		t.Fatalf("have elapsed %v, want 3.75", have)
	}
}

func TestIterateStopsEarly(t *testing.T) {
	l, err := FromActions([]Action{{Type: MoveUp}, {Type: MoveDown}, {Type: Quit}})
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for range l.All() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("have %d iterations, want 2", n)
	}
}

func TestAppendRejectsBadActions(t *testing.T) {
	tests := []struct {
		action Action
		err    error
	}{
		{Action{Delay: -1, Type: Reveal}, ErrNegativeDelay},
		{Action{Delay: math.NaN(), Type: Reveal}, ErrNegativeDelay},
		{Action{Delay: math.Inf(1), Type: Reveal}, ErrNegativeDelay},
		{Action{Type: Type(8)}, ErrUnknownAction},
		{Action{Type: Type(-1)}, ErrUnknownAction},
	}
	for _, test := range tests {
		l := New()
		if err := l.Append(test.action); !errors.Is(err, test.err) {
			t.Errorf("%v: have %v, want %v", test.action, err, test.err)
		}
		if l.Len() != 0 {
			t.Errorf("%v: rejected action was appended", test.action)
		}
	}
}

func TestActionsIsACopy(t *testing.T) {
	l, _ := FromActions([]Action{{Type: Reveal, X: 1}})
	actions := l.Actions()
	actions[0].X = 7
	if a, _ := l.At(1); a.X != 1 {
		t.Fatal("log was mutated through Actions()")
	}
}

func TestTypeTags(t *testing.T) {
	want := map[Type]int32{
		None: 0, MoveUp: 1, MoveDown: 2, MoveLeft: 3,
		MoveRight: 4, Flag: 5, Reveal: 6, Quit: 7,
	}
	for typ, tag := range want {
		if int32(typ) != tag {
			t.Errorf("%s: have tag %d, want %d", typ, int32(typ), tag)
		}
		parsed, err := ParseType(typ.String())
		if err != nil || parsed != typ {
			t.Errorf("ParseType(%q): have %v %v", typ.String(), parsed, err)
		}
	}
	if _, err := ParseType("chord"); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("have %v, want %v", err, ErrUnknownAction)
	}
}

func TestActionJSON(t *testing.T) {
	b, err := json.Marshal(Action{Delay: 0.25, Type: Flag, X: 2, Y: 3})
	if err != nil {
		t.Fatal(err)
	}
	if have, want := string(b), `{"delay":0.25,"type":"flag","x":2,"y":3}`; have != want {
		t.Fatalf("have %s, want %s", have, want)
	}
}

func TestDuration(t *testing.T) {
	if have := (Action{Delay: 1.5}).Duration(); have != 1500*time.Millisecond {
		t.Fatalf("have %v, want 1.5s", have)
	}
}
