package eventbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type ping struct{ N int }
type pong struct{ N int }

func TestBus_RoutesByType(t *testing.T) {
	b := New()
	var pings, pongs []int
	On(b, func(_ context.Context, e ping) { pings = append(pings, e.N) })
	On(b, func(_ context.Context, e pong) { pongs = append(pongs, e.N) })

	Emit(context.Background(), b, ping{1})
	Emit(context.Background(), b, pong{2})
	Emit(context.Background(), b, ping{3})

	require.Equal(t, []int{1, 3}, pings)
	require.Equal(t, []int{2}, pongs)
}

func TestBus_Unsubscribe(t *testing.T) {
	b := New()
	var got []string
	unsubA := On(b, func(_ context.Context, _ ping) { got = append(got, "a") })
	On(b, func(_ context.Context, _ ping) { got = append(got, "b") })

	Emit(context.Background(), b, ping{})
	unsubA()
	unsubA()
	Emit(context.Background(), b, ping{})

	require.Equal(t, []string{"a", "b", "b"}, got)
}

func TestGlobal(t *testing.T) {
	Use(nil)
	Publish(context.Background(), ping{}) // no bus: dropped
	unsub := Subscribe(func(context.Context, ping) { t.Fatal("no bus installed") })
	unsub()

	b := New()
	Use(b)
	defer Use(nil)
	n := 0
	unsub = Subscribe(func(_ context.Context, e ping) { n += e.N })
	defer unsub()
	Publish(context.Background(), ping{N: 5})
	require.Equal(t, 5, n)
}
