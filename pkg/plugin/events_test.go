package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventKindString(t *testing.T) {
	tests := []struct {
		kind EventKind
		want string
	}{
		{EventLoadingPlugin, "loading-plugin"},
		{EventLoadedPlugin, "loaded-plugin"},
		{EventLoadPluginFailed, "load-plugin-failed"},
		{EventUnloadingPlugin, "unloading-plugin"},
		{EventUnloadedPlugin, "unloaded-plugin"},
		{EventUnloadPluginFailed, "unload-plugin-failed"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestEventKindVetoable(t *testing.T) {
	assert.True(t, EventLoadingPlugin.Vetoable())
	assert.True(t, EventUnloadingPlugin.Vetoable())
	assert.False(t, EventLoadedPlugin.Vetoable())
	assert.False(t, EventLoadPluginFailed.Vetoable())
	assert.False(t, EventUnloadedPlugin.Vetoable())
	assert.False(t, EventUnloadPluginFailed.Vetoable())
}

func TestEventBusListenersFireInRegistrationOrder(t *testing.T) {
	bus := newEventBus()

	var order []int
	bus.On(EventLoadedPlugin, func(*Plugin) { order = append(order, 1) })
	bus.On(EventLoadedPlugin, func(*Plugin) { order = append(order, 2) })
	bus.On(EventLoadedPlugin, func(*Plugin) { order = append(order, 3) })

	bus.emit(EventLoadedPlugin, nil)

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestEventBusEmitWithoutListeners(t *testing.T) {
	bus := newEventBus()
	bus.emit(EventLoadedPlugin, nil)

	ok, reason := bus.emitVeto(EventLoadingPlugin, nil)
	assert.True(t, ok)
	assert.Empty(t, reason)
}

func TestEventBusVetoAggregatesWithAnd(t *testing.T) {
	bus := newEventBus()

	calls := 0
	bus.OnVeto(EventLoadingPlugin, func(*Plugin, *string) bool {
		calls++
		return true
	})
	bus.OnVeto(EventLoadingPlugin, func(p *Plugin, reason *string) bool {
		calls++
		*reason = "forbidden"
		return false
	})
	bus.OnVeto(EventLoadingPlugin, func(*Plugin, *string) bool {
		calls++
		return true
	})

	ok, reason := bus.emitVeto(EventLoadingPlugin, nil)

	assert.False(t, ok)
	assert.Equal(t, "forbidden", reason)
	assert.Equal(t, 2, calls, "a veto stops consulting later listeners")
}

func TestEventBusVetoAllAllow(t *testing.T) {
	bus := newEventBus()

	bus.OnVeto(EventUnloadingPlugin, func(*Plugin, *string) bool { return true })
	bus.OnVeto(EventUnloadingPlugin, func(*Plugin, *string) bool { return true })

	ok, reason := bus.emitVeto(EventUnloadingPlugin, nil)

	assert.True(t, ok)
	assert.Empty(t, reason)
}

func TestEventBusVetoOnNonVetoableEventPanics(t *testing.T) {
	bus := newEventBus()

	assert.Panics(t, func() {
		bus.OnVeto(EventLoadedPlugin, func(*Plugin, *string) bool { return true })
	})
}
