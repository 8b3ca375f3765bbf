package detector

import (
	"errors"
	"testing"

	"HoyoSentinel/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recording struct {
	name string
	log  *[]string
	err  error
}

func (r recording) HandleEvent(account string, ev model.Event) error {
	*r.log = append(*r.log, r.name+":"+account+":"+string(ev.Kind()))
	return r.err
}

func TestDispatcher_DeliversInEventThenRegistrationOrder(t *testing.T) {
	var log []string
	d := NewDispatcher()
	d.Subscribe(recording{name: "a", log: &log})
	d.Subscribe(recording{name: "b", log: &log})

	events := Detect(snapshot(300), prev(299), detectedAt)
	require.NoError(t, d.Publish("hsr:800000001", events))

	assert.Equal(t, []string{
		"a:hsr:800000001:full", "b:hsr:800000001:full",
		"a:hsr:800000001:unit_gained", "b:hsr:800000001:unit_gained",
		"a:hsr:800000001:changed", "b:hsr:800000001:changed",
	}, log)
}

func TestDispatcher_Unsubscribe(t *testing.T) {
	var log []string
	d := NewDispatcher()
	first := d.Subscribe(recording{name: "a", log: &log})
	d.Subscribe(recording{name: "b", log: &log})

	assert.True(t, d.Unsubscribe(first))
	assert.False(t, d.Unsubscribe(first))
	assert.Equal(t, 1, d.Len())

	require.NoError(t, d.Publish("x", []model.Event{model.ChangedEvent{}}))
	assert.Equal(t, []string{"b:x:changed"}, log)
}

func TestDispatcher_ErrorsDoNotStopDelivery(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	d := NewDispatcher()
	d.Subscribe(recording{name: "a", log: &log, err: boom})
	d.Subscribe(recording{name: "b", log: &log})

	err := d.Publish("x", []model.Event{model.FullEvent{}, model.ChangedEvent{}})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, log, 4)
}

func TestDispatcher_SubscriberFunc(t *testing.T) {
	var got []model.Event
	d := NewDispatcher()
	d.Subscribe(SubscriberFunc(func(_ string, ev model.Event) error {
		got = append(got, ev)
		return nil
	}))

	require.NoError(t, d.Publish("x", nil))
	assert.Empty(t, got)

	require.NoError(t, d.Publish("x", []model.Event{model.FullEvent{MaxAmount: 300}}))
	require.Len(t, got, 1)
	assert.Equal(t, 300, got[0].(model.FullEvent).MaxAmount)
}
