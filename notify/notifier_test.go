package notify

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBridge records deliveries and answers waits with a canned event.
type fakeBridge struct {
	mu        sync.Mutex
	delivered []Native
	err       error
	event     ActivationEvent
	delay     time.Duration
	noEvent   bool // close the channel without an event
	active    atomic.Int32
	maxActive atomic.Int32
	closed    bool
}

func (f *fakeBridge) Deliver(n Native) (<-chan ActivationEvent, error) {
	f.mu.Lock()
	f.delivered = append(f.delivered, n)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	events := make(chan ActivationEvent, 1)
	if !n.Wait {
		return events, nil
	}

	cur := f.active.Add(1)
	for {
		peak := f.maxActive.Load()
		if cur <= peak || f.maxActive.CompareAndSwap(peak, cur) {
			break
		}
	}
	go func() {
		time.Sleep(f.delay)
		f.active.Add(-1)
		if !f.noEvent {
			events <- f.event
		}
		close(events)
	}()
	return events, nil
}

func (f *fakeBridge) Close() error {
	f.closed = true
	return nil
}

func (f *fakeBridge) deliveries() []Native {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Native(nil), f.delivered...)
}

func interactiveOptions() *Options {
	return NewOptions().
		MainButton(SingleAction{Label: "Open"}).
		DeliveryDate(float64(time.Now().Unix()), true)
}

func TestSendFireAndForget(t *testing.T) {
	tests := []struct {
		name string
		opts *Options
	}{
		{"nil options", nil},
		{"no delivery date", NewOptions().MainButton(SingleAction{Label: "Open"})},
		{"asynchronous date", NewOptions().MainButton(SingleAction{Label: "Open"}).DeliveryDate(1, false)},
		{"no main button", NewOptions().CloseButton("Close").DeliveryDate(1, true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The event would arrive long after the test deadline if Send waited.
			b := &fakeBridge{event: ActivationEvent{KeyActivationType: ActivationContentsClicked}, delay: time.Hour}
			n := NewWithBridge(b, nil)

			done := make(chan Response, 1)
			go func() {
				resp, err := n.Send("title", "subtitle", "body", tt.opts)
				assert.NoError(t, err)
				done <- resp
			}()

			select {
			case resp := <-done:
				assert.Equal(t, Response{Kind: None}, resp)
			case <-time.After(time.Second):
				t.Fatal("Send blocked on a fire-and-forget notification")
			}

			delivered := b.deliveries()
			require.Len(t, delivered, 1)
			assert.False(t, delivered[0].Wait)
		})
	}
}

func TestSendWaitsForActivation(t *testing.T) {
	b := &fakeBridge{
		event: ActivationEvent{KeyActivationType: ActivationActionClicked, KeyActivationValue: "Open"},
		delay: 50 * time.Millisecond,
	}
	n := NewWithBridge(b, nil)

	start := time.Now()
	resp, err := n.Send("Deploy", "", "Ready to ship?", interactiveOptions())

	require.NoError(t, err)
	assert.Equal(t, Response{Kind: ActionButton, Value: "Open"}, resp)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)

	delivered := b.deliveries()
	require.Len(t, delivered, 1)
	assert.True(t, delivered[0].Wait)
	assert.Equal(t, "Deploy", delivered[0].Title)
	assert.Equal(t, "Ready to ship?", delivered[0].Body)
	assert.Equal(t, "Open", delivered[0].Fields.MainButtonLabel)
	assert.Equal(t, "yes", delivered[0].Fields.Synchronous)
}

func TestSendReply(t *testing.T) {
	b := &fakeBridge{event: ActivationEvent{KeyActivationType: ActivationReplied, KeyActivationValue: "lgtm"}}
	n := NewWithBridge(b, nil)

	opts := NewOptions().
		MainButton(ResponseField{Placeholder: "Comment"}).
		DeliveryDate(1, true)
	resp, err := n.Send("Review", "", "PR #12", opts)

	require.NoError(t, err)
	assert.Equal(t, Response{Kind: Reply, Value: "lgtm"}, resp)
}

func TestSendBridgeRejected(t *testing.T) {
	cause := errors.New("notifications disabled")
	n := NewWithBridge(&fakeBridge{err: cause}, nil)

	for _, opts := range []*Options{NewOptions(), interactiveOptions()} {
		_, err := n.Send("t", "s", "b", opts)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBridgeRejected)
		assert.ErrorIs(t, err, cause)

		var de *DeliveryError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "deliver", de.Op)
	}
}

func TestSendBridgeClosedDuringWait(t *testing.T) {
	n := NewWithBridge(&fakeBridge{noEvent: true}, nil)

	_, err := n.Send("t", "", "b", interactiveOptions())

	assert.ErrorIs(t, err, ErrBridgeRejected)
	var de *DeliveryError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "wait", de.Op)
}

func TestSynchronousSendsAreSerialized(t *testing.T) {
	b := &fakeBridge{
		event: ActivationEvent{KeyActivationType: ActivationContentsClicked},
		delay: 20 * time.Millisecond,
	}
	// Two notifiers share the process-wide token.
	n1 := NewWithBridge(b, nil)
	n2 := NewWithBridge(b, nil)

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		n := n1
		if i%2 == 1 {
			n = n2
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := n.Send("t", "", "b", interactiveOptions())
			assert.NoError(t, err)
			assert.Equal(t, Response{Kind: Click}, resp)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), b.maxActive.Load())
	assert.Len(t, b.deliveries(), 6)
}

func TestFireAndForgetBypassesToken(t *testing.T) {
	syncToken.Lock()
	defer syncToken.Unlock()

	n := NewWithBridge(&fakeBridge{}, nil)
	done := make(chan error, 1)
	go func() {
		_, err := n.Send("t", "", "b", NewOptions().Sound("Blow"))
		done <- err
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("fire-and-forget Send waited for the serialization token")
	}
}

func TestNotifierClose(t *testing.T) {
	b := &fakeBridge{}
	require.NoError(t, NewWithBridge(b, nil).Close())
	assert.True(t, b.closed)
}

func TestSetApplication(t *testing.T) {
	defaultMu.Lock()
	savedName, savedNotifier := defaultAppName, defaultNotifier
	defaultAppName, defaultNotifier = "", nil
	defaultMu.Unlock()
	t.Cleanup(func() {
		defaultMu.Lock()
		defaultAppName, defaultNotifier = savedName, savedNotifier
		defaultMu.Unlock()
	})

	assert.Error(t, SetApplication(""))
	require.NoError(t, SetApplication("com.example.app"))
	assert.ErrorIs(t, SetApplication("com.example.other"), ErrApplicationAlreadySet)

	defaultMu.Lock()
	defaultAppName = ""
	defaultNotifier = NewWithBridge(&fakeBridge{}, nil)
	defaultMu.Unlock()
	assert.ErrorIs(t, SetApplication("com.example.app"), ErrApplicationAlreadySet)
}

func TestPackageSendUsesDefaultNotifier(t *testing.T) {
	b := &fakeBridge{}
	defaultMu.Lock()
	saved := defaultNotifier
	defaultNotifier = NewWithBridge(b, nil)
	defaultMu.Unlock()
	t.Cleanup(func() {
		defaultMu.Lock()
		defaultNotifier = saved
		defaultMu.Unlock()
	})

	resp, err := Send("t", "s", "b", nil)

	require.NoError(t, err)
	assert.Equal(t, Response{Kind: None}, resp)
	assert.Len(t, b.deliveries(), 1)
}
