package realtime

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu   sync.Mutex
	msgs []string
}

func (f *fakeClient) Send(message []byte) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, string(message))
	return true
}

func (f *fakeClient) Close() {}

func (f *fakeClient) received() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.msgs...)
}

func TestHub_BroadcastReachesRegistered(t *testing.T) {
	h := NewHub()
	a, b := &fakeClient{}, &fakeClient{}
	h.Register(a)
	h.Register(b)
	require.Equal(t, 2, h.Len())

	h.Broadcast([]byte("one"))
	h.Unregister(b)
	h.Broadcast([]byte("two"))

	require.Equal(t, []string{"one", "two"}, a.received())
	require.Equal(t, []string{"one"}, b.received())
	require.Equal(t, 1, h.Len())
}

func TestHub_RegisterReplaysLatest(t *testing.T) {
	h := NewHub()
	h.Broadcast([]byte("first"))
	h.Broadcast([]byte("latest"))

	c := &fakeClient{}
	h.Register(c)
	require.Equal(t, []string{"latest"}, c.received())
}
