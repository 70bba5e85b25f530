package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	lodehttp "github.com/quarryworks/lode/pkg/adapters/http"
	"github.com/quarryworks/lode/pkg/adapters/memory"
	"github.com/quarryworks/lode/pkg/domain"
	"github.com/quarryworks/lode/pkg/ports"
	"github.com/quarryworks/lode/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rigPool hands out one simulated world per session.
type rigPool struct {
	mu   sync.Mutex
	rigs map[string]*memory.SimRig
}

func newRigPool() *rigPool {
	return &rigPool{rigs: make(map[string]*memory.SimRig)}
}

func (p *rigPool) Rig(sessionID string) ports.Rig {
	p.mu.Lock()
	defer p.mu.Unlock()

	rig, ok := p.rigs[sessionID]
	if !ok {
		rig = memory.NewSimRig()
		rig.SetBlock(memory.Vec3{X: 0, Y: 0, Z: -1}, "coal_ore")
		rig.SetBlock(memory.Vec3{X: 0, Y: -1, Z: -1}, "coal_ore")
		p.rigs[sessionID] = rig
	}
	return rig
}

func newTestServer(t *testing.T) (*httptest.Server, *rigPool) {
	t.Helper()

	pool := newRigPool()
	manager := session.NewManager(memory.NewStore())
	ts := httptest.NewServer(lodehttp.NewHandler(manager, pool.Rig))
	t.Cleanup(ts.Close)

	return ts, pool
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestServer_Health(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
}

func TestServer_SessionLifecycle(t *testing.T) {
	server, rigs := newTestServer(t)

	// Create.
	resp := postJSON(t, server.URL+"/sessions", map[string]string{
		"id":        "shaft-1",
		"direction": "forward",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeBody[map[string]any](t, resp)
	assert.Equal(t, "shaft-1", created["id"])
	assert.Equal(t, false, created["active"])

	// List.
	listResp, err := http.Get(server.URL + "/sessions")
	require.NoError(t, err)
	list := decodeBody[map[string][]string](t, listResp)
	assert.Contains(t, list["sessions"], "shaft-1")

	// Tick until the excavation finishes.
	var result string
	for i := 0; i < 100; i++ {
		resp := postJSON(t, server.URL+"/sessions/shaft-1/tick?n=10", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		tick := decodeBody[map[string]any](t, resp)
		result = tick["result"].(string)
		if result == "success" {
			break
		}
	}
	require.Equal(t, "success", result)

	// Both ore cells mined, rig back at origin.
	rig := rigs.Rig("shaft-1").(*memory.SimRig)
	assert.Equal(t, 0, rig.BlockCount())
	pos, _ := rig.Pose()
	assert.Equal(t, memory.Vec3{}, pos)

	// Snapshot is still retrievable after completion.
	getResp, err := http.Get(server.URL + "/sessions/shaft-1")
	require.NoError(t, err)
	snap := decodeBody[domain.Snapshot](t, getResp)
	assert.Equal(t, domain.SnapshotVersion, snap.Version)

	// Delete.
	req, err := http.NewRequest(http.MethodDelete, server.URL+"/sessions/shaft-1", nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)

	notFound, err := http.Get(server.URL + "/sessions/shaft-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, notFound.StatusCode)
}

func TestServer_CreateGeneratesID(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/sessions", map[string]string{"direction": "down"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeBody[map[string]any](t, resp)
	assert.NotEmpty(t, created["id"])
}

func TestServer_BadRequests(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/sessions", map[string]string{"direction": "sideways"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, server.URL+"/sessions/unknown/tick", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, fmt.Sprintf("%s/sessions/x/tick?n=%d", server.URL, -1), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
