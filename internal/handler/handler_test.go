package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/config"
	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/domain"
	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/simulation"
)

type memoryStore struct {
	mu   sync.Mutex
	jobs map[string]*simulation.Job
}

func (s *memoryStore) Save(_ context.Context, job *simulation.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
	return nil
}

func (s *memoryStore) Get(_ context.Context, id string) (*simulation.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, simulation.ErrJobNotFound
	}
	return job, nil
}

type recordingPublisher struct {
	queues []string
	bodies [][]byte
}

func (p *recordingPublisher) Publish(_ context.Context, queue string, body []byte) error {
	p.queues = append(p.queues, queue)
	p.bodies = append(p.bodies, body)
	return nil
}

func newTestHandler(t *testing.T) (*Handler, *memoryStore, *recordingPublisher) {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = 1
	cfg.RabbitMQ.SimulationQueue = "simulation_queue"
	cfg.CORS.AllowedOrigins = []string{"http://localhost:5173"}
	cfg.Simulation.LogInterval = 50
	cfg.Simulation.Swarm.Particles = 10
	cfg.Simulation.Swarm.Iterations = 10
	cfg.Simulation.Firefly.Fireflies = 5
	cfg.Simulation.Firefly.Iterations = 10
	cfg.Simulation.Limits.MaxParticles = 100
	cfg.Simulation.Limits.MaxFireflies = 50
	cfg.Simulation.Limits.MaxIterations = 100

	store := &memoryStore{jobs: make(map[string]*simulation.Job)}
	publisher := &recordingPublisher{}

	h, err := NewHandler(cfg, nil, store, publisher)
	require.NoError(t, err)
	h.RegisterRoutes()

	return h, store, publisher
}

func authCookie(t *testing.T, h *Handler, role domain.Role) *http.Cookie {
	t.Helper()

	ss, _, err := h.signToken("1", string(role))
	require.NoError(t, err)
	return &http.Cookie{Name: tokenCookieName, Value: ss}
}

func doRequest(t *testing.T, h *Handler, method, path string, body any, cookie *http.Cookie) Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func sampleRequest() map[string]any {
	return map[string]any{
		"barangays": []map[string]any{
			{"id": "0", "name": "Addition Hills", "waterLevel": 2.5, "personnel": map[string]int{"srr": 10, "health": 8, "log": 5}},
			{"id": "26", "name": "Wack-Wack Greenhills", "waterLevel": 0.2, "personnel": map[string]int{"srr": 2, "health": 2, "log": 1}},
		},
		"seed": 42,
	}
}

func TestRequiresLogin(t *testing.T) {
	h, _, _ := newTestHandler(t)

	resp := doRequest(t, h, http.MethodGet, "/simulations/abc", nil, nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "用户未登录", resp.Message)

	resp = doRequest(t, h, http.MethodGet, "/simulations/abc", nil, &http.Cookie{Name: tokenCookieName, Value: "garbage"})
	assert.False(t, resp.Success)
	assert.Equal(t, "无效的令牌", resp.Message)
}

func TestZoneWritesRequireAdmin(t *testing.T) {
	h, _, _ := newTestHandler(t)

	body := map[string]any{"name": "Hulo", "population": 27533, "risk": 3}
	resp := doRequest(t, h, http.MethodPost, "/zones", body, authCookie(t, h, domain.RoleDispatcher))

	assert.False(t, resp.Success)
	assert.Equal(t, "权限不足", resp.Message)
}

func TestCreateAndGetSimulation(t *testing.T) {
	h, store, publisher := newTestHandler(t)
	cookie := authCookie(t, h, domain.RoleDispatcher)

	resp := doRequest(t, h, http.MethodPost, "/simulations", sampleRequest(), cookie)
	require.True(t, resp.Success, resp.Message)

	data := resp.Data.(map[string]any)
	id := data["id"].(string)
	assert.Equal(t, string(simulation.StatusPending), data["status"])
	assert.EqualValues(t, 42, data["seed"])

	require.Len(t, publisher.queues, 1)
	assert.Equal(t, "simulation_queue", publisher.queues[0])
	var msg simulation.JobMessage
	require.NoError(t, json.Unmarshal(publisher.bodies[0], &msg))
	assert.Equal(t, id, msg.JobID)

	require.Contains(t, store.jobs, id)
	assert.Len(t, store.jobs[id].Request.Barangays, 2)

	resp = doRequest(t, h, http.MethodGet, "/simulations/"+id, nil, cookie)
	require.True(t, resp.Success)
	assert.Equal(t, id, resp.Data.(map[string]any)["id"])
}

func TestCreateSimulationRejectsInvalidRequests(t *testing.T) {
	h, store, publisher := newTestHandler(t)
	cookie := authCookie(t, h, domain.RoleDispatcher)

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"没有区域", func(req map[string]any) { req["barangays"] = []map[string]any{} }},
		{"负水位", func(req map[string]any) {
			req["barangays"].([]map[string]any)[0]["waterLevel"] = -1
		}},
		{"负人员", func(req map[string]any) {
			req["barangays"].([]map[string]any)[0]["personnel"] = map[string]int{"srr": -1, "health": 0, "log": 0}
		}},
		{"重复区域", func(req map[string]any) {
			req["barangays"].([]map[string]any)[1]["name"] = "Addition Hills"
		}},
		{"未知算法", func(req map[string]any) { req["algorithms"] = []string{"ga"} }},
		{"粒子数为零", func(req map[string]any) {
			req["swarm"] = map[string]any{"particles": 0, "iterations": 10}
		}},
		{"粒子数过多", func(req map[string]any) {
			req["swarm"] = map[string]any{"particles": 2_000_000_000}
		}},
		{"萤火虫数量超过上限", func(req map[string]any) {
			req["firefly"] = map[string]any{"fireflies": 51}
		}},
		{"迭代次数超过上限", func(req map[string]any) {
			req["firefly"] = map[string]any{"iterations": 101}
		}},
		{"权重过大", func(req map[string]any) {
			req["weights"] = map[string]any{"w4": 1e308}
		}},
		{"需求系数为负", func(req map[string]any) {
			req["lambdas"] = map[string]any{"health": -0.1}
		}},
		{"未知字段", func(req map[string]any) { req["unknown"] = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := sampleRequest()
			tt.mutate(req)

			resp := doRequest(t, h, http.MethodPost, "/simulations", req, cookie)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Message)
		})
	}

	assert.Empty(t, store.jobs)
	assert.Empty(t, publisher.queues)
}

func TestCreateSimulationWithPartialOverride(t *testing.T) {
	h, store, _ := newTestHandler(t)
	cookie := authCookie(t, h, domain.RoleDispatcher)

	req := sampleRequest()
	req["swarm"] = map[string]any{"iterations": 20}
	req["weights"] = map[string]any{"w1": 0.5}

	resp := doRequest(t, h, http.MethodPost, "/simulations", req, cookie)
	require.True(t, resp.Success, resp.Message)

	job := store.jobs[resp.Data.(map[string]any)["id"].(string)]
	require.NotNil(t, job)
	require.NotNil(t, job.Request.Swarm)
	require.NotNil(t, job.Request.Swarm.Iterations)
	assert.Equal(t, 20, *job.Request.Swarm.Iterations)
	assert.Nil(t, job.Request.Swarm.Particles)
	require.NotNil(t, job.Request.Weights)
	assert.Nil(t, job.Request.Weights.W4)
}

func TestGetUnknownSimulation(t *testing.T) {
	h, _, _ := newTestHandler(t)

	resp := doRequest(t, h, http.MethodGet, "/simulations/missing", nil, authCookie(t, h, domain.RoleAdmin))
	assert.False(t, resp.Success)
	assert.Equal(t, simulation.ErrJobNotFound.Error(), resp.Message)
}

func TestLogoutClearsCookie(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, tokenCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
}
