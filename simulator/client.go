package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Cameron-Kurotori/caseclosed/agent"
	"github.com/Cameron-Kurotori/caseclosed/sdk"
)

type AgentClient interface {
	Info() (info sdk.InfoResponse, err error)
	Start(snap sdk.Snapshot) error
	End(snap sdk.Snapshot) error
	Move(snap sdk.Snapshot) (sdk.MoveResponse, error)
}

type client struct {
	host   string
	port   string
	client *http.Client
}

func NewClient(host, port string) AgentClient {
	return &client{
		host:   host,
		port:   port,
		client: &http.Client{Timeout: 2 * time.Second},
	}
}

func (c *client) request(uri string, method string, body []byte) ([]byte, *http.Response, error) {
	r, err := http.NewRequest(method, fmt.Sprintf("http://%s:%s"+uri, c.host, c.port), bytes.NewReader(body))
	if err != nil {
		return nil, nil, err
	}
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.client.Do(r)
	if err != nil {
		return nil, resp, err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp, err
	}
	if resp.StatusCode >= 300 {
		return responseBody, resp, fmt.Errorf("non successful code received status_code=%d response_body=%s", resp.StatusCode, string(responseBody))
	}
	return responseBody, resp, nil
}

func (c *client) Info() (info sdk.InfoResponse, err error) {
	body, _, err := c.request("/", http.MethodGet, nil)
	if err != nil {
		return info, err
	}
	err = json.Unmarshal(body, &info)
	return info, err
}

func (c *client) Start(snap sdk.Snapshot) error {
	return c.post("/start", snap)
}

func (c *client) End(snap sdk.Snapshot) error {
	return c.post("/end", snap)
}

func (c *client) post(uri string, snap sdk.Snapshot) error {
	reqBody, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, _, err = c.request(uri, http.MethodPost, reqBody)
	return err
}

func (c *client) Move(snap sdk.Snapshot) (move sdk.MoveResponse, err error) {
	reqBody, err := json.Marshal(snap)
	if err != nil {
		return move, err
	}

	body, _, err := c.request("/move", http.MethodPost, reqBody)
	if err != nil {
		return move, err
	}

	err = json.Unmarshal(body, &move)
	return move, err
}

// localClient plays an in-process agent without going over HTTP.
type localClient struct {
	agent *agent.Agent
}

func NewLocalClient(a *agent.Agent) AgentClient {
	return &localClient{agent: a}
}

func (c *localClient) Info() (sdk.InfoResponse, error) {
	return sdk.InfoResponse{APIVersion: "1", Author: "local"}, nil
}

func (c *localClient) Start(sdk.Snapshot) error { return nil }
func (c *localClient) End(sdk.Snapshot) error   { return nil }

func (c *localClient) Move(snap sdk.Snapshot) (sdk.MoveResponse, error) {
	dir, err := c.agent.SelectMove(snap)
	if err != nil {
		return sdk.MoveResponse{}, err
	}
	return sdk.MoveOf(dir), nil
}

// stateRecorder keeps every snapshot its client was asked to move on.
type stateRecorder struct {
	AgentClient
	States []sdk.Snapshot
}

func (s *stateRecorder) Move(snap sdk.Snapshot) (sdk.MoveResponse, error) {
	s.States = append(s.States, snap)
	return s.AgentClient.Move(snap)
}

func RecordStates(client AgentClient) *stateRecorder {
	return &stateRecorder{
		AgentClient: client,
	}
}
