package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/vovakirdan/road-remembers/internal/config"
	"github.com/vovakirdan/road-remembers/internal/road"
)

// ErrUnconfigured is returned by a remote sink running on placeholder credentials.
var ErrUnconfigured = errors.New("storage: remote sink not configured")

// runsTable is the remote table that receives snapshots.
const runsTable = "runs"

// RemoteSink inserts memory snapshots into a Supabase-style REST table.
type RemoteSink struct {
	url    string
	key    string
	client *http.Client
}

// runRow is the JSON body of one insert.
type runRow struct {
	Carrying   int     `json:"carrying"`
	Discipline int     `json:"discipline"`
	Hunger     int     `json:"hunger"`
	Distance   float64 `json:"distance"`
}

// NewRemoteSink creates a remote sink. Placeholder settings yield a sink
// whose Push always returns ErrUnconfigured.
func NewRemoteSink(env config.SyncEnv, client *http.Client) *RemoteSink {
	if client == nil {
		client = &http.Client{Timeout: env.Timeout}
	}
	s := &RemoteSink{client: client}
	if !env.IsPlaceholder() {
		s.url = env.URL
		s.key = env.Key
	}
	return s
}

// Configured reports whether Push will reach the network.
func (s *RemoteSink) Configured() bool {
	return s.url != ""
}

// Name implements Syncer.
func (s *RemoteSink) Name() string {
	return "remote"
}

// Push implements Syncer.
func (s *RemoteSink) Push(ctx context.Context, rec road.SyncRecord) error {
	if !s.Configured() {
		return ErrUnconfigured
	}

	m := rec.Memory

	body, err := json.Marshal(runRow{
		Carrying:   m.CarryingCount,
		Discipline: m.DisciplineCount,
		Hunger:     m.HungerCount,
		Distance:   m.DistanceTraveled,
	})
	if err != nil {
		return fmt.Errorf("storage: cannot encode run: %w", err)
	}

	endpoint := s.url + "/rest/v1/" + runsTable
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("storage: cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")
	req.Header.Set("apikey", s.key)
	req.Header.Set("Authorization", "Bearer "+s.key)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("storage: remote insert failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("storage: remote insert returned %s: %s", resp.Status, bytes.TrimSpace(msg))
	}
	return nil
}
