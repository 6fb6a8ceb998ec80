// Package restapi implementa el sink de espejo contra un backend REST
// hosteado estilo PostgREST/Supabase: upsert por POST con merge-duplicates,
// delete por filtro id=eq.<id>.
package restapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"pet-care-tracker/internal/platform/httpclient"
	"pet-care-tracker/internal/ports/mirror"
)

type Config struct {
	BaseURL      string
	APIKey       string
	APIKeyHeader string // default "apikey"
	Timeout      time.Duration
}

func (c Config) IsConfigured() bool {
	return strings.TrimSpace(c.BaseURL) != ""
}

type Sink struct {
	client *httpclient.Client
	cfg    Config
}

func New(cfg Config) (*Sink, error) {
	if !cfg.IsConfigured() {
		return nil, fmt.Errorf("restapi: base url required")
	}
	if cfg.APIKeyHeader == "" {
		cfg.APIKeyHeader = "apikey"
	}

	client, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("restapi: %w", err)
	}
	return &Sink{client: client, cfg: cfg}, nil
}

func (s *Sink) headers(extra map[string]string) map[string]string {
	h := map[string]string{}
	if s.cfg.APIKey != "" {
		h[s.cfg.APIKeyHeader] = s.cfg.APIKey
		h["Authorization"] = "Bearer " + s.cfg.APIKey
	}
	for k, v := range extra {
		h[k] = v
	}
	return h
}

func (s *Sink) Upsert(ctx context.Context, d mirror.Document) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(d.Doc, &doc); err != nil {
		return fmt.Errorf("restapi: document for %s/%s is not a json object: %w", d.Table, d.ID, err)
	}

	path := "/rest/v1/" + url.PathEscape(d.Table)
	err := s.client.DoJSON(ctx, "POST", path, s.headers(map[string]string{
		"Prefer": "resolution=merge-duplicates",
	}), doc, nil)
	if err != nil {
		return fmt.Errorf("restapi: upsert %s/%s: %w", d.Table, d.ID, err)
	}
	return nil
}

func (s *Sink) Delete(ctx context.Context, table, id string) error {
	path := "/rest/v1/" + url.PathEscape(table) + "?id=eq." + url.QueryEscape(id)
	err := s.client.DoJSON(ctx, "DELETE", path, s.headers(nil), nil, nil)
	if err != nil {
		return fmt.Errorf("restapi: delete %s/%s: %w", table, id, err)
	}
	return nil
}
