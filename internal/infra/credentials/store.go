// Package credentials persists provider API keys in the integration_tokens table.
package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"artgallery/internal/infra"
	"artgallery/internal/sqlinline"
)

const ProviderStability = "stability"

type Store struct {
	sql infra.SQLExecutor
}

func NewStore(sql infra.SQLExecutor) *Store {
	return &Store{sql: sql}
}

// StabilityAPIKey returns the stored key, or "" when none was saved.
func (s *Store) StabilityAPIKey(ctx context.Context) (string, error) {
	return s.Token(ctx, ProviderStability)
}

func (s *Store) Token(ctx context.Context, provider string) (string, error) {
	row := s.sql.QueryRow(ctx, sqlinline.QSelectIntegrationToken, provider)
	var token string
	if err := row.Scan(&token); err != nil {
		if infra.IsNoRows(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(token), nil
}

// SetStabilityAPIKey stores key along with the engine it was issued for.
func (s *Store) SetStabilityAPIKey(ctx context.Context, key, engine string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("stability api key is required")
	}
	var props map[string]any
	if engine = strings.TrimSpace(engine); engine != "" {
		props = map[string]any{"engine": engine}
	}
	return s.upsert(ctx, ProviderStability, key, props)
}

func (s *Store) upsert(ctx context.Context, provider, token string, props map[string]any) error {
	payload := props
	if payload == nil {
		payload = map[string]any{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = s.sql.Exec(ctx, sqlinline.QUpsertIntegrationToken, provider, token, raw)
	return err
}
