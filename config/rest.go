package config

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	postgrest "github.com/supabase-community/postgrest-go"
)

// NewRESTClient builds a bare PostgREST client for the postgrest driver.
// POSTGREST_URL is used as is; otherwise SUPABASE_URL gets the /rest/v1 suffix.
func NewRESTClient(cfg *Config, log *logrus.Logger) (*postgrest.Client, error) {
	url := cfg.PostgRESTURL
	if url == "" {
		url = strings.TrimSuffix(cfg.SupabaseURL, "/") + "/rest/v1"
	}
	headers := map[string]string{}
	if key := cfg.SupabaseKey(); key != "" {
		headers["apikey"] = key
		headers["Authorization"] = fmt.Sprintf("Bearer %s", key)
	}

	client := postgrest.NewClient(url, "", headers)
	if client.ClientError != nil {
		return nil, fmt.Errorf("initialize postgrest client: %w", client.ClientError)
	}

	// Requests outlive a canceled query, so the transport bounds how long one can wait.
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = cfg.QueryTimeout
	client.Transport.Parent = transport

	log.WithField("url", url).Info("PostgREST client initialized successfully")
	return client, nil
}
