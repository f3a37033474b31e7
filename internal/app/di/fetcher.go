// Package di provides dependency injection factories for creating application components.
package di

import (
	"starpupil_backend/internal/feature/ingest/fetcher"
	"starpupil_backend/internal/platform/externalapi/aktools"
	infrahttp "starpupil_backend/internal/platform/http"
)

// NewFetcher creates a fully configured Fetcher backed by the AKTools HTTP API.
func NewFetcher() *fetcher.Fetcher {
	cfg := aktools.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	client := aktools.NewClient(cfg, httpClient)
	return fetcher.New(client, fetcher.LoadConfig())
}
