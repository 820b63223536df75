package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/remote-jobs/internal/catalog"
	"github.com/honeycarbs/remote-jobs/internal/providerconfig"
	"github.com/honeycarbs/remote-jobs/pkg/logging"
)

// ProviderConfigStore is the part of providerconfig.Store the admin API needs
type ProviderConfigStore interface {
	Load() (providerconfig.Config, error)
	Apply(updates []providerconfig.Update) (providerconfig.Config, error)
}

// ProviderCatalog reports live provider status and whether external
// providers are switched on at all
type ProviderCatalog interface {
	Status(ctx context.Context) ([]catalog.Status, error)
	ProvidersEnabled() bool
}

// Reinitializer rebuilds the active provider set
type Reinitializer interface {
	Reinitialize(ctx context.Context) error
}

// UpdateConfigRequest is the body of POST /api/admin/api-config
type UpdateConfigRequest struct {
	Providers []providerconfig.Update `json:"providers" binding:"required"`
}

// Provider states reported by GET /api/admin/api-config
const (
	ProviderActive             = "active"
	ProviderDisabled           = "disabled"
	ProviderMissingCredentials = "missing_credentials"
	ProviderFallbackOnly       = "fallback_only"
)

// ProviderConfigView is one provider in the admin config response
type ProviderConfigView struct {
	ID        string `json:"id"`
	Enabled   bool   `json:"enabled"`
	HasAPIKey bool   `json:"hasApiKey"`
	Status    string `json:"status"`
}

// ConfigResponse is the body of GET and POST /api/admin/api-config
type ConfigResponse struct {
	ProvidersEnabled bool                 `json:"providersEnabled"`
	Providers        []ProviderConfigView `json:"providers"`
}

func newConfigResponse(cfg providerconfig.Config, providersEnabled bool) ConfigResponse {
	out := ConfigResponse{
		ProvidersEnabled: providersEnabled,
		Providers:        make([]ProviderConfigView, 0, len(cfg.Providers)),
	}
	for _, p := range cfg.Providers {
		out.Providers = append(out.Providers, ProviderConfigView{
			ID:        p.ID,
			Enabled:   p.Enabled,
			HasAPIKey: p.CredentialPresent,
			Status:    providerStatus(p, providersEnabled),
		})
	}
	return out
}

func providerStatus(p providerconfig.ProviderConfig, providersEnabled bool) string {
	switch {
	case !providersEnabled:
		return ProviderFallbackOnly
	case !p.Enabled:
		return ProviderDisabled
	case !p.CredentialPresent:
		return ProviderMissingCredentials
	default:
		return ProviderActive
	}
}

// StatusResponse is the body of GET /api/admin/api-status
type StatusResponse struct {
	Providers []catalog.Status `json:"providers"`
}

// AdminHandler serves provider configuration and status
type AdminHandler struct {
	store    ProviderConfigStore
	catalog  ProviderCatalog
	reloader Reinitializer
	logger   *logging.Logger
}

// NewAdminHandler creates an AdminHandler
func NewAdminHandler(store ProviderConfigStore, providers ProviderCatalog, reloader Reinitializer, logger *logging.Logger) *AdminHandler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &AdminHandler{
		store:    store,
		catalog:  providers,
		reloader: reloader,
		logger:   logger,
	}
}

// GetConfig handles GET /api/admin/api-config
func (h *AdminHandler) GetConfig(c *gin.Context) {
	cfg, err := h.store.Load()
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, newConfigResponse(cfg, h.catalog.ProvidersEnabled()))
}

// UpdateConfig handles POST /api/admin/api-config. The new config is
// persisted first and the provider set is rebuilt afterwards.
func (h *AdminHandler) UpdateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if len(req.Providers) == 0 {
		badRequest(c, "providers must not be empty")
		return
	}

	cfg, err := h.store.Apply(req.Providers)
	if err != nil {
		if errors.Is(err, providerconfig.ErrUnknownProvider) {
			badRequest(c, err.Error())
			return
		}
		h.logger.Error("failed to save provider config", "err", err)
		internalError(c, err)
		return
	}

	if err := h.reloader.Reinitialize(c.Request.Context()); err != nil {
		h.logger.Error("provider config saved but reinitialize failed", "err", err)
		internalError(c, err)
		return
	}

	subject := ""
	if claims, ok := GetAdminClaims(c); ok {
		subject = claims.Subject
	}
	h.logger.Info("provider config updated", "providers", req.Providers, "by", subject)
	c.JSON(http.StatusOK, newConfigResponse(cfg, h.catalog.ProvidersEnabled()))
}

// GetStatus handles GET /api/admin/api-status
func (h *AdminHandler) GetStatus(c *gin.Context) {
	statuses, err := h.catalog.Status(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, StatusResponse{Providers: statuses})
}
