package handlers

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/adhub/adhub/internal/samba"
	"github.com/adhub/adhub/internal/setup"
	"github.com/adhub/adhub/internal/tools"
	"github.com/gin-gonic/gin"
)

// SetupHandler serves the provisioning wizard endpoints.
type SetupHandler struct {
	checker     *setup.PrerequisiteChecker
	provisioner *setup.Provisioner
	resetter    *setup.Resetter
	verifier    *setup.Verifier
	service     samba.Service
	history     *tools.HistoryStore

	dial func(network, address string, timeout time.Duration) (net.Conn, error)
}

// NewSetupHandler creates a new setup handler. The history store may be nil
// when no database is configured.
func NewSetupHandler(runner samba.InputRunner, config *samba.Config, service samba.Service, history *tools.HistoryStore) *SetupHandler {
	return &SetupHandler{
		checker:     setup.NewPrerequisiteChecker(runner, config),
		provisioner: setup.NewProvisioner(runner, config),
		resetter:    setup.NewResetter(runner, config),
		verifier:    setup.NewVerifier(runner, config),
		service:     service,
		history:     history,
		dial:        net.DialTimeout,
	}
}

// GetStatusHandler reports whether a domain is provisioned.
func (h *SetupHandler) GetStatusHandler(c *gin.Context) {
	provisioned := h.provisioner.IsProvisioned()
	response := gin.H{
		"provisioned":    provisioned,
		"setup_required": !provisioned,
	}

	if provisioned {
		if info, err := h.service.DomainInfo(c.Request.Context()); err == nil {
			response["domain"] = info
		}
	}

	c.JSON(http.StatusOK, response)
}

// CheckPrerequisitesHandler runs the environment checks.
func (h *SetupHandler) CheckPrerequisitesHandler(c *gin.Context) {
	allPassed, checks := h.checker.Check(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"all_passed": allPassed,
		"checks":     checks,
	})
}

// ValidateConfigHandler validates a domain configuration without touching
// the system.
func (h *SetupHandler) ValidateConfigHandler(c *gin.Context) {
	var cfg setup.DomainConfig
	if !validateAndBind(c, &cfg) {
		return
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": err.Error()})
		return
	}

	var warnings []string
	if h.provisioner.IsProvisioned() {
		warnings = append(warnings, "A domain is already provisioned, reset it before provisioning again")
	}

	if expected := strings.ToUpper(cfg.DomainName); cfg.Realm != expected {
		warnings = append(warnings, fmt.Sprintf("Realm %q does not match domain %q, consider using %q", cfg.Realm, cfg.DomainName, expected))
	}

	if cfg.DNSForwarder != "" {
		conn, err := h.dial("tcp", net.JoinHostPort(cfg.DNSForwarder, "53"), 2*time.Second)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("DNS forwarder %s may not be reachable", cfg.DNSForwarder))
		} else {
			conn.Close()
		}
	}

	c.JSON(http.StatusOK, gin.H{"valid": true, "warnings": warnings})
}

// ProvisionHandler provisions a new domain.
func (h *SetupHandler) ProvisionHandler(c *gin.Context) {
	var cfg setup.DomainConfig
	if !validateAndBind(c, &cfg) {
		return
	}

	if h.provisioner.IsProvisioned() {
		c.JSON(http.StatusConflict, gin.H{"error": "A domain is already provisioned, reset it first"})
		return
	}

	allPassed, checks := h.checker.Check(c.Request.Context())
	if !allPassed {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Prerequisite checks failed",
			"checks": checks,
		})
		return
	}

	// A dropped client connection must not kill the provision midway and
	// leave the domain half built; only the hard timeout may stop it.
	result := h.provisioner.Provision(context.WithoutCancel(c.Request.Context()), cfg)
	h.recordHistory(cfg, result.Status, result.Message)

	if result.Status != setup.ProvisionCompleted {
		c.JSON(http.StatusInternalServerError, gin.H{"result": result})
		return
	}

	response := gin.H{"result": result}
	if info, err := h.service.DomainInfo(c.Request.Context()); err == nil {
		response["domain"] = info
	}
	c.JSON(http.StatusOK, response)
}

// VerifyHandler runs the post-provisioning verification suite.
func (h *SetupHandler) VerifyHandler(c *gin.Context) {
	if !h.provisioner.IsProvisioned() {
		c.JSON(http.StatusConflict, gin.H{"error": "No domain is provisioned"})
		return
	}

	// The password is optional; without it the credentialed tests are
	// reported as skipped.
	var req VerifyRequest
	_ = c.ShouldBindJSON(&req)

	info, err := h.service.DomainInfo(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to determine domain to verify")
		return
	}

	tests := h.verifier.Verify(c.Request.Context(), info.Domain, strings.ToUpper(info.Domain), req.AdminPassword)
	overall, passed, failed, skipped := setup.Summarize(tests)

	c.JSON(http.StatusOK, gin.H{
		"overall_status": overall,
		"passed":         passed,
		"failed":         failed,
		"skipped":        skipped,
		"tests":          tests,
	})
}

// ResetHandler tears down the current domain.
func (h *SetupHandler) ResetHandler(c *gin.Context) {
	if !h.provisioner.IsProvisioned() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No domain is provisioned, nothing to reset"})
		return
	}

	backupDir, err := h.resetter.Reset(context.WithoutCancel(c.Request.Context()))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset domain", "details": err.Error()})
		return
	}

	h.recordHistory(setup.DomainConfig{}, "reset", "Domain reset, backup at "+backupDir)

	c.JSON(http.StatusOK, gin.H{
		"message":    "Domain reset successfully",
		"backup_dir": backupDir,
	})
}

// GetHistoryHandler returns the most recent provisioning attempts.
func (h *SetupHandler) GetHistoryHandler(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusOK, gin.H{"history": []tools.ProvisionRecord{}})
		return
	}

	records, err := h.history.Recent(20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve provisioning history", "details": err.Error()})
		return
	}
	if records == nil {
		records = []tools.ProvisionRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"history": records})
}

func (h *SetupHandler) recordHistory(cfg setup.DomainConfig, status, message string) {
	if h.history == nil {
		return
	}
	h.history.Record(tools.ProvisionRecord{
		Realm:      cfg.Realm,
		Domain:     cfg.Domain,
		DNSBackend: cfg.DNSBackend,
		Status:     status,
		Message:    message,
	})
	log.Printf("recorded provisioning event: %s", status)
}
