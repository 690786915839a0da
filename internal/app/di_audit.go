package app

import (
	"fmt"

	auditHTTP "github.com/sundacoder/ZedID/internal/audit/http"
	auditRepository "github.com/sundacoder/ZedID/internal/audit/repository"
	auditService "github.com/sundacoder/ZedID/internal/audit/service"
	auditUsecase "github.com/sundacoder/ZedID/internal/audit/usecase"
)

// AuditRepository returns the in-memory audit ledger.
func (c *Container) AuditRepository() *auditRepository.MemoryEventRepository {
	c.auditRepoInit.Do(func() {
		c.auditRepo = auditRepository.NewMemoryEventRepository()
	})
	return c.auditRepo
}

// AuditSigner returns the signer sealing audit events.
func (c *Container) AuditSigner() (auditService.Signer, error) {
	var err error
	c.auditSignerInit.Do(func() {
		c.auditSigner, err = c.initAuditSigner()
		if err != nil {
			c.initErrors["auditSigner"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditSigner"]; exists {
		return nil, storedErr
	}
	return c.auditSigner, nil
}

// AuditUseCase returns the audit use case.
func (c *Container) AuditUseCase() (auditUsecase.AuditUseCase, error) {
	var err error
	c.auditUseCaseInit.Do(func() {
		c.auditUseCase, err = c.initAuditUseCase()
		if err != nil {
			c.initErrors["auditUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditUseCase"]; exists {
		return nil, storedErr
	}
	return c.auditUseCase, nil
}

// AuditHandler returns the audit HTTP handler.
func (c *Container) AuditHandler() (*auditHTTP.AuditHandler, error) {
	var err error
	c.auditHandlerInit.Do(func() {
		c.auditHandler, err = c.initAuditHandler()
		if err != nil {
			c.initErrors["auditHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditHandler"]; exists {
		return nil, storedErr
	}
	return c.auditHandler, nil
}

// initAuditSigner derives the audit signing key from AuditSigningKey, falling
// back to the token signing secret.
func (c *Container) initAuditSigner() (auditService.Signer, error) {
	ikm := []byte(c.config.AuditSigningKey)
	if len(ikm) == 0 {
		secret, err := c.SigningSecret()
		if err != nil {
			return nil, fmt.Errorf("failed to get signing secret for audit signer: %w", err)
		}
		ikm = secret
	}

	signer, err := auditService.NewSigner(ikm)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit signer: %w", err)
	}
	return signer, nil
}

// initAuditUseCase creates the audit use case with all its dependencies.
func (c *Container) initAuditUseCase() (auditUsecase.AuditUseCase, error) {
	signer, err := c.AuditSigner()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit signer for audit use case: %w", err)
	}

	baseUseCase := auditUsecase.NewAuditUseCase(c.AuditRepository(), signer)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for audit use case: %w", err)
		}
		return auditUsecase.NewAuditUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initAuditHandler creates the audit HTTP handler.
func (c *Container) initAuditHandler() (*auditHTTP.AuditHandler, error) {
	auditUseCase, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for audit handler: %w", err)
	}
	return auditHTTP.NewAuditHandler(auditUseCase, c.Logger()), nil
}
