package app

import (
	"fmt"
	"time"

	identityDomain "github.com/sundacoder/ZedID/internal/identity/domain"
	identityHTTP "github.com/sundacoder/ZedID/internal/identity/http"
	identityRepository "github.com/sundacoder/ZedID/internal/identity/repository"
	identityService "github.com/sundacoder/ZedID/internal/identity/service"
	identityUsecase "github.com/sundacoder/ZedID/internal/identity/usecase"
)

// KMSService returns the KMS service used to unwrap the token signing secret.
func (c *Container) KMSService() identityService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = identityService.NewKMSService()
	})
	return c.kmsService
}

// SigningSecret returns the token signing secret, decrypted with the KMS key when one is configured.
func (c *Container) SigningSecret() ([]byte, error) {
	var err error
	c.signingSecretInit.Do(func() {
		c.signingSecret, err = c.initSigningSecret()
		if err != nil {
			c.initErrors["signingSecret"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["signingSecret"]; exists {
		return nil, storedErr
	}
	return c.signingSecret, nil
}

// TokenService returns the bearer token service.
func (c *Container) TokenService() (identityService.TokenService, error) {
	var err error
	c.tokenServiceInit.Do(func() {
		c.tokenService, err = c.initTokenService()
		if err != nil {
			c.initErrors["tokenService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenService"]; exists {
		return nil, storedErr
	}
	return c.tokenService, nil
}

// CredentialBackend returns the SVID issuing backend.
func (c *Container) CredentialBackend() identityService.CredentialBackend {
	c.credentialBackendInit.Do(func() {
		c.credentialBackend = identityService.NewDemoCredentialBackend(c.config.TrustDomain)
	})
	return c.credentialBackend
}

// IdentityRepository returns the identity registry, seeded with the demo
// identities when SeedDemoData is set.
func (c *Container) IdentityRepository() (*identityRepository.MemoryIdentityRepository, error) {
	var err error
	c.identityRepoInit.Do(func() {
		c.identityRepo, err = c.initIdentityRepository()
		if err != nil {
			c.initErrors["identityRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["identityRepo"]; exists {
		return nil, storedErr
	}
	return c.identityRepo, nil
}

// IdentityUseCase returns the identity use case.
func (c *Container) IdentityUseCase() (identityUsecase.IdentityUseCase, error) {
	var err error
	c.identityUseCaseInit.Do(func() {
		c.identityUseCase, err = c.initIdentityUseCase()
		if err != nil {
			c.initErrors["identityUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["identityUseCase"]; exists {
		return nil, storedErr
	}
	return c.identityUseCase, nil
}

// IdentityHandler returns the identity HTTP handler.
func (c *Container) IdentityHandler() (*identityHTTP.IdentityHandler, error) {
	var err error
	c.identityHandlerInit.Do(func() {
		c.identityHandler, err = c.initIdentityHandler()
		if err != nil {
			c.initErrors["identityHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["identityHandler"]; exists {
		return nil, storedErr
	}
	return c.identityHandler, nil
}

// initSigningSecret resolves the token signing secret through the KMS service.
func (c *Container) initSigningSecret() ([]byte, error) {
	secret, err := identityService.ResolveSigningSecret(
		c.ctx,
		c.KMSService(),
		c.config.JWTSecretKMSKeyURI,
		c.config.JWTSecret,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve signing secret: %w", err)
	}
	return secret, nil
}

// initTokenService creates the token service from the resolved signing secret.
func (c *Container) initTokenService() (identityService.TokenService, error) {
	secret, err := c.SigningSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to get signing secret for token service: %w", err)
	}
	return identityService.NewTokenService(secret, c.config.JWTIssuer, c.config.JWTAudience), nil
}

// initIdentityRepository creates the identity repository and loads the demo identities.
func (c *Container) initIdentityRepository() (*identityRepository.MemoryIdentityRepository, error) {
	repo := identityRepository.NewMemoryIdentityRepository()
	if !c.config.SeedDemoData {
		return repo, nil
	}

	for _, identity := range identityDomain.DemoIdentities(c.config.TrustDomain, time.Now().UTC()) {
		if err := repo.Create(c.ctx, identity); err != nil {
			return nil, fmt.Errorf("failed to seed identity %s: %w", identity.Name, err)
		}
	}
	return repo, nil
}

// initIdentityUseCase creates the identity use case with all its dependencies.
func (c *Container) initIdentityUseCase() (identityUsecase.IdentityUseCase, error) {
	identityRepo, err := c.IdentityRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get identity repository for identity use case: %w", err)
	}

	tokenService, err := c.TokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get token service for identity use case: %w", err)
	}

	auditUseCase, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for identity use case: %w", err)
	}

	baseUseCase := identityUsecase.NewIdentityUseCase(
		identityRepo,
		c.CredentialBackend(),
		tokenService,
		auditUseCase,
		c.config.TrustDomain,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for identity use case: %w", err)
		}
		return identityUsecase.NewIdentityUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initIdentityHandler creates the identity HTTP handler.
func (c *Container) initIdentityHandler() (*identityHTTP.IdentityHandler, error) {
	identityUseCase, err := c.IdentityUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get identity use case for identity handler: %w", err)
	}
	return identityHTTP.NewIdentityHandler(identityUseCase, c.config.TrustDomain, c.Logger()), nil
}
