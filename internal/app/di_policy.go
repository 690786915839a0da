package app

import (
	"fmt"
	"time"

	policyDomain "github.com/sundacoder/ZedID/internal/policy/domain"
	policyHTTP "github.com/sundacoder/ZedID/internal/policy/http"
	policyRepository "github.com/sundacoder/ZedID/internal/policy/repository"
	"github.com/sundacoder/ZedID/internal/policy/router"
	policyUsecase "github.com/sundacoder/ZedID/internal/policy/usecase"
)

// ModelRouter returns the router used for policy generation. The simulation
// router is used unless ModelRouterLive reports a usable endpoint and key.
func (c *Container) ModelRouter() (router.Router, error) {
	var err error
	c.modelRouterInit.Do(func() {
		c.modelRouter, err = c.initModelRouter()
		if err != nil {
			c.initErrors["modelRouter"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["modelRouter"]; exists {
		return nil, storedErr
	}
	return c.modelRouter, nil
}

// PolicyRepository returns the policy store, seeded with the demo policies when SeedDemoData is set.
func (c *Container) PolicyRepository() (*policyRepository.MemoryPolicyRepository, error) {
	var err error
	c.policyRepoInit.Do(func() {
		c.policyRepo, err = c.initPolicyRepository()
		if err != nil {
			c.initErrors["policyRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["policyRepo"]; exists {
		return nil, storedErr
	}
	return c.policyRepo, nil
}

// PolicyUseCase returns the policy lifecycle use case.
func (c *Container) PolicyUseCase() (policyUsecase.PolicyUseCase, error) {
	var err error
	c.policyUseCaseInit.Do(func() {
		c.policyUseCase, err = c.initPolicyUseCase()
		if err != nil {
			c.initErrors["policyUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["policyUseCase"]; exists {
		return nil, storedErr
	}
	return c.policyUseCase, nil
}

// DecisionUseCase returns the access decision use case.
func (c *Container) DecisionUseCase() (policyUsecase.DecisionUseCase, error) {
	var err error
	c.decisionUseCaseInit.Do(func() {
		c.decisionUseCase, err = c.initDecisionUseCase()
		if err != nil {
			c.initErrors["decisionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["decisionUseCase"]; exists {
		return nil, storedErr
	}
	return c.decisionUseCase, nil
}

// GeneratorUseCase returns the policy generation use case.
func (c *Container) GeneratorUseCase() (policyUsecase.GeneratorUseCase, error) {
	var err error
	c.generatorUseCaseInit.Do(func() {
		c.generatorUseCase, err = c.initGeneratorUseCase()
		if err != nil {
			c.initErrors["generatorUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["generatorUseCase"]; exists {
		return nil, storedErr
	}
	return c.generatorUseCase, nil
}

// PolicyHandler returns the policy HTTP handler.
func (c *Container) PolicyHandler() (*policyHTTP.PolicyHandler, error) {
	var err error
	c.policyHandlerInit.Do(func() {
		c.policyHandler, err = c.initPolicyHandler()
		if err != nil {
			c.initErrors["policyHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["policyHandler"]; exists {
		return nil, storedErr
	}
	return c.policyHandler, nil
}

// initModelRouter selects the simulation or live router. The live router is
// instrumented with the metrics provider and optionally wrapped in a circuit breaker.
func (c *Container) initModelRouter() (router.Router, error) {
	logger := c.Logger()

	if !c.config.ModelRouterLive() {
		logger.Info("model router running in simulation mode",
			"endpoint", c.config.ModelRouterEndpoint)
		return router.NewSimulationRouter(), nil
	}

	routerConfig := router.HTTPRouterConfig{
		Endpoint: c.config.ModelRouterEndpoint,
		APIKey:   c.config.ModelRouterAPIKey,
		Timeout:  c.config.ModelRouterTimeout,
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for model router: %w", err)
	}
	if provider != nil {
		routerConfig.MeterProvider = provider.MeterProvider()
	}

	var r router.Router = router.NewHTTPRouter(routerConfig, logger)
	if c.config.ModelRouterBreakerEnabled {
		r = router.NewBreakerRouter(r, router.BreakerConfig{
			MaxFailures: c.config.ModelRouterBreakerMaxFailures,
			OpenTimeout: c.config.ModelRouterBreakerOpenTimeout,
		}, logger)
	}

	logger.Info("model router running in live mode",
		"endpoint", c.config.ModelRouterEndpoint,
		"breaker_enabled", c.config.ModelRouterBreakerEnabled)
	return r, nil
}

// initPolicyRepository creates the policy repository and loads the demo policies.
func (c *Container) initPolicyRepository() (*policyRepository.MemoryPolicyRepository, error) {
	repo := policyRepository.NewMemoryPolicyRepository()
	if !c.config.SeedDemoData {
		return repo, nil
	}

	if err := repo.Seed(c.ctx, policyDomain.DemoPolicies(c.config.TrustDomain, time.Now().UTC())); err != nil {
		return nil, fmt.Errorf("failed to seed policies: %w", err)
	}
	return repo, nil
}

// initPolicyUseCase creates the policy use case with all its dependencies.
func (c *Container) initPolicyUseCase() (policyUsecase.PolicyUseCase, error) {
	policyRepo, err := c.PolicyRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get policy repository for policy use case: %w", err)
	}

	auditUseCase, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for policy use case: %w", err)
	}

	baseUseCase := policyUsecase.NewPolicyUseCase(
		policyRepo,
		auditUseCase,
		c.config.PolicyActivationRequiresValidation,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for policy use case: %w", err)
		}
		return policyUsecase.NewPolicyUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initDecisionUseCase creates the decision use case with all its dependencies.
func (c *Container) initDecisionUseCase() (policyUsecase.DecisionUseCase, error) {
	policyRepo, err := c.PolicyRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get policy repository for decision use case: %w", err)
	}

	identityUseCase, err := c.IdentityUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get identity use case for decision use case: %w", err)
	}

	auditUseCase, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for decision use case: %w", err)
	}

	baseUseCase := policyUsecase.NewDecisionUseCase(policyRepo, identityUseCase, auditUseCase, c.Logger())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for decision use case: %w", err)
		}
		return policyUsecase.NewDecisionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initGeneratorUseCase creates the generator use case with all its dependencies.
func (c *Container) initGeneratorUseCase() (policyUsecase.GeneratorUseCase, error) {
	policyRepo, err := c.PolicyRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get policy repository for generator use case: %w", err)
	}

	modelRouter, err := c.ModelRouter()
	if err != nil {
		return nil, fmt.Errorf("failed to get model router for generator use case: %w", err)
	}

	auditUseCase, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for generator use case: %w", err)
	}

	baseUseCase := policyUsecase.NewGeneratorUseCase(policyRepo, modelRouter, auditUseCase, c.Logger())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for generator use case: %w", err)
		}
		return policyUsecase.NewGeneratorUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initPolicyHandler creates the policy HTTP handler.
func (c *Container) initPolicyHandler() (*policyHTTP.PolicyHandler, error) {
	policyUseCase, err := c.PolicyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get policy use case for policy handler: %w", err)
	}

	decisionUseCase, err := c.DecisionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get decision use case for policy handler: %w", err)
	}

	generatorUseCase, err := c.GeneratorUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get generator use case for policy handler: %w", err)
	}

	return policyHTTP.NewPolicyHandler(policyUseCase, decisionUseCase, generatorUseCase, c.Logger()), nil
}
