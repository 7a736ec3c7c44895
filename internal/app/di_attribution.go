package app

import (
	"fmt"

	attributionRepository "github.com/allisson/analytics-relay/internal/attribution/repository"
	attributionUseCase "github.com/allisson/analytics-relay/internal/attribution/usecase"
)

// AttributionRepository returns the order attribution repository instance.
func (c *Container) AttributionRepository() (attributionUseCase.AttributionRepository, error) {
	c.attributionRepoInit.Do(func() {
		repo, err := c.initAttributionRepository()
		if err != nil {
			c.initErrors["attributionRepo"] = err
			return
		}
		c.attributionRepo = repo
	})
	if storedErr, exists := c.initErrors["attributionRepo"]; exists {
		return nil, storedErr
	}
	return c.attributionRepo, nil
}

// AttributionUseCase returns the order attribution use case instance.
func (c *Container) AttributionUseCase() (attributionUseCase.AttributionUseCase, error) {
	c.attributionUCInit.Do(func() {
		useCase, err := c.initAttributionUseCase()
		if err != nil {
			c.initErrors["attributionUseCase"] = err
			return
		}
		c.attributionUC = useCase
	})
	if storedErr, exists := c.initErrors["attributionUseCase"]; exists {
		return nil, storedErr
	}
	return c.attributionUC, nil
}

// initAttributionRepository creates the attribution repository instance.
func (c *Container) initAttributionRepository() (attributionUseCase.AttributionRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for attribution repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return attributionRepository.NewMySQLAttributionRepository(db), nil
	case "postgres":
		return attributionRepository.NewPostgreSQLAttributionRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAttributionUseCase creates the attribution use case with all its dependencies.
func (c *Container) initAttributionUseCase() (attributionUseCase.AttributionUseCase, error) {
	repo, err := c.AttributionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get attribution repository for attribution use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for attribution use case: %w", err)
	}

	useCase := attributionUseCase.NewAttributionUseCase(c.config, repo, txManager, c.Logger())

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for attribution use case: %w", err)
	}
	if businessMetrics != nil {
		useCase = attributionUseCase.NewMetricsDecorator(useCase, businessMetrics)
	}

	return useCase, nil
}
