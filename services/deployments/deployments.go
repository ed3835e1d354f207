package deployments

import (
	"context"
	"fmt"
	"log"

	"deploybot/clients"
	"deploybot/models"
	"deploybot/services"
)

// DeploymentsService orchestrates one or more sequential deployment triggers,
// reporting each attempt's outcome to the chat as it happens
type DeploymentsService struct {
	vercelClient clients.VercelClient
	notifier     services.NotifierService
}

func NewDeploymentsService(
	vercelClient clients.VercelClient,
	notifier services.NotifierService,
) *DeploymentsService {
	return &DeploymentsService{
		vercelClient: vercelClient,
		notifier:     notifier,
	}
}

// Run triggers count deployments strictly in order. Each attempt fully
// completes, including its notification, before the next starts, and a failed
// attempt never aborts the remaining ones. Returns one result per attempt.
func (s *DeploymentsService) Run(ctx context.Context, chatID int64, count int) []models.DeploymentAttemptResult {
	log.Printf("📋 Starting to run %d deployment(s) for chat: %d", count, chatID)

	s.notifier.Send(ctx, chatID, fmt.Sprintf("Starting %d deployment(s)...", count))

	results := make([]models.DeploymentAttemptResult, 0, count)
	for i := 1; i <= count; i++ {
		result := s.triggerDeployment(ctx, i)
		results = append(results, result)

		if result.OK {
			s.notifier.Send(ctx, chatID, fmt.Sprintf("Deployment %d successful!\nURL: https://%s", i, result.URL))
		} else {
			s.notifier.Send(ctx, chatID, fmt.Sprintf("Deployment %d failed: %s", i, result.ErrorMessage))
		}
	}

	s.notifier.Send(ctx, chatID, "All deployments completed.")

	log.Printf("📋 Completed successfully - ran %d deployment(s) for chat: %d", count, chatID)
	return results
}

// triggerDeployment performs a single deployment attempt. Errors are contained
// here so one bad attempt cannot abort the loop in Run.
func (s *DeploymentsService) triggerDeployment(ctx context.Context, index int) models.DeploymentAttemptResult {
	log.Printf("📋 Triggering deployment %d...", index)

	result, err := s.vercelClient.CreateDeployment(ctx)
	if err != nil {
		log.Printf("❌ Deployment %d failed with unexpected error: %v", index, err)
		return models.DeploymentAttemptResult{
			Index:        index,
			OK:           false,
			ErrorMessage: fmt.Sprintf("unexpected error: %v", err),
		}
	}

	if !result.OK {
		log.Printf("❌ Deployment %d rejected by API: %s", index, result.ErrorMessage)
		return models.DeploymentAttemptResult{
			Index:        index,
			OK:           false,
			ErrorMessage: result.ErrorMessage,
		}
	}

	log.Printf("✅ Deployment %d triggered, URL: %s", index, result.URL)
	return models.DeploymentAttemptResult{
		Index: index,
		OK:    true,
		URL:   result.URL,
	}
}
