// Package core contains the business logic for the Affiliate Tracker API.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (Affiliate, PublicationRecord, SearchJob)
// - sources: Search adapters for news and academic publication sources
// - aggregate: Deduplication and recency filtering of collected records
// - scoring: Recommendation scoring and action assignment
// - report: Tabular and narrative report artifact generation
// - jobs: Search job store and the orchestrator driving the pipeline
// - subscribers: Email subscriber registry for monthly reports
// - chat: Rule-based dashboard assistant
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies in domain types
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "affiliate-tracker-api/core/jobs"
//	    "affiliate-tracker-api/core/interfaces"
//	)
//
//	// Create dependencies
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	// Wire the pipeline and trigger a search
//	store := jobs.NewStore()
//	orchestrator := jobs.NewOrchestrator(jobs.Config{Store: store /* ... */})
//	id := orchestrator.Trigger()
package core
