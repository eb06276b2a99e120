// Package jobs provides scheduled background tasks for the dispatch service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// SelfTestJob - periodically runs a diagnostic dispatch (no payload, generated
// "test_" order) to check the path to the warehouse nodes end to end.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(orch, "@every 15m", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// An empty schedule disables the self-test job.
package jobs
