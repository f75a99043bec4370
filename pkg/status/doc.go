/*
Package status tracks deployment progress and renders it for humans.

	            +-------------+
	            |   Status    |
	            | (Tracking)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Jobs    |           |  Logs   |
	| (States)  |           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Tracks every deployment job from queued to finished
- Counts progress across parallel workers
- Renders job events in a user-friendly format
- Keeps presentation out of the deployment engine

🔄 Flow:
1. Begin registers the full job matrix as queued
2. Workers report starts and results as they happen
3. The manager advances per-job state under its lock
4. Each event is logged through the configured Formatter

🤝 Interfaces:
- deploy.Reporter: the engine-side contract Manager satisfies
- Formatter: formats job events and progress messages

📝 Design Philosophy:
The deployment engine knows nothing about terminals. It emits job
lifecycle events; this package turns them into readable output and a
queryable snapshot of the run. All state lives behind one mutex, so
reporters can be called from any worker goroutine.

🚧 TODOs:
1. JSON event output for CI log collectors

🔍 Example:

	manager := status.New(&logger)
	manager.Begin(jobs)

	// handed to the executor as its Reporter
	results, err := executor.Run(ctx, jobs)

	processed, total := manager.Progress()
*/
package status
