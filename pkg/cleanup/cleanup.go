// Package cleanup collects shutdown jobs registered by long-lived resources,
// mostly the pgx pools behind the repositories, and runs them when the API
// process exits.
package cleanup

import "log/slog"

// Job is a named piece of shutdown work.
type Job struct {
	Name string
	F    func() error
}

var jobs []*Job

// Register queues a job. Jobs run in registration order.
func Register(j *Job) {
	jobs = append(jobs, j)
}

// CleanUp runs every registered job. A failed job is logged and does not stop
// the rest.
func CleanUp() {
	for _, j := range jobs {
		slog.Info("shutdown job started", slog.String("job", j.Name))
		if err := j.F(); err != nil {
			slog.Error("shutdown job failed",
				slog.String("job", j.Name),
				slog.String("error", err.Error()),
			)
			continue
		}
		slog.Info("shutdown job finished", slog.String("job", j.Name))
	}
}
