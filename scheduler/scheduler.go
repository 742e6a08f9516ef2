package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/robfig/cron/v3"

	"github.com/avoronov/moviedbbackend/config"
	"github.com/avoronov/moviedbbackend/ingest"
)

// Jobs bundles the ingestion jobs driven by the daily schedule.
type Jobs struct {
	Movies      *ingest.MovieJob
	People      *ingest.PersonJob
	Companies   *ingest.CompanyJob
	Collections *ingest.CollectionJob
	Popularity  *ingest.PopularityJob
	Removed     *ingest.RemovedJob
}

// StepStatus records the outcome of the latest run of one schedule step.
type StepStatus struct {
	LastRun   time.Time `json:"last_run"`
	LastError string    `json:"last_error,omitempty"`
	Runs      int       `json:"runs"`
}

type step struct {
	name string
	run  func(ctx context.Context) error
}

// Scheduler owns the cron entry for the daily update sequence and a small
// HTTP surface reporting its progress.
type Scheduler struct {
	cfg  config.Config
	jobs Jobs
	cron *cron.Cron

	mu     sync.Mutex
	status map[string]StepStatus
}

func New(cfg config.Config, jobs Jobs) *Scheduler {
	return &Scheduler{
		cfg:    cfg,
		jobs:   jobs,
		cron:   cron.New(),
		status: make(map[string]StepStatus),
	}
}

// steps returns the daily sequence in its fixed order. Reference data and
// containers come first so movie ingestion resolves against fresh rows, then
// removal checks, then the denormalized aggregates.
func (s *Scheduler) steps() []step {
	batch := s.cfg.FetchBatchSize
	steps := []step{
		{"collections_daily_export", func(ctx context.Context) error {
			return s.jobs.Collections.Run(ctx, ingest.CollectionOptions{Operation: ingest.OpDailyExport, BatchSize: batch, Create: true})
		}},
		{"companies_daily_export", func(ctx context.Context) error {
			return s.jobs.Companies.Run(ctx, ingest.CompanyOptions{Operation: ingest.OpDailyExport, BatchSize: batch, Create: true})
		}},
		{"people_daily_export", func(ctx context.Context) error {
			return s.jobs.People.Run(ctx, ingest.PersonOptions{Operation: ingest.OpDailyExport, BatchSize: batch})
		}},
	}

	// widening change windows catch days a previous run missed
	for days := 1; days <= s.cfg.ChangedLookbackDays; days++ {
		d := days
		steps = append(steps, step{fmt.Sprintf("people_changed_%dd", d), func(ctx context.Context) error {
			return s.jobs.People.Run(ctx, ingest.PersonOptions{Operation: ingest.OpUpdateChanged, Days: d, BatchSize: batch})
		}})
	}

	steps = append(steps, step{"movies_daily_export", func(ctx context.Context) error {
		return s.jobs.Movies.Run(ctx, ingest.MovieOptions{Operation: ingest.OpDailyExport, BatchSize: batch})
	}})
	for days := 1; days <= s.cfg.ChangedLookbackDays; days++ {
		d := days
		steps = append(steps, step{fmt.Sprintf("movies_changed_%dd", d), func(ctx context.Context) error {
			return s.jobs.Movies.Run(ctx, ingest.MovieOptions{Operation: ingest.OpUpdateChanged, Days: d, BatchSize: batch})
		}})
	}

	for _, mediaType := range []string{"movie", "person", "company", "collection"} {
		mt := mediaType
		steps = append(steps, step{"removed_" + mt, func(ctx context.Context) error {
			return s.jobs.Removed.Run(ctx, mt, "")
		}})
	}

	steps = append(steps,
		step{"people_roles_count", func(ctx context.Context) error {
			return s.jobs.People.Run(ctx, ingest.PersonOptions{Operation: ingest.OpRolesCount})
		}},
		step{"companies_movie_count", func(ctx context.Context) error {
			return s.jobs.Companies.Run(ctx, ingest.CompanyOptions{Operation: ingest.OpMovieCount})
		}},
		step{"collections_movies_released", func(ctx context.Context) error {
			return s.jobs.Collections.Run(ctx, ingest.CollectionOptions{Operation: ingest.OpMoviesReleased})
		}},
		step{"popularity_movie", func(ctx context.Context) error {
			return s.jobs.Popularity.Run(ctx, "movie", "", s.cfg.PopularityLimit)
		}},
		step{"popularity_person", func(ctx context.Context) error {
			return s.jobs.Popularity.Run(ctx, "person", "", s.cfg.PopularityLimit)
		}},
		step{"collections_avg_popularity", func(ctx context.Context) error {
			return s.jobs.Collections.Run(ctx, ingest.CollectionOptions{Operation: ingest.OpAvgPopularity})
		}},
	)
	return steps
}

func (s *Scheduler) runDailyUpdate(ctx context.Context) {
	log.Println("scheduler: daily update started")
	for _, st := range s.steps() {
		if ctx.Err() != nil {
			log.Printf("scheduler: daily update aborted before %s: %v", st.name, ctx.Err())
			return
		}
		err := st.run(ctx)
		s.record(st.name, err)
		if err != nil {
			// one failed step must not starve the rest of the sequence
			log.Printf("scheduler: step %s failed: %v", st.name, err)
		}
	}
	log.Println("scheduler: daily update finished")
}

func (s *Scheduler) record(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.status[name]
	st.LastRun = time.Now().UTC()
	st.Runs++
	st.LastError = ""
	if err != nil {
		st.LastError = err.Error()
	}
	s.status[name] = st
}

// Run blocks until ctx is cancelled, driving the cron schedule and the
// status HTTP server.
func (s *Scheduler) Run(ctx context.Context) error {
	wrapped := cron.NewChain(cron.SkipIfStillRunning(cron.DefaultLogger)).Then(cron.FuncJob(func() {
		s.runDailyUpdate(ctx)
	}))
	if _, err := s.cron.AddJob(s.cfg.DailyUpdateSpec, wrapped); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", s.cfg.DailyUpdateSpec, err)
	}
	s.cron.Start()
	defer s.cron.Stop()

	server := &http.Server{
		Addr:    s.cfg.SchedulerAddr,
		Handler: s.router(),
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("scheduler: listening on %s, daily update at %q", s.cfg.SchedulerAddr, s.cfg.DailyUpdateSpec)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func (s *Scheduler) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/status", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		snapshot := make(map[string]StepStatus, len(s.status))
		for name, st := range s.status {
			snapshot[name] = st
		}
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"schedule": s.cfg.DailyUpdateSpec,
			"steps":    snapshot,
		})
	})
	return r
}
