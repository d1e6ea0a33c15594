package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/availreport/config"
	"github.com/kilianp07/availreport/core/availability"
	"github.com/kilianp07/availreport/core/cache"
	"github.com/kilianp07/availreport/core/document"
	coremetrics "github.com/kilianp07/availreport/core/metrics"
	"github.com/kilianp07/availreport/core/model"
	"github.com/kilianp07/availreport/core/report"
	"github.com/kilianp07/availreport/core/schedule"
	"github.com/kilianp07/availreport/infra/logger"

	_ "github.com/kilianp07/availreport/app/plugins"
)

// Document kinds, used as cache key prefixes and metric labels.
const (
	KindSchedule     = "schedule"
	KindAvailability = "availability"
)

// Result is one generated report.
type Result struct {
	ID          uuid.UUID
	GeneratedAt time.Time
	Report      report.Report
	// Decoders maps each document kind to the decoder that read it, or
	// "cache" when the parse was memoized.
	Decoders map[string]string
}

// Service runs the report pipeline: decode both exports, normalize, build.
// It is safe for concurrent use.
type Service struct {
	schedChain  document.TableChain
	availChain  document.DocumentChain
	schedOpts   schedule.Options
	availOpts   availability.Options
	engine      report.Options
	fingerprint string
	store       cache.Store
	sink        coremetrics.ReportSink
	log         logger.Logger
	now         func() time.Time
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	loc, err := cfg.Engine.Location()
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}
	elite, err := cfg.Schedule.Elite()
	if err != nil {
		return nil, err
	}
	schedChain, err := document.NewTableChain(cfg.Schedule.Decoders)
	if err != nil {
		return nil, fmt.Errorf("schedule decoders: %w", err)
	}
	availChain, err := document.NewDocumentChain(cfg.Availability.Decoders)
	if err != nil {
		return nil, fmt.Errorf("availability decoders: %w", err)
	}
	store, err := cache.NewStore(cfg.Cache.Module())
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	sink, err := coremetrics.NewReportSink(cfg.Metrics.SinkModules())
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	svc := &Service{
		schedChain:  schedChain,
		availChain:  availChain,
		schedOpts:   schedule.Options{Location: loc, Elite: elite, Logger: logger.New("schedule")},
		availOpts:   availability.Options{Location: loc, Logger: logger.New("availability")},
		engine:      cfg.Engine.Options(),
		fingerprint: fingerprint(loc, elite, cfg),
		store:       store,
		sink:        sink,
		log:         logg,
		now:         time.Now,
	}
	logg.Infof("service ready: cache=%s schedule decoders=%d availability decoders=%d",
		cfg.Cache.Backend, len(schedChain), len(availChain))
	return svc, nil
}

// fingerprint identifies the settings a cached parse depends on.
func fingerprint(loc *time.Location, elite *regexp.Regexp, cfg *config.Config) string {
	pattern := ""
	if elite != nil {
		pattern = elite.String()
	}
	return fmt.Sprintf("%s|%s|%v|%v", loc, pattern, cfg.Schedule.Decoders, cfg.Availability.Decoders)
}

// Generate builds the report of one week from the raw availability and
// schedule exports. Format errors are returned as *schedule.ScheduleFormatError
// or *availability.AvailabilityFormatError.
func (s *Service) Generate(ctx context.Context, availRaw, schedRaw []byte) (Result, error) {
	res := Result{ID: uuid.New(), GeneratedAt: s.now(), Decoders: map[string]string{}}
	ev := coremetrics.ReportEvent{ID: res.ID.String(), Time: res.GeneratedAt, Decoders: res.Decoders}
	defer func() {
		ev.Duration = s.now().Sub(res.GeneratedAt)
		if err := s.sink.RecordReport(ev); err != nil {
			s.log.Warnf("report %s: record metrics: %v", res.ID, err)
		}
	}()

	sched, err := s.loadSchedule(ctx, schedRaw)
	if err != nil {
		ev.Status = status(err)
		s.log.Errorf("report %s: %v", res.ID, err)
		return res, err
	}
	res.Decoders[KindSchedule] = sched.source
	avail, err := s.loadAvailability(ctx, availRaw)
	if err != nil {
		ev.Status = status(err)
		s.log.Errorf("report %s: %v", res.ID, err)
		return res, err
	}
	res.Decoders[KindAvailability] = avail.source
	if err := ctx.Err(); err != nil {
		ev.Status = coremetrics.StatusInternalError
		return res, err
	}

	res.Report = report.Build(avail.Result, sched.Result, s.engine)
	for _, w := range res.Report.Warnings {
		s.log.Warnf("report %s: %s", res.ID, w)
	}
	ev.Status = coremetrics.StatusOK
	ev.People = countPeople(avail.Availability)
	ev.Slots = len(res.Report.Slots)
	ev.Pairings = len(res.Report.Pairings)
	s.log.Infof("report %s: %d people, %d slots, %d pairings", res.ID, ev.People, ev.Slots, ev.Pairings)
	return res, nil
}

func status(err error) string {
	var se *schedule.ScheduleFormatError
	var ae *availability.AvailabilityFormatError
	switch {
	case errors.As(err, &se):
		return coremetrics.StatusScheduleError
	case errors.As(err, &ae):
		return coremetrics.StatusAvailabilityError
	default:
		return coremetrics.StatusInternalError
	}
}

type loadedSchedule struct {
	schedule.Result
	source string
}

type loadedAvailability struct {
	availability.Result
	source string
}

const sourceCache = "cache"

func (s *Service) loadSchedule(ctx context.Context, raw []byte) (loadedSchedule, error) {
	key := cache.Key(KindSchedule, s.fingerprint, raw)
	var res schedule.Result
	if s.cached(ctx, key, &res) {
		return loadedSchedule{res, sourceCache}, nil
	}
	res, err := schedule.Load(raw, s.schedChain, s.schedOpts)
	if err != nil {
		return loadedSchedule{}, err
	}
	s.remember(ctx, key, res)
	return loadedSchedule{res, res.Format}, nil
}

func (s *Service) loadAvailability(ctx context.Context, raw []byte) (loadedAvailability, error) {
	key := cache.Key(KindAvailability, s.fingerprint, raw)
	var res availability.Result
	if s.cached(ctx, key, &res) {
		return loadedAvailability{res, sourceCache}, nil
	}
	res, err := availability.Load(raw, s.availChain, s.availOpts)
	if err != nil {
		return loadedAvailability{}, err
	}
	s.remember(ctx, key, res)
	return loadedAvailability{res, res.Format}, nil
}

// cached decodes the value stored under key into out. Cache failures are
// logged and treated as misses.
func (s *Service) cached(ctx context.Context, key string, out any) bool {
	b, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.log.Warnf("cache get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(b, out); err != nil {
		s.log.Warnf("cache decode %s: %v", key, err)
		return false
	}
	s.log.Debugw("cache hit", map[string]any{"key": key})
	return true
}

func (s *Service) remember(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.log.Warnf("cache encode %s: %v", key, err)
		return
	}
	if err := s.store.Put(ctx, key, b); err != nil {
		s.log.Warnf("cache put %s: %v", key, err)
	}
}

// Close releases the cache.
func (s *Service) Close() error { return s.store.Close() }

func countPeople(avail []model.DeclaredAvailability) int {
	seen := make(map[model.PersonKey]struct{}, len(avail))
	for _, a := range avail {
		seen[a.Person] = struct{}{}
	}
	return len(seen)
}
