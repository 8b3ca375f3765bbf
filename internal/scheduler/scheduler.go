package scheduler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strings"
	"sync"

	"HoyoSentinel/internal/baseline"
	"HoyoSentinel/internal/calculator"
	"HoyoSentinel/internal/detector"
	"HoyoSentinel/internal/hoyolab"
	"HoyoSentinel/internal/model"
	"HoyoSentinel/internal/notifier"
	"HoyoSentinel/internal/recorder"

	"github.com/robfig/cron/v3"
)

const recentEventsLimit = 5

// Sender delivers chat messages; *notifier.TelegramNotifier satisfies it.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Options wires the scheduler's collaborators. Notifier may be nil.
type Options struct {
	Fetcher        hoyolab.Fetcher
	Users          []hoyolab.User
	Baselines      baseline.Store
	Dispatcher     *detector.Dispatcher
	Recorder       recorder.Recorder
	Notifier       Sender
	UsageThreshold float64
}

// Scheduler manages the poll and reward cron tasks.
type Scheduler struct {
	Cron       *cron.Cron
	Fetcher    hoyolab.Fetcher
	Users      []hoyolab.User
	Baselines  baseline.Store
	Detector   *detector.Detector
	Dispatcher *detector.Dispatcher
	Recorder   recorder.Recorder
	Notifier   Sender
	Threshold  float64
	Ctx        context.Context

	mu    sync.Mutex
	last  map[string]model.RecoveryState
	locks map[string]*sync.Mutex
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, opts Options) *Scheduler {
	threshold := opts.UsageThreshold
	if threshold <= 0 {
		threshold = calculator.DefaultUsageThreshold
	}
	rec := opts.Recorder
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	disp := opts.Dispatcher
	if disp == nil {
		disp = detector.NewDispatcher()
	}
	return &Scheduler{
		Cron: cron.New(cron.WithSeconds(), cron.WithChain(
			cron.Recover(cron.DefaultLogger),
			cron.SkipIfStillRunning(cron.DefaultLogger),
		)),
		Fetcher:    opts.Fetcher,
		Users:      opts.Users,
		Baselines:  opts.Baselines,
		Detector:   detector.New(),
		Dispatcher: disp,
		Recorder:   rec,
		Notifier:   opts.Notifier,
		Threshold:  threshold,
		Ctx:        ctx,
		last:       make(map[string]model.RecoveryState),
		locks:      make(map[string]*sync.Mutex),
	}
}

// RegisterAll registers the poll task and, if rewardCron is set, the daily
// check-in task.
func (s *Scheduler) RegisterAll(pollCron, rewardCron string) error {
	if _, err := s.Cron.AddFunc(pollCron, s.pollTask); err != nil {
		return fmt.Errorf("register poll task: %w", err)
	}
	if rewardCron != "" {
		if _, err := s.Cron.AddFunc(rewardCron, s.rewardTask); err != nil {
			return fmt.Errorf("register reward task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Printf("[INFO] scheduler started, watching %d account(s)", len(s.Users))
}

// Stop stops the cron scheduler and waits for running tasks.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunPollNow executes the poll task immediately (RUN_ON_START).
func (s *Scheduler) RunPollNow() {
	s.pollTask()
}

func (s *Scheduler) pollTask() {
	for _, u := range s.Users {
		if s.Ctx.Err() != nil {
			return
		}
		if !hoyolab.SupportsRecovery(u.Game) {
			continue
		}
		if _, err := s.PollAccount(u); err != nil {
			log.Printf("[ERROR] poll %s: %v", u.Key(), err)
		}
	}
}

// accountLock returns the mutex serializing polls of one account.
func (s *Scheduler) accountLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// PollAccount runs one fetch, detect, dispatch, save and record cycle for
// user. Cycles of the same account never overlap, so each baseline is read
// and replaced by exactly one detection.
func (s *Scheduler) PollAccount(u hoyolab.User) (model.RecoveryState, error) {
	key := u.Key()
	lock := s.accountLock(key)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.Fetcher.FetchRecoveryState(s.Ctx, u)
	if err != nil {
		return model.RecoveryState{}, fmt.Errorf("fetch: %w", err)
	}

	var previous *int
	entry, ok, err := s.Baselines.Load(s.Ctx, key)
	if err != nil {
		log.Printf("[WARN] load baseline %s: %v, treating as first poll", key, err)
	} else if ok {
		amount := entry.Amount
		previous = &amount
	}

	events := s.Detector.Detect(state, previous)
	if err := s.Dispatcher.Publish(key, events); err != nil {
		log.Printf("[WARN] dispatch %s: %v", key, err)
	}

	if err := s.Baselines.Save(s.Ctx, key, baseline.NewEntry(state)); err != nil {
		log.Printf("[ERROR] save baseline %s: %v", key, err)
	}
	if err := s.Recorder.RecordSnapshot(key, state); err != nil {
		log.Printf("[ERROR] record snapshot %s: %v", key, err)
	}

	s.mu.Lock()
	s.last[key] = state
	s.mu.Unlock()

	log.Printf("[INFO] %s: %d/%d, %d event(s)", key, state.CurrentAmount, state.MaxAmount, len(events))
	return state, nil
}

// LastState returns the most recent snapshot polled for key.
func (s *Scheduler) LastState(key string) (model.RecoveryState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.last[key]
	return st, ok
}

func (s *Scheduler) rewardTask() {
	log.Println("[INFO] running daily reward task")
	for _, msg := range s.claimAll(false) {
		s.trySend(msg)
	}
}

// claimAll checks in once per distinct game and returns the chat messages to
// report. Already-claimed results are only reported when verbose.
func (s *Scheduler) claimAll(verbose bool) []string {
	var msgs []string
	seen := make(map[model.Game]bool)
	for _, u := range s.Users {
		if seen[u.Game] {
			continue
		}
		seen[u.Game] = true

		res, err := s.Fetcher.ClaimDailyReward(s.Ctx, u.Game)
		claim := &recorder.ClaimRecord{Account: u.Key(), Game: u.Game}
		switch {
		case err == nil:
			claim.Status, claim.Reward, claim.Amount = "CLAIMED", res.Name, res.Amount
			log.Printf("[INFO] %s check-in: %s x%d", u.Game, res.Name, res.Amount)
		case errors.Is(err, hoyolab.ErrAlreadyClaimed):
			claim.Status = "ALREADY_CLAIMED"
			log.Printf("[INFO] %s check-in already claimed today", u.Game)
		case errors.Is(err, hoyolab.ErrCaptcha):
			claim.Status, claim.Note = "CAPTCHA", err.Error()
			log.Printf("[WARN] %s check-in blocked by captcha", u.Game)
		default:
			claim.Status, claim.Note = "FAILED", err.Error()
			log.Printf("[ERROR] %s check-in: %v", u.Game, err)
		}
		if rerr := s.Recorder.RecordClaim(claim); rerr != nil {
			log.Printf("[ERROR] record claim: %v", rerr)
		}
		if claim.Status != "ALREADY_CLAIMED" || verbose {
			msgs = append(msgs, notifier.FormatClaim(string(u.Game), res, err))
		}
	}
	return msgs
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	// group chats append the bot name: /stamina@HoyoSentinelBot
	var cmd string
	if fields := strings.Fields(command); len(fields) > 0 {
		cmd, _, _ = strings.Cut(fields[0], "@")
	}
	switch cmd {
	case "/stamina", "/status":
		return s.staminaReport()
	case "/events":
		return s.eventsReport()
	case "/claim":
		msgs := s.claimAll(true)
		if len(msgs) == 0 {
			return "No accounts configured"
		}
		return strings.Join(msgs, "\n")
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) staminaReport() string {
	if len(s.Users) == 0 {
		return "No accounts configured"
	}
	var parts []string
	for _, u := range s.Users {
		if !hoyolab.SupportsRecovery(u.Game) {
			continue
		}
		key := u.Key()
		state, err := s.PollAccount(u)
		if err != nil {
			log.Printf("[WARN] /stamina poll %s: %v", key, err)
			cached, ok := s.LastState(key)
			if !ok {
				parts = append(parts, fmt.Sprintf("<b>%s</b>\n❌ %s", key, html.EscapeString(err.Error())))
				continue
			}
			state = cached
		}
		parts = append(parts, notifier.FormatSummary(key, calculator.Summarize(state), calculator.Advise(state, s.Threshold)))
	}
	if len(parts) == 0 {
		return "No accounts with a recovery counter"
	}
	return strings.Join(parts, "\n")
}

func (s *Scheduler) eventsReport() string {
	var parts []string
	for _, u := range s.Users {
		recs, err := s.Recorder.RecentEvents(u.Key(), recentEventsLimit)
		if err != nil {
			log.Printf("[ERROR] recent events %s: %v", u.Key(), err)
			continue
		}
		parts = append(parts, notifier.FormatEventHistory(u.Key(), recs))
	}
	if len(parts) == 0 {
		return "No event history"
	}
	return strings.Join(parts, "\n")
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
