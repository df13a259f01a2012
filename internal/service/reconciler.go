package service

import (
	"context"
	"time"

	"cloverpass/internal/config"
	"cloverpass/internal/model"
	"cloverpass/internal/repository"

	"go.uber.org/zap"
)

// ReconcilerService repairs identities left half-provisioned by a failed
// account-then-profile write: it either completes the profile or deletes the
// orphaned account.
type ReconcilerService struct {
	cfg      config.ReconcilerConfig
	tasks    repository.IReconciliationRepository
	accounts repository.IAccountRepository
	profiles repository.IProfileRepository
	log      *zap.SugaredLogger
}

func NewReconcilerService(cfg config.ReconcilerConfig, tasks repository.IReconciliationRepository, accounts repository.IAccountRepository, profiles repository.IProfileRepository, log *zap.SugaredLogger) *ReconcilerService {
	return &ReconcilerService{cfg: cfg, tasks: tasks, accounts: accounts, profiles: profiles, log: log}
}

// Run drains the queue on a fixed interval until ctx is cancelled.
func (s *ReconcilerService) Run(ctx context.Context) {
	intervalSec := s.cfg.IntervalSec
	if intervalSec <= 0 {
		intervalSec = config.DefaultReconcilerIntervalSec
	}
	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Drain(ctx); err != nil {
				s.log.Errorw("reconciliation sweep failed", "error", err)
			}
		}
	}
}

// Drain processes the currently pending tasks once.
func (s *ReconcilerService) Drain(ctx context.Context) error {
	tasks, err := s.tasks.ListPending(ctx, 50)
	if err != nil {
		return err
	}
	for _, task := range tasks {
		if err := s.process(ctx, task); err != nil {
			failed := task.Attempts+1 >= s.cfg.MaxAttempts
			if merr := s.tasks.MarkAttempt(ctx, task.ID, err.Error(), failed); merr != nil {
				s.log.Errorw("marking reconciliation attempt failed", "taskId", task.ID.Hex(), "error", merr)
			}
			if failed {
				s.log.Errorw("reconciliation task exhausted attempts",
					"taskId", task.ID.Hex(), "uid", task.UID, "action", task.Action)
			}
			continue
		}
		if err := s.tasks.MarkDone(ctx, task.ID); err != nil {
			s.log.Errorw("marking reconciliation done failed", "taskId", task.ID.Hex(), "error", err)
		}
	}
	return nil
}

func (s *ReconcilerService) process(ctx context.Context, task *model.ReconciliationTask) error {
	switch task.Action {
	case model.ReconcileCompleteProfile:
		existing, err := s.profiles.FindByUID(ctx, task.UID)
		if err != nil {
			return err
		}
		if existing != nil {
			// Someone repaired it already.
			return nil
		}
		if task.Profile == nil {
			// Without a payload the profile cannot be rebuilt; fall back
			// to removing the orphan.
			return s.accounts.Delete(ctx, task.UID)
		}
		_, err = s.profiles.Create(ctx, task.Profile)
		if err == nil {
			s.log.Infow("completed profile for orphaned account", "uid", task.UID)
		}
		return err
	case model.ReconcileDeleteAccount:
		if err := s.accounts.Delete(ctx, task.UID); err != nil {
			return err
		}
		s.log.Infow("deleted orphaned account", "uid", task.UID)
		return nil
	default:
		s.log.Warnw("unknown reconciliation action", "action", task.Action, "taskId", task.ID.Hex())
		return nil
	}
}
