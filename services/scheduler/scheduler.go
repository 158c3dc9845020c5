package scheduler

import (
	"elearn/logger"
	"elearn/models"
	"elearn/services/learning"
	"elearn/services/payment"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const (
	ExpirySpec  = "@every 15m"
	ReissueSpec = "@hourly"
)

// CertificateNotifier is told about certificates issued by the re-issue job.
type CertificateNotifier func(cert models.Certificate)

type Scheduler struct {
	db         *gorm.DB
	pendingTTL time.Duration
	notify     CertificateNotifier
	cron       *cron.Cron
}

func New(db *gorm.DB, pendingTTL time.Duration, notify CertificateNotifier) *Scheduler {
	return &Scheduler{
		db:         db,
		pendingTTL: pendingTTL,
		notify:     notify,
		cron:       cron.New(),
	}
}

// Start registers the background jobs and starts the cron runner.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(ExpirySpec, func() { s.ExpirePendingOrders() }); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(ReissueSpec, func() { s.ReissueCertificates() }); err != nil {
		return err
	}
	s.cron.Start()
	logger.Log.Info("scheduler started", "expiry", ExpirySpec, "reissue", ReissueSpec, "pendingTTL", s.pendingTTL.String())
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Log.Info("scheduler stopped")
}

// ExpirePendingOrders cancels orders that never received a confirmation.
func (s *Scheduler) ExpirePendingOrders() int64 {
	n, err := payment.ExpireStaleOrders(s.db, s.pendingTTL)
	if err != nil {
		logger.Log.Error("expiring pending orders failed", "error", err)
		return 0
	}
	if n > 0 {
		logger.Log.Info("expired pending orders", "count", n)
	}
	return n
}

// ReissueCertificates issues certificates that a failed completion left behind.
func (s *Scheduler) ReissueCertificates() []models.Certificate {
	issued, err := learning.ReissueMissingCertificates(s.db)
	if err != nil {
		logger.Log.Error("certificate re-issue failed", "error", err)
		return nil
	}
	if len(issued) > 0 {
		logger.Log.Info("re-issued certificates", "count", len(issued))
	}
	if s.notify != nil {
		for _, cert := range issued {
			s.notify(cert)
		}
	}
	return issued
}
