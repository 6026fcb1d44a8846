package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/gymbrah/GymBrah-backend/internal/config"
	"github.com/gymbrah/GymBrah-backend/internal/database"
	"github.com/gymbrah/GymBrah-backend/internal/services"
	"github.com/gymbrah/GymBrah-backend/internal/utils"
	"github.com/robfig/cron/v3"
)

// Scheduler exécute les tâches planifiées (rappels de streak)
type Scheduler struct {
	cron   *cron.Cron
	cfg    *config.Config
	mailer *services.Mailer
}

func NewScheduler(cfg *config.Config, mailer *services.Mailer) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		cfg:    cfg,
		mailer: mailer,
	}
}

// Start planifie les jobs et démarre le scheduler
func (s *Scheduler) Start() error {
	// Toutes les heures : rappels aux athlètes dont le streak expire bientôt
	if _, err := s.cron.AddFunc("@hourly", s.SendStreakReminders); err != nil {
		return fmt.Errorf("could not schedule streak reminders: %w", err)
	}

	s.cron.Start()
	utils.LogInfo("scheduler started (streak reminders hourly)")
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// SendStreakReminders prévient les athlètes dont le streak est sur le point
// de casser : dernière activité il y a 20 à 24h, streak significatif, et
// pas déjà prévenu depuis la dernière activité.
func (s *Scheduler) SendStreakReminders() {
	if !s.mailer.Enabled() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rows, err := database.DB.Query(ctx, `
		SELECT u.id, u.name, u.email, g.streak_days
		FROM gamification_records g
		JOIN users u ON u.id = g.user_id
		WHERE u.deleted_at IS NULL
			AND g.streak_days >= $1
			AND g.last_activity_date BETWEEN NOW() - INTERVAL '24 hours' AND NOW() - INTERVAL '20 hours'
			AND (g.streak_reminder_sent_at IS NULL OR g.streak_reminder_sent_at < g.last_activity_date)`,
		s.cfg.StreakReminderMinDays,
	)
	if err != nil {
		utils.LogError("streak reminder query failed: %v", err)
		return
	}
	defer rows.Close()

	type reminder struct {
		userID string
		name   string
		email  string
		streak int
	}
	var reminders []reminder
	for rows.Next() {
		var rem reminder
		if err := rows.Scan(&rem.userID, &rem.name, &rem.email, &rem.streak); err != nil {
			utils.LogError("streak reminder scan failed: %v", err)
			return
		}
		reminders = append(reminders, rem)
	}

	for _, rem := range reminders {
		subject := "Ton streak expire bientôt !"
		body := fmt.Sprintf(
			"Salut %s,\n\nTu as un streak de %d jours sur GymBrah. Il te reste moins de 4 heures pour faire une séance et le garder en vie.\n\nÀ tout de suite,\nL'équipe GymBrah",
			rem.name, rem.streak,
		)

		if err := s.mailer.Send(rem.email, subject, body); err != nil {
			utils.LogError("could not send streak reminder to %s: %v", rem.email, err)
			continue
		}

		_, err := database.DB.Exec(ctx,
			`UPDATE gamification_records SET streak_reminder_sent_at=NOW() WHERE user_id=$1`,
			rem.userID,
		)
		if err != nil {
			utils.LogError("could not mark reminder sent for user %s: %v", rem.userID, err)
		}
	}

	if len(reminders) > 0 {
		utils.LogInfo("sent %d streak reminders", len(reminders))
	}
}
