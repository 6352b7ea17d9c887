package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/clubevents/config"
	"github.com/oksasatya/clubevents/internal/application"
	"github.com/oksasatya/clubevents/internal/domain/entity"
	repo "github.com/oksasatya/clubevents/internal/domain/repository"
	pginfra "github.com/oksasatya/clubevents/internal/infrastructure/postgres"
	"github.com/oksasatya/clubevents/pkg/helpers"
)

const (
	sampleClubEmail    = "chess@clubevents.local"
	sampleClubPassword = "chess123"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	users := pginfra.NewUserRepository(pool)
	clubs := pginfra.NewClubRepository(pool)
	events := pginfra.NewEventRepository(pool)
	regs := pginfra.NewRegistrationRepository(pool)

	admin, err := upsertSuperAdmin(ctx, users, cfg.SeedSuperAdminEmail, cfg.SeedSuperAdminPassword)
	if err != nil {
		log.Fatalf("failed to seed superadmin: %v", err)
	}
	helpers.LogInfo(logger, "superadmin ready", logrus.Fields{"id": admin.ID, "email": admin.Email})

	clubSvc := application.NewClubService(clubs, users, logger)
	club, err := clubSvc.CreateClub(ctx, admin, application.CreateClubInput{
		Name:        "Chess Club",
		Description: "<p>Weekly casual and rated games for every level.</p>",
		Category:    "Games",
		Email:       sampleClubEmail,
		Password:    sampleClubPassword,
	})
	if errors.Is(err, application.ErrConflict) {
		logger.Info("sample club already present, skipping events")
		return
	}
	if err != nil {
		log.Fatalf("failed to seed club: %v", err)
	}
	helpers.LogInfo(logger, "sample club created", logrus.Fields{"club_id": club.ID, "admin_email": sampleClubEmail})

	clubAdmin, err := users.GetByEmail(ctx, sampleClubEmail)
	if err != nil {
		log.Fatalf("failed to load club admin: %v", err)
	}
	eventSvc := application.NewEventService(events, clubs, regs, logger)
	for _, in := range sampleEvents(time.Now().UTC()) {
		e, err := eventSvc.CreateEvent(ctx, clubAdmin, in)
		if err != nil {
			log.Fatalf("failed to seed event %q: %v", in.Title, err)
		}
		helpers.LogInfo(logger, "sample event created", logrus.Fields{"event_id": e.ID, "title": e.Title})
	}
}

// upsertSuperAdmin creates the superadmin, or promotes an existing account with that email.
func upsertSuperAdmin(ctx context.Context, users repo.UserRepository, email, password string) (*entity.User, error) {
	u, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if u.Role == entity.RoleSuperAdmin {
			return u, nil
		}
		return users.UpdateRole(ctx, u.ID, entity.RoleSuperAdmin)
	case !errors.Is(err, repo.ErrNotFound):
		return nil, err
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u = &entity.User{Name: "Super Admin", Email: email, Password: hash, Role: entity.RoleSuperAdmin}
	if err := users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func sampleEvents(now time.Time) []application.EventInput {
	day := func(n int) time.Time { return now.AddDate(0, 0, n).Truncate(24 * time.Hour) }
	deadline := day(6)
	return []application.EventInput{
		{
			Title:                "Open Blitz Night",
			Description:          "Five-minute games, boards provided.",
			Date:                 day(7),
			Time:                 "19:00",
			Location:             "Student Union, Room 2",
			Category:             "Games",
			MaxParticipants:      32,
			RegistrationDeadline: &deadline,
			Organizer:            "Chess Club",
		},
		{
			Title:           "Rated Rapid Tournament",
			Description:     "Four rounds, 25+10. Bring your rating card.",
			Date:            day(21),
			Time:            "10:00",
			Location:        "Main Hall",
			Category:        "Tournament",
			MaxParticipants: 48,
			RegistrationFee: 5,
			Requirements:    "Rating card",
			Organizer:       "Chess Club",
		},
	}
}
