package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gymbrah/GymBrah-backend/internal/database"
	"github.com/gymbrah/GymBrah-backend/internal/gamification"
	model "github.com/gymbrah/GymBrah-backend/internal/models"
	"github.com/gymbrah/GymBrah-backend/internal/utils"
)

const (
	leaderboardCacheKey = "leaderboard:points"
	leaderboardCacheTTL = time.Minute
)

// GetLeaderboard retourne le classement général par points, enrichi des
// noms/avatars. Le résultat est mis en cache Redis une minute.
func GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := gamification.LeaderboardMaxSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	// Seule la page complète par défaut est mise en cache
	if limit == gamification.LeaderboardMaxSize {
		if cached, ok := utils.CacheGetBytes(leaderboardCacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}
	}

	ctx := context.Background()
	ranked, err := Gamification.Leaderboard(ctx, limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load leaderboard", err)
		return
	}

	entries, err := enrichLeaderboard(ctx, ranked)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not enrich leaderboard", err)
		return
	}

	if limit == gamification.LeaderboardMaxSize {
		utils.CacheSetJSON(leaderboardCacheKey, utils.APIResponse{Success: true, Data: entries}, leaderboardCacheTTL)
	}

	utils.Success(w, entries)
}

// enrichLeaderboard joint les records classés avec les profils pour
// l'affichage. Les comptes supprimés sont filtrés du classement.
func enrichLeaderboard(ctx context.Context, ranked []gamification.RankedRecord) ([]model.LeaderboardEntry, error) {
	if len(ranked) == 0 {
		return []model.LeaderboardEntry{}, nil
	}

	ids := make([]string, 0, len(ranked))
	for _, rec := range ranked {
		ids = append(ids, rec.UserID)
	}

	rows, err := database.DB.Query(ctx,
		`SELECT id, name, COALESCE(avatar,'') FROM users
		 WHERE id = ANY($1) AND deleted_at IS NULL`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type profile struct {
		name   string
		avatar string
	}
	profiles := map[string]profile{}
	for rows.Next() {
		var id string
		var p profile
		if err := rows.Scan(&id, &p.name, &p.avatar); err != nil {
			return nil, err
		}
		profiles[id] = p
	}

	entries := make([]model.LeaderboardEntry, 0, len(ranked))
	for _, rec := range ranked {
		p, ok := profiles[rec.UserID]
		if !ok {
			continue
		}
		entries = append(entries, model.LeaderboardEntry{
			UserID:     rec.UserID,
			UserName:   p.name,
			Avatar:     p.avatar,
			Rank:       rec.Rank,
			Points:     rec.Points,
			Level:      rec.Level,
			StreakDays: rec.StreakDays,
		})
	}

	return entries, nil
}
