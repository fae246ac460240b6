// prefetch warms the Redis cache with hotel details so interactive clients hit
// warm entries. Hotel ids come from the command line, or from a search per
// location when -locations is given.
package main

import (
	"context"
	"flag"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"smarthotel/internal/adapters/backend"
	"smarthotel/internal/adapters/observability"
	redisad "smarthotel/internal/adapters/redis"
	"smarthotel/internal/adapters/sessionfile"
	"smarthotel/internal/app"
	"smarthotel/internal/domain"
	"smarthotel/internal/shared"
)

func main() {
	locations := flag.String("locations", "", "comma-separated locations to search and warm")
	flag.Parse()

	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	if cfg.RedisAddr == "" {
		log.Fatal().Msg("REDIS_ADDR is required, there is no cache to warm without it")
	}

	sessions := app.NewSessionService(sessionfile.New(cfg.SessionFile))
	cl, err := backend.New(cfg.APIBase, sessions, cfg.APIRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("backend client init failed")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	explorer := app.NewExplorer(cl, cache, cfg.CacheTTL)

	ctx := context.Background()

	ids := flag.Args()
	for _, loc := range strings.Split(*locations, ",") {
		loc = strings.TrimSpace(loc)
		if loc == "" {
			continue
		}
		res, err := explorer.SearchHotels(ctx, domain.HotelQuery{Location: loc, RoomType: domain.RoomStandard})
		if err != nil {
			log.Warn().Str("location", loc).Err(err).Msg("search failed")
			continue
		}
		for _, h := range res {
			ids = append(ids, h.ID)
		}
	}
	if len(ids) == 0 {
		log.Info().Msg("nothing to warm")
		return
	}

	log.Info().Int("hotels", len(ids)).Int("workers", cfg.Workers).Msg("prefetch starting")

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup
	for _, id := range ids {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			defer sem.Release(1)
			if _, err := explorer.GetHotel(ctx, id); err != nil {
				log.Warn().Str("id", id).Err(err).Msg("warm failed")
				return
			}
			log.Info().Str("id", id).Msg("warm ok")
		}(id)
	}
	wg.Wait()
	log.Info().Msg("prefetch done")
}
